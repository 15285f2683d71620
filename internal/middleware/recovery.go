package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/medicare-platform/admin-api/pkg/httputil"
)

// Recovery handles panics and logs them appropriately
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("error", err).
					Str("stack", string(debug.Stack())).
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Str("request_id", c.GetString(ContextRequestID)).
					Msg("request panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, httputil.Response{
					Success: false,
					Message: "internal server error",
				})
			}
		}()
		c.Next()
	}
}
