package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"

	// ContextRequestID is the gin context key the request logger and
	// recovery middleware read the correlation ID from.
	ContextRequestID = "request_id"
)

// RequestID tags every request with a correlation ID. An ID supplied
// by the caller is kept so traces survive proxy hops; otherwise a
// fresh one is generated. The ID is echoed back in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(ContextRequestID, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
