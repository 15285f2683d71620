package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medicare-platform/admin-api/internal/model"
	"github.com/medicare-platform/admin-api/internal/service/auth"
	"github.com/medicare-platform/admin-api/pkg/httputil"
)

const (
	ContextUserID   = "user_id"
	ContextUserRole = "user_role"
)

type AuthMiddleware struct {
	authService auth.Service
}

func NewAuthMiddleware(authService auth.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate verifies the bearer token and stores the caller's
// identity in the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.Response{
				Success: false,
				Message: "Authentication required",
			})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.Response{
				Success: false,
				Message: "invalid authorization format",
			})
			return
		}

		claims, err := m.authService.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.Response{
				Success: false,
				Message: "invalid token",
			})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)
		c.Next()
	}
}

// RequireRoles rejects callers whose role is not in the allowed set
func (m *AuthMiddleware) RequireRoles(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := model.Role(c.GetString(ContextUserRole))
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, httputil.Response{
			Success: false,
			Message: "Access denied",
		})
	}
}

// CurrentUserID returns the authenticated caller's id from the context
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
