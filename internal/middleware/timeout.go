package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// TimeoutConfig represents timeout middleware configuration
type TimeoutConfig struct {
	Duration time.Duration
}

// DefaultTimeoutConfig returns default timeout configuration
func DefaultTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{
		Duration: 30 * time.Second,
	}
}

// Timeout bounds each request's context. Store calls may otherwise
// block indefinitely; this is the caller-imposed request deadline.
func Timeout(config TimeoutConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), config.Duration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
