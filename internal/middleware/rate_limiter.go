package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/medicare-platform/admin-api/pkg/httputil"
)

type RateLimiterConfig struct {
	RPS   float64
	Burst int
}

// RateLimiter keeps a token bucket per client IP; buckets for idle
// clients expire from the cache.
type RateLimiter struct {
	config   RateLimiterConfig
	limiters *cache.Cache
}

func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.RPS <= 0 {
		config.RPS = 50
	}
	if config.Burst <= 0 {
		config.Burst = 100
	}
	return &RateLimiter{
		config:   config,
		limiters: cache.New(10*time.Minute, 15*time.Minute),
	}
}

func (rl *RateLimiter) limiterFor(clientIP string) *rate.Limiter {
	if v, found := rl.limiters.Get(clientIP); found {
		return v.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(rate.Limit(rl.config.RPS), rl.config.Burst)
	rl.limiters.SetDefault(clientIP, limiter)
	return limiter
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiterFor(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httputil.Response{
				Success: false,
				Message: "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
