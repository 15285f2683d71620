package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminh "github.com/medicare-platform/admin-api/internal/handler/admin"
	authh "github.com/medicare-platform/admin-api/internal/handler/auth"
	donationh "github.com/medicare-platform/admin-api/internal/handler/donation"
	healthh "github.com/medicare-platform/admin-api/internal/handler/health"
	medicationh "github.com/medicare-platform/admin-api/internal/handler/medication"
	notificationh "github.com/medicare-platform/admin-api/internal/handler/notification"
	"github.com/medicare-platform/admin-api/internal/middleware"
	"github.com/medicare-platform/admin-api/internal/model"
)

type Handlers struct {
	Auth         *authh.Handler
	Admin        *adminh.Handler
	Medication   *medicationh.Handler
	Donation     *donationh.Handler
	Notification *notificationh.Handler
	Health       *healthh.Handler
}

type Config struct {
	RateLimit middleware.RateLimiterConfig
	CORS      middleware.CORSConfig
	Timeout   time.Duration
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	handlers Handlers
	metrics  *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

func NewRouter(auth *middleware.AuthMiddleware, handlers Handlers, config Config) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	if config.Timeout <= 0 {
		config.Timeout = middleware.DefaultTimeoutConfig().Duration
	}

	r := &Router{
		engine:   engine,
		auth:     auth,
		handlers: handlers,
		metrics:  newRouterMetrics(),
	}

	rateLimiter := middleware.NewRateLimiter(config.RateLimit)
	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(config.CORS),
		rateLimiter.RateLimit(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.Timeout}),
		r.metricsMiddleware(),
	)

	return r
}

func (r *Router) Setup() {
	r.handlers.Health.RegisterRoutes(r.engine)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	// Public routes
	r.handlers.Auth.RegisterRoutes(api)

	// Authenticated routes
	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	r.handlers.Notification.RegisterRoutes(protected)

	// Admin-only routes
	admin := protected.Group("")
	admin.Use(r.auth.RequireRoles(model.RoleAdmin))
	r.handlers.Admin.RegisterRoutes(admin)
	r.handlers.Medication.RegisterRoutes(admin)
	r.handlers.Donation.RegisterRoutes(admin)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func newRouterMetrics() *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}
