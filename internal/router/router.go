package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/slotwise/booking-api/internal/handler"
	"github.com/slotwise/booking-api/internal/middleware"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// ProviderHandler additionally exposes the provider-only surface, wired
// behind the capability guard.
type ProviderHandler interface {
	Handler
	RegisterProviderRoutes(*gin.RouterGroup)
}

type Router struct {
	engine       *gin.Engine
	auth         *middleware.AuthMiddleware
	authH        Handler
	providerH    ProviderHandler
	appointmentH Handler
	h            *handler.Handler
	metrics      *routerMetrics
}

type Config struct {
	RateLimit     rate.Limit
	RateBurst     int
	CORSConfig    middleware.CORSConfig
	MetricsPrefix string
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH Handler,
	providerH ProviderHandler,
	appointmentH Handler,
	h *handler.Handler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	r := &Router{
		engine:       engine,
		auth:         auth,
		authH:        authH,
		providerH:    providerH,
		appointmentH: appointmentH,
		h:            h,
		metrics:      initRouterMetrics(config.MetricsPrefix),
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		r.metricsMiddleware(),
	)

	engine.Use(middleware.CORS(config.CORSConfig))

	if config.RateLimit > 0 {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	r.setupHealthCheck(api)

	// Public routes
	r.authH.RegisterRoutes(api)
	r.providerH.RegisterRoutes(api)

	// Authenticated routes
	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	r.appointmentH.RegisterRoutes(protected)

	// Provider-only routes behind the capability guard
	providerOnly := api.Group("")
	providerOnly.Use(r.auth.Authenticate(), r.auth.RequireProvider())
	r.providerH.RegisterProviderRoutes(providerOnly)
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	health := rg.Group("/health")
	{
		health.GET("/live", r.h.LivenessCheck)
		health.GET("/ready", r.h.ReadinessCheck)
	}
	rg.GET("/metrics", r.h.MetricsHandler)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	m := &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
	prometheus.MustRegister(m.requestDuration, m.requestTotal, m.errorTotal)
	return m
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
