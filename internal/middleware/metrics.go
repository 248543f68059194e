package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gymflick_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"operation"})

	// UpvoteToggles counts upvote toggles by direction.
	UpvoteToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gymflick_upvote_toggles_total",
		Help: "Total number of upvote toggles by direction (add/remove)",
	}, []string{"direction"})

	// CoachFallbacks counts AI generations that fell back to the static text.
	CoachFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gymflick_coach_fallbacks_total",
		Help: "Total number of coach generations answered with fallback text",
	}, []string{"kind"})
)

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the Fiber handler that records request metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
