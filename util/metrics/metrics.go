// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "recipe_http_requests_total", Help: "HTTP requests by route, method and status."},
		[]string{"path", "method", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "recipe_http_request_duration_seconds", Help: "HTTP request latency.", Buckets: prometheus.DefBuckets},
		[]string{"path", "method"},
	)

	RateLimitHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "recipe_rate_limit_hits_total", Help: "Requests rejected by the rate limiter."},
		[]string{"path"},
	)

	FailedLoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "recipe_failed_login_attempts_total", Help: "Rejected logins by reason."},
		[]string{"reason"},
	)

	LikesToggled = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "recipe_likes_toggled_total", Help: "Like toggles by outcome."},
		[]string{"outcome"},
	)

	RecipesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "recipe_recipes_created_total", Help: "Recipes created."},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		RateLimitHits,
		FailedLoginAttempts,
		LikesToggled,
		RecipesCreated,
	)
}

// Middleware records request count and latency per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPRequestDuration.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
		HTTPRequestsTotal.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Handler exposes the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
