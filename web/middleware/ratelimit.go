package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/kitchenhub/recipe-service/logger"
	"github.com/kitchenhub/recipe-service/util/metrics"
	"github.com/kitchenhub/recipe-service/web/entity"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// RateLimitConfig configures rate limiting
type RateLimitConfig struct {
	RequestsPerMinute int
	KeyFunc           func(c *gin.Context) string
}

// DefaultRateLimitConfig limits each client IP to the given requests per minute.
func DefaultRateLimitConfig(requestsPerMinute int) RateLimitConfig {
	return RateLimitConfig{
		RequestsPerMinute: requestsPerMinute,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// RateLimitMiddleware counts requests per key and path in fixed one minute
// windows and answers 429 once the window is exhausted. A non-positive limit
// disables the middleware.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	counters := cache.New(time.Minute, 2*time.Minute)
	return func(c *gin.Context) {
		if config.RequestsPerMinute <= 0 {
			c.Next()
			return
		}

		key := config.KeyFunc(c)
		rateLimitKey := "ratelimit:" + key + ":" + c.Request.URL.Path

		// Add only succeeds for the first request of a window and fixes its expiry.
		_ = counters.Add(rateLimitKey, 0, time.Minute)
		count, err := counters.IncrementInt(rateLimitKey, 1)
		if err != nil {
			logger.Warning("rate limit increment failed: ", err)
			c.Next()
			return
		}

		remaining := config.RequestsPerMinute - count
		if remaining < 0 {
			logger.Warningf("rate limit exceeded for %s on %s (count: %d)", key, c.Request.URL.Path, count)
			metrics.RateLimitHits.WithLabelValues(c.FullPath()).Inc()
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, entity.Msg{
				Success: false,
				Msg:     "Rate limit exceeded. Please try again later.",
			})
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.RequestsPerMinute))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Next()
	}
}
