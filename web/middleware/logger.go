package middleware

import (
	"net/http"
	"time"

	"github.com/kitchenhub/recipe-service/logger"

	"github.com/gin-gonic/gin"
)

const accessLogFormat = "%s %s %d %dms ip=%s rid=%s"

// AccessLog writes one line per request with its method, path, status and latency.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		status := c.Writer.Status()
		args := []any{c.Request.Method, path, status, time.Since(start).Milliseconds(), c.ClientIP(), c.GetString(requestIDKey)}
		switch {
		case len(c.Errors) > 0:
			logger.Warningf(accessLogFormat+" errors=%s", append(args, c.Errors.String())...)
		case status >= http.StatusInternalServerError:
			logger.Warningf(accessLogFormat, args...)
		default:
			logger.Debugf(accessLogFormat, args...)
		}
	}
}
