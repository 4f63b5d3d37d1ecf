package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"checkin-guide/logger"
)

const slowRequest = time.Second

// Logger writes one line per request and flags slow ones.
func Logger(lg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		lg.LogRequest(c.Request.Method, path, c.Request.UserAgent(), c.ClientIP(), c.Writer.Status(), latency.Milliseconds())
		if latency > slowRequest {
			lg.LogPerformance("http_request", latency.Milliseconds(), map[string]interface{}{
				"method": c.Request.Method,
				"path":   path,
				"query":  raw,
				"status": c.Writer.Status(),
			})
		}
	}
}
