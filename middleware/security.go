package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"checkin-guide/logger"
	"checkin-guide/utils"
)

// RateLimit is a single token bucket shared by all clients.
func RateLimit(perMinute, burst int, lg *logger.Logger) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(perMinute)/60, burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			lg.LogSecurity("rate_limit_exceeded", c.ClientIP(), map[string]interface{}{
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
			})
			utils.JSONError(c, http.StatusTooManyRequests, "Слишком много запросов, попробуйте позже")
			c.Abort()
			return
		}
		c.Next()
	}
}

func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}
