package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"checkin-guide/auth"
	"checkin-guide/logger"
	"checkin-guide/utils"
)

// RequireManager lets a request through only with a live manager session.
// Must run after the sessions middleware.
func RequireManager(opts auth.Options, lg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		gate := auth.NewGate(opts, auth.NewCookieStore(sessions.Default(c)))
		if !gate.CheckAuth() {
			lg.LogSecurity("manager_session_rejected", c.ClientIP(), map[string]interface{}{
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
			})
			utils.JSONError(c, http.StatusUnauthorized, "Сессия истекла, войдите снова")
			c.Abort()
			return
		}
		c.Next()
	}
}
