package controllers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"checkin-guide/auth"
	"checkin-guide/logger"
	"checkin-guide/utils"
)

type loginPayload struct {
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	Opts auth.Options
	Log  *logger.Logger
}

func NewAuthController(opts auth.Options, log *logger.Logger) *AuthController {
	return &AuthController{Opts: opts, Log: log}
}

func (ac *AuthController) gate(c *gin.Context) *auth.Gate {
	return auth.NewGate(ac.Opts, auth.NewCookieStore(sessions.Default(c)))
}

// POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONFieldErrors(c, http.StatusBadRequest, msgBadRequest, map[string]string{"password": "Обязательное поле"})
		return
	}

	ok, err := ac.gate(c).Login(payload.Password)
	if err != nil {
		ac.Log.WithError(err).Error("auth: could not store session")
		utils.JSONError(c, http.StatusInternalServerError, "Не удалось начать сессию")
		return
	}
	ac.Log.LogAuth("login", c.ClientIP(), ok)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Неверный пароль")
		return
	}
	expiresAt, _ := ac.gate(c).ExpiresAt()
	utils.JSONSuccess(c, http.StatusOK, gin.H{"authenticated": true, "expires_at": expiresAt.UTC().Format(time.RFC3339)})
}

// GET /api/auth/check
func (ac *AuthController) Check(c *gin.Context) {
	g := ac.gate(c)
	if !g.CheckAuth() {
		utils.JSONSuccess(c, http.StatusOK, gin.H{"authenticated": false})
		return
	}
	expiresAt, _ := g.ExpiresAt()
	utils.JSONSuccess(c, http.StatusOK, gin.H{"authenticated": true, "expires_at": expiresAt.UTC().Format(time.RFC3339)})
}

// POST /api/auth/logout ends the session and sends the manager home.
func (ac *AuthController) Logout(c *gin.Context) {
	if err := ac.gate(c).Logout(); err != nil {
		ac.Log.WithError(err).Warn("auth: could not clear session")
	}
	ac.Log.LogAuth("logout", c.ClientIP(), true)
	c.Redirect(http.StatusSeeOther, "/")
}
