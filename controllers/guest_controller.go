package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkin-guide/logger"
	"checkin-guide/models"
	"checkin-guide/services"
	"checkin-guide/utils"
)

type GuestController struct {
	Svc *services.GuestService
	Log *logger.Logger
}

func NewGuestController(svc *services.GuestService, log *logger.Logger) *GuestController {
	return &GuestController{Svc: svc, Log: log}
}

// GET /api/manager/guests?apartment_id=
func (gc *GuestController) List(c *gin.Context) {
	list, err := gc.Svc.List(c.Request.Context(), c.Query("apartment_id"))
	if err != nil {
		respondError(c, gc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (gc *GuestController) Create(c *gin.Context) {
	var in models.GuestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, msgBadRequest)
		return
	}
	g, err := gc.Svc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, gc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, g)
}

func (gc *GuestController) Delete(c *gin.Context) {
	if err := gc.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, gc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}
