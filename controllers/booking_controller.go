package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkin-guide/logger"
	"checkin-guide/models"
	"checkin-guide/services"
	"checkin-guide/utils"
)

type BookingController struct {
	Svc *services.BookingService
	Log *logger.Logger
}

func NewBookingController(svc *services.BookingService, log *logger.Logger) *BookingController {
	return &BookingController{Svc: svc, Log: log}
}

// GET /api/manager/bookings?apartment_id=
func (bc *BookingController) List(c *gin.Context) {
	list, err := bc.Svc.List(c.Request.Context(), c.Query("apartment_id"))
	if err != nil {
		respondError(c, bc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (bc *BookingController) Get(c *gin.Context) {
	b, err := bc.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, bc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, b)
}

func (bc *BookingController) Create(c *gin.Context) {
	var patch models.BookingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, msgBadRequest)
		return
	}
	b, err := bc.Svc.Create(c.Request.Context(), patch)
	if err != nil {
		respondError(c, bc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, b)
}

func (bc *BookingController) Update(c *gin.Context) {
	var patch models.BookingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, msgBadRequest)
		return
	}
	b, err := bc.Svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, bc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, b)
}

func (bc *BookingController) Delete(c *gin.Context) {
	if err := bc.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, bc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}
