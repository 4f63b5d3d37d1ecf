package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkin-guide/logger"
	"checkin-guide/models"
	"checkin-guide/services"
	"checkin-guide/utils"
)

type ApartmentController struct {
	Svc  *services.ApartmentService
	Bulk *services.BulkService
	Log  *logger.Logger
}

func NewApartmentController(svc *services.ApartmentService, bulk *services.BulkService, log *logger.Logger) *ApartmentController {
	return &ApartmentController{Svc: svc, Bulk: bulk, Log: log}
}

// GET /api/manager/apartments?housing_complex=
func (ac *ApartmentController) List(c *gin.Context) {
	list, err := ac.Svc.List(c.Request.Context(), c.Query("housing_complex"))
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// GET /api/manager/apartments/complexes
func (ac *ApartmentController) HousingComplexes(c *gin.Context) {
	names, err := ac.Svc.HousingComplexes(c.Request.Context())
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, names)
}

func (ac *ApartmentController) Get(c *gin.Context) {
	apt, err := ac.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, apt)
}

func (ac *ApartmentController) Create(c *gin.Context) {
	var patch models.ApartmentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, msgBadRequest)
		return
	}
	apt, err := ac.Svc.Create(c.Request.Context(), patch)
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, apt)
}

func (ac *ApartmentController) Update(c *gin.Context) {
	var patch models.ApartmentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, msgBadRequest)
		return
	}
	apt, err := ac.Svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, apt)
}

// Delete removes the apartment with its bookings, guests and media.
func (ac *ApartmentController) Delete(c *gin.Context) {
	report, err := ac.Svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": c.Param("id"), "cascade": report})
}

// GET /api/manager/apartments/:id/copy-targets
func (ac *ApartmentController) CopyTargets(c *gin.Context) {
	list, err := ac.Bulk.CopyTargets(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}
