package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkin-guide/logger"
	"checkin-guide/models"
	"checkin-guide/services"
	"checkin-guide/utils"
)

type BulkController struct {
	Svc *services.BulkService
	Log *logger.Logger
}

func NewBulkController(svc *services.BulkService, log *logger.Logger) *BulkController {
	return &BulkController{Svc: svc, Log: log}
}

type massUpdateRequest struct {
	IDs   []string              `json:"ids"`
	Patch models.ApartmentPatch `json:"patch"`
}

type copySettingsRequest struct {
	SourceID  string         `json:"source_id"`
	TargetIDs []string       `json:"target_ids"`
	Fields    []models.Field `json:"fields"`
}

func (bc *BulkController) report(c *gin.Context, report *services.BulkReport, err error) {
	if err != nil {
		respondError(c, bc.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": report.Summary(), "data": report})
}

// POST /api/manager/bulk/mass-update
func (bc *BulkController) MassUpdate(c *gin.Context) {
	var req massUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, msgBadRequest)
		return
	}
	report, err := bc.Svc.MassUpdate(c.Request.Context(), req.IDs, req.Patch)
	bc.report(c, report, err)
}

// POST /api/manager/bulk/copy-settings
func (bc *BulkController) CopySettings(c *gin.Context) {
	var req copySettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, msgBadRequest)
		return
	}
	report, err := bc.Svc.CopySettings(c.Request.Context(), req.SourceID, req.TargetIDs, req.Fields)
	bc.report(c, report, err)
}
