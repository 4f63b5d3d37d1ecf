package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"checkin-guide/logger"
	"checkin-guide/models"
	"checkin-guide/services"
	"checkin-guide/utils"
)

type MediaController struct {
	Svc *services.MediaService
	Log *logger.Logger
}

func NewMediaController(svc *services.MediaService, log *logger.Logger) *MediaController {
	return &MediaController{Svc: svc, Log: log}
}

type dataURLUpload struct {
	Category string `json:"category" binding:"required"`
	Filename string `json:"filename"`
	Data     string `json:"data" binding:"required"`
}

// GET /api/manager/apartments/:id/media
func (mc *MediaController) List(c *gin.Context) {
	files, err := mc.Svc.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, files)
}

// Upload accepts multipart form fields `file` and `category`, or a JSON
// body with a base64 data URL.
// POST /api/manager/apartments/:id/media
func (mc *MediaController) Upload(c *gin.Context) {
	apartmentID := c.Param("id")

	if strings.HasPrefix(c.ContentType(), "application/json") {
		var req dataURLUpload
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, msgBadRequest)
			return
		}
		file, err := mc.Svc.UploadDataURL(c.Request.Context(), apartmentID, req.Category, req.Filename, req.Data)
		if err != nil {
			respondError(c, mc.Log, err)
			return
		}
		utils.JSONSuccess(c, http.StatusCreated, file)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		utils.JSONFieldErrors(c, http.StatusBadRequest, "Файл не выбран", map[string]string{"file": "Обязательное поле"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Не удалось прочитать файл")
		return
	}
	defer f.Close()

	file, err := mc.Svc.Upload(c.Request.Context(), apartmentID, c.PostForm("category"), services.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
		Source:      models.MediaSourceMultipart,
	})
	if err != nil {
		respondError(c, mc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, file)
}

// DELETE /api/manager/media/:id
func (mc *MediaController) Delete(c *gin.Context) {
	if err := mc.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, mc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}
