package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"checkin-guide/apperr"
	"checkin-guide/logger"
	"checkin-guide/utils"
)

const msgBadRequest = "Некорректный запрос"

var kindStatus = map[apperr.Kind]int{
	apperr.KindValidation:   http.StatusBadRequest,
	apperr.KindNotFound:     http.StatusNotFound,
	apperr.KindPrecondition: http.StatusConflict,
	apperr.KindAuth:         http.StatusUnauthorized,
	apperr.KindTransport:    http.StatusBadGateway,
}

// respondError writes err for the client. Causes stay in the log.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	e, ok := apperr.As(err)
	if !ok {
		if errors.Is(err, context.Canceled) {
			c.Status(499)
			return
		}
		log.WithFields(logger.Fields{"path": c.FullPath()}).WithError(err).Error("unhandled error")
		utils.JSONError(c, http.StatusInternalServerError, "Внутренняя ошибка сервера")
		return
	}

	status := kindStatus[e.Kind]
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if e.Err != nil && status >= http.StatusInternalServerError {
		log.WithFields(logger.Fields{"path": c.FullPath(), "kind": e.Kind}).WithError(e.Err).Error(e.Message)
	}
	if len(e.Fields) > 0 {
		utils.JSONFieldErrors(c, status, e.Message, e.Fields)
		return
	}
	utils.JSONError(c, status, e.Message)
}
