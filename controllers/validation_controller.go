package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkin-guide/utils"
	"checkin-guide/validation"
)

// ValidationController lets the manager UI check a form while it is being
// filled in, with the same rules the services apply on save.
type ValidationController struct{}

func NewValidationController() *ValidationController {
	return &ValidationController{}
}

type checkFormRequest struct {
	Values map[string]string `json:"values"`
	// Fields limits the check to the fields being edited. Empty checks the
	// whole form.
	Fields []string `json:"fields"`
}

// POST /api/manager/validate/:form
func (vc *ValidationController) Check(c *gin.Context) {
	rules, ok := validation.Forms[c.Param("form")]
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "Неизвестная форма")
		return
	}
	var req checkFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, msgBadRequest)
		return
	}

	form := validation.NewForm(rules)
	if len(req.Fields) == 0 {
		form.ValidateAll(req.Values)
	} else {
		for _, name := range req.Fields {
			form.ValidateField(name, req.Values[name])
		}
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"valid":  !form.HasErrors(),
		"errors": form.Errors(),
	})
}
