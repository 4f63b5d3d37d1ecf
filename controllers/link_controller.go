package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkin-guide/guestlink"
	"checkin-guide/logger"
	"checkin-guide/services"
	"checkin-guide/utils"
)

type LinkController struct {
	Svc *services.LinkService
	Log *logger.Logger
}

func NewLinkController(svc *services.LinkService, log *logger.Logger) *LinkController {
	return &LinkController{Svc: svc, Log: log}
}

type bookingLinkRequest struct {
	GuestName    string `json:"guest_name"`
	CheckIn      string `json:"checkin"`
	CheckOut     string `json:"checkout"`
	EntranceCode string `json:"entrance_code"`
	LockCode     string `json:"lock_code"`
	WifiPassword string `json:"wifi_password"`
}

// Guide is the public page data behind a guest link.
// GET /api/guide/:apartmentId
func (lc *LinkController) Guide(c *gin.Context) {
	g, err := lc.Svc.Guide(c.Request.Context(), c.Param("apartmentId"), c.Request.URL.Query())
	if err != nil {
		respondError(c, lc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, g)
}

// POST /api/manager/links
func (lc *LinkController) Generate(c *gin.Context) {
	var p guestlink.Params
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.JSONError(c, http.StatusBadRequest, msgBadRequest)
		return
	}
	link, err := lc.Svc.ForApartment(c.Request.Context(), p)
	if err != nil {
		respondError(c, lc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"url": link})
}

// POST /api/manager/bookings/:id/link
func (lc *LinkController) ForBooking(c *gin.Context) {
	var req bookingLinkRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, msgBadRequest)
			return
		}
	}
	link, err := lc.Svc.ForBooking(c.Request.Context(), c.Param("id"), guestlink.Overrides{
		GuestName:    req.GuestName,
		CheckIn:      req.CheckIn,
		CheckOut:     req.CheckOut,
		EntranceCode: req.EntranceCode,
		LockCode:     req.LockCode,
		WifiPassword: req.WifiPassword,
	})
	if err != nil {
		respondError(c, lc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"url": link})
}
