package handlers

import (
	"net/http"
	"time"

	"innkeep/services/guest"
	"innkeep/utils"

	"github.com/gin-gonic/gin"
)

// GuestHandler exposes the guest stay lifecycle over HTTP.
type GuestHandler struct {
	Svc guest.Service
}

// NewGuestHandler creates a new GuestHandler.
func NewGuestHandler(svc guest.Service) *GuestHandler {
	return &GuestHandler{Svc: svc}
}

// CheckIn realizes a new stay.
func (h *GuestHandler) CheckIn(c *gin.Context) {
	var in guest.CheckInInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}
	result, err := h.Svc.CheckIn(in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "guest": result.Guest, "invoice": result.Invoice})
}

// Checkout closes a stay.
func (h *GuestHandler) Checkout(c *gin.Context) {
	result, err := h.Svc.Checkout(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"guest":     result.Guest,
		"invoice":   result.Invoice,
		"refundDue": result.RefundDue,
	})
}

// Extend pushes the checkout date later.
func (h *GuestHandler) Extend(c *gin.Context) {
	var in struct {
		NewCheckOut  time.Time `json:"newCheckOut"`
		FlatDiscount int64     `json:"flatDiscount"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}
	result, err := h.Svc.Extend(c.Param("id"), in.NewCheckOut, in.FlatDiscount)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"guest":   result.Guest,
		"charges": result.Charges,
		"invoice": result.Invoice,
	})
}

// UpdateProfile edits contact fields and the mattress count.
func (h *GuestHandler) UpdateProfile(c *gin.Context) {
	var in guest.ProfileUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}
	g, err := h.Svc.UpdateProfile(c.Param("id"), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "guest": g})
}

// Get fetches one stay.
func (h *GuestHandler) Get(c *gin.Context) {
	g, err := h.Svc.Get(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "guest": g})
}

// List fetches all stays.
func (h *GuestHandler) List(c *gin.Context) {
	guests, err := h.Svc.List()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "guests": emptyIfNil(guests)})
}
