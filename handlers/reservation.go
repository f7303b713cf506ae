package handlers

import (
	"net/http"

	"innkeep/services/reservation"
	"innkeep/utils"

	"github.com/gin-gonic/gin"
)

// ReservationHandler exposes the reservation lifecycle over HTTP.
type ReservationHandler struct {
	Svc reservation.Service
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(svc reservation.Service) *ReservationHandler {
	return &ReservationHandler{Svc: svc}
}

// Create books a room.
func (h *ReservationHandler) Create(c *gin.Context) {
	var in reservation.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}
	view, err := h.Svc.Create(in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "reservation": view})
}

// List returns all reservations with financial projections.
func (h *ReservationHandler) List(c *gin.Context) {
	views, err := h.Svc.List()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reservations": emptyIfNil(views)})
}

// Get returns one reservation.
func (h *ReservationHandler) Get(c *gin.Context) {
	view, err := h.Svc.Get(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reservation": view})
}

// Confirm moves a reservation to confirmed.
func (h *ReservationHandler) Confirm(c *gin.Context) {
	if err := h.Svc.Confirm(c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Reservation confirmed"})
}

// Cancel voids a reservation.
func (h *ReservationHandler) Cancel(c *gin.Context) {
	if err := h.Svc.Cancel(c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Reservation cancelled"})
}

// Delete removes a reservation.
func (h *ReservationHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Reservation deleted"})
}

// Swap moves a reservation to a new room and/or dates.
func (h *ReservationHandler) Swap(c *gin.Context) {
	var in reservation.SwapInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}
	summary, err := h.Svc.Swap(c.Param("id"), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "swap": summary})
}
