package handlers

import (
	"net/http"

	"innkeep/models"
	"innkeep/services/availability"
	"innkeep/services/room"
	"innkeep/utils"

	"github.com/gin-gonic/gin"
)

// RoomHandler exposes room inventory management over HTTP.
type RoomHandler struct {
	Svc     room.Service
	Checker availability.Checker
}

// NewRoomHandler creates a new RoomHandler.
func NewRoomHandler(svc room.Service, checker availability.Checker) *RoomHandler {
	return &RoomHandler{Svc: svc, Checker: checker}
}

// Create registers a room.
func (h *RoomHandler) Create(c *gin.Context) {
	var in models.Room
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}
	created, err := h.Svc.Create(&in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "room": created})
}

// Update edits a room.
func (h *RoomHandler) Update(c *gin.Context) {
	var in models.Room
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}
	in.ID = c.Param("id")
	updated, err := h.Svc.Update(&in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "room": updated})
}

// SetStatus toggles a room's operational status.
func (h *RoomHandler) SetStatus(c *gin.Context) {
	var in struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}
	if err := h.Svc.SetStatus(c.Param("id"), in.Status); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Room status updated"})
}

// Delete removes an unreferenced room.
func (h *RoomHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Room deleted"})
}

// Get fetches one room.
func (h *RoomHandler) Get(c *gin.Context) {
	r, err := h.Svc.Get(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "room": r})
}

// List fetches all rooms. Public callers only see publicly visible rooms.
func (h *RoomHandler) List(c *gin.Context) {
	publicOnly := c.Query("public") == "true"
	rooms, err := h.Svc.List(publicOnly)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "rooms": emptyIfNil(rooms)})
}

// CheckAvailability answers whether a room is free over a date interval.
func (h *RoomHandler) CheckAvailability(c *gin.Context) {
	var in struct {
		RoomID    string `json:"roomId"`
		StartAt   string `json:"startAt"`
		EndAt     string `json:"endAt"`
		ExcludeID string `json:"excludeId"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}
	start, err := utils.ParseDate(in.StartAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid startAt: " + err.Error()})
		return
	}
	end, err := utils.ParseDate(in.EndAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid endAt: " + err.Error()})
		return
	}
	result, err := h.Checker.Check(in.RoomID, start, end, in.ExcludeID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}
