package handlers

import (
	"net/http"

	"innkeep/models"
	"innkeep/services/settings"
	"innkeep/utils"

	"github.com/gin-gonic/gin"
)

// SettingsHandler exposes the billing settings singleton.
type SettingsHandler struct {
	Svc settings.Service
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(svc settings.Service) *SettingsHandler {
	return &SettingsHandler{Svc: svc}
}

// Get returns the current billing settings.
func (h *SettingsHandler) Get(c *gin.Context) {
	cfg, err := h.Svc.Get()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "settings": cfg})
}

// Update replaces the billing settings.
func (h *SettingsHandler) Update(c *gin.Context) {
	var in models.BillingSettings
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}
	updated, err := h.Svc.Update(in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "settings": updated})
}
