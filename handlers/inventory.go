package handlers

import (
	"net/http"

	"innkeep/models"
	"innkeep/services/inventory"
	"innkeep/utils"

	"github.com/gin-gonic/gin"
)

// InventoryHandler exposes stock item management over HTTP.
type InventoryHandler struct {
	Svc inventory.Service
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(svc inventory.Service) *InventoryHandler {
	return &InventoryHandler{Svc: svc}
}

// CreateItem registers a stock item.
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var in models.InventoryItem
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}
	created, err := h.Svc.CreateItem(&in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "item": created})
}

// ListItems fetches all stock items.
func (h *InventoryHandler) ListItems(c *gin.Context) {
	items, err := h.Svc.ListItems()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "items": emptyIfNil(items)})
}

// GetItem fetches one stock item.
func (h *InventoryHandler) GetItem(c *gin.Context) {
	item, err := h.Svc.GetItem(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "item": item})
}

// AdjustStock applies a manual stock correction.
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	var in struct {
		Delta int64  `json:"delta"`
		Note  string `json:"note"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}
	if err := h.Svc.AdjustStock(c.Param("id"), in.Delta, in.Note); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Stock adjusted"})
}

// ListUsage fetches usage history, optionally scoped to a guest.
func (h *InventoryHandler) ListUsage(c *gin.Context) {
	usage, err := h.Svc.ListUsage(c.Query("guestId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "usage": emptyIfNil(usage)})
}
