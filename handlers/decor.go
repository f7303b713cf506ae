package handlers

import (
	"net/http"

	"innkeep/models"
	"innkeep/services/decor"
	"innkeep/utils"

	"github.com/gin-gonic/gin"
)

// DecorHandler exposes the decor order workflow over HTTP.
type DecorHandler struct {
	Svc decor.Service
}

// NewDecorHandler creates a new DecorHandler.
func NewDecorHandler(svc decor.Service) *DecorHandler {
	return &DecorHandler{Svc: svc}
}

// CreatePackage registers an add-on package.
func (h *DecorHandler) CreatePackage(c *gin.Context) {
	var in models.DecorPackage
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}
	created, err := h.Svc.CreatePackage(&in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "package": created})
}

// ListPackages fetches all packages.
func (h *DecorHandler) ListPackages(c *gin.Context) {
	pkgs, err := h.Svc.ListPackages()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "packages": emptyIfNil(pkgs)})
}

// GetPackage fetches one package.
func (h *DecorHandler) GetPackage(c *gin.Context) {
	pkg, err := h.Svc.GetPackage(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "package": pkg})
}

// DeletePackage removes or deactivates a package.
func (h *DecorHandler) DeletePackage(c *gin.Context) {
	if err := h.Svc.DeletePackage(c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Decor package removed"})
}

// CreateOrder places a decor order.
func (h *DecorHandler) CreateOrder(c *gin.Context) {
	var in decor.OrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}
	order, err := h.Svc.CreateOrder(in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
}

// ListOrders fetches all orders.
func (h *DecorHandler) ListOrders(c *gin.Context) {
	orders, err := h.Svc.ListOrders()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": emptyIfNil(orders)})
}

// GetOrder fetches one order.
func (h *DecorHandler) GetOrder(c *gin.Context) {
	order, err := h.Svc.GetOrder(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// BillOrder folds an order into its guest's invoice.
func (h *DecorHandler) BillOrder(c *gin.Context) {
	order, err := h.Svc.BillOrder(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// CancelOrder voids an unbilled order.
func (h *DecorHandler) CancelOrder(c *gin.Context) {
	if err := h.Svc.CancelOrder(c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Decor order cancelled"})
}
