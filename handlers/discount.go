package handlers

import (
	"net/http"

	"innkeep/models"
	"innkeep/services/discount"
	"innkeep/utils"

	"github.com/gin-gonic/gin"
)

// DiscountHandler exposes discount window and promo code administration.
type DiscountHandler struct {
	Svc discount.Service
}

// NewDiscountHandler creates a new DiscountHandler.
func NewDiscountHandler(svc discount.Service) *DiscountHandler {
	return &DiscountHandler{Svc: svc}
}

// CreateDiscount registers a discount window.
func (h *DiscountHandler) CreateDiscount(c *gin.Context) {
	var in models.Discount
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}
	created, err := h.Svc.CreateDiscount(&in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "discount": created})
}

// ListDiscounts fetches all discount windows.
func (h *DiscountHandler) ListDiscounts(c *gin.Context) {
	out, err := h.Svc.ListDiscounts()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "discounts": emptyIfNil(out)})
}

// DeactivateDiscount soft-deletes a discount window.
func (h *DiscountHandler) DeactivateDiscount(c *gin.Context) {
	if err := h.Svc.DeactivateDiscount(c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Discount deactivated"})
}

// CreatePromo registers a promo code.
func (h *DiscountHandler) CreatePromo(c *gin.Context) {
	var in models.PromoCode
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}
	created, err := h.Svc.CreatePromo(&in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "promo": created})
}

// ListPromos fetches all promo codes.
func (h *DiscountHandler) ListPromos(c *gin.Context) {
	out, err := h.Svc.ListPromos()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "promos": emptyIfNil(out)})
}

// DeactivatePromo soft-deletes a promo code.
func (h *DiscountHandler) DeactivatePromo(c *gin.Context) {
	if err := h.Svc.DeactivatePromo(c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Promo code deactivated"})
}
