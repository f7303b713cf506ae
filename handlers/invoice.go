package handlers

import (
	"net/http"

	invoiceRepo "innkeep/database/repository/invoice"
	"innkeep/utils"

	"github.com/gin-gonic/gin"
)

// InvoiceHandler exposes read access to invoices.
type InvoiceHandler struct {
	Repo invoiceRepo.InvoiceRepository
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(repo invoiceRepo.InvoiceRepository) *InvoiceHandler {
	return &InvoiceHandler{Repo: repo}
}

// Get fetches one invoice by id.
func (h *InvoiceHandler) Get(c *gin.Context) {
	inv, err := h.Repo.GetByID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, utils.Errf(500, "failed to fetch invoice: %v", err))
		return
	}
	if inv == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Invoice not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "invoice": inv})
}

// GetByGuest fetches the invoice attached to a stay.
func (h *InvoiceHandler) GetByGuest(c *gin.Context) {
	inv, err := h.Repo.GetByGuest(c.Param("guestId"))
	if err != nil {
		utils.RespondError(c, utils.Errf(500, "failed to fetch invoice: %v", err))
		return
	}
	if inv == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Invoice not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "invoice": inv})
}

// List fetches all invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
	invoices, err := h.Repo.GetAll()
	if err != nil {
		utils.RespondError(c, utils.Errf(500, "failed to fetch invoices: %v", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "invoices": emptyIfNil(invoices)})
}
