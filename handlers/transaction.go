package handlers

import (
	"net/http"

	"innkeep/models"
	"innkeep/services/ledger"
	"innkeep/utils"

	"github.com/gin-gonic/gin"
)

// TransactionHandler exposes the money-movement ledger over HTTP.
type TransactionHandler struct {
	Svc ledger.Service
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(svc ledger.Service) *TransactionHandler {
	return &TransactionHandler{Svc: svc}
}

// Add appends a ledger entry.
func (h *TransactionHandler) Add(c *gin.Context) {
	var in models.Transaction
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}
	in.CreatedBy = c.GetString("staffID")
	txn, err := h.Svc.Append(&in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "transaction": txn})
}

// List filters ledger entries by reservation or guest.
func (h *TransactionHandler) List(c *gin.Context) {
	reservationID := c.Query("reservationId")
	guestID := c.Query("guestId")

	var (
		txns []models.Transaction
		err  error
	)
	switch {
	case reservationID != "":
		txns, err = h.Svc.ListByReservation(reservationID)
	case guestID != "":
		txns, err = h.Svc.ListByGuest(guestID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "reservationId or guestId query is required"})
		return
	}
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "transactions": emptyIfNil(txns)})
}
