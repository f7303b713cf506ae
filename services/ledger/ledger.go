package ledger

import (
	"time"

	invoiceRepo "innkeep/database/repository/invoice"
	transactionRepo "innkeep/database/repository/transaction"
	"innkeep/models"
	"innkeep/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

var validTypes = map[string]bool{
	models.TxnAdvance:         true,
	models.TxnRefund:          true,
	models.TxnPayment:         true,
	models.TxnSecurityDeposit: true,
}

// Service is the append-only money-movement ledger.
type Service interface {
	// Append records a ledger entry. A payment entry linked to a guest with a
	// pending invoice also pays down that invoice's balance.
	Append(txn *models.Transaction) (*models.Transaction, error)
	// ListByReservation returns entries for a reservation, newest first.
	ListByReservation(reservationID string) ([]models.Transaction, error)
	// ListByGuest returns entries for a guest, newest first.
	ListByGuest(guestID string) ([]models.Transaction, error)
	// NetAdvance is the carried-over payment for a reservation: advances
	// minus refunds, floored at zero.
	NetAdvance(reservationID string) (int64, error)
}

// DefaultService implements Service.
type DefaultService struct {
	Repo     transactionRepo.TransactionRepository
	Invoices invoiceRepo.InvoiceRepository
}

// NewService creates a new instance of Service.
func NewService(repo transactionRepo.TransactionRepository, invoices invoiceRepo.InvoiceRepository) Service {
	return &DefaultService{Repo: repo, Invoices: invoices}
}

// Append records a ledger entry.
func (s *DefaultService) Append(txn *models.Transaction) (*models.Transaction, error) {
	if txn.Amount <= 0 {
		return nil, utils.Errf(400, "amount must be greater than zero")
	}
	if !validTypes[txn.Type] {
		return nil, utils.Errf(400, "invalid transaction type: %s", txn.Type)
	}
	if txn.PaymentMethod == "" {
		return nil, utils.Errf(400, "payment method is required")
	}
	if txn.ReservationID == "" && txn.GuestID == "" {
		return nil, utils.Errf(400, "a reservation or guest reference is required")
	}

	txn.ID = uuid.NewString()
	txn.CreatedAt = time.Now()
	if err := s.Repo.Create(txn); err != nil {
		return nil, utils.Errf(500, "failed to record transaction: %v", err)
	}

	if txn.Type == models.TxnPayment && txn.GuestID != "" {
		s.payDownInvoice(txn)
	}
	return txn, nil
}

// payDownInvoice is the quick-pay path: a payment against a guest with a
// pending invoice reduces that invoice's balance directly, without a full
// billing recompute. GrandTotal is untouched.
func (s *DefaultService) payDownInvoice(txn *models.Transaction) {
	logger := utils.GetLogger()
	inv, err := s.Invoices.GetByGuest(txn.GuestID)
	if err != nil {
		logger.Warn("failed to load invoice for payment", zap.String("guestID", txn.GuestID), zap.Error(err))
		return
	}
	if inv == nil || inv.Status != models.InvoicePending {
		return
	}

	balance := inv.BalanceDue - txn.Amount
	if balance < 0 {
		balance = 0
	}
	status := inv.Status
	if balance == 0 {
		status = models.InvoicePaid
	}
	update := bson.M{
		"balance_due": balance,
		"status":      status,
		"updated_at":  time.Now(),
	}
	if err := s.Invoices.UpdateSetDocument(inv.ID, update); err != nil {
		logger.Warn("failed to pay down invoice", zap.String("invoiceID", inv.ID), zap.Error(err))
	}
}

// ListByReservation returns entries for a reservation.
func (s *DefaultService) ListByReservation(reservationID string) ([]models.Transaction, error) {
	txns, err := s.Repo.GetByReservation(reservationID)
	if err != nil {
		return nil, utils.Errf(500, "failed to fetch transactions: %v", err)
	}
	return txns, nil
}

// ListByGuest returns entries for a guest.
func (s *DefaultService) ListByGuest(guestID string) ([]models.Transaction, error) {
	txns, err := s.Repo.GetByGuest(guestID)
	if err != nil {
		return nil, utils.Errf(500, "failed to fetch transactions: %v", err)
	}
	return txns, nil
}

// NetAdvance nets advances against refunds for a reservation, floored at
// zero.
func (s *DefaultService) NetAdvance(reservationID string) (int64, error) {
	txns, err := s.Repo.GetByReservation(reservationID)
	if err != nil {
		return 0, utils.Errf(500, "failed to fetch transactions: %v", err)
	}
	var net int64
	for _, t := range txns {
		switch t.Type {
		case models.TxnAdvance:
			net += t.Amount
		case models.TxnRefund:
			net -= t.Amount
		}
	}
	if net < 0 {
		net = 0
	}
	return net, nil
}
