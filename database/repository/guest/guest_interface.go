package guestRepo

import (
	"errors"
	"time"

	"innkeep/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Sentinel failures surfaced by the transactional check-in.
var (
	// ErrRoomConflict: another stay or active reservation won the race for
	// the same room and interval.
	ErrRoomConflict = errors.New("room already booked for the requested interval")
	// ErrRoomUnavailable: the room status could not be flipped to occupied.
	ErrRoomUnavailable = errors.New("room is not available for check-in")
	// ErrInsufficientStock: a decor deduction would drive stock negative.
	ErrInsufficientStock = errors.New("insufficient inventory stock")
)

// CheckInTxn groups everything the transactional check-in writes: the guest,
// its invoice, the linked reservation flip, decor pre-orders to bill, the
// inventory deductions those orders consume, and the advance ledger entry.
// Advance is optional; when set it is inserted in the same transaction so
// the ledger never disagrees with the invoice's netted advance.
type CheckInTxn struct {
	Guest         *models.Guest
	Invoice       *models.Invoice
	ReservationID string
	DecorOrderIDs []string
	Deductions    []models.StockDeduction
	Usages        []models.InventoryUsage
	Advance       *models.Transaction
}

// GuestRepository defines methods for guest stay data access.
type GuestRepository interface {
	// CheckIn commits a full check-in in one transaction: overlap re-check,
	// guest + invoice insert, conditional room flip to occupied, linked
	// reservation transition, decor order billing and stock deduction.
	CheckIn(txn CheckInTxn) error
	// Update replaces an existing guest document.
	Update(guest *models.Guest) error
	// UpdateSetDocument applies a partial $set update by id.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// GetByID retrieves a guest; nil when absent.
	GetByID(id string) (*models.Guest, error)
	// GetAll retrieves all guests, newest first.
	GetAll() ([]models.Guest, error)
	// FindOverlapping returns checked-in guests whose stay intersects
	// [start, end) on the room, minus excludeID.
	FindOverlapping(roomID string, start, end time.Time, excludeID string) ([]models.Guest, error)
	// CountByRoom counts stays referencing the room (any status).
	CountByRoom(roomID string) (int64, error)
}
