package reservationRepo

import (
	"errors"
	"time"

	"innkeep/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrOverlap is returned when the transactional overlap re-check finds a
// conflicting booking for the same room and interval.
var ErrOverlap = errors.New("room already booked for the requested interval")

// ReservationRepository defines methods for reservation data access.
type ReservationRepository interface {
	// Create inserts a reservation without any overlap guarantee.
	Create(res *models.Reservation) error
	// CreateWithOverlapCheck re-runs the overlap scan and inserts inside one
	// transaction so two concurrent bookings cannot both commit.
	CreateWithOverlapCheck(res *models.Reservation) error
	// Update replaces an existing reservation document.
	Update(res *models.Reservation) error
	// UpdateSetDocument applies a partial $set update by id.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// Delete removes a reservation by id.
	Delete(id string) error
	// GetByID retrieves a reservation; nil when absent.
	GetByID(id string) (*models.Reservation, error)
	// GetAll retrieves all reservations, newest first.
	GetAll() ([]models.Reservation, error)
	// FindOverlapping returns reservations in {reserved, confirmed} whose
	// [start_at, end_at) intersects [start, end) on the room, minus excludeID.
	FindOverlapping(roomID string, start, end time.Time, excludeID string) ([]models.Reservation, error)
	// CountByRoom counts reservations referencing the room (any status).
	CountByRoom(roomID string) (int64, error)
}
