package roomRepo

import (
	"innkeep/models"

	"go.mongodb.org/mongo-driver/bson"
)

// RoomRepository defines methods for room data access.
type RoomRepository interface {
	// Create inserts a new room record.
	Create(room *models.Room) error
	// Update modifies an existing room record.
	Update(room *models.Room) error
	// UpdateSetDocument applies a partial $set update by id.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// SetStatus writes the operational status unconditionally.
	SetStatus(id, status string) error
	// FreeRoom flips the room back to available unless it is occupied or
	// under maintenance. Returns true if a document was changed.
	FreeRoom(id string) (bool, error)
	// Delete removes a room record by its ID.
	Delete(id string) error
	// GetByID retrieves a room by its unique ID.
	GetByID(id string) (*models.Room, error)
	// GetByNumber retrieves a room by its room number; nil when absent.
	GetByNumber(number string) (*models.Room, error)
	// GetAll retrieves all rooms.
	GetAll() ([]models.Room, error)
}
