package room

import (
	"time"

	guestRepo "innkeep/database/repository/guest"
	reservationRepo "innkeep/database/repository/reservation"
	roomRepo "innkeep/database/repository/room"
	"innkeep/models"
	"innkeep/utils"

	"github.com/google/uuid"
)

var validStatuses = map[string]bool{
	models.RoomAvailable:   true,
	models.RoomOccupied:    true,
	models.RoomMaintenance: true,
}

// Service manages the physical room inventory.
type Service interface {
	Create(room *models.Room) (*models.Room, error)
	Update(room *models.Room) (*models.Room, error)
	// SetStatus toggles the operational status (maintenance on/off).
	SetStatus(id, status string) error
	// Delete removes a room unless reservations or stays still reference it.
	Delete(id string) error
	Get(id string) (*models.Room, error)
	GetByNumber(number string) (*models.Room, error)
	// List returns all rooms, or only publicly visible ones.
	List(publicOnly bool) ([]models.Room, error)
}

// DefaultService implements Service.
type DefaultService struct {
	Repo         roomRepo.RoomRepository
	Reservations reservationRepo.ReservationRepository
	Guests       guestRepo.GuestRepository
}

// NewService creates a new instance of Service.
func NewService(repo roomRepo.RoomRepository, reservations reservationRepo.ReservationRepository, guests guestRepo.GuestRepository) Service {
	return &DefaultService{Repo: repo, Reservations: reservations, Guests: guests}
}

func (s *DefaultService) validate(room *models.Room) error {
	if room.Number == "" {
		return utils.Errf(400, "room number is required")
	}
	if room.Rate <= 0 {
		return utils.Errf(400, "nightly rate must be greater than zero")
	}
	if room.MaxAdults < 1 {
		return utils.Errf(400, "room must accommodate at least one adult")
	}
	return nil
}

// Create registers a room.
func (s *DefaultService) Create(room *models.Room) (*models.Room, error) {
	if err := s.validate(room); err != nil {
		return nil, err
	}
	existing, err := s.Repo.GetByNumber(room.Number)
	if err != nil {
		return nil, utils.Errf(500, "failed to check room number: %v", err)
	}
	if existing != nil {
		return nil, utils.Errf(409, "room number %s already exists", room.Number)
	}

	room.ID = uuid.NewString()
	if room.Status == "" {
		room.Status = models.RoomAvailable
	}
	room.CreatedAt = time.Now()
	room.UpdatedAt = room.CreatedAt
	if err := s.Repo.Create(room); err != nil {
		return nil, utils.Errf(500, "failed to create room: %v", err)
	}
	return room, nil
}

// Update edits a room's attributes. Status is managed separately.
func (s *DefaultService) Update(room *models.Room) (*models.Room, error) {
	existing, err := s.Get(room.ID)
	if err != nil {
		return nil, err
	}
	if err := s.validate(room); err != nil {
		return nil, err
	}
	room.Status = existing.Status
	room.CreatedAt = existing.CreatedAt
	room.UpdatedAt = time.Now()
	if err := s.Repo.Update(room); err != nil {
		return nil, utils.Errf(500, "failed to update room: %v", err)
	}
	return room, nil
}

// SetStatus toggles the operational status.
func (s *DefaultService) SetStatus(id, status string) error {
	if !validStatuses[status] {
		return utils.Errf(400, "invalid room status: %s", status)
	}
	room, err := s.Get(id)
	if err != nil {
		return err
	}
	if room.Status == models.RoomOccupied && status == models.RoomMaintenance {
		return utils.Errf(400, "cannot put an occupied room under maintenance")
	}
	if err := s.Repo.SetStatus(id, status); err != nil {
		return utils.Errf(500, "failed to set room status: %v", err)
	}
	return nil
}

// Delete removes a room after checking nothing references it.
func (s *DefaultService) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	resCount, err := s.Reservations.CountByRoom(id)
	if err != nil {
		return utils.Errf(500, "failed to check reservations: %v", err)
	}
	stayCount, err := s.Guests.CountByRoom(id)
	if err != nil {
		return utils.Errf(500, "failed to check stays: %v", err)
	}
	if resCount > 0 || stayCount > 0 {
		return utils.Errf(409, "room is referenced by %d reservations and %d stays", resCount, stayCount)
	}
	if err := s.Repo.Delete(id); err != nil {
		return utils.Errf(500, "failed to delete room: %v", err)
	}
	return nil
}

// Get fetches one room.
func (s *DefaultService) Get(id string) (*models.Room, error) {
	room, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, utils.Errf(500, "failed to fetch room: %v", err)
	}
	if room == nil {
		return nil, utils.Errf(404, "room not found")
	}
	return room, nil
}

// GetByNumber fetches a room by its number.
func (s *DefaultService) GetByNumber(number string) (*models.Room, error) {
	room, err := s.Repo.GetByNumber(number)
	if err != nil {
		return nil, utils.Errf(500, "failed to fetch room: %v", err)
	}
	if room == nil {
		return nil, utils.Errf(404, "room %s not found", number)
	}
	return room, nil
}

// List fetches rooms.
func (s *DefaultService) List(publicOnly bool) ([]models.Room, error) {
	rooms, err := s.Repo.GetAll()
	if err != nil {
		return nil, utils.Errf(500, "failed to fetch rooms: %v", err)
	}
	if !publicOnly {
		return rooms, nil
	}
	visible := make([]models.Room, 0, len(rooms))
	for _, r := range rooms {
		if r.Public {
			visible = append(visible, r)
		}
	}
	return visible, nil
}
