package reservation

import (
	"errors"
	"time"

	reservationRepo "innkeep/database/repository/reservation"
	roomRepo "innkeep/database/repository/room"
	"innkeep/models"
	"innkeep/services/availability"
	"innkeep/services/billing"
	"innkeep/services/ledger"
	"innkeep/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DefaultService implements Service.
type DefaultService struct {
	Repo    reservationRepo.ReservationRepository
	Rooms   roomRepo.RoomRepository
	Checker availability.Checker
	Ledger  ledger.Service
}

// NewService creates a new instance of Service.
func NewService(repo reservationRepo.ReservationRepository, rooms roomRepo.RoomRepository,
	checker availability.Checker, ledgerSvc ledger.Service) Service {
	return &DefaultService{Repo: repo, Rooms: rooms, Checker: checker, Ledger: ledgerSvc}
}

func (s *DefaultService) lookupRoom(number string) (*models.Room, error) {
	room, err := s.Rooms.GetByNumber(number)
	if err != nil {
		return nil, utils.Errf(500, "failed to fetch room: %v", err)
	}
	if room == nil {
		return nil, utils.Errf(404, "room %s not found", number)
	}
	return room, nil
}

func checkCapacity(room *models.Room, adults, infants int) error {
	if adults < 1 {
		return utils.Errf(400, "at least one adult is required")
	}
	if adults > room.MaxAdults {
		return utils.Errf(400, "room %s accommodates at most %d adults", room.Number, room.MaxAdults)
	}
	if infants > room.MaxInfants {
		return utils.Errf(400, "room %s accommodates at most %d infants", room.Number, room.MaxInfants)
	}
	return nil
}

// Create books a room.
func (s *DefaultService) Create(in CreateInput) (*models.ReservationView, error) {
	if in.FullName == "" || in.Phone == "" {
		return nil, utils.Errf(400, "guest name and phone are required")
	}
	if in.StartAt.IsZero() || in.EndAt.IsZero() {
		return nil, utils.Errf(400, "start and end dates are required")
	}
	if !in.StartAt.Before(in.EndAt) {
		return nil, utils.Errf(400, "end date must be after start date")
	}

	room, err := s.lookupRoom(in.RoomNumber)
	if err != nil {
		return nil, err
	}
	if room.Status == models.RoomMaintenance {
		return nil, utils.Errf(400, "room %s is under maintenance", room.Number)
	}
	if err := checkCapacity(room, in.Adults, in.Infants); err != nil {
		return nil, err
	}

	result, err := s.Checker.Check(room.ID, in.StartAt, in.EndAt, "")
	if err != nil {
		return nil, utils.Errf(500, "availability check failed: %v", err)
	}
	if !result.Available {
		return nil, utils.ErrWithDetails(400, "room is not available for the requested dates", result.Conflicts)
	}

	source := in.Source
	if source == "" {
		source = models.SourceCRM
	}
	now := time.Now()
	res := &models.Reservation{
		ID:         uuid.NewString(),
		FullName:   in.FullName,
		Phone:      in.Phone,
		Email:      in.Email,
		RoomID:     room.ID,
		RoomNumber: room.Number,
		StartAt:    in.StartAt,
		EndAt:      in.EndAt,
		Adults:     in.Adults,
		Infants:    in.Infants,
		Status:     models.ReservationReserved,
		Source:     source,
		PromoCode:  in.PromoCode,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Repo.CreateWithOverlapCheck(res); err != nil {
		if errors.Is(err, reservationRepo.ErrOverlap) {
			return nil, utils.Errf(400, "room was booked by another request for the requested dates")
		}
		return nil, utils.Errf(500, "failed to create reservation: %v", err)
	}

	if in.AdvanceAmount > 0 {
		method := in.PaymentMethod
		if method == "" {
			method = "cash"
		}
		_, err := s.Ledger.Append(&models.Transaction{
			ReservationID: res.ID,
			Amount:        in.AdvanceAmount,
			Type:          models.TxnAdvance,
			PaymentMethod: method,
		})
		if err != nil {
			utils.GetLogger().Warn("failed to record initial advance",
				zap.String("reservationID", res.ID), zap.Error(err))
		}
	}
	return s.withFinancials(res, room.Rate)
}

// withFinancials attaches the ledger-derived projection.
func (s *DefaultService) withFinancials(res *models.Reservation, rate int64) (*models.ReservationView, error) {
	nights := billing.NightsBetween(res.StartAt, res.EndAt)
	advance, err := s.Ledger.NetAdvance(res.ID)
	if err != nil {
		return nil, err
	}
	total := rate * int64(nights)
	balance := total - advance
	if balance < 0 {
		balance = 0
	}
	return &models.ReservationView{
		Reservation: *res,
		Financials: models.ReservationFinancials{
			Nights:           nights,
			Rate:             rate,
			EstimatedTotal:   total,
			Advance:          advance,
			EstimatedBalance: balance,
		},
	}, nil
}

func (s *DefaultService) rateFor(roomID string) int64 {
	room, err := s.Rooms.GetByID(roomID)
	if err != nil || room == nil {
		return 0
	}
	return room.Rate
}

// List returns all reservations with financial projections.
func (s *DefaultService) List() ([]models.ReservationView, error) {
	all, err := s.Repo.GetAll()
	if err != nil {
		return nil, utils.Errf(500, "failed to fetch reservations: %v", err)
	}
	views := make([]models.ReservationView, 0, len(all))
	for i := range all {
		view, err := s.withFinancials(&all[i], s.rateFor(all[i].RoomID))
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *DefaultService) get(id string) (*models.Reservation, error) {
	res, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, utils.Errf(500, "failed to fetch reservation: %v", err)
	}
	if res == nil {
		return nil, utils.Errf(404, "reservation not found")
	}
	return res, nil
}

// Get returns one reservation with its financial projection.
func (s *DefaultService) Get(id string) (*models.ReservationView, error) {
	res, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return s.withFinancials(res, s.rateFor(res.RoomID))
}

// Confirm moves reserved to confirmed.
func (s *DefaultService) Confirm(id string) error {
	res, err := s.get(id)
	if err != nil {
		return err
	}
	if res.Status != models.ReservationReserved {
		return utils.Errf(400, "only a reserved booking can be confirmed, current status is %s", res.Status)
	}
	return s.setStatus(id, models.ReservationConfirmed)
}

// Cancel voids a reservation and releases the room.
func (s *DefaultService) Cancel(id string) error {
	res, err := s.get(id)
	if err != nil {
		return err
	}
	if res.Status != models.ReservationReserved {
		return utils.Errf(400, "only a reserved booking can be cancelled, current status is %s", res.Status)
	}
	if err := s.setStatus(id, models.ReservationCancelled); err != nil {
		return err
	}
	s.freeRoom(res.RoomID)
	return nil
}

// Delete removes a reservation, preserving financial history once a stay
// exists.
func (s *DefaultService) Delete(id string) error {
	res, err := s.get(id)
	if err != nil {
		return err
	}
	if res.Status == models.ReservationCheckedIn || res.Status == models.ReservationCheckedOut {
		return utils.Errf(400, "a %s reservation cannot be deleted", res.Status)
	}
	if err := s.Repo.Delete(id); err != nil {
		return utils.Errf(500, "failed to delete reservation: %v", err)
	}
	if res.Status == models.ReservationReserved {
		s.freeRoom(res.RoomID)
	}
	return nil
}

// Swap moves a reservation to a new room and/or dates.
func (s *DefaultService) Swap(id string, in SwapInput) (*SwapSummary, error) {
	res, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if res.Status != models.ReservationReserved && res.Status != models.ReservationConfirmed {
		return nil, utils.Errf(400, "a %s reservation cannot be moved", res.Status)
	}

	newStart, newEnd := in.StartAt, in.EndAt
	if newStart.IsZero() {
		newStart = res.StartAt
	}
	if newEnd.IsZero() {
		newEnd = res.EndAt
	}
	if !newStart.Before(newEnd) {
		return nil, utils.Errf(400, "end date must be after start date")
	}

	newRoom, err := s.lookupRoom(res.RoomNumber)
	if in.RoomNumber != "" && in.RoomNumber != res.RoomNumber {
		newRoom, err = s.lookupRoom(in.RoomNumber)
	}
	if err != nil {
		return nil, err
	}
	if newRoom.Status == models.RoomMaintenance {
		return nil, utils.Errf(400, "room %s is under maintenance", newRoom.Number)
	}
	if err := checkCapacity(newRoom, res.Adults, res.Infants); err != nil {
		return nil, err
	}

	// The reservation's own booking is excluded so unchanged dates do not
	// conflict with themselves.
	result, err := s.Checker.Check(newRoom.ID, newStart, newEnd, res.ID)
	if err != nil {
		return nil, utils.Errf(500, "availability check failed: %v", err)
	}
	if !result.Available {
		return nil, utils.ErrWithDetails(409, "requested room or dates are not available", result.Conflicts)
	}

	summary := &SwapSummary{
		OldRoomNumber: res.RoomNumber,
		NewRoomNumber: newRoom.Number,
		OldStartAt:    res.StartAt,
		OldEndAt:      res.EndAt,
		NewStartAt:    newStart,
		NewEndAt:      newEnd,
	}

	oldRoomID := res.RoomID
	res.RoomID = newRoom.ID
	res.RoomNumber = newRoom.Number
	res.StartAt = newStart
	res.EndAt = newEnd
	res.UpdatedAt = time.Now()
	if err := s.Repo.Update(res); err != nil {
		return nil, utils.Errf(500, "failed to update reservation: %v", err)
	}
	if oldRoomID != newRoom.ID {
		s.freeRoom(oldRoomID)
	}

	view, err := s.withFinancials(res, newRoom.Rate)
	if err != nil {
		return nil, err
	}
	summary.Financials = view.Financials
	return summary, nil
}

func (s *DefaultService) setStatus(id, status string) error {
	update := bson.M{"status": status, "updated_at": time.Now()}
	if err := s.Repo.UpdateSetDocument(id, update); err != nil {
		return utils.Errf(500, "failed to update reservation status: %v", err)
	}
	return nil
}

// freeRoom releases the room unless it is occupied or under maintenance.
// Best effort; failures are logged.
func (s *DefaultService) freeRoom(roomID string) {
	if _, err := s.Rooms.FreeRoom(roomID); err != nil {
		utils.GetLogger().Warn("failed to release room", zap.String("roomID", roomID), zap.Error(err))
	}
}
