package reservation

import (
	"errors"
	"testing"
	"time"

	reservationRepo "innkeep/database/repository/reservation"
	"innkeep/models"
	"innkeep/services/availability"
	"innkeep/utils"

	"go.mongodb.org/mongo-driver/bson"
)

type stubReservationRepo struct {
	reservation *models.Reservation
	created     []models.Reservation
	createErr   error
	updated     []models.Reservation
	statusDocs  []bson.M
	deleted     []string
}

func (s *stubReservationRepo) Create(r *models.Reservation) error { return nil }

func (s *stubReservationRepo) CreateWithOverlapCheck(r *models.Reservation) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, *r)
	return nil
}

func (s *stubReservationRepo) Update(r *models.Reservation) error {
	s.updated = append(s.updated, *r)
	return nil
}

func (s *stubReservationRepo) UpdateSetDocument(id string, doc bson.M) error {
	s.statusDocs = append(s.statusDocs, doc)
	return nil
}

func (s *stubReservationRepo) Delete(id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubReservationRepo) GetByID(id string) (*models.Reservation, error) {
	return s.reservation, nil
}

func (s *stubReservationRepo) GetAll() ([]models.Reservation, error) { return nil, nil }
func (s *stubReservationRepo) CountByRoom(roomID string) (int64, error) { return 0, nil }

func (s *stubReservationRepo) FindOverlapping(roomID string, start, end time.Time, excludeID string) ([]models.Reservation, error) {
	return nil, nil
}

type stubRoomRepo struct {
	room  *models.Room
	freed []string
}

func (s *stubRoomRepo) Create(r *models.Room) error                 { return nil }
func (s *stubRoomRepo) Update(r *models.Room) error                 { return nil }
func (s *stubRoomRepo) UpdateSetDocument(id string, d bson.M) error { return nil }
func (s *stubRoomRepo) SetStatus(id, status string) error           { return nil }
func (s *stubRoomRepo) Delete(id string) error                      { return nil }
func (s *stubRoomRepo) GetByID(id string) (*models.Room, error) { return s.room, nil }
func (s *stubRoomRepo) GetByNumber(n string) (*models.Room, error) { return s.room, nil }
func (s *stubRoomRepo) GetAll() ([]models.Room, error) { return nil, nil }

func (s *stubRoomRepo) FreeRoom(id string) (bool, error) {
	s.freed = append(s.freed, id)
	return true, nil
}

type stubChecker struct {
	result availability.Result
}

func (s *stubChecker) Check(roomID string, start, end time.Time, excludeID string) (availability.Result, error) {
	return s.result, nil
}

type stubLedger struct {
	appended []models.Transaction
	net      int64
}

func (s *stubLedger) Append(txn *models.Transaction) (*models.Transaction, error) {
	s.appended = append(s.appended, *txn)
	return txn, nil
}

func (s *stubLedger) ListByReservation(id string) ([]models.Transaction, error) { return nil, nil }
func (s *stubLedger) ListByGuest(id string) ([]models.Transaction, error) { return nil, nil }
func (s *stubLedger) NetAdvance(id string) (int64, error) { return s.net, nil }

type fixture struct {
	repo    *stubReservationRepo
	rooms   *stubRoomRepo
	checker *stubChecker
	ledger  *stubLedger
	svc     Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:    &stubReservationRepo{},
		rooms:   &stubRoomRepo{},
		checker: &stubChecker{result: availability.Result{Available: true}},
		ledger:  &stubLedger{},
	}
	f.rooms.room = &models.Room{
		ID: "room-1", Number: "101", Category: models.CategoryStandard,
		Status: models.RoomAvailable, Rate: 10000, MaxAdults: 2, MaxInfants: 2,
	}
	f.svc = NewService(f.repo, f.rooms, f.checker, f.ledger)
	return f
}

func bookingInput() CreateInput {
	start := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	return CreateInput{
		FullName:   "Rohan Iyer",
		Phone:      "9812345678",
		RoomNumber: "101",
		Adults:     2,
		StartAt:    start,
		EndAt:      start.AddDate(0, 0, 3),
	}
}

func errCode(t *testing.T, err error) int {
	t.Helper()
	var se *utils.ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	return se.Code
}

func TestCreateProjectsFinancials(t *testing.T) {
	f := newFixture()

	view, err := f.svc.Create(bookingInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Status != models.ReservationReserved {
		t.Errorf("expected reserved, got %s", view.Status)
	}
	if view.Source != models.SourceCRM {
		t.Errorf("expected CRM source default, got %s", view.Source)
	}
	fin := view.Financials
	if fin.Nights != 3 || fin.EstimatedTotal != 30000 || fin.EstimatedBalance != 30000 {
		t.Fatalf("unexpected financials: %+v", fin)
	}
}

func TestCreateRecordsAdvance(t *testing.T) {
	f := newFixture()

	in := bookingInput()
	in.AdvanceAmount = 5000

	_, err := f.svc.Create(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.ledger.appended) != 1 {
		t.Fatalf("expected one ledger entry, got %d", len(f.ledger.appended))
	}
	entry := f.ledger.appended[0]
	if entry.Type != models.TxnAdvance || entry.Amount != 5000 || entry.PaymentMethod != "cash" {
		t.Fatalf("unexpected ledger entry: %+v", entry)
	}
}

func TestCreateLostOverlapRace(t *testing.T) {
	f := newFixture()
	f.repo.createErr = reservationRepo.ErrOverlap

	_, err := f.svc.Create(bookingInput())
	if err == nil {
		t.Fatal("expected error")
	}
	if code := errCode(t, err); code != 400 {
		t.Errorf("expected 400, got %d", code)
	}
}

func TestCreateRejectsMaintenanceRoom(t *testing.T) {
	f := newFixture()
	f.rooms.room.Status = models.RoomMaintenance

	_, err := f.svc.Create(bookingInput())
	if err == nil {
		t.Fatal("expected error")
	}
	if code := errCode(t, err); code != 400 {
		t.Errorf("expected 400, got %d", code)
	}
}

func TestConfirmRequiresReserved(t *testing.T) {
	f := newFixture()
	f.repo.reservation = &models.Reservation{ID: "r-1", Status: models.ReservationCancelled}

	err := f.svc.Confirm("r-1")
	if err == nil {
		t.Fatal("expected error")
	}
	if code := errCode(t, err); code != 400 {
		t.Errorf("expected 400, got %d", code)
	}
}

func TestCancelReleasesRoom(t *testing.T) {
	f := newFixture()
	f.repo.reservation = &models.Reservation{
		ID: "r-1", RoomID: "room-1", Status: models.ReservationReserved,
	}

	if err := f.svc.Cancel("r-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.repo.statusDocs) != 1 || f.repo.statusDocs[0]["status"] != models.ReservationCancelled {
		t.Fatalf("expected a cancelled status write, got %+v", f.repo.statusDocs)
	}
	if len(f.rooms.freed) != 1 || f.rooms.freed[0] != "room-1" {
		t.Fatalf("expected the room released, got %v", f.rooms.freed)
	}
}

func TestCancelRejectsConfirmed(t *testing.T) {
	f := newFixture()
	f.repo.reservation = &models.Reservation{ID: "r-1", Status: models.ReservationConfirmed}

	err := f.svc.Cancel("r-1")
	if err == nil {
		t.Fatal("expected error")
	}
	if code := errCode(t, err); code != 400 {
		t.Errorf("expected 400, got %d", code)
	}
}

func TestDeleteRejectsActiveStay(t *testing.T) {
	f := newFixture()
	f.repo.reservation = &models.Reservation{ID: "r-1", Status: models.ReservationCheckedIn}

	err := f.svc.Delete("r-1")
	if err == nil {
		t.Fatal("expected error")
	}
	if code := errCode(t, err); code != 400 {
		t.Errorf("expected 400, got %d", code)
	}
	if len(f.repo.deleted) != 0 {
		t.Fatal("checked-in reservation must not be deleted")
	}
}

func TestSwapConflictIs409(t *testing.T) {
	f := newFixture()
	f.repo.reservation = &models.Reservation{
		ID: "r-1", RoomID: "room-1", RoomNumber: "101",
		Status:  models.ReservationReserved,
		StartAt: time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2026, 9, 12, 14, 0, 0, 0, time.UTC),
		Adults:  2,
	}
	f.checker.result = availability.Result{
		Available: false,
		Conflicts: []availability.Conflict{{Kind: "guest", RefID: "g-7"}},
	}

	_, err := f.svc.Swap("r-1", SwapInput{RoomNumber: "101"})
	if err == nil {
		t.Fatal("expected error")
	}
	if code := errCode(t, err); code != 409 {
		t.Errorf("expected 409, got %d", code)
	}
}

func TestSwapMovesDates(t *testing.T) {
	f := newFixture()
	start := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	f.repo.reservation = &models.Reservation{
		ID: "r-1", RoomID: "room-1", RoomNumber: "101",
		Status: models.ReservationConfirmed,
		StartAt: start, EndAt: start.AddDate(0, 0, 2),
		Adults: 2,
	}

	newEnd := start.AddDate(0, 0, 4)
	summary, err := f.svc.Swap("r-1", SwapInput{EndAt: newEnd})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !summary.NewEndAt.Equal(newEnd) || !summary.NewStartAt.Equal(start) {
		t.Fatalf("unexpected summary dates: %+v", summary)
	}
	if summary.Financials.Nights != 4 || summary.Financials.EstimatedTotal != 40000 {
		t.Fatalf("unexpected financials: %+v", summary.Financials)
	}
	if len(f.repo.updated) != 1 {
		t.Fatalf("expected the reservation persisted, got %d updates", len(f.repo.updated))
	}
	// Same room, nothing to release.
	if len(f.rooms.freed) != 0 {
		t.Fatalf("expected no room release, got %v", f.rooms.freed)
	}
}
