package guest

import (
	"errors"
	"testing"
	"time"

	guestRepo "innkeep/database/repository/guest"
	"innkeep/models"
	"innkeep/services/availability"
	"innkeep/utils"
)

func standardRoom() *models.Room {
	return &models.Room{
		ID:         "room-1",
		Number:     "101",
		Category:   models.CategoryStandard,
		BedType:    models.BedOne,
		Status:     models.RoomAvailable,
		Rate:       10000,
		MaxAdults:  2,
		MaxInfants: 2,
	}
}

func walkIn() CheckInInput {
	now := time.Now()
	return CheckInInput{
		FullName:   "Asha Verma",
		Phone:      "9876543210",
		RoomNumber: "101",
		Adults:     2,
		CheckInAt:  now.Add(-time.Hour),
		CheckOutAt: now.Add(23 * time.Hour),
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

func TestCheckInAdvanceReducesBalance(t *testing.T) {
	f := newFixture()
	f.rooms.room = standardRoom()

	in := walkIn()
	in.Advance = 5000
	in.PaymentMethod = "card"

	out, err := f.svc.CheckIn(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// One night at 10000 with the default 5% tax, less the advance.
	if out.Invoice.GrandTotal != 10500 {
		t.Errorf("expected grand total 10500, got %d", out.Invoice.GrandTotal)
	}
	if out.Invoice.BalanceDue != 5500 {
		t.Errorf("expected balance 5500, got %d", out.Invoice.BalanceDue)
	}
	if out.Guest.Status != models.GuestCheckedIn {
		t.Errorf("expected checked-in guest, got %s", out.Guest.Status)
	}

	if len(f.guests.checkIns) != 1 {
		t.Fatalf("expected one committed check-in, got %d", len(f.guests.checkIns))
	}
	adv := f.guests.checkIns[0].Advance
	if adv == nil || adv.Type != models.TxnAdvance || adv.Amount != 5000 {
		t.Fatalf("expected a 5000 advance entry in the check-in transaction, got %+v", adv)
	}
	if adv.PaymentMethod != "card" || adv.ID == "" {
		t.Errorf("expected identified card advance, got %+v", adv)
	}
	if len(f.ledger.appended) != 0 {
		t.Fatalf("expected no post-commit ledger appends, got %+v", f.ledger.appended)
	}
	if len(f.notifier.checkIns) != 1 {
		t.Fatalf("expected an inventory check-in notification")
	}
}

func TestCheckInRejectsExpiredPromo(t *testing.T) {
	f := newFixture()
	f.rooms.room = standardRoom()
	f.discounts.promo = &models.PromoCode{
		ID: "p-1", Code: "SUMMER", Percent: 10, Active: true,
		StartDate: time.Now().AddDate(0, -2, 0),
		EndDate:   time.Now().AddDate(0, -1, 0),
	}

	in := walkIn()
	in.PromoCode = "summer"

	_, err := f.svc.CheckIn(in)
	if err == nil {
		t.Fatal("expected error")
	}
	if code := errCode(t, err); code != 400 {
		t.Errorf("expected 400, got %d", code)
	}
	if err.Error() != "invalid or expired promo code" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if len(f.guests.checkIns) != 0 {
		t.Fatal("check-in must not commit on a rejected promo")
	}
}

func TestCheckInRejectsFutureDate(t *testing.T) {
	f := newFixture()
	f.rooms.room = standardRoom()

	in := walkIn()
	in.CheckInAt = time.Now().AddDate(0, 0, 2)
	in.CheckOutAt = in.CheckInAt.Add(24 * time.Hour)

	_, err := f.svc.CheckIn(in)
	if err == nil {
		t.Fatal("expected error")
	}
	if code := errCode(t, err); code != 400 {
		t.Errorf("expected 400, got %d", code)
	}
}

func TestCheckInRejectsUnavailableRoom(t *testing.T) {
	f := newFixture()
	f.rooms.room = standardRoom()
	f.checker.result = availability.Result{
		Available: false,
		Conflicts: []availability.Conflict{{Kind: "reservation", RefID: "r-9"}},
	}

	_, err := f.svc.CheckIn(walkIn())
	if err == nil {
		t.Fatal("expected error")
	}
	var se *utils.ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if se.Code != 400 || se.Details == nil {
		t.Fatalf("expected 400 with conflict details, got %+v", se)
	}
}

func TestCheckInRejectsOverCapacity(t *testing.T) {
	f := newFixture()
	f.rooms.room = standardRoom()

	in := walkIn()
	in.Adults = 3

	_, err := f.svc.CheckIn(in)
	if err == nil {
		t.Fatal("expected error")
	}
	if code := errCode(t, err); code != 400 {
		t.Errorf("expected 400, got %d", code)
	}
}

func TestCheckInMapsTransactionConflicts(t *testing.T) {
	f := newFixture()
	f.rooms.room = standardRoom()
	f.guests.checkInErr = guestRepo.ErrRoomConflict

	_, err := f.svc.CheckIn(walkIn())
	if err == nil {
		t.Fatal("expected error")
	}
	if code := errCode(t, err); code != 400 {
		t.Errorf("expected 400 for a lost overlap race, got %d", code)
	}
}

func TestCheckInCarriesReservationAdvance(t *testing.T) {
	f := newFixture()
	f.rooms.room = standardRoom()
	f.reservations.reservation = &models.Reservation{
		ID: "r-1", RoomID: "room-1", RoomNumber: "101",
		Status: models.ReservationConfirmed,
	}
	f.ledger.net = 3000

	in := walkIn()
	in.ReservationID = "r-1"

	out, err := f.svc.CheckIn(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Invoice.AdvanceAdjusted != 3000 {
		t.Errorf("expected carried advance 3000, got %d", out.Invoice.AdvanceAdjusted)
	}
	// Nothing was paid at the desk, so no new ledger entry.
	if len(f.ledger.appended) != 0 {
		t.Fatalf("expected no ledger entries, got %+v", f.ledger.appended)
	}
	if f.guests.checkIns[0].Advance != nil {
		t.Fatalf("expected no advance entry in the transaction, got %+v", f.guests.checkIns[0].Advance)
	}
}
