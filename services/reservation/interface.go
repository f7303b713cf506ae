package reservation

import (
	"time"

	"innkeep/models"
)

// CreateInput is a staff- or website-submitted booking request.
type CreateInput struct {
	FullName      string    `json:"fullName"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	RoomNumber    string    `json:"roomNumber"`
	StartAt       time.Time `json:"startAt"`
	EndAt         time.Time `json:"endAt"`
	Adults        int       `json:"adults"`
	Infants       int       `json:"infants"`
	Source        string    `json:"source"`
	PromoCode     string    `json:"promoCode"`
	AdvanceAmount int64     `json:"advanceAmount"`
	PaymentMethod string    `json:"paymentMethod"`
}

// SwapInput moves a reservation to a new room and/or date range.
type SwapInput struct {
	RoomNumber string    `json:"roomNumber"`
	StartAt    time.Time `json:"startAt"`
	EndAt      time.Time `json:"endAt"`
}

// SwapSummary reports what a swap changed, plus the refreshed financial
// projection. Informational only; no invoice exists before check-in.
type SwapSummary struct {
	OldRoomNumber string                       `json:"oldRoomNumber"`
	NewRoomNumber string                       `json:"newRoomNumber"`
	OldStartAt    time.Time                    `json:"oldStartAt"`
	OldEndAt      time.Time                    `json:"oldEndAt"`
	NewStartAt    time.Time                    `json:"newStartAt"`
	NewEndAt      time.Time                    `json:"newEndAt"`
	Financials    models.ReservationFinancials `json:"financials"`
}

// Service drives the reservation lifecycle.
type Service interface {
	// Create books a room over [StartAt, EndAt), rejecting overlaps, and
	// records an initial advance when an amount is supplied.
	Create(in CreateInput) (*models.ReservationView, error)
	// List returns all reservations with their financial projections.
	List() ([]models.ReservationView, error)
	// Get returns one reservation with its financial projection.
	Get(id string) (*models.ReservationView, error)
	// Confirm moves a reservation from reserved to confirmed.
	Confirm(id string) error
	// Cancel voids a reservation; legal only while reserved.
	Cancel(id string) error
	// Delete removes a reservation; forbidden once checked in or out.
	Delete(id string) error
	// Swap re-validates and applies a new room/date assignment.
	Swap(id string, in SwapInput) (*SwapSummary, error)
}
