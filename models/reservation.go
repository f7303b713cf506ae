package models

import "time"

// Reservation statuses.
const (
	ReservationReserved   = "reserved"
	ReservationConfirmed  = "confirmed"
	ReservationCheckedIn  = "checked-in"
	ReservationCancelled  = "cancelled"
	ReservationCheckedOut = "checked-out"
)

// Reservation sources.
const (
	SourceCRM     = "CRM"
	SourceWebsite = "Website"
	SourceAPI     = "API"
)

// Reservation is a future or in-progress booking over the half-open
// interval [StartAt, EndAt).
type Reservation struct {
	ID         string    `bson:"id" json:"id"`
	FullName   string    `bson:"full_name" json:"fullName"`
	Phone      string    `bson:"phone" json:"phone"`
	Email      string    `bson:"email,omitempty" json:"email,omitempty"`
	RoomID     string    `bson:"room_id" json:"roomId"`
	RoomNumber string    `bson:"room_number" json:"roomNumber"`
	StartAt    time.Time `bson:"start_at" json:"startAt"`
	EndAt      time.Time `bson:"end_at" json:"endAt"`
	Adults     int       `bson:"adults" json:"adults"`
	Infants    int       `bson:"infants" json:"infants"`
	Status     string    `bson:"status" json:"status"`
	Source     string    `bson:"source" json:"source"`
	PromoCode  string    `bson:"promo_code,omitempty" json:"promoCode,omitempty"`
	GuestID    string    `bson:"guest_id,omitempty" json:"guestId,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updatedAt"`
}

// ReservationFinancials is a read-time projection derived from the
// transaction ledger. Never persisted.
type ReservationFinancials struct {
	Nights           int   `json:"nights"`
	Rate             int64 `json:"rate"`
	EstimatedTotal   int64 `json:"estimatedTotal"`
	Advance          int64 `json:"advance"`
	EstimatedBalance int64 `json:"estimatedBalance"`
}

// ReservationView is a reservation augmented with its financial projection.
type ReservationView struct {
	Reservation
	Financials ReservationFinancials `json:"financials"`
}
