package models

import "time"

// Guest stay statuses.
const (
	GuestCheckedIn  = "checked-in"
	GuestCheckedOut = "checked-out"
)

// Guest is a realized room stay. Financial snapshot fields mirror the
// invoice figures current at the last recomputation.
type Guest struct {
	ID            string    `bson:"id" json:"id"`
	FullName      string    `bson:"full_name" json:"fullName"`
	Phone         string    `bson:"phone" json:"phone"`
	Email         string    `bson:"email,omitempty" json:"email,omitempty"`
	RoomID        string    `bson:"room_id" json:"roomId"`
	RoomNumber    string    `bson:"room_number" json:"roomNumber"`
	Adults        int       `bson:"adults" json:"adults"`
	Infants       int       `bson:"infants" json:"infants"`
	Mattresses    int       `bson:"mattresses" json:"mattresses"`
	CheckInAt     time.Time `bson:"check_in_at" json:"checkInAt"`
	CheckOutAt    time.Time `bson:"check_out_at" json:"checkOutAt"`
	Status        string    `bson:"status" json:"status"`
	PaymentMethod string    `bson:"payment_method" json:"paymentMethod"`
	ReservationID string    `bson:"reservation_id,omitempty" json:"reservationId,omitempty"`

	TotalRent          int64  `bson:"total_rent" json:"totalRent"`
	GST                int64  `bson:"gst" json:"gst"`
	AdditionalDiscount int64  `bson:"additionaldiscount" json:"additionaldiscount"`
	PromoCode          string `bson:"promo_code,omitempty" json:"promoCode,omitempty"`
	PromoDiscount      int64  `bson:"promo_discount" json:"promoDiscount"`
	AdvancePayment     int64  `bson:"advance_payment" json:"advancePayment"`
	StayDuration       int    `bson:"stay_duration" json:"stayDuration"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
