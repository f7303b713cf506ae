package guest

import (
	"time"

	"innkeep/models"
	"innkeep/services/billing"
)

// CheckInInput realizes a stay, either walk-in or converting a reservation.
type CheckInInput struct {
	FullName      string    `json:"fullName"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	RoomNumber    string    `json:"roomNumber"`
	Adults        int       `json:"adults"`
	Infants       int       `json:"infants"`
	Mattresses    int       `json:"mattresses"`
	CheckInAt     time.Time `json:"checkInAt"`
	CheckOutAt    time.Time `json:"checkOutAt"`
	PaymentMethod string    `json:"paymentMethod"`
	ReservationID string    `json:"reservationId"`

	PromoCode          string   `json:"promoCode"`
	ApplyDiscount      bool     `json:"applyDiscount"`
	AdditionalDiscount int64    `json:"additionalDiscount"`
	Advance            int64    `json:"advance"`
	DecorPackageIDs    []string `json:"decorPackageIds"`
}

// CheckInResult is a freshly created stay with its invoice.
type CheckInResult struct {
	Guest   *models.Guest   `json:"guest"`
	Invoice *models.Invoice `json:"invoice"`
}

// CheckoutResult is a closed stay plus any refund owed to the guest.
type CheckoutResult struct {
	Guest     *models.Guest   `json:"guest"`
	Invoice   *models.Invoice `json:"invoice"`
	RefundDue int64           `json:"refundDue"`
}

// ExtendResult is an extended stay with the charge breakdown.
type ExtendResult struct {
	Guest   *models.Guest            `json:"guest"`
	Charges billing.ExtensionCharges `json:"charges"`
	Invoice *models.Invoice          `json:"invoice"`
}

// ProfileUpdate edits contact fields and the extra mattress count. Nil
// fields are left unchanged.
type ProfileUpdate struct {
	FullName   *string `json:"fullName"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
	Mattresses *int    `json:"mattresses"`
}

// Service drives the guest stay lifecycle.
type Service interface {
	// CheckIn validates, prices and commits a new stay in one transaction.
	CheckIn(in CheckInInput) (*CheckInResult, error)
	// Checkout closes a stay at the current time, pro-rating the invoice
	// when the actual nights differ from those billed.
	Checkout(guestID string) (*CheckoutResult, error)
	// Extend pushes the checkout date later and bills the extra nights.
	Extend(guestID string, newCheckOut time.Time, flatDiscount int64) (*ExtendResult, error)
	// UpdateProfile edits contact fields; a mattress change repatches the
	// invoice.
	UpdateProfile(guestID string, in ProfileUpdate) (*models.Guest, error)
	// Get fetches one stay.
	Get(guestID string) (*models.Guest, error)
	// List fetches all stays, newest first.
	List() ([]models.Guest, error)
}
