package models

import "time"

// Invoice statuses.
const (
	InvoicePending   = "pending"
	InvoicePaid      = "paid"
	InvoiceCancelled = "cancelled"
)

// InvoiceItem is one ordered line on an invoice. Total is always
// Quantity * UnitPrice in whole currency units.
type InvoiceItem struct {
	Description string `bson:"description" json:"description"`
	Quantity    int    `bson:"quantity" json:"quantity"`
	UnitPrice   int64  `bson:"unit_price" json:"unitPrice"`
	Total       int64  `bson:"total" json:"total"`
}

// Invoice is the itemized bill attached 1:1 to a guest stay. Guest and room
// details are denormalized at creation so later edits never alter history.
// GrandTotal and BalanceDue are always re-derivable from Items plus the
// discount and tax fields.
type Invoice struct {
	ID      string        `bson:"id" json:"id"`
	Number  string        `bson:"number" json:"number"`
	GuestID string        `bson:"guest_id" json:"guestId"`
	Items   []InvoiceItem `bson:"items" json:"items"`

	Subtotal           int64   `bson:"subtotal" json:"subtotal"`
	DiscountAmount     int64   `bson:"discount_amount" json:"discountAmount"`
	AdditionalDiscount int64   `bson:"additionaldiscount" json:"additionaldiscount"`
	PromoDiscount      int64   `bson:"promo_discount" json:"promoDiscount"`
	DiscountPct        float64 `bson:"discount_pct" json:"discountPct"`
	PromoPct           float64 `bson:"promo_pct" json:"promoPct"`
	TaxRate            float64 `bson:"tax_rate" json:"taxRate"`
	TaxAmount          int64   `bson:"tax_amount" json:"taxAmount"`
	GrandTotal         int64   `bson:"grand_total" json:"grandTotal"`
	AdvanceAdjusted    int64   `bson:"advance_adjusted" json:"advanceAdjusted"`
	BalanceDue         int64   `bson:"balance_due" json:"balanceDue"`
	Status             string  `bson:"status" json:"status"`

	// Snapshots taken at creation time.
	GuestName    string `bson:"guest_name" json:"guestName"`
	RoomNumber   string `bson:"room_number" json:"roomNumber"`
	RoomCategory string `bson:"room_category" json:"roomCategory"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
