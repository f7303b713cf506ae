package models

import "time"

// Transaction types.
const (
	TxnAdvance         = "advance"
	TxnRefund          = "refund"
	TxnPayment         = "payment"
	TxnSecurityDeposit = "security_deposit"
)

// Transaction is one append-only ledger entry. Entries are never mutated or
// deleted; corrections are new opposite-type entries.
type Transaction struct {
	ID            string    `bson:"id" json:"id"`
	ReservationID string    `bson:"reservation_id,omitempty" json:"reservationId,omitempty"`
	GuestID       string    `bson:"guest_id,omitempty" json:"guestId,omitempty"`
	Amount        int64     `bson:"amount" json:"amount"`
	Type          string    `bson:"type" json:"type"`
	PaymentMethod string    `bson:"payment_method" json:"paymentMethod"`
	Note          string    `bson:"note,omitempty" json:"note,omitempty"`
	CreatedBy     string    `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
}
