package models

import "time"

// Inventory usage reasons.
const (
	UsageDecorBilling      = "decor-billing"
	UsageCheckInIssue      = "checkin-issue"
	UsageCheckoutReconcile = "checkout-reconcile"
	UsageManualAdjust      = "manual-adjust"
)

// InventoryItem is a tracked mini-bar/amenity stock item.
type InventoryItem struct {
	ID                string    `bson:"id" json:"id"`
	Name              string    `bson:"name" json:"name"`
	Unit              string    `bson:"unit" json:"unit"`
	Stock             int64     `bson:"stock" json:"stock"`
	DefaultCheckInQty int64     `bson:"default_checkin_qty" json:"defaultCheckInQty"`
	Active            bool      `bson:"active" json:"active"`
	CreatedAt         time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `bson:"updated_at" json:"updatedAt"`
}

// InventoryUsage is one stock movement record.
type InventoryUsage struct {
	ID        string    `bson:"id" json:"id"`
	ItemID    string    `bson:"item_id" json:"itemId"`
	ItemName  string    `bson:"item_name" json:"itemName"`
	Quantity  int64     `bson:"quantity" json:"quantity"`
	Reason    string    `bson:"reason" json:"reason"`
	GuestID   string    `bson:"guest_id,omitempty" json:"guestId,omitempty"`
	RoomID    string    `bson:"room_id,omitempty" json:"roomId,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// StockDeduction is a pending decrement applied transactionally when a decor
// order is billed.
type StockDeduction struct {
	ItemID   string
	Quantity int64
}
