package models

import "time"

// Decor order statuses.
const (
	DecorPending   = "pending"
	DecorCompleted = "completed"
	DecorBilled    = "billed"
	DecorCancelled = "cancelled"
)

// RecipeLine names an inventory item and the quantity one package serving
// consumes.
type RecipeLine struct {
	ItemID   string `bson:"item_id" json:"itemId"`
	ItemName string `bson:"item_name" json:"itemName"`
	Quantity int64  `bson:"quantity" json:"quantity"`
}

// DecorPackage is an a-la-carte add-on service with an inventory recipe.
type DecorPackage struct {
	ID        string       `bson:"id" json:"id"`
	Name      string       `bson:"name" json:"name"`
	Price     int64        `bson:"price" json:"price"`
	Recipe    []RecipeLine `bson:"recipe" json:"recipe"`
	Active    bool         `bson:"active" json:"active"`
	ImageID   string       `bson:"image_id,omitempty" json:"imageId,omitempty"`
	CreatedAt time.Time    `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time    `bson:"updated_at" json:"updatedAt"`
}

// DecorOrder links a package to a guest or a future reservation. Price is a
// snapshot taken at order creation. Once billed, its inventory has been
// deducted exactly once.
type DecorOrder struct {
	ID            string    `bson:"id" json:"id"`
	PackageID     string    `bson:"package_id" json:"packageId"`
	PackageName   string    `bson:"package_name" json:"packageName"`
	Price         int64     `bson:"price" json:"price"`
	GuestID       string    `bson:"guest_id,omitempty" json:"guestId,omitempty"`
	ReservationID string    `bson:"reservation_id,omitempty" json:"reservationId,omitempty"`
	Instructions  string    `bson:"instructions,omitempty" json:"instructions,omitempty"`
	Status        string    `bson:"status" json:"status"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updatedAt"`
}

// StockShortfall reports one recipe ingredient whose on-hand stock does not
// cover the requested quantity.
type StockShortfall struct {
	ItemID    string `json:"itemId"`
	ItemName  string `json:"itemName"`
	Requested int64  `json:"requested"`
	Available int64  `json:"available"`
}
