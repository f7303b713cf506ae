package models

import "time"

// Room operational statuses.
const (
	RoomAvailable   = "available"
	RoomOccupied    = "occupied"
	RoomMaintenance = "maintenance"
)

// Room categories recognised by the mattress policy.
const (
	CategoryPresidential = "Presidential"
	CategoryDuluxePlus   = "Duluxe-Plus"
	CategoryDeluxe       = "Deluxe"
	CategoryExecutive    = "Executive"
	CategoryStandard     = "Standard"
	CategoryStudio       = "Studio"
)

// Bed types.
const (
	BedOne    = "One Bed"
	BedTwo    = "Two Bed"
	BedStudio = "Studio"
)

// Room represents a physical room. The nightly rate is in whole currency units.
type Room struct {
	ID         string    `bson:"id" json:"id"`
	Number     string    `bson:"number" json:"number"`
	Category   string    `bson:"category" json:"category"`
	BedType    string    `bson:"bed_type" json:"bedType"`
	Rate       int64     `bson:"rate" json:"rate"`
	MaxAdults  int       `bson:"max_adults" json:"maxAdults"`
	MaxInfants int       `bson:"max_infants" json:"maxInfants"`
	Status     string    `bson:"status" json:"status"`
	Public     bool      `bson:"public" json:"public"`
	ImageID    string    `bson:"image_id,omitempty" json:"imageId,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updatedAt"`
}
