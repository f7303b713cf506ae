package models

import "time"

// SettingsDocID is the well-known id of the single billing settings document.
const SettingsDocID = "billing-settings"

// BillingSettings holds the hotel-wide billing knobs. Loaded once per
// operation and passed by value into the billing engine.
type BillingSettings struct {
	ID           string    `bson:"id" json:"id"`
	TaxRate      float64   `bson:"tax_rate" json:"taxRate"`
	MattressRate int64     `bson:"mattress_rate" json:"mattressRate"`
	Currency     string    `bson:"currency" json:"currency"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

// DefaultBillingSettings is used when no settings document exists yet.
func DefaultBillingSettings() BillingSettings {
	return BillingSettings{
		ID:           SettingsDocID,
		TaxRate:      5,
		MattressRate: 1500,
		Currency:     "INR",
	}
}
