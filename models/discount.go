package models

import "time"

// Discount is a time-boxed percentage promotion applied to room rent only.
type Discount struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Percent   float64   `bson:"percent" json:"percent"`
	StartDate time.Time `bson:"start_date" json:"startDate"`
	EndDate   time.Time `bson:"end_date" json:"endDate"`
	Active    bool      `bson:"active" json:"active"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// PromoCode is a redeemable percentage code applied to room rent only.
type PromoCode struct {
	ID         string    `bson:"id" json:"id"`
	Code       string    `bson:"code" json:"code"`
	Percent    float64   `bson:"percent" json:"percent"`
	StartDate  time.Time `bson:"start_date" json:"startDate"`
	EndDate    time.Time `bson:"end_date" json:"endDate"`
	Active     bool      `bson:"active" json:"active"`
	UsageCount int64     `bson:"usage_count" json:"usageCount"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}

// ValidOn reports whether the code may be redeemed on the given day.
func (p PromoCode) ValidOn(t time.Time) bool {
	return p.Active && !t.Before(p.StartDate) && !t.After(p.EndDate)
}

// ActiveOn reports whether the discount window contains the given day.
func (d Discount) ActiveOn(t time.Time) bool {
	return d.Active && !t.Before(d.StartDate) && !t.After(d.EndDate)
}
