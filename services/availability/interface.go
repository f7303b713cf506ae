package availability

import "time"

// Conflict describes one record blocking a requested interval.
type Conflict struct {
	// Kind is "guest" for an in-house stay, "reservation" for a future
	// booking, or "validation" when the requested interval itself is bad.
	Kind    string    `json:"kind"`
	RefID   string    `json:"refId,omitempty"`
	StartAt time.Time `json:"startAt,omitempty"`
	EndAt   time.Time `json:"endAt,omitempty"`
	Reason  string    `json:"reason,omitempty"`
}

// Result is the outcome of an availability check.
type Result struct {
	Available bool       `json:"available"`
	Conflicts []Conflict `json:"conflicts,omitempty"`
}

// Checker answers whether a room is free over a half-open interval.
type Checker interface {
	// Check scans active reservations and in-house stays for the room over
	// [start, end). excludeID is skipped in both collections so a record can
	// be checked against everything but itself.
	Check(roomID string, start, end time.Time, excludeID string) (Result, error)
}
