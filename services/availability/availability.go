package availability

import (
	"fmt"
	"time"

	guestRepo "innkeep/database/repository/guest"
	reservationRepo "innkeep/database/repository/reservation"
)

// DefaultChecker implements Checker over the reservation and guest stores.
type DefaultChecker struct {
	Guests       guestRepo.GuestRepository
	Reservations reservationRepo.ReservationRepository
}

// NewChecker creates a new instance of Checker.
func NewChecker(guests guestRepo.GuestRepository, reservations reservationRepo.ReservationRepository) Checker {
	return &DefaultChecker{Guests: guests, Reservations: reservations}
}

// Check reports whether the room is free over [start, end). Intervals are
// half-open, so a stay ending exactly when another starts does not conflict.
func (c *DefaultChecker) Check(roomID string, start, end time.Time, excludeID string) (Result, error) {
	if !start.Before(end) {
		return Result{
			Available: false,
			Conflicts: []Conflict{{Kind: "validation", Reason: "start must be before end"}},
		}, nil
	}

	var conflicts []Conflict

	stays, err := c.Guests.FindOverlapping(roomID, start, end, excludeID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to scan stays: %w", err)
	}
	for _, g := range stays {
		conflicts = append(conflicts, Conflict{
			Kind:    "guest",
			RefID:   g.ID,
			StartAt: g.CheckInAt,
			EndAt:   g.CheckOutAt,
		})
	}

	reservations, err := c.Reservations.FindOverlapping(roomID, start, end, excludeID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to scan reservations: %w", err)
	}
	for _, r := range reservations {
		conflicts = append(conflicts, Conflict{
			Kind:    "reservation",
			RefID:   r.ID,
			StartAt: r.StartAt,
			EndAt:   r.EndAt,
		})
	}

	return Result{Available: len(conflicts) == 0, Conflicts: conflicts}, nil
}
