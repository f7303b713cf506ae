package billing

import (
	"math"
	"time"
)

// NightsBetween counts billable nights over [start, end). Partial nights
// round up and every stay is billed for at least one night.
func NightsBetween(start, end time.Time) int {
	n := int(math.Ceil(end.Sub(start).Hours() / 24))
	if n < 1 {
		return 1
	}
	return n
}
