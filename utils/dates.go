package utils

import (
	"fmt"
	"time"
)

// ParseDate accepts either an RFC 3339 timestamp or a bare YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q, expected RFC 3339 or YYYY-MM-DD", s)
}
