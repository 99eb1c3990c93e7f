package utils

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates (check-in / check-out).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.Time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// NightsBetween returns the whole-day difference between two dates. Both
// arguments are expected to be midnight-aligned, as produced by ParseDate.
func NightsBetween(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn) / (24 * time.Hour))
}

// Today truncates t to its calendar date at UTC midnight.
func Today(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
