package domain

import (
	"fmt"
	"time"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDate accepts RFC 3339 timestamps or plain dates. Plain dates are
// read as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: cannot parse date %q", ErrInvalidInput, s)
}

// EndOfDay moves a date-only bound to the last instant of that day so an
// inclusive "until" covers the whole day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
