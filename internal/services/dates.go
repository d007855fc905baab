package services

import (
	"fmt"
	"time"
)

const isoDate = "2006-01-02"

// NormalizeDate parses s as an ISO calendar date and returns it zero-padded.
// Stored dates must always be canonical YYYY-MM-DD: range filters and
// ordering compare them as text, which is only correct when every value is
// zero-padded.
func NormalizeDate(s string) (string, error) {
	t, err := time.Parse(isoDate, s)
	if err != nil {
		return "", fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	return t.Format(isoDate), nil
}

// Today returns the current UTC date in canonical form.
func Today() string {
	return time.Now().UTC().Format(isoDate)
}

// daysAgo returns the canonical date n days before now, UTC.
func daysAgo(n int) string {
	return time.Now().UTC().AddDate(0, 0, -n).Format(isoDate)
}
