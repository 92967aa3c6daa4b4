package utils

import "time"

// MustParseDate parses a yyyy-MM-dd string, returning the zero time on
// malformed input. For seed data and test fixtures only.
func MustParseDate(dateStr string) time.Time {
	t, _ := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	return t
}
