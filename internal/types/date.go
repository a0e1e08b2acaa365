package types

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the layout of calendar dates stored on records.
const DateLayout = "2006-01-02"

// FormatDate returns the calendar date of t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate validates a YYYY-MM-DD calendar date and returns it trimmed.
func ParseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", fmt.Errorf("%q is not a date in YYYY-MM-DD format", s)
	}

	return s, nil
}

// MonthOfDate returns the month of a YYYY-MM-DD date string.
func MonthOfDate(date string) (Month, error) {
	if len(date) < len("2006-01") {
		return Month{}, fmt.Errorf("%q is not a date in YYYY-MM-DD format", date)
	}

	return ParseMonth(date[:len("2006-01")])
}
