package utils

import (
	"strings"
	"time"
)

// Slashed dates are day-first (dd/mm/yyyy), as the sheet and the clients
// write them in the Spanish locale.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2/1/2006 15:04",
	"2/1/2006",
	"2/1/06",
}

// ParseFlexibleDate parses the date formats that show up in the production sheet
// and in client payloads.
func ParseFlexibleDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// StartOfDay zeroes the time of day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
