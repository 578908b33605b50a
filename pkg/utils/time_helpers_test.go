package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlexibleDate(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{in: "2025-10-15", want: time.Date(2025, 10, 15, 0, 0, 0, 0, time.Local), ok: true},
		{in: "2025-10-15 08:30:00", want: time.Date(2025, 10, 15, 8, 30, 0, 0, time.Local), ok: true},
		{in: "15/10/2025", want: time.Date(2025, 10, 15, 0, 0, 0, 0, time.Local), ok: true},
		{in: "10/09/2025", want: time.Date(2025, 9, 10, 0, 0, 0, 0, time.Local), ok: true},
		{in: "1/2/2025", want: time.Date(2025, 2, 1, 0, 0, 0, 0, time.Local), ok: true},
		{in: "10/09/25", want: time.Date(2025, 9, 10, 0, 0, 0, 0, time.Local), ok: true},
		{in: "10/09/2025 14:05", want: time.Date(2025, 9, 10, 14, 5, 0, 0, time.Local), ok: true},
		{in: "09/15/2025", ok: false},
		{in: " ", ok: false},
		{in: "mañana", ok: false},
	}
	for _, tt := range cases {
		got, ok := ParseFlexibleDate(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.True(t, tt.want.Equal(got), "%q: got %s", tt.in, got)
		}
	}
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2025, 10, 15, 16, 45, 12, 9, time.UTC)
	assert.Equal(t, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), StartOfDay(in))
}
