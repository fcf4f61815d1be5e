package preference_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shipfwd/notifyd/pkg/preference"
)

func clock(hour, minute int) time.Time {
	return time.Date(2025, 6, 1, hour, minute, 0, 0, time.UTC)
}

func TestWithinWindow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		now      time.Time
		from, to string
		want     bool
	}{
		// Overnight window wrapping midnight.
		{"overnight contains late evening", clock(23, 30), "22:00", "07:00", true},
		{"overnight contains early morning", clock(3, 0), "22:00", "07:00", true},
		{"overnight excludes midday", clock(12, 0), "22:00", "07:00", false},
		{"overnight includes start bound", clock(22, 0), "22:00", "07:00", true},
		{"overnight excludes end bound", clock(7, 0), "22:00", "07:00", false},

		// Same-day window.
		{"same-day contains middle", clock(10, 0), "09:00", "17:00", true},
		{"same-day excludes evening", clock(20, 0), "09:00", "17:00", false},
		{"same-day includes start bound", clock(9, 0), "09:00", "17:00", true},
		{"same-day excludes end bound", clock(17, 0), "09:00", "17:00", false},
		{"same-day excludes just before start", clock(8, 59), "09:00", "17:00", false},

		// Degenerate and malformed bounds.
		{"equal bounds cover the whole day", clock(12, 0), "08:00", "08:00", true},
		{"malformed from", clock(12, 0), "8am", "17:00", false},
		{"malformed to", clock(12, 0), "09:00", "25:00", false},
		{"empty bounds", clock(12, 0), "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, preference.WithinWindow(tt.now, tt.from, tt.to))
		})
	}
}
