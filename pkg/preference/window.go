package preference

import (
	"strconv"
	"strings"
	"time"
)

// WithinWindow reports whether the wall-clock time of now falls inside the
// daily window [from, to). Both bounds are "HH:MM" strings. A window whose
// from is after its to wraps past midnight; a window with equal bounds covers
// the whole day. Malformed bounds report false.
func WithinWindow(now time.Time, from, to string) bool {
	f, okF := clockMinutes(from)
	t, okT := clockMinutes(to)
	if !okF || !okT {
		return false
	}

	cur := now.Hour()*60 + now.Minute()

	if f == t {
		return true
	}
	if f < t {
		return cur >= f && cur < t
	}
	// Wraps midnight, e.g. 22:00 to 07:00.
	return cur >= f || cur < t
}

// clockMinutes parses "HH:MM" into minutes since midnight.
func clockMinutes(s string) (int, bool) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
