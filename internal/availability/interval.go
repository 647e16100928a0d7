// Package availability implements the scheduling core of the hall
// booking service: time-of-day interval arithmetic, conflict detection
// against existing bookings, free-slot computation, best-fit hall
// selection and the bounded search for the next available date.  All
// functions here are pure – they operate on in-memory values, perform
// no I/O and are safe for concurrent use.
package availability

import (
	"errors"
	"fmt"
)

// minutesPerDay is the number of minutes in a calendar day.  Times of
// day are represented as minutes since midnight in [0, minutesPerDay).
const minutesPerDay = 24 * 60

// ErrInvalidTime is returned when a time-of-day string is not a valid
// zero-padded "HH:MM" value.  Callers validate input format upstream,
// so seeing this error indicates bad user input rather than a bug.
var ErrInvalidTime = errors.New("invalid time of day")

// ErrInvalidRange is returned when an interval's end does not fall
// strictly after its start.  A requested booking whose duration would
// carry it past midnight ends up here: instead of silently wrapping to
// an early-morning end time, the request is rejected.
var ErrInvalidRange = errors.New("invalid time range")

// Interval is a half-open [Start, End) range of time-of-day, both
// bounds expressed in minutes since midnight with Start < End.
type Interval struct {
	Start int `json:"-"`
	End   int `json:"-"`
}

// StartHHMM returns the interval start formatted as "HH:MM".
func (iv Interval) StartHHMM() string { return ToHHMM(iv.Start) }

// EndHHMM returns the interval end formatted as "HH:MM".
func (iv Interval) EndHHMM() string { return ToHHMM(iv.End) }

// String renders the interval in the "HH:MM - HH:MM" form shown to
// users in free-slot suggestions.
func (iv Interval) String() string {
	return iv.StartHHMM() + " - " + iv.EndHHMM()
}

// MarshalJSON encodes the interval as {"start":"HH:MM","end":"HH:MM"}
// so API responses carry the same representation the pages render.
func (iv Interval) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"start":%q,"end":%q}`, iv.StartHHMM(), iv.EndHHMM())), nil
}

// ToMinutes parses a zero-padded "HH:MM" string into minutes since
// midnight.  It rejects anything that is not exactly two digits, a
// colon and two digits within the valid hour/minute ranges.
func ToMinutes(hhmm string) (int, error) {
	if len(hhmm) != 5 || hhmm[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, hhmm)
	}
	h, ok1 := twoDigits(hhmm[0], hhmm[1])
	m, ok2 := twoDigits(hhmm[3], hhmm[4])
	if !ok1 || !ok2 || h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, hhmm)
	}
	return h*60 + m, nil
}

// twoDigits converts two ASCII digit bytes into an int.
func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// ToHHMM formats minutes since midnight as a zero-padded "HH:MM"
// string.  Values outside a single day are normalised modulo 24 hours.
func ToHHMM(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// AddDuration computes the end time of a booking that starts at
// startMinutes and runs for durationHours (fractional hours are
// allowed; the page offers half-hour steps).  The result wraps modulo
// 24 hours; NewInterval is responsible for rejecting wrapped results.
func AddDuration(startMinutes int, durationHours float64) int {
	return (startMinutes + int(durationHours*60)) % minutesPerDay
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.  This is the single overlap predicate used
// by every conflict check in the service; intervals that merely touch
// at a boundary do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// NewInterval builds an Interval from a "HH:MM" start and a duration
// in hours.  A duration that would carry the booking past midnight is
// rejected with ErrInvalidRange rather than wrapped.
func NewInterval(startHHMM string, durationHours float64) (Interval, error) {
	start, err := ToMinutes(startHHMM)
	if err != nil {
		return Interval{}, err
	}
	end := AddDuration(start, durationHours)
	if end <= start {
		return Interval{}, fmt.Errorf("%w: %s + %.1fh crosses midnight", ErrInvalidRange, startHHMM, durationHours)
	}
	return Interval{Start: start, End: end}, nil
}

// ParseInterval builds an Interval from explicit "HH:MM" start and end
// strings, requiring end to fall strictly after start.
func ParseInterval(startHHMM, endHHMM string) (Interval, error) {
	start, err := ToMinutes(startHHMM)
	if err != nil {
		return Interval{}, err
	}
	end, err := ToMinutes(endHHMM)
	if err != nil {
		return Interval{}, err
	}
	if end <= start {
		return Interval{}, fmt.Errorf("%w: %s-%s", ErrInvalidRange, startHHMM, endHHMM)
	}
	return Interval{Start: start, End: end}, nil
}
