package availability

import (
	"sort"

	"github.com/Girish14j/Iskcon-bhakti-booking/internal/model"
)

// FreeSlots computes the free intervals of one hall's day: the exact
// complement of the given bookings' occupied time within the half-open
// window [dayStart, dayEnd).  The input is expected to hold a single
// hall and date worth of pending/approved bookings; bookings whose
// times fail to parse are ignored.
//
// The returned slots are disjoint, sorted by start, and together with
// the occupied intervals (clipped to the window) reconstruct the
// window exactly.  Overlapping input bookings should not exist, but if
// they do the cursor merge coalesces them instead of failing.
func FreeSlots(bookings []model.Booking, dayStart, dayEnd int) []Interval {
	occupied := make([]Interval, 0, len(bookings))
	for _, b := range bookings {
		start, err := ToMinutes(b.StartTime)
		if err != nil {
			continue
		}
		end, err := ToMinutes(b.EndTime)
		if err != nil {
			continue
		}
		occupied = append(occupied, Interval{Start: start, End: end})
	}
	// Deterministic order: start, then end, then original position.
	sort.SliceStable(occupied, func(i, j int) bool {
		if occupied[i].Start != occupied[j].Start {
			return occupied[i].Start < occupied[j].Start
		}
		return occupied[i].End < occupied[j].End
	})

	slots := make([]Interval, 0, len(occupied)+1)
	cursor := dayStart
	for _, iv := range occupied {
		if cursor < iv.Start {
			slots = append(slots, Interval{Start: cursor, End: min(iv.Start, dayEnd)})
		}
		if iv.End > cursor {
			cursor = iv.End
		}
		if cursor >= dayEnd {
			return slots
		}
	}
	if cursor < dayEnd {
		slots = append(slots, Interval{Start: cursor, End: dayEnd})
	}
	return slots
}
