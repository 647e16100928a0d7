package availability

import (
	"fmt"
	"time"

	"github.com/Girish14j/Iskcon-bhakti-booking/internal/model"
)

// dateLayout is the calendar date format used throughout the service.
const dateLayout = "2006-01-02"

// NextAvailability is the result of a successful look-ahead search:
// the earliest date after the starting date on which at least one
// suitable hall has free time, together with those halls in best-fit
// order.
type NextAvailability struct {
	Date  string       `json:"date"`
	Halls []model.Hall `json:"halls"`
}

// FindNextAvailable scans the dates strictly after startDate, up to
// horizonDays ahead, and returns the first date on which at least one
// hall with sufficient capacity still has free time inside the
// operating window.  A hall qualifies as soon as any free slot exists
// on the candidate date – a partially booked day is still available,
// which deliberately matches the precise free-slot arithmetic used
// everywhere else rather than treating a single booking as blocking
// the whole day.
//
// The second return value is false when no date within the horizon
// qualifies; that is a normal "no availability in the next N days"
// outcome, not an error.  An error is only returned for a malformed
// start date.
func FindNextAvailable(halls []model.Hall, bookings []model.Booking, required uint32, startDate string, horizonDays int, window Interval) (NextAvailability, bool, error) {
	from, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return NextAvailability{}, false, fmt.Errorf("parse start date %q: %w", startDate, err)
	}
	candidates := BestFit(halls, required)
	for offset := 1; offset <= horizonDays; offset++ {
		date := from.AddDate(0, 0, offset).Format(dateLayout)
		var free []model.Hall
		for _, h := range candidates {
			if len(FreeSlots(activeForHallDate(bookings, h.ID, date), window.Start, window.End)) > 0 {
				free = append(free, h)
			}
		}
		if len(free) > 0 {
			return NextAvailability{Date: date, Halls: free}, true, nil
		}
	}
	return NextAvailability{}, false, nil
}

// activeForHallDate narrows a mixed booking set down to the pending
// and approved bookings of one hall on one date.
func activeForHallDate(bookings []model.Booking, hallID uint64, date string) []model.Booking {
	var out []model.Booking
	for _, b := range bookings {
		if b.HallID != hallID || b.Date != date {
			continue
		}
		if b.Status != model.BookingPending && b.Status != model.BookingApproved {
			continue
		}
		out = append(out, b)
	}
	return out
}
