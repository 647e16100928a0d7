package availability

import "github.com/Girish14j/Iskcon-bhakti-booking/internal/model"

// HasConflict reports whether the candidate interval [start, end) for
// the given hall and date overlaps any booking in the provided set.
// Only pending and approved bookings occupy time; rejected bookings
// and bookings with unparseable times are skipped.  The set may be
// pre-filtered by hall/date/status upstream or passed in full – both
// are handled so the web and assistant call sites share one predicate.
func HasConflict(hallID uint64, date string, start, end int, bookings []model.Booking) bool {
	for _, b := range bookings {
		if b.HallID != hallID || b.Date != date {
			continue
		}
		if b.Status != model.BookingPending && b.Status != model.BookingApproved {
			continue
		}
		bs, err := ToMinutes(b.StartTime)
		if err != nil {
			continue
		}
		be, err := ToMinutes(b.EndTime)
		if err != nil {
			continue
		}
		if Overlaps(start, end, bs, be) {
			return true
		}
	}
	return false
}
