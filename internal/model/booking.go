package model

import "time"

// Booking status values.  Only pending and approved bookings occupy
// time on the calendar; a rejected booking behaves as if it were
// deleted and is excluded from every conflict check.
const (
	BookingPending  = "pending"
	BookingApproved = "approved"
	BookingRejected = "rejected"
)

// ActiveStatuses is the status set that occupies time.  Availability
// checks always filter bookings to this set.
var ActiveStatuses = []string{BookingPending, BookingApproved}

// Booking records a request to occupy a hall for a time interval on a
// specific calendar date.  Times of day are stored as zero-padded
// "HH:MM" strings and interpreted as a half-open [start, end) interval;
// the date is a "YYYY-MM-DD" string.  Attendees must not exceed the
// referenced hall's capacity at creation time.
//
// Fields:
//  ID         – primary key identifier.
//  HallID     – hall being booked.
//  UserID     – user who submitted the request.
//  Date       – calendar date ("YYYY-MM-DD").
//  StartTime  – start of the interval ("HH:MM").
//  EndTime    – end of the interval ("HH:MM"), strictly after StartTime.
//  Status     – lifecycle state (pending, approved, rejected).
//  Purpose    – free-text purpose of the event.
//  Attendees  – expected number of attendees.
//  AdminNotes – optional notes left by the reviewing administrator.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Booking struct {
	ID         uint64    `json:"id"`          // bookings.id
	HallID     uint64    `json:"hall_id"`     // bookings.hall_id
	UserID     uint64    `json:"user_id"`     // bookings.user_id
	Date       string    `json:"date"`        // bookings.booking_date
	StartTime  string    `json:"start_time"`  // bookings.start_time
	EndTime    string    `json:"end_time"`    // bookings.end_time
	Status     string    `json:"status"`      // bookings.status
	Purpose    string    `json:"purpose"`     // bookings.purpose
	Attendees  uint32    `json:"attendees"`   // bookings.attendees
	AdminNotes *string   `json:"admin_notes"` // bookings.admin_notes (nullable)
	CreatedAt  time.Time `json:"created_at"`  // bookings.created_at
	UpdatedAt  time.Time `json:"updated_at"`  // bookings.updated_at
}
