package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/Girish14j/Iskcon-bhakti-booking/internal/model"
)

// ErrHallNotFound is returned by Validate when the referenced hall
// does not exist or is inactive.  Handlers translate it into a 404
// prompting the user for a valid hall.
var ErrHallNotFound = errors.New("hall not found")

// CapacityError reports that the requested attendee count exceeds the
// hall's capacity.  Alternatives carries the best-fit ranked halls
// that could seat the group; an empty list means no hall is large
// enough, which the caller presents as such rather than failing.
type CapacityError struct {
	Hall         *model.Hall
	Attendees    uint32
	Alternatives []model.Hall
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s seats %d, cannot host %d attendees", e.Hall.Name, e.Hall.Capacity, e.Attendees)
}

// ConflictError reports that the requested interval overlaps an
// existing pending or approved booking.  FreeSlots carries the hall's
// remaining free intervals for the day so the caller can suggest
// alternatives.
type ConflictError struct {
	Hall      *model.Hall
	Date      string
	Requested Interval
	FreeSlots []Interval
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s is already booked on %s during %s", e.Hall.Name, e.Date, e.Requested)
}

// HallSource supplies hall records to the validator.  It is satisfied
// by repository.HallRepo.
type HallSource interface {
	GetByID(ctx context.Context, id uint64) (*model.Hall, error)
	ListActive(ctx context.Context) ([]model.Hall, error)
}

// BookingSource supplies the pending/approved bookings of one hall on
// one date.  It is satisfied by repository.BookingRepo.
type BookingSource interface {
	ListActiveForHallDate(ctx context.Context, hallID uint64, date string) ([]model.Booking, error)
}

// Submission is a booking request as received from a call site.  The
// end of the interval is given either as an explicit EndTime or as a
// DurationHours to add to StartTime; EndTime wins when both are set.
type Submission struct {
	HallID        uint64
	Date          string
	StartTime     string
	EndTime       string
	DurationHours float64
	Attendees     uint32
	Purpose       string
}

// Candidate is an accepted submission: the resolved hall and the
// computed interval, ready to be written as a pending booking.
type Candidate struct {
	Hall     *model.Hall
	Interval Interval
}

// Validator runs the shared pre-write checks of both call sites: hall
// resolution, capacity with best-fit alternatives, interval
// computation and the conflict check with free-slot suggestions.
//
// Window, when non-nil, confines bookings to the daily operating
// window and scopes the free-slot suggestions to it (the assistant
// path sets it; the interactive page leaves it nil).  SlotWindow is
// the window used for free-slot suggestions when Window is nil.
//
// Passing validation does not by itself make the write safe: two
// concurrent submissions can both validate against the same snapshot.
// The repository's create operation re-runs the conflict check under a
// per-hall lock and reports the loser as a conflict.
type Validator struct {
	Halls      HallSource
	Bookings   BookingSource
	Window     *Interval
	SlotWindow Interval
}

// Validate checks a submission and returns the resolved candidate, or
// one of ErrHallNotFound, ErrInvalidTime, ErrInvalidRange,
// *CapacityError or *ConflictError.
func (v *Validator) Validate(ctx context.Context, sub Submission) (Candidate, error) {
	hall, err := v.Halls.GetByID(ctx, sub.HallID)
	if err != nil {
		return Candidate{}, err
	}
	if hall == nil || !hall.IsActive {
		return Candidate{}, ErrHallNotFound
	}

	if sub.Attendees > hall.Capacity {
		active, err := v.Halls.ListActive(ctx)
		if err != nil {
			return Candidate{}, err
		}
		return Candidate{}, &CapacityError{
			Hall:         hall,
			Attendees:    sub.Attendees,
			Alternatives: BestFit(active, sub.Attendees),
		}
	}

	var iv Interval
	if sub.EndTime != "" {
		iv, err = ParseInterval(sub.StartTime, sub.EndTime)
	} else {
		iv, err = NewInterval(sub.StartTime, sub.DurationHours)
	}
	if err != nil {
		return Candidate{}, err
	}
	if v.Window != nil && (iv.Start < v.Window.Start || iv.End > v.Window.End) {
		return Candidate{}, fmt.Errorf("%w: outside operating hours %s", ErrInvalidRange, *v.Window)
	}

	existing, err := v.Bookings.ListActiveForHallDate(ctx, hall.ID, sub.Date)
	if err != nil {
		return Candidate{}, err
	}
	if HasConflict(hall.ID, sub.Date, iv.Start, iv.End, existing) {
		window := v.SlotWindow
		if v.Window != nil {
			window = *v.Window
		}
		return Candidate{}, &ConflictError{
			Hall:      hall,
			Date:      sub.Date,
			Requested: iv,
			FreeSlots: FreeSlots(existing, window.Start, window.End),
		}
	}

	return Candidate{Hall: hall, Interval: iv}, nil
}
