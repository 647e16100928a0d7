package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Girish14j/Iskcon-bhakti-booking/internal/availability"
	"github.com/Girish14j/Iskcon-bhakti-booking/internal/model"
	"github.com/Girish14j/Iskcon-bhakti-booking/internal/repository"
)

// HallDirectory supplies hall records to the responder. It is
// satisfied by repository.HallRepo.
type HallDirectory interface {
	GetByID(ctx context.Context, id uint64) (*model.Hall, error)
	GetActiveByName(ctx context.Context, name string) (*model.Hall, error)
	ListActive(ctx context.Context) ([]model.Hall, error)
}

// BookingStore supplies and writes bookings. It is satisfied by
// repository.BookingRepo.
type BookingStore interface {
	ListActive(ctx context.Context) ([]model.Booking, error)
	ListActiveForHallDate(ctx context.Context, hallID uint64, date string) ([]model.Booking, error)
	CreateIfFree(ctx context.Context, b *model.Booking) error
}

// Responder answers extracted intents with plain text. Availability
// questions and booking creation run entirely on the availability
// engine over a fresh snapshot of halls and bookings; only the
// general intent falls back to the language model.
type Responder struct {
	Extractor Extractor
	Halls     HallDirectory
	Bookings  BookingStore
	Window    availability.Interval // daily operating window for this path
	Horizon   int                   // look-ahead days for next-availability search

	// Created, when set, is invoked after a booking is written so the
	// caller can hand the notification payload to the mailer queue.
	// Failures inside the hook must not affect the response.
	Created func(ctx context.Context, b model.Booking, hall model.Hall)
}

// HandleMessage processes one user message on behalf of userID and
// returns the plain-text reply. An error is only returned for
// infrastructure failures (extraction or storage); every scheduling
// outcome, including "nothing available", is a normal reply.
func (r *Responder) HandleMessage(ctx context.Context, userID uint64, message string) (string, error) {
	in, err := r.Extractor.ExtractIntent(ctx, message)
	if err != nil {
		return "", fmt.Errorf("extract intent: %w", err)
	}
	switch in.Intent {
	case IntentCheckAvailability:
		return r.checkAvailability(ctx, in)
	case IntentCreateBooking:
		return r.createBooking(ctx, userID, in)
	default:
		return r.Extractor.SmallTalk(ctx, message)
	}
}

// checkAvailability lists the halls free on the requested date,
// best-fit first when an attendee count is known, and falls back to
// the next-availability search when the date is fully booked.
func (r *Responder) checkAvailability(ctx context.Context, in Intent) (string, error) {
	if in.Date == "" {
		return "Please provide a date.", nil
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return "Please provide a date.", nil
	}

	halls, err := r.Halls.ListActive(ctx)
	if err != nil {
		return "", err
	}
	bookings, err := r.Bookings.ListActive(ctx)
	if err != nil {
		return "", err
	}

	// When the message pins down an interval the check is an exact
	// conflict test; otherwise a hall counts as available if any free
	// time remains inside the operating window.
	requested, haveInterval := requestedInterval(in)

	available := make([]model.Hall, 0, len(halls))
	for _, h := range availability.BestFit(halls, in.People) {
		if haveInterval {
			if !availability.HasConflict(h.ID, in.Date, requested.Start, requested.End, bookings) {
				available = append(available, h)
			}
			continue
		}
		day := hallDayBookings(bookings, h.ID, in.Date)
		if len(availability.FreeSlots(day, r.Window.Start, r.Window.End)) > 0 {
			available = append(available, h)
		}
	}

	if len(available) == 0 {
		next, ok, err := availability.FindNextAvailable(halls, bookings, in.People, in.Date, r.Horizon, r.Window)
		if err != nil {
			return "", err
		}
		if ok {
			return fmt.Sprintf("No halls available on %s.\n\nNext availability on %s:\n%s",
				in.Date, next.Date, hallLines(next.Halls)), nil
		}
		return "No halls available for the next few days.", nil
	}

	if in.People > 0 {
		best := available[0]
		others := "None"
		if len(available) > 1 {
			others = hallLines(available[1:])
		}
		return fmt.Sprintf("Best hall for %d people on %s:\n\n%s (Capacity: %d)\n\nOther available halls:\n%s",
			in.People, in.Date, best.Name, best.Capacity, others), nil
	}
	return fmt.Sprintf("Available halls on %s:\n\n%s", in.Date, hallLines(available)), nil
}

// createBooking runs the full submission validation and, on success,
// writes a pending booking on the user's behalf.
func (r *Responder) createBooking(ctx context.Context, userID uint64, in Intent) (string, error) {
	if in.HallName == "" || in.Date == "" || in.StartTime == "" || in.EndTime == "" || in.People == 0 {
		return "Please provide hall name, date, time and number of attendees.", nil
	}

	hall, err := r.Halls.GetActiveByName(ctx, in.HallName)
	if err != nil {
		if errors.Is(err, availability.ErrHallNotFound) {
			return fmt.Sprintf("Hall %q not found.", in.HallName), nil
		}
		return "", err
	}

	validator := availability.Validator{
		Halls:    r.Halls,
		Bookings: r.Bookings,
		Window:   &r.Window,
	}
	sub := availability.Submission{
		HallID:    hall.ID,
		Date:      in.Date,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Attendees: in.People,
		Purpose:   "Requested via assistant",
	}
	candidate, err := validator.Validate(ctx, sub)
	if err != nil {
		var capErr *availability.CapacityError
		var conflictErr *availability.ConflictError
		switch {
		case errors.As(err, &capErr):
			options := "None"
			if len(capErr.Alternatives) > 0 {
				options = hallLines(capErr.Alternatives)
			}
			return fmt.Sprintf("%s capacity is %d.\n\nBetter options:\n%s",
				hall.Name, hall.Capacity, options), nil
		case errors.As(err, &conflictErr):
			return fmt.Sprintf("%s is booked at that time.\n\nAvailable slots:\n%s",
				hall.Name, slotLines(conflictErr.FreeSlots)), nil
		case errors.Is(err, availability.ErrInvalidTime), errors.Is(err, availability.ErrInvalidRange):
			return fmt.Sprintf("Please provide a valid time range within operating hours %s.", r.Window), nil
		case errors.Is(err, availability.ErrHallNotFound):
			return fmt.Sprintf("Hall %q not found.", in.HallName), nil
		default:
			return "", err
		}
	}

	booking := model.Booking{
		HallID:    hall.ID,
		UserID:    userID,
		Date:      in.Date,
		StartTime: candidate.Interval.StartHHMM(),
		EndTime:   candidate.Interval.EndHHMM(),
		Purpose:   sub.Purpose,
		Attendees: in.People,
	}
	if err := r.Bookings.CreateIfFree(ctx, &booking); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			// Lost the race to a concurrent writer. Report it the same
			// way as a conflict caught during validation.
			day, lerr := r.Bookings.ListActiveForHallDate(ctx, hall.ID, in.Date)
			if lerr != nil {
				return "", lerr
			}
			free := availability.FreeSlots(day, r.Window.Start, r.Window.End)
			return fmt.Sprintf("%s is booked at that time.\n\nAvailable slots:\n%s",
				hall.Name, slotLines(free)), nil
		}
		return "", err
	}

	if r.Created != nil {
		r.Created(ctx, booking, *hall)
	}
	return fmt.Sprintf("Booking created for %s on %s from %s to %s. Status: Pending approval.",
		hall.Name, in.Date, booking.StartTime, booking.EndTime), nil
}

// requestedInterval reads an explicit [start, end) interval out of the
// intent when both bounds are present and well formed.
func requestedInterval(in Intent) (availability.Interval, bool) {
	if in.StartTime == "" || in.EndTime == "" {
		return availability.Interval{}, false
	}
	iv, err := availability.ParseInterval(in.StartTime, in.EndTime)
	if err != nil {
		return availability.Interval{}, false
	}
	return iv, true
}

// hallDayBookings narrows the full active set to one hall and date.
func hallDayBookings(bookings []model.Booking, hallID uint64, date string) []model.Booking {
	var out []model.Booking
	for _, b := range bookings {
		if b.HallID == hallID && b.Date == date {
			out = append(out, b)
		}
	}
	return out
}

// hallLines renders halls as the bullet list shown in replies.
func hallLines(halls []model.Hall) string {
	lines := make([]string, 0, len(halls))
	for _, h := range halls {
		lines = append(lines, fmt.Sprintf("• %s (%d)", h.Name, h.Capacity))
	}
	return strings.Join(lines, "\n")
}

// slotLines renders free intervals as a bullet list.
func slotLines(slots []availability.Interval) string {
	lines := make([]string, 0, len(slots))
	for _, s := range slots {
		lines = append(lines, "• "+s.String())
	}
	return strings.Join(lines, "\n")
}
