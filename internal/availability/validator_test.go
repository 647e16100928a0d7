package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Girish14j/Iskcon-bhakti-booking/internal/model"
)

type fakeHalls struct {
	halls []model.Hall
}

func (f *fakeHalls) GetByID(_ context.Context, id uint64) (*model.Hall, error) {
	for i := range f.halls {
		if f.halls[i].ID == id {
			return &f.halls[i], nil
		}
	}
	return nil, ErrHallNotFound
}

func (f *fakeHalls) ListActive(_ context.Context) ([]model.Hall, error) {
	out := make([]model.Hall, 0, len(f.halls))
	for _, h := range f.halls {
		if h.IsActive {
			out = append(out, h)
		}
	}
	return out, nil
}

type fakeBookings struct {
	bookings []model.Booking
}

func (f *fakeBookings) ListActiveForHallDate(_ context.Context, hallID uint64, date string) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range f.bookings {
		if b.HallID == hallID && b.Date == date && (b.Status == model.BookingPending || b.Status == model.BookingApproved) {
			out = append(out, b)
		}
	}
	return out, nil
}

func newTestValidator() *Validator {
	window := Interval{Start: 8 * 60, End: 22 * 60}
	inactive := hall(4, "Closed Hall", 300)
	inactive.IsActive = false
	return &Validator{
		Halls: &fakeHalls{halls: []model.Hall{
			hall(1, "Krishna Hall", 500),
			hall(2, "Radha Hall", 250),
			hall(3, "Gopal Hall", 100),
			inactive,
		}},
		Bookings: &fakeBookings{bookings: []model.Booking{
			booking(1, "2025-03-10", "10:00", "12:00", model.BookingApproved),
			booking(1, "2025-03-10", "15:00", "16:00", model.BookingPending),
		}},
		Window: &window,
	}
}

func TestValidateAcceptsFreeSlot(t *testing.T) {
	v := newTestValidator()

	c, err := v.Validate(context.Background(), Submission{
		HallID:    1,
		Date:      "2025-03-10",
		StartTime: "12:00",
		EndTime:   "14:00",
		Attendees: 200,
	})
	require.NoError(t, err)
	assert.Equal(t, "Krishna Hall", c.Hall.Name)
	assert.Equal(t, "12:00 - 14:00", c.Interval.String())
}

func TestValidateDurationForm(t *testing.T) {
	v := newTestValidator()

	c, err := v.Validate(context.Background(), Submission{
		HallID:        2,
		Date:          "2025-03-10",
		StartTime:     "09:00",
		DurationHours: 2.5,
		Attendees:     50,
	})
	require.NoError(t, err)
	assert.Equal(t, "09:00 - 11:30", c.Interval.String())
}

func TestValidateUnknownOrInactiveHall(t *testing.T) {
	v := newTestValidator()

	_, err := v.Validate(context.Background(), Submission{HallID: 99, Date: "2025-03-10", StartTime: "09:00", EndTime: "10:00"})
	require.ErrorIs(t, err, ErrHallNotFound)

	_, err = v.Validate(context.Background(), Submission{HallID: 4, Date: "2025-03-10", StartTime: "09:00", EndTime: "10:00"})
	require.ErrorIs(t, err, ErrHallNotFound)
}

func TestValidateCapacityExceeded(t *testing.T) {
	v := newTestValidator()

	_, err := v.Validate(context.Background(), Submission{
		HallID:    3, // Gopal Hall, 100 seats
		Date:      "2025-03-10",
		StartTime: "09:00",
		EndTime:   "10:00",
		Attendees: 200,
	})
	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, "Gopal Hall", capErr.Hall.Name)
	assert.Equal(t, uint32(200), capErr.Attendees)
	// Alternatives come back best-fit first and exclude too-small halls.
	require.Len(t, capErr.Alternatives, 2)
	assert.Equal(t, "Radha Hall", capErr.Alternatives[0].Name)
	assert.Equal(t, "Krishna Hall", capErr.Alternatives[1].Name)
}

func TestValidateConflictReportsFreeSlots(t *testing.T) {
	v := newTestValidator()

	_, err := v.Validate(context.Background(), Submission{
		HallID:    1,
		Date:      "2025-03-10",
		StartTime: "11:00",
		EndTime:   "13:00",
		Attendees: 100,
	})
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "11:00 - 13:00", conflictErr.Requested.String())

	rendered := make([]string, 0, len(conflictErr.FreeSlots))
	for _, s := range conflictErr.FreeSlots {
		rendered = append(rendered, s.String())
	}
	assert.Equal(t, []string{"08:00 - 10:00", "12:00 - 15:00", "16:00 - 22:00"}, rendered)
}

func TestValidateOutsideOperatingWindow(t *testing.T) {
	v := newTestValidator()

	_, err := v.Validate(context.Background(), Submission{
		HallID:    2,
		Date:      "2025-03-10",
		StartTime: "06:00",
		EndTime:   "09:00",
		Attendees: 10,
	})
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = v.Validate(context.Background(), Submission{
		HallID:    2,
		Date:      "2025-03-10",
		StartTime: "21:00",
		EndTime:   "23:00",
		Attendees: 10,
	})
	require.ErrorIs(t, err, ErrInvalidRange)
}

// The interactive page's validator carries no operating window: any
// time of day is bookable, and SlotWindow only scopes the free-slot
// suggestions on conflict.
func TestValidateWithoutWindow(t *testing.T) {
	v := newTestValidator()
	v.SlotWindow = *v.Window
	v.Window = nil

	c, err := v.Validate(context.Background(), Submission{
		HallID:    2,
		Date:      "2025-03-10",
		StartTime: "06:00",
		EndTime:   "07:00",
		Attendees: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, "06:00 - 07:00", c.Interval.String())

	// Late evening is equally fine.
	c, err = v.Validate(context.Background(), Submission{
		HallID:    2,
		Date:      "2025-03-10",
		StartTime: "21:00",
		EndTime:   "23:00",
		Attendees: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, "21:00 - 23:00", c.Interval.String())

	// Conflicts still report slots, confined to SlotWindow.
	_, err = v.Validate(context.Background(), Submission{
		HallID:    1,
		Date:      "2025-03-10",
		StartTime: "11:00",
		EndTime:   "13:00",
		Attendees: 10,
	})
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.NotEmpty(t, conflictErr.FreeSlots)
	first := conflictErr.FreeSlots[0]
	last := conflictErr.FreeSlots[len(conflictErr.FreeSlots)-1]
	assert.GreaterOrEqual(t, first.Start, v.SlotWindow.Start)
	assert.LessOrEqual(t, last.End, v.SlotWindow.End)
}

func TestValidateMalformedTimes(t *testing.T) {
	v := newTestValidator()

	_, err := v.Validate(context.Background(), Submission{HallID: 1, Date: "2025-03-10", StartTime: "9am", EndTime: "11:00"})
	require.ErrorIs(t, err, ErrInvalidTime)

	_, err = v.Validate(context.Background(), Submission{HallID: 1, Date: "2025-03-10", StartTime: "14:00", EndTime: "12:00"})
	require.ErrorIs(t, err, ErrInvalidRange)
}
