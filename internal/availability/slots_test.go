package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Girish14j/Iskcon-bhakti-booking/internal/model"
)

func TestFreeSlots(t *testing.T) {
	window := func() (int, int) { return 8 * 60, 22 * 60 } // 08:00 - 22:00
	occupied := func(times ...string) []model.Booking {
		require.Zero(t, len(times)%2)
		out := make([]model.Booking, 0, len(times)/2)
		for i := 0; i < len(times); i += 2 {
			out = append(out, model.Booking{StartTime: times[i], EndTime: times[i+1], Status: model.BookingApproved})
		}
		return out
	}

	dayStart, dayEnd := window()

	cases := []struct {
		name     string
		bookings []model.Booking
		want     []string
	}{
		{
			name:     "no bookings yields the whole window",
			bookings: nil,
			want:     []string{"08:00 - 22:00"},
		},
		{
			name:     "single booking splits the day",
			bookings: occupied("10:00", "12:00"),
			want:     []string{"08:00 - 10:00", "12:00 - 22:00"},
		},
		{
			name:     "back to back bookings leave no gap between them",
			bookings: occupied("10:00", "12:00", "12:00", "14:00"),
			want:     []string{"08:00 - 10:00", "14:00 - 22:00"},
		},
		{
			name:     "overlapping bookings coalesce",
			bookings: occupied("10:00", "13:00", "12:00", "14:00"),
			want:     []string{"08:00 - 10:00", "14:00 - 22:00"},
		},
		{
			name:     "booking contained in another",
			bookings: occupied("10:00", "16:00", "11:00", "12:00"),
			want:     []string{"08:00 - 10:00", "16:00 - 22:00"},
		},
		{
			name:     "booking starting at window start",
			bookings: occupied("08:00", "09:30"),
			want:     []string{"09:30 - 22:00"},
		},
		{
			name:     "booking ending at window end",
			bookings: occupied("20:00", "22:00"),
			want:     []string{"08:00 - 20:00"},
		},
		{
			name:     "booking spilling past both edges is clipped",
			bookings: occupied("07:00", "23:00"),
			want:     []string{},
		},
		{
			name:     "fully booked day",
			bookings: occupied("08:00", "12:00", "12:00", "22:00"),
			want:     []string{},
		},
		{
			name:     "unsorted input",
			bookings: occupied("18:00", "19:00", "09:00", "10:00", "13:00", "14:00"),
			want:     []string{"08:00 - 09:00", "10:00 - 13:00", "14:00 - 18:00", "19:00 - 22:00"},
		},
		{
			name:     "unparseable times are ignored",
			bookings: append(occupied("10:00", "12:00"), model.Booking{StartTime: "ten", EndTime: "noon"}),
			want:     []string{"08:00 - 10:00", "12:00 - 22:00"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FreeSlots(tc.bookings, dayStart, dayEnd)
			rendered := make([]string, 0, len(got))
			for _, s := range got {
				rendered = append(rendered, s.String())
			}
			assert.Equal(t, tc.want, rendered)
		})
	}
}

// Free slots plus clipped occupied time must reconstruct the window
// exactly: disjoint, ordered and with no minute lost or double-counted.
func TestFreeSlotsReconstructWindow(t *testing.T) {
	dayStart, dayEnd := 8*60, 22*60
	bookings := []model.Booking{
		{StartTime: "09:00", EndTime: "11:00", Status: model.BookingApproved},
		{StartTime: "10:30", EndTime: "12:00", Status: model.BookingPending},
		{StartTime: "14:00", EndTime: "15:00", Status: model.BookingApproved},
		{StartTime: "15:00", EndTime: "17:45", Status: model.BookingPending},
		{StartTime: "21:00", EndTime: "22:00", Status: model.BookingApproved},
	}

	free := FreeSlots(bookings, dayStart, dayEnd)

	minutesFree := 0
	prevEnd := dayStart - 1
	for _, s := range free {
		require.Less(t, s.Start, s.End)
		require.GreaterOrEqual(t, s.Start, dayStart)
		require.LessOrEqual(t, s.End, dayEnd)
		require.Greater(t, s.Start, prevEnd, "slots must be ordered and disjoint")
		prevEnd = s.End
		minutesFree += s.End - s.Start

		// No free minute may overlap any booking.
		for _, b := range bookings {
			bs := mustMinutes(t, b.StartTime)
			be := mustMinutes(t, b.EndTime)
			assert.False(t, Overlaps(s.Start, s.End, bs, be), "slot %s overlaps booking %s-%s", s, b.StartTime, b.EndTime)
		}
	}

	// Occupied: 09:00-12:00 (merged), 14:00-17:45, 21:00-22:00 = 180+225+60.
	occupiedMinutes := 180 + 225 + 60
	assert.Equal(t, (dayEnd-dayStart)-occupiedMinutes, minutesFree)
}
