package assistant

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Girish14j/Iskcon-bhakti-booking/internal/availability"
	"github.com/Girish14j/Iskcon-bhakti-booking/internal/model"
	"github.com/Girish14j/Iskcon-bhakti-booking/internal/repository"
)

// fakeExtractor returns a canned intent so the responder's routing and
// phrasing can be tested without a language model.
type fakeExtractor struct {
	intent Intent
	reply  string
}

func (f *fakeExtractor) ExtractIntent(_ context.Context, _ string) (Intent, error) {
	return f.intent, nil
}

func (f *fakeExtractor) SmallTalk(_ context.Context, _ string) (string, error) {
	return f.reply, nil
}

type memHalls struct {
	halls []model.Hall
}

func (m *memHalls) GetByID(_ context.Context, id uint64) (*model.Hall, error) {
	for i := range m.halls {
		if m.halls[i].ID == id {
			return &m.halls[i], nil
		}
	}
	return nil, availability.ErrHallNotFound
}

func (m *memHalls) GetActiveByName(_ context.Context, name string) (*model.Hall, error) {
	for i := range m.halls {
		if strings.EqualFold(m.halls[i].Name, name) && m.halls[i].IsActive {
			return &m.halls[i], nil
		}
	}
	return nil, availability.ErrHallNotFound
}

func (m *memHalls) ListActive(_ context.Context) ([]model.Hall, error) {
	out := make([]model.Hall, 0, len(m.halls))
	for _, h := range m.halls {
		if h.IsActive {
			out = append(out, h)
		}
	}
	return out, nil
}

type memBookings struct {
	bookings   []model.Booking
	nextID     uint64
	createFail error // when set, CreateIfFree returns it instead of writing
}

func (m *memBookings) ListActive(_ context.Context) ([]model.Booking, error) {
	return m.bookings, nil
}

func (m *memBookings) ListActiveForHallDate(_ context.Context, hallID uint64, date string) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range m.bookings {
		if b.HallID == hallID && b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBookings) CreateIfFree(_ context.Context, b *model.Booking) error {
	if m.createFail != nil {
		return m.createFail
	}
	m.nextID++
	b.ID = m.nextID
	b.Status = model.BookingPending
	m.bookings = append(m.bookings, *b)
	return nil
}

func newTestResponder(intent Intent) (*Responder, *memBookings) {
	halls := &memHalls{halls: []model.Hall{
		{ID: 1, Name: "Krishna Hall", Capacity: 500, IsActive: true},
		{ID: 2, Name: "Radha Hall", Capacity: 250, IsActive: true},
		{ID: 3, Name: "Gopal Hall", Capacity: 100, IsActive: true},
	}}
	bookings := &memBookings{}
	r := &Responder{
		Extractor: &fakeExtractor{intent: intent, reply: "Hare Krishna! How can I help?"},
		Halls:     halls,
		Bookings:  bookings,
		Window:    availability.Interval{Start: 8 * 60, End: 22 * 60},
		Horizon:   7,
	}
	return r, bookings
}

func TestHandleMessageRequiresDate(t *testing.T) {
	r, _ := newTestResponder(Intent{Intent: IntentCheckAvailability})
	reply, err := r.HandleMessage(context.Background(), 1, "any hall free?")
	require.NoError(t, err)
	assert.Equal(t, "Please provide a date.", reply)

	r, _ = newTestResponder(Intent{Intent: IntentCheckAvailability, Date: "next tuesday"})
	reply, err = r.HandleMessage(context.Background(), 1, "any hall free?")
	require.NoError(t, err)
	assert.Equal(t, "Please provide a date.", reply)
}

func TestHandleMessageBestFitRecommendation(t *testing.T) {
	r, _ := newTestResponder(Intent{Intent: IntentCheckAvailability, Date: "2025-03-10", People: 150})
	reply, err := r.HandleMessage(context.Background(), 1, "need space for 150 on march 10")
	require.NoError(t, err)
	assert.Contains(t, reply, "Best hall for 150 people on 2025-03-10")
	assert.Contains(t, reply, "Radha Hall (Capacity: 250)")
	assert.Contains(t, reply, "Krishna Hall (500)")
	assert.NotContains(t, reply, "Gopal Hall")
}

func TestHandleMessageListsAllWhenNoCount(t *testing.T) {
	r, _ := newTestResponder(Intent{Intent: IntentCheckAvailability, Date: "2025-03-10"})
	reply, err := r.HandleMessage(context.Background(), 1, "what's free on march 10")
	require.NoError(t, err)
	assert.Contains(t, reply, "Available halls on 2025-03-10")
	assert.Contains(t, reply, "Gopal Hall (100)")
	assert.Contains(t, reply, "Radha Hall (250)")
	assert.Contains(t, reply, "Krishna Hall (500)")
}

func TestHandleMessageFallsBackToNextAvailability(t *testing.T) {
	r, store := newTestResponder(Intent{Intent: IntentCheckAvailability, Date: "2025-03-10"})
	for _, hallID := range []uint64{1, 2, 3} {
		store.bookings = append(store.bookings, model.Booking{
			HallID: hallID, Date: "2025-03-10",
			StartTime: "08:00", EndTime: "22:00",
			Status: model.BookingApproved,
		})
	}
	reply, err := r.HandleMessage(context.Background(), 1, "anything on march 10?")
	require.NoError(t, err)
	assert.Contains(t, reply, "No halls available on 2025-03-10.")
	assert.Contains(t, reply, "Next availability on 2025-03-11")
}

func TestHandleMessageCreateBookingRequiresFields(t *testing.T) {
	r, _ := newTestResponder(Intent{Intent: IntentCreateBooking, Date: "2025-03-10"})
	reply, err := r.HandleMessage(context.Background(), 1, "book something")
	require.NoError(t, err)
	assert.Equal(t, "Please provide hall name, date, time and number of attendees.", reply)
}

func TestHandleMessageCreateBookingUnknownHall(t *testing.T) {
	r, _ := newTestResponder(Intent{
		Intent: IntentCreateBooking, HallName: "Lotus Hall",
		Date: "2025-03-10", StartTime: "10:00", EndTime: "12:00", People: 50,
	})
	reply, err := r.HandleMessage(context.Background(), 1, "book lotus hall")
	require.NoError(t, err)
	assert.Equal(t, `Hall "Lotus Hall" not found.`, reply)
}

func TestHandleMessageCreateBookingCapacity(t *testing.T) {
	r, _ := newTestResponder(Intent{
		Intent: IntentCreateBooking, HallName: "Gopal Hall",
		Date: "2025-03-10", StartTime: "10:00", EndTime: "12:00", People: 400,
	})
	reply, err := r.HandleMessage(context.Background(), 1, "book gopal hall for 400")
	require.NoError(t, err)
	assert.Contains(t, reply, "Gopal Hall capacity is 100.")
	assert.Contains(t, reply, "Better options:")
	assert.Contains(t, reply, "Krishna Hall (500)")
}

func TestHandleMessageCreateBookingConflict(t *testing.T) {
	r, store := newTestResponder(Intent{
		Intent: IntentCreateBooking, HallName: "Radha Hall",
		Date: "2025-03-10", StartTime: "10:00", EndTime: "12:00", People: 50,
	})
	store.bookings = append(store.bookings, model.Booking{
		HallID: 2, Date: "2025-03-10",
		StartTime: "11:00", EndTime: "13:00",
		Status: model.BookingApproved,
	})
	reply, err := r.HandleMessage(context.Background(), 1, "book radha hall 10 to 12")
	require.NoError(t, err)
	assert.Contains(t, reply, "Radha Hall is booked at that time.")
	assert.Contains(t, reply, "Available slots:")
	assert.Contains(t, reply, "08:00 - 11:00")
	assert.Contains(t, reply, "13:00 - 22:00")
}

func TestHandleMessageCreateBookingSuccess(t *testing.T) {
	r, store := newTestResponder(Intent{
		Intent: IntentCreateBooking, HallName: "krishna hall",
		Date: "2025-03-10", StartTime: "10:00", EndTime: "12:00", People: 300,
	})
	var hookBooking model.Booking
	r.Created = func(_ context.Context, b model.Booking, _ model.Hall) { hookBooking = b }

	reply, err := r.HandleMessage(context.Background(), 7, "book krishna hall march 10")
	require.NoError(t, err)
	assert.Equal(t, "Booking created for Krishna Hall on 2025-03-10 from 10:00 to 12:00. Status: Pending approval.", reply)

	require.Len(t, store.bookings, 1)
	saved := store.bookings[0]
	assert.Equal(t, uint64(7), saved.UserID)
	assert.Equal(t, model.BookingPending, saved.Status)
	assert.Equal(t, uint32(300), saved.Attendees)
	assert.Equal(t, saved.ID, hookBooking.ID)
}

// A submission that validates but loses the race to a concurrent
// writer comes back from the store as ErrSlotTaken and must read like
// any other conflict, with the current free slots attached.
func TestHandleMessageCreateBookingLosesRace(t *testing.T) {
	r, store := newTestResponder(Intent{
		Intent: IntentCreateBooking, HallName: "Radha Hall",
		Date: "2025-03-10", StartTime: "10:00", EndTime: "12:00", People: 50,
	})
	// Validation sees a clean snapshot; only the guarded write fails,
	// exactly as when another submission lands in between.
	store.createFail = repository.ErrSlotTaken

	reply, err := r.HandleMessage(context.Background(), 1, "book radha hall 10 to 12")
	require.NoError(t, err)
	assert.Contains(t, reply, "Radha Hall is booked at that time.")
	assert.Contains(t, reply, "Available slots:")
	assert.Empty(t, store.bookings, "losing submission must not be stored")
}

func TestHandleMessageGeneralFallsThroughToChat(t *testing.T) {
	r, _ := newTestResponder(Intent{Intent: IntentGeneral})
	reply, err := r.HandleMessage(context.Background(), 1, "hello there")
	require.NoError(t, err)
	assert.Equal(t, "Hare Krishna! How can I help?", reply)
}
