package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Girish14j/Iskcon-bhakti-booking/internal/availability"
	"github.com/Girish14j/Iskcon-bhakti-booking/internal/model"
)

// BookingRepo provides persistence for booking requests. Dates are
// stored in a DATE column and times of day in CHAR(5) "HH:MM" columns
// so rows can be compared with the same string semantics the
// availability engine uses. All timestamps are stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle for callers that need to open a
// transaction spanning multiple repositories.
func (r *BookingRepo) DB() *sql.DB { return r.db }

const bookingColumns = `id, hall_id, user_id, DATE_FORMAT(booking_date, '%Y-%m-%d'),
       start_time, end_time, status, purpose, attendees, admin_notes, created_at, updated_at`

// scanBooking reads one booking row in bookingColumns order.
func scanBooking(scan func(dest ...any) error) (*model.Booking, error) {
	var b model.Booking
	var notes sql.NullString
	if err := scan(
		&b.ID, &b.HallID, &b.UserID, &b.Date,
		&b.StartTime, &b.EndTime, &b.Status, &b.Purpose, &b.Attendees,
		&notes, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if notes.Valid {
		n := notes.String
		b.AdminNotes = &n
	}
	return &b, nil
}

// collectBookings drains a result set of bookingColumns rows.
func collectBookings(rows *sql.Rows) ([]model.Booking, error) {
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID retrieves a booking by its ID. It returns ErrBookingNotFound
// when no row exists.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// ListActiveForHallDate returns the pending and approved bookings of
// one hall on one date, ordered by start time. This is the working
// set both the conflict check and the free-slot computation run on;
// rejected bookings are excluded here so they never occupy time.
func (r *BookingRepo) ListActiveForHallDate(ctx context.Context, hallID uint64, date string) ([]model.Booking, error) {
	q := `SELECT ` + bookingColumns + `
	      FROM bookings
	      WHERE hall_id = ? AND booking_date = ? AND status IN ('pending','approved')
	      ORDER BY start_time, end_time, id`
	rows, err := r.db.QueryContext(ctx, q, hallID, date)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

// ListActive returns every pending and approved booking. The
// assistant loads this full working set once per request and runs the
// availability engine over it in memory, mirroring how the browse
// pages work with a fresh snapshot rather than a process-wide cache.
func (r *BookingRepo) ListActive(ctx context.Context) ([]model.Booking, error) {
	q := `SELECT ` + bookingColumns + `
	      FROM bookings
	      WHERE status IN ('pending','approved')
	      ORDER BY booking_date, start_time, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

// CreateIfFree inserts a new pending booking, but only after re-running
// the conflict check while holding a per-hall-per-date named lock.
// Validation and the write would otherwise race: two concurrent
// submissions can both validate against a snapshot that does not yet
// contain the other's insert. Serialising the re-check and insert
// through GET_LOCK closes that window; the losing submission observes
// the winner's row and gets ErrSlotTaken.
//
// On success the generated ID, status and timestamps are populated on
// the provided record.
func (r *BookingRepo) CreateIfFree(ctx context.Context, b *model.Booking) error {
	start, err := availability.ToMinutes(b.StartTime)
	if err != nil {
		return err
	}
	end, err := availability.ToMinutes(b.EndTime)
	if err != nil {
		return err
	}

	// Named locks are scoped to a connection, so pin one from the pool
	// for the whole acquire/check/insert/release sequence.
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	lockName := fmt.Sprintf("booking:hall:%d:%s", b.HallID, b.Date)
	var got sql.NullInt64
	if err := conn.QueryRowContext(ctx, `SELECT GET_LOCK(?, 5)`, lockName).Scan(&got); err != nil {
		return err
	}
	if !got.Valid || got.Int64 != 1 {
		return fmt.Errorf("acquire lock %q: timed out", lockName)
	}
	defer func() {
		_, _ = conn.ExecContext(context.WithoutCancel(ctx), `DO RELEASE_LOCK(?)`, lockName)
	}()

	q := `SELECT ` + bookingColumns + `
	      FROM bookings
	      WHERE hall_id = ? AND booking_date = ? AND status IN ('pending','approved')
	      ORDER BY start_time, end_time, id`
	rows, err := conn.QueryContext(ctx, q, b.HallID, b.Date)
	if err != nil {
		return err
	}
	existing, err := collectBookings(rows)
	if err != nil {
		return err
	}
	if availability.HasConflict(b.HallID, b.Date, start, end, existing) {
		return ErrSlotTaken
	}

	const ins = `INSERT INTO bookings (hall_id, user_id, booking_date, start_time, end_time, status, purpose, attendees)
	             VALUES (?, ?, ?, ?, ?, 'pending', ?, ?)`
	res, err := conn.ExecContext(ctx, ins, b.HallID, b.UserID, b.Date, b.StartTime, b.EndTime, b.Purpose, b.Attendees)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	// Query back the full row to populate defaults and timestamps.
	stored, err := r.GetByID(ctx, b.ID)
	if err != nil {
		return err
	}
	*b = *stored
	return nil
}

// CancelOwn deletes a booking belonging to the given user. Only
// pending bookings can be withdrawn; once an administrator decided the
// request, ErrNotCancellable is returned. A booking owned by another
// user yields ErrForbidden.
func (r *BookingRepo) CancelOwn(ctx context.Context, id, userID uint64) error {
	var ownerID uint64
	var status string
	err := r.db.QueryRowContext(ctx, `SELECT user_id, status FROM bookings WHERE id = ?`, id).Scan(&ownerID, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBookingNotFound
		}
		return err
	}
	if ownerID != userID {
		return ErrForbidden
	}
	if status != model.BookingPending {
		return ErrNotCancellable
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ? AND user_id = ? AND status = 'pending'`, id, userID)
	return err
}

// UpdateStatus records an administrator's decision on a booking:
// approve or reject, with optional review notes. It returns
// ErrBookingNotFound when the booking does not exist.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, status string, adminNotes string) error {
	notes := sql.NullString{String: strings.TrimSpace(adminNotes), Valid: strings.TrimSpace(adminNotes) != ""}
	const q = `UPDATE bookings SET status = ?, admin_notes = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, status, notes, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is also zero when the row exists but nothing
		// changed; probe existence to report the right error.
		var exists int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM bookings WHERE id = ?`, id).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrBookingNotFound
			}
			return err
		}
	}
	return nil
}

// BookingDetail joins a booking with its hall and requesting user for
// display in listings and for notification payloads.
type BookingDetail struct {
	model.Booking
	HallName     string  `json:"hall_name"`
	HallCapacity uint32  `json:"hall_capacity"`
	UserEmail    string  `json:"user_email"`
	UserName     string  `json:"user_name"`
	UserPhone    *string `json:"user_phone,omitempty"`
}

const detailQuery = `SELECT b.id, b.hall_id, b.user_id, DATE_FORMAT(b.booking_date, '%Y-%m-%d'),
       b.start_time, b.end_time, b.status, b.purpose, b.attendees, b.admin_notes, b.created_at, b.updated_at,
       h.name, h.capacity, u.email, u.full_name, u.phone
       FROM bookings b
       JOIN halls h ON h.id = b.hall_id
       JOIN users u ON u.id = b.user_id`

// scanDetail reads one detailQuery row.
func scanDetail(scan func(dest ...any) error) (*BookingDetail, error) {
	var d BookingDetail
	var notes, phone sql.NullString
	if err := scan(
		&d.ID, &d.HallID, &d.UserID, &d.Date,
		&d.StartTime, &d.EndTime, &d.Status, &d.Purpose, &d.Attendees,
		&notes, &d.CreatedAt, &d.UpdatedAt,
		&d.HallName, &d.HallCapacity, &d.UserEmail, &d.UserName, &phone,
	); err != nil {
		return nil, err
	}
	if notes.Valid {
		n := notes.String
		d.AdminNotes = &n
	}
	if phone.Valid {
		p := phone.String
		d.UserPhone = &p
	}
	return &d, nil
}

// GetDetail returns one booking with hall and requester context.
func (r *BookingRepo) GetDetail(ctx context.Context, id uint64) (*BookingDetail, error) {
	q := detailQuery + ` WHERE b.id = ?`
	d, err := scanDetail(r.db.QueryRowContext(ctx, q, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return d, nil
}

// ListByUser returns all bookings created by the given user, newest
// first, with hall details for display.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	q := detailQuery + ` WHERE b.user_id = ? ORDER BY b.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	return collectDetails(rows)
}

// ListAll returns every booking with hall and requester details for
// the admin dashboard, newest first. An optional status filters the
// result; pass the empty string for all statuses.
func (r *BookingRepo) ListAll(ctx context.Context, status string) ([]BookingDetail, error) {
	q := detailQuery
	args := []any{}
	if status != "" {
		q += ` WHERE b.status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY b.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return collectDetails(rows)
}

func collectDetails(rows *sql.Rows) ([]BookingDetail, error) {
	defer rows.Close()
	out := make([]BookingDetail, 0)
	for rows.Next() {
		d, err := scanDetail(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
