package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Girish14j/Iskcon-bhakti-booking/internal/availability"
	"github.com/Girish14j/Iskcon-bhakti-booking/internal/queue"
	"github.com/Girish14j/Iskcon-bhakti-booking/internal/repository"
	queue_publisher "github.com/Girish14j/Iskcon-bhakti-booking/internal/service"

	"github.com/Girish14j/Iskcon-bhakti-booking/internal/model"
)

// BookingHandler bundles everything the booking endpoints need: the
// submission validator, the repositories and the operating window.
type BookingHandler struct {
	Validator   *availability.Validator
	BookingRepo *repository.BookingRepo
	HallRepo    *repository.HallRepo
	Window      availability.Interval
	MaxMinutes  int // longest allowed booking, 0 disables the cap
}

// NewBookingHandler constructs a BookingHandler and panics if any
// dependency is nil.
func NewBookingHandler(v *availability.Validator, b *repository.BookingRepo, h *repository.HallRepo, window availability.Interval, maxHours int) *BookingHandler {
	if v == nil || b == nil || h == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Validator: v, BookingRepo: b, HallRepo: h, Window: window, MaxMinutes: maxHours * 60}
}

type createBookingReq struct {
	HallID        uint64  `json:"hall_id"`
	Date          string  `json:"date"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	DurationHours float64 `json:"duration_hours"`
	Attendees     uint32  `json:"attendees"`
	Purpose       string  `json:"purpose"`
}

// Create handles POST /v1/bookings. The submission runs through the
// validator first; a clean submission is written under the per-hall lock
// so two concurrent requests for the same slot cannot both land.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Purpose = strings.TrimSpace(req.Purpose)
	if req.HallID == 0 || req.Purpose == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hall_id and purpose required"})
	}
	if req.Attendees == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "attendees must be positive"})
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	candidate, err := h.Validator.Validate(ctx, availability.Submission{
		HallID:        req.HallID,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		DurationHours: req.DurationHours,
		Attendees:     req.Attendees,
		Purpose:       req.Purpose,
	})
	if err != nil {
		return h.writeValidationError(c, err)
	}
	if h.MaxMinutes > 0 && candidate.Interval.End-candidate.Interval.Start > h.MaxMinutes {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking exceeds maximum duration"})
	}

	booking := model.Booking{
		HallID:    candidate.Hall.ID,
		UserID:    uid,
		Date:      req.Date,
		StartTime: candidate.Interval.StartHHMM(),
		EndTime:   candidate.Interval.EndHHMM(),
		Purpose:   req.Purpose,
		Attendees: req.Attendees,
	}
	if err := h.BookingRepo.CreateIfFree(ctx, &booking); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return h.writeSlotTaken(c, ctx, candidate.Hall, req.Date)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}

	h.notifyRequested(booking.ID)

	return c.JSON(http.StatusCreated, echo.Map{"booking": booking, "hall": candidate.Hall.Name})
}

// writeValidationError maps validator errors onto HTTP responses: missing
// hall is 404, an over-capacity request is 422 with better-sized halls,
// a slot conflict is 409 with the remaining free slots, and malformed
// times are 400.
func (h *BookingHandler) writeValidationError(c echo.Context, err error) error {
	var capErr *availability.CapacityError
	var conflictErr *availability.ConflictError
	switch {
	case errors.Is(err, availability.ErrHallNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
	case errors.As(err, &capErr):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error":        "capacity exceeded",
			"hall":         capErr.Hall.Name,
			"capacity":     capErr.Hall.Capacity,
			"attendees":    capErr.Attendees,
			"alternatives": capErr.Alternatives,
		})
	case errors.As(err, &conflictErr):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":      "slot unavailable",
			"hall":       conflictErr.Hall.Name,
			"requested":  conflictErr.Requested.String(),
			"free_slots": conflictErr.FreeSlots,
		})
	case errors.Is(err, availability.ErrInvalidTime), errors.Is(err, availability.ErrInvalidRange):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid time range"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "validation failed"})
	}
}

// writeSlotTaken reports a write-time conflict (the submission validated
// but lost the race) with the same shape as a validation conflict.
func (h *BookingHandler) writeSlotTaken(c echo.Context, ctx context.Context, hall *model.Hall, date string) error {
	bookings, err := h.BookingRepo.ListActiveForHallDate(ctx, hall.ID, date)
	if err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "slot unavailable", "hall": hall.Name})
	}
	free := availability.FreeSlots(bookings, h.Window.Start, h.Window.End)
	return c.JSON(http.StatusConflict, echo.Map{
		"error":      "slot unavailable",
		"hall":       hall.Name,
		"free_slots": free,
	})
}

// notifyRequested loads the joined booking detail and publishes the
// booking.requested event off the request path. Publish failures only
// log; the booking itself is already committed.
func (h *BookingHandler) notifyRequested(bookingID uint64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		d, err := h.BookingRepo.GetDetail(ctx, bookingID)
		if err != nil {
			log.Printf("booking: load detail for event failed: %v", err)
			return
		}
		_ = queue_publisher.PublishBookingRequested(ctx, queue.BookingRequestedEvent{
			BookingID:   d.ID,
			UserID:      d.UserID,
			UserEmail:   d.UserEmail,
			UserName:    d.UserName,
			HallID:      d.HallID,
			HallName:    d.HallName,
			Date:        d.Date,
			StartTime:   d.StartTime,
			EndTime:     d.EndTime,
			Attendees:   d.Attendees,
			Purpose:     d.Purpose,
			RequestedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}()
}

// ListMine handles GET /v1/my-bookings.
func (h *BookingHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	items, err := h.BookingRepo.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetOne handles GET /v1/bookings/:id. Owners see their own bookings;
// admins see any.
func (h *BookingHandler) GetOne(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	d, err := h.BookingRepo.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	role, _ := c.Get("role").(string)
	if d.UserID != uid && role != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, d)
}

// Cancel handles DELETE /v1/bookings/:id. Only the owner may cancel and
// only while the booking is still pending.
func (h *BookingHandler) Cancel(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	switch err := h.BookingRepo.CancelOwn(ctx, id, uid); {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, repository.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrNotCancellable):
		return c.JSON(http.StatusConflict, echo.Map{"error": "only pending bookings can be cancelled"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
}
