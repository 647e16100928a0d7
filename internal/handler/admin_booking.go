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

	"github.com/Girish14j/Iskcon-bhakti-booking/internal/model"
	"github.com/Girish14j/Iskcon-bhakti-booking/internal/queue"
	"github.com/Girish14j/Iskcon-bhakti-booking/internal/repository"
	queue_publisher "github.com/Girish14j/Iskcon-bhakti-booking/internal/service"
)

// AdminBookingHandler serves the admin review endpoints. All routes are
// registered behind RequireRole("ADMIN").
type AdminBookingHandler struct {
	BookingRepo *repository.BookingRepo
}

func NewAdminBookingHandler(b *repository.BookingRepo) *AdminBookingHandler {
	if b == nil {
		panic("nil repository passed to NewAdminBookingHandler")
	}
	return &AdminBookingHandler{BookingRepo: b}
}

// List handles GET /v1/admin/bookings with an optional ?status= filter.
// Results include the requesting user's contact details so the admin can
// follow up without extra lookups.
func (h *AdminBookingHandler) List(c echo.Context) error {
	status := strings.ToLower(strings.TrimSpace(c.QueryParam("status")))
	switch status {
	case "", model.BookingPending, model.BookingApproved, model.BookingRejected:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter"})
	}
	ctx := c.Request().Context()
	items, err := h.BookingRepo.ListAll(ctx, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

type decideReq struct {
	Status     string `json:"status"` // approved | rejected
	AdminNotes string `json:"admin_notes"`
}

// Decide handles PATCH /v1/admin/bookings/:id/status. Overlapping pending
// requests never coexist (the create path already serializes per hall and
// date), so approving one cannot collide with another approval.
func (h *AdminBookingHandler) Decide(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req decideReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status != model.BookingApproved && status != model.BookingRejected {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be approved or rejected"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.BookingRepo.UpdateStatus(ctx, id, status, strings.TrimSpace(req.AdminNotes)); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	d, err := h.BookingRepo.GetDetail(ctx, id)
	if err != nil {
		// The decision is committed; only the notification is lost.
		log.Printf("admin: load detail for event failed: %v", err)
		return c.JSON(http.StatusOK, echo.Map{"id": id, "status": status})
	}
	h.notifyDecided(*d)

	return c.JSON(http.StatusOK, d)
}

// notifyDecided publishes the booking.decided event off the request path.
func (h *AdminBookingHandler) notifyDecided(d repository.BookingDetail) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		notes := ""
		if d.AdminNotes != nil {
			notes = *d.AdminNotes
		}
		_ = queue_publisher.PublishBookingDecided(ctx, queue.BookingDecidedEvent{
			BookingID:  d.ID,
			UserID:     d.UserID,
			UserEmail:  d.UserEmail,
			UserName:   d.UserName,
			HallName:   d.HallName,
			Date:       d.Date,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			Status:     d.Status,
			AdminNotes: notes,
			DecidedAt:  time.Now().UTC().Format(time.RFC3339),
		})
	}()
}
