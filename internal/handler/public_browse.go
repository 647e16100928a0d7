// Package handler exposes HTTP handlers for both authenticated and public
// endpoints. This file defines the public browsing API: unauthenticated
// users can list halls and check a hall's availability for a date without
// an account. Sensitive fields are filtered from responses.

package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Girish14j/Iskcon-bhakti-booking/internal/availability"
	"github.com/Girish14j/Iskcon-bhakti-booking/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated browsing.
type PublicHandler struct {
	HallRepo    *repository.HallRepo
	BookingRepo *repository.BookingRepo
	Window      availability.Interval // daily operating window
}

// PublicHall represents a hall exposed via the public API. It contains
// only safe fields.
type PublicHall struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Capacity    uint32  `json:"capacity"`
}

// GetPublicHalls lists all active halls. Response JSON contains an "items"
// array of PublicHall.
func (h *PublicHandler) GetPublicHalls(c echo.Context) error {
	ctx := c.Request().Context()
	halls, err := h.HallRepo.ListActive(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicHall, 0, len(halls))
	for _, hall := range halls {
		out = append(out, PublicHall{ID: hall.ID, Name: hall.Name, Description: hall.Description, Capacity: hall.Capacity})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetPublicHall returns a single active hall by ID.
func (h *PublicHandler) GetPublicHall(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	hall, err := h.HallRepo.GetByID(ctx, id)
	if err != nil {
		if err == availability.ErrHallNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !hall.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
	}
	return c.JSON(http.StatusOK, PublicHall{ID: hall.ID, Name: hall.Name, Description: hall.Description, Capacity: hall.Capacity})
}

// GetHallAvailability returns the free time slots of a hall for a given
// date (?date=YYYY-MM-DD), computed over the operating window from the
// hall's pending and approved bookings.
func (h *PublicHandler) GetHallAvailability(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	date := c.QueryParam("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	hall, err := h.HallRepo.GetByID(ctx, id)
	if err != nil {
		if err == availability.ErrHallNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !hall.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
	}

	bookings, err := h.BookingRepo.ListActiveForHallDate(ctx, id, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	free := availability.FreeSlots(bookings, h.Window.Start, h.Window.End)

	return c.JSON(http.StatusOK, echo.Map{
		"hall_id":         hall.ID,
		"hall_name":       hall.Name,
		"date":            date,
		"operating_hours": h.Window.String(),
		"free_slots":      free,
	})
}
