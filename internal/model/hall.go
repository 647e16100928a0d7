package model

import "time"

// Hall represents a bookable venue with a fixed seating capacity.
// Halls are maintained by an external administrative process and are
// read-only to this service: the API lists them and checks booking
// requests against them but never mutates them.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – unique human readable name of the hall.
//  Description – optional description shown on the browse pages.
//  Capacity    – maximum number of attendees the hall seats.
//  IsActive    – whether the hall can currently be booked.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Hall struct {
	ID          uint64    `json:"id"`                    // halls.id
	Name        string    `json:"name"`                  // halls.name
	Description *string   `json:"description,omitempty"` // halls.description (nullable)
	Capacity    uint32    `json:"capacity"`              // halls.capacity
	IsActive    bool      `json:"is_active"`             // halls.is_active
	CreatedAt   time.Time `json:"created_at"`            // halls.created_at
	UpdatedAt   time.Time `json:"updated_at"`            // halls.updated_at
}
