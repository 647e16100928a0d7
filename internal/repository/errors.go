// Package repository defines error types that are reused across
// multiple repositories. These sentinel values allow higher layers
// such as handlers to distinguish between different failure scenarios
// without inspecting error strings. For example, ErrSlotTaken signals
// that a concurrent submission won the race for an overlapping
// interval and must be reported as a slot conflict, never as a server
// error.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrBookingNotFound is returned when a booking lookup fails.
var ErrBookingNotFound = errors.New("booking not found")

// ErrEmailExists is returned when registering a user with an email
// address that is already taken.
var ErrEmailExists = errors.New("email already exists")

// ErrSlotTaken is returned by BookingRepo.CreateIfFree when the
// re-check under the hall lock finds an overlapping pending or
// approved booking. It means another submission was written between
// the caller's validation and its write; callers report it to the
// user as a slot conflict with suggested alternatives.
var ErrSlotTaken = errors.New("slot already taken")

// ErrNotCancellable is returned when a booking cannot be cancelled in
// its current state, e.g. it was already decided by an administrator.
var ErrNotCancellable = errors.New("booking is not cancellable")
