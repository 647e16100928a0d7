// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingRequestedEvent is published when a booking request is accepted
// into the pending state. It carries enough detail for a notification
// consumer to address the admins without querying the primary database.
type BookingRequestedEvent struct {
	BookingID   uint64 `json:"booking_id"`
	UserID      uint64 `json:"user_id"`
	UserEmail   string `json:"user_email"`
	UserName    string `json:"user_name"`
	HallID      uint64 `json:"hall_id"`
	HallName    string `json:"hall_name"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Attendees   uint32 `json:"attendees"`
	Purpose     string `json:"purpose"`
	RequestedAt string `json:"requested_at"`
}

// BookingDecidedEvent is published when an admin approves or rejects a
// pending booking. Status is the final booking status after the decision.
type BookingDecidedEvent struct {
	BookingID  uint64 `json:"booking_id"`
	UserID     uint64 `json:"user_id"`
	UserEmail  string `json:"user_email"`
	UserName   string `json:"user_name"`
	HallName   string `json:"hall_name"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Status     string `json:"status"`
	AdminNotes string `json:"admin_notes,omitempty"`
	DecidedAt  string `json:"decided_at"`
}
