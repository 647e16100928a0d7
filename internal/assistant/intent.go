// Package assistant implements the conversational front end of the
// booking service. An external language model extracts a structured
// intent from the user's message; everything after that point is the
// deterministic scheduling logic of the availability engine, rendered
// as plain-text suggestions.
package assistant

import "context"

// Intent kinds produced by the extraction model.
const (
	IntentCheckAvailability = "check_availability"
	IntentCreateBooking     = "create_booking"
	IntentGeneral           = "general"
)

// Intent is the structured reading of a user message. Zero values
// mean the message did not mention the field: empty strings for
// date/times/hall name, zero for the attendee count.
type Intent struct {
	Intent    string // one of the Intent* constants
	Date      string // "YYYY-MM-DD"
	StartTime string // "HH:MM"
	EndTime   string // "HH:MM"
	People    uint32 // requested attendee count
	HallName  string // hall mentioned by name
}

// Extractor turns free text into an Intent and handles the general
// chat fallback. The production implementation calls an external
// chat-completions API; tests substitute a canned one.
type Extractor interface {
	// ExtractIntent reads the structured intent out of a message.
	ExtractIntent(ctx context.Context, message string) (Intent, error)
	// SmallTalk answers a message that carries no booking intent.
	SmallTalk(ctx context.Context, message string) (string, error)
}
