// Package event defines the domain events emitted after a successful write
// and the publishers that deliver them to the message broker.
package event

import (
	"time"
)

// Routing keys on the events exchange.
const (
	MovieCreated    = "movie.created"
	MovieUpdated    = "movie.updated"
	MovieDeleted    = "movie.deleted"
	ShowtimeCreated = "showtime.created"
	ShowtimeUpdated = "showtime.updated"
	ShowtimeDeleted = "showtime.deleted"
	BookingCreated  = "booking.created"
)

// Event is the envelope written to the broker. Payload carries the
// persisted record (or the deleted key) as returned to the API caller.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

func New(eventType string, payload any) Event {
	return Event{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}
