package lib

import (
	"acelera/src/types"
	"context"
	"encoding/json"
	"log"
	"time"
)

const (
	EVENT_BOOKING_CREATED   = "booking.created"
	EVENT_BOOKING_UPDATED   = "booking.updated"
	EVENT_BOOKING_PAID      = "booking.paid"
	EVENT_REQUEST_SUBMITTED = "request.submitted"
	EVENT_REQUEST_APPROVED  = "request.approved"
	EVENT_REQUEST_UPDATED   = "request.updated"
)

type DomainEvent struct {
	Type    string      `json:"type"`
	ID      string      `json:"id"`
	At      time.Time   `json:"at"`
	Payload types.JSONB `json:"payload,omitempty"`
}

func NewDomainEvent(kind, id string, payload types.JSONB) DomainEvent {
	return DomainEvent{Type: kind, ID: id, At: time.Now().UTC(), Payload: payload}
}

// EventPublisher delivers events after the change that produced them is
// committed. Delivery failures never undo the change.
type EventPublisher interface {
	Publish(ctx context.Context, e DomainEvent) error
}

type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, e DomainEvent) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	log.Printf("[event] %s\n", b)
	return nil
}

// RecordingPublisher keeps published events in memory.
type RecordingPublisher struct {
	Events []DomainEvent
}

func (r *RecordingPublisher) Publish(ctx context.Context, e DomainEvent) error {
	r.Events = append(r.Events, e)
	return nil
}
