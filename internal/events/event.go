// Package events carries aircraft lifecycle notifications to websocket
// subscribers and, when configured, to NATS.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"aircraft_manager/internal/models"
)

type Type string

const (
	Created Type = "created"
	Updated Type = "updated"
	Deleted Type = "deleted"
)

// Event describes one committed change to an aircraft. Aircraft is nil for deletions.
type Event struct {
	ID         string           `json:"id"`
	Type       Type             `json:"type"`
	AircraftID uint             `json:"aircraft_id"`
	Aircraft   *models.Aircraft `json:"aircraft,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}

func NewEvent(t Type, aircraftID uint, aircraft *models.Aircraft) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		AircraftID: aircraftID,
		Aircraft:   aircraft,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers events. Publishing happens after the change is committed,
// so callers log failures instead of failing the request.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Fanout publishes every event to each of its publishers and joins their errors.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
