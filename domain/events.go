package domain

import (
	"context"
	"time"
)

// EventType names an in-page signal
type EventType string

const (
	// ProductUpdatedEvent is broadcast after any product create or update
	ProductUpdatedEvent EventType = "product-updated"
)

// Event is a broadcast signal; TabID is empty when it concerns every tab
type Event struct {
	Type      EventType `json:"type"`
	TabID     string    `json:"tab_id,omitempty"`
	ProductID int       `json:"product_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent creates an event stamped with the current time
func NewEvent(eventType EventType, tabID string) Event {
	return Event{
		Type:      eventType,
		TabID:     tabID,
		Timestamp: time.Now().UTC(),
	}
}

// WithProduct sets the product the event refers to
func (e Event) WithProduct(id int) Event {
	e.ProductID = id
	return e
}

// EventHandler consumes a broadcast event
type EventHandler func(ctx context.Context, event Event)

// EventBus broadcasts in-page signals
type EventBus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(ctx context.Context, eventType EventType, handler EventHandler) (unsubscribe func(), err error)
	Close() error
}
