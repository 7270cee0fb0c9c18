// Package pubsub provides a generic publish/subscribe event system.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
// The set is open: renderer events are published under EmittedEvent and
// carry their own name in the payload.
type EventType string

const (
	// CreatedEvent signals that a new value was produced (log entries, rows).
	CreatedEvent EventType = "created"
	// UpdatedEvent signals that an existing value changed.
	UpdatedEvent EventType = "updated"
	// EmittedEvent is the type used for renderer-originated events.
	EmittedEvent EventType = "emitted"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
