// Package collectionview provides a generic, renderer-pluggable collection
// component. The host supplies a page of items plus registry keys for a
// header renderer and an item renderer; the view instantiates one header and
// one item renderer per record, mounts them in data order, and forwards every
// event they emit to the host as HeaderEventMsg/ItemEventMsg.
package collectionview

import (
	tea "github.com/charmbracelet/bubbletea"

	"curio/internal/domain"
	"curio/internal/pubsub"
)

// Event is a named event emitted by a renderer instance. The payload is
// forwarded to the host unchanged.
type Event struct {
	Name    string
	Payload any
}

// Renderer is the capability contract every renderer must satisfy: an
// outbound event broker plus the mount-time lifecycle. Instances are
// single-use: construction, zero or more emitted events while mounted, then
// Destroy. A destroyed instance is never remounted.
type Renderer interface {
	// Broker is the instance's outbound event channel. The collection view
	// subscribes to it before mounting; a nil broker is a configuration
	// error caught at instantiation.
	Broker() *pubsub.Broker[Event]

	// Update receives messages relayed by the collection view while mounted.
	Update(msg tea.Msg) tea.Cmd

	// View renders the instance at the given width.
	View(width int) string

	// Destroy releases the instance. Called exactly once, after the
	// collection view has cancelled its subscription.
	Destroy()
}

// HeaderRenderer presents the collection header. It receives no data.
type HeaderRenderer interface {
	Renderer
}

// ItemRenderer presents a single record. The bound item is fixed at
// construction and must not change for the instance's lifetime.
type ItemRenderer interface {
	Renderer

	// Item returns the record bound at construction.
	Item() domain.Item
}

// Base is an embeddable implementation of the event side of the renderer
// contract. Concrete renderers embed it and call Emit.
type Base struct {
	broker *pubsub.Broker[Event]
}

// NewBase creates the event broker for a renderer instance.
func NewBase() Base {
	return Base{broker: pubsub.NewBroker[Event]()}
}

// Broker returns the instance's outbound event broker.
func (b *Base) Broker() *pubsub.Broker[Event] {
	return b.broker
}

// Emit publishes a named event to the instance's subscribers.
func (b *Base) Emit(name string, payload any) {
	if b.broker == nil {
		return
	}
	b.broker.Publish(pubsub.EmittedEvent, Event{Name: name, Payload: payload})
}

// Destroy closes the broker. Renderers needing extra teardown override this
// and call it last.
func (b *Base) Destroy() {
	if b.broker != nil {
		b.broker.Close()
	}
}
