package collectionview

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"curio/internal/domain"
)

// ErrConfiguration is the sentinel for renderer configuration errors:
// unregistered keys, nil factories, and instances that fail the capability
// check. Render passes failing with it leave the slots empty.
var ErrConfiguration = errors.New("invalid renderer configuration")

// ItemFactory constructs an item renderer bound to one record. The record is
// cloned before the factory sees it, so the instance's view of the data is
// immutable even if the host mutates the source element afterwards.
type ItemFactory func(item domain.Item) ItemRenderer

// HeaderFactory constructs a header renderer.
type HeaderFactory func() HeaderRenderer

// Registry maps renderer keys to constructors. It stands in for dynamic
// type-reference instantiation: the host passes keys, the view resolves them
// here at render time.
type Registry struct {
	mu      sync.RWMutex
	items   map[string]ItemFactory
	headers map[string]HeaderFactory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		items:   make(map[string]ItemFactory),
		headers: make(map[string]HeaderFactory),
	}
}

// RegisterItem associates a key with an item renderer factory.
func (r *Registry) RegisterItem(key string, factory ItemFactory) error {
	if key == "" {
		return fmt.Errorf("%w: empty item renderer key", ErrConfiguration)
	}
	if factory == nil {
		return fmt.Errorf("%w: nil factory for item renderer %q", ErrConfiguration, key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[key]; exists {
		return fmt.Errorf("%w: item renderer %q already registered", ErrConfiguration, key)
	}
	r.items[key] = factory
	return nil
}

// RegisterHeader associates a key with a header renderer factory.
func (r *Registry) RegisterHeader(key string, factory HeaderFactory) error {
	if key == "" {
		return fmt.Errorf("%w: empty header renderer key", ErrConfiguration)
	}
	if factory == nil {
		return fmt.Errorf("%w: nil factory for header renderer %q", ErrConfiguration, key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.headers[key]; exists {
		return fmt.Errorf("%w: header renderer %q already registered", ErrConfiguration, key)
	}
	r.headers[key] = factory
	return nil
}

// newItem resolves a key and instantiates a capability-checked item renderer
// bound to a clone of the given record.
func (r *Registry) newItem(key string, item domain.Item) (ItemRenderer, error) {
	r.mu.RLock()
	factory, ok := r.items[key]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: item renderer %q not registered", ErrConfiguration, key)
	}

	inst := factory(item.Clone())
	if err := checkCapability(key, inst); err != nil {
		return nil, err
	}
	return inst, nil
}

// newHeader resolves a key and instantiates a capability-checked header
// renderer.
func (r *Registry) newHeader(key string) (HeaderRenderer, error) {
	r.mu.RLock()
	factory, ok := r.headers[key]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: header renderer %q not registered", ErrConfiguration, key)
	}

	inst := factory()
	if err := checkCapability(key, inst); err != nil {
		return nil, err
	}
	return inst, nil
}

// checkCapability verifies the structural contract at instantiation time.
func checkCapability(key string, r Renderer) error {
	if r == nil || isNilValue(r) {
		return fmt.Errorf("%w: factory for %q returned nil instance", ErrConfiguration, key)
	}
	if r.Broker() == nil {
		return fmt.Errorf("%w: renderer %q exposes no event broker", ErrConfiguration, key)
	}
	return nil
}

// isNilValue reports whether an interface holds a typed nil, which would slip
// past a plain nil comparison.
func isNilValue(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
