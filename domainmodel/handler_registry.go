package domainmodel

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrEmptyEventType is returned when a handler is registered under an empty event type.
	ErrEmptyEventType = errors.New("event type must not be empty")

	// ErrNilEventHandler is returned when a nil handler is registered.
	ErrNilEventHandler = errors.New("event handler must not be nil")

	// ErrHandlerAlreadyRegistered is returned when an event type already has a handler.
	ErrHandlerAlreadyRegistered = errors.New("a handler is already registered for this event type")
)

// EventHandler handles a single domain event. Handle blocks until the
// handler's work is complete; the Dispatcher waits for it before moving on to
// the next event.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
}

// EventHandlerFunc adapts a plain function to the EventHandler interface.
type EventHandlerFunc func(ctx context.Context, event DomainEvent) error

// Handle calls the wrapped function.
func (f EventHandlerFunc) Handle(ctx context.Context, event DomainEvent) error {
	return f(ctx, event)
}

// HandlerResolver is the capability the Dispatcher consumes: given an event
// type, return the handler for it or report absence. Implementations must be
// safe for concurrent reads.
type HandlerResolver interface {
	Resolve(eventType EventTypeString) (EventHandler, bool)
}

// HandlerRegistry is an explicit, type-keyed handler map satisfying
// HandlerResolver. It is meant to be populated once at startup; Register and
// Resolve are nevertheless guarded so concurrent use is safe.
type HandlerRegistry struct {
	mu       sync.RWMutex
	handlers map[EventTypeString]EventHandler
}

// NewHandlerRegistry creates an empty HandlerRegistry.
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{
		handlers: make(map[EventTypeString]EventHandler),
	}
}

// Register binds a handler to an event type.
// Each event type takes exactly one handler; registering twice is an error.
func (r *HandlerRegistry) Register(eventType EventTypeString, handler EventHandler) error {
	if eventType == "" {
		return ErrEmptyEventType
	}

	if handler == nil {
		return ErrNilEventHandler
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[eventType]; exists {
		return ErrHandlerAlreadyRegistered
	}

	r.handlers[eventType] = handler

	return nil
}

// RegisterFunc binds a plain function to an event type.
func (r *HandlerRegistry) RegisterFunc(eventType EventTypeString, fn EventHandlerFunc) error {
	return r.Register(eventType, fn)
}

// Resolve returns the handler for the event type, or false if none is registered.
func (r *HandlerRegistry) Resolve(eventType EventTypeString) (EventHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handler, found := r.handlers[eventType]

	return handler, found
}

// Ensure HandlerRegistry implements HandlerResolver.
var _ HandlerResolver = (*HandlerRegistry)(nil)
