package domainmodel

import (
	"time"
)

// EventTypeString is an alias type for the string identifier of a domain event type.
type EventTypeString = string

// DomainEvents is an alias type for a slice of DomainEvent.
type DomainEvents = []DomainEvent

// DomainEvent represents an immutable record of a significant state change of
// a single entity.
//
// Concrete events should be value types constructed with a factory method and
// never mutated afterwards. The event type string is the key used by the
// Dispatcher to resolve a handler, so it must be stable and unique per
// concrete event type.
type DomainEvent interface {
	// EventType returns the string identifier for this event type.
	EventType() EventTypeString
	// HasOccurredAt returns when this event occurred.
	HasOccurredAt() time.Time
	// EntityID returns the identity of the entity this event concerns.
	EntityID() EntityIDValue
}

// OccurredAt represents when a domain event occurred.
type OccurredAt = time.Time

// ToOccurredAt converts a time to OccurredAt with UTC normalization and microsecond precision.
func ToOccurredAt(t time.Time) OccurredAt {
	return t.UTC().Truncate(time.Microsecond)
}
