// Package domainmodel provides the base abstractions for identity-driven
// domain entities, their audit metadata, and an in-process domain-event
// dispatch mechanism.
//
// The package is built for application code that persists aggregates through
// an external data-access layer: entities record domain events while they are
// mutated, the application persists the entity, hands the pending events to a
// Dispatcher, and clears the event log once dispatch succeeded.
//
// Dispatch is strictly in-memory, synchronous per call, and single-process.
// It is not a general event bus and gives no durability or delivery
// guarantees - callers that need at-least-once semantics should combine it
// with an outbox on their persistence layer.
package domainmodel
