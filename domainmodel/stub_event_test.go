package domainmodel_test

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/domain-model-go/domainmodel"
)

// stubEvent is a minimal DomainEvent for exercising the event log and the dispatcher.
type stubEvent struct {
	eventType  domainmodel.EventTypeString
	entityID   uuid.UUID
	occurredAt time.Time
}

func buildStubEvent(eventType domainmodel.EventTypeString, entityID uuid.UUID) stubEvent {
	return stubEvent{
		eventType:  eventType,
		entityID:   entityID,
		occurredAt: domainmodel.ToOccurredAt(time.Now()),
	}
}

func (e stubEvent) EventType() domainmodel.EventTypeString {
	return e.eventType
}

func (e stubEvent) HasOccurredAt() time.Time {
	return e.occurredAt
}

func (e stubEvent) EntityID() domainmodel.EntityIDValue {
	return e.entityID
}
