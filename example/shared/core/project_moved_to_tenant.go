package core

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/domain-model-go/domainmodel"
)

// ProjectMovedToTenantEventType is the event type identifier.
const ProjectMovedToTenantEventType = "ProjectMovedToTenant"

// ProjectMovedToTenant records that a project was transferred to another
// tenant, which also moves it to another storage partition.
type ProjectMovedToTenant struct {
	ProjectID    uuid.UUID
	FromTenantID uuid.UUID
	ToTenantID   uuid.UUID
	ActorID      uuid.UUID
	OccurredAt   domainmodel.OccurredAt
}

// BuildProjectMovedToTenant is the factory method for ProjectMovedToTenant.
func BuildProjectMovedToTenant(
	projectID uuid.UUID,
	fromTenantID uuid.UUID,
	toTenantID uuid.UUID,
	actorID uuid.UUID,
	occurredAt time.Time,
) domainmodel.DomainEvent {

	return ProjectMovedToTenant{
		ProjectID:    projectID,
		FromTenantID: fromTenantID,
		ToTenantID:   toTenantID,
		ActorID:      actorID,
		OccurredAt:   domainmodel.ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ProjectMovedToTenant) EventType() domainmodel.EventTypeString {
	return ProjectMovedToTenantEventType
}

// HasOccurredAt returns when this event occurred.
func (e ProjectMovedToTenant) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// EntityID returns the identity of the project this event concerns.
func (e ProjectMovedToTenant) EntityID() domainmodel.EntityIDValue {
	return e.ProjectID
}
