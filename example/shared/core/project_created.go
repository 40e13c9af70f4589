package core

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/domain-model-go/domainmodel"
)

// ProjectCreatedEventType is the event type identifier.
const ProjectCreatedEventType = "ProjectCreated"

// ProjectCreated records that a project came into existence.
type ProjectCreated struct {
	ProjectID  uuid.UUID
	TenantID   uuid.UUID
	OwnerID    uuid.UUID
	Name       ProjectNameString
	OccurredAt domainmodel.OccurredAt
}

// BuildProjectCreated is the factory method for ProjectCreated.
func BuildProjectCreated(
	projectID uuid.UUID,
	tenantID uuid.UUID,
	ownerID uuid.UUID,
	name ProjectNameString,
	occurredAt time.Time,
) domainmodel.DomainEvent {

	return ProjectCreated{
		ProjectID:  projectID,
		TenantID:   tenantID,
		OwnerID:    ownerID,
		Name:       name,
		OccurredAt: domainmodel.ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ProjectCreated) EventType() domainmodel.EventTypeString {
	return ProjectCreatedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ProjectCreated) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// EntityID returns the identity of the project this event concerns.
func (e ProjectCreated) EntityID() domainmodel.EntityIDValue {
	return e.ProjectID
}
