package core

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/domain-model-go/domainmodel"
)

// ProjectRestoredEventType is the event type identifier.
const ProjectRestoredEventType = "ProjectRestored"

// ProjectRestored records that an archived project was brought back.
type ProjectRestored struct {
	ProjectID  uuid.UUID
	ActorID    uuid.UUID
	OccurredAt domainmodel.OccurredAt
}

// BuildProjectRestored is the factory method for ProjectRestored.
func BuildProjectRestored(projectID uuid.UUID, actorID uuid.UUID, occurredAt time.Time) domainmodel.DomainEvent {
	return ProjectRestored{
		ProjectID:  projectID,
		ActorID:    actorID,
		OccurredAt: domainmodel.ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ProjectRestored) EventType() domainmodel.EventTypeString {
	return ProjectRestoredEventType
}

// HasOccurredAt returns when this event occurred.
func (e ProjectRestored) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// EntityID returns the identity of the project this event concerns.
func (e ProjectRestored) EntityID() domainmodel.EntityIDValue {
	return e.ProjectID
}
