package core

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/domain-model-go/domainmodel"
)

// ProjectArchivedEventType is the event type identifier.
const ProjectArchivedEventType = "ProjectArchived"

// ProjectArchived records that a project was soft-deleted.
type ProjectArchived struct {
	ProjectID  uuid.UUID
	ActorID    uuid.UUID
	OccurredAt domainmodel.OccurredAt
}

// BuildProjectArchived is the factory method for ProjectArchived.
func BuildProjectArchived(projectID uuid.UUID, actorID uuid.UUID, occurredAt time.Time) domainmodel.DomainEvent {
	return ProjectArchived{
		ProjectID:  projectID,
		ActorID:    actorID,
		OccurredAt: domainmodel.ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ProjectArchived) EventType() domainmodel.EventTypeString {
	return ProjectArchivedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ProjectArchived) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// EntityID returns the identity of the project this event concerns.
func (e ProjectArchived) EntityID() domainmodel.EntityIDValue {
	return e.ProjectID
}
