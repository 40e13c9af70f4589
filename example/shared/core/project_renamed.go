package core

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/domain-model-go/domainmodel"
)

// ProjectRenamedEventType is the event type identifier.
const ProjectRenamedEventType = "ProjectRenamed"

// ProjectRenamed records that a project got a new name.
type ProjectRenamed struct {
	ProjectID  uuid.UUID
	OldName    ProjectNameString
	NewName    ProjectNameString
	ActorID    uuid.UUID
	OccurredAt domainmodel.OccurredAt
}

// BuildProjectRenamed is the factory method for ProjectRenamed.
func BuildProjectRenamed(
	projectID uuid.UUID,
	oldName ProjectNameString,
	newName ProjectNameString,
	actorID uuid.UUID,
	occurredAt time.Time,
) domainmodel.DomainEvent {

	return ProjectRenamed{
		ProjectID:  projectID,
		OldName:    oldName,
		NewName:    newName,
		ActorID:    actorID,
		OccurredAt: domainmodel.ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ProjectRenamed) EventType() domainmodel.EventTypeString {
	return ProjectRenamedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ProjectRenamed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// EntityID returns the identity of the project this event concerns.
func (e ProjectRenamed) EntityID() domainmodel.EntityIDValue {
	return e.ProjectID
}
