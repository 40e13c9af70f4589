package core

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/domain-model-go/domainmodel"
)

// ProjectEntityKind is the kind tag of the Project aggregate.
const ProjectEntityKind = "Project"

// ErrEmptyProjectName is returned when a project is built or renamed with an empty name.
var ErrEmptyProjectName = errors.New("project name must not be empty")

// Project is a multi-tenant aggregate root. State changes go through its
// business methods, which stamp the audit fields and record the matching
// domain events at the moment of the change.
type Project struct {
	domainmodel.SecuredEntityBase

	name ProjectNameString
}

// BuildProject creates a new Project for the tenant, owned and created by the
// given owner, and records a ProjectCreated event.
func BuildProject(tenantID uuid.UUID, ownerID uuid.UUID, name ProjectNameString) (*Project, error) {
	if name == "" {
		return nil, ErrEmptyProjectName
	}

	base, err := domainmodel.BuildSecuredEntityBase(ProjectEntityKind, tenantID, ownerID)
	if err != nil {
		return nil, err
	}

	project := &Project{
		SecuredEntityBase: base,
		name:              name,
	}

	project.MarkCreatedBy(ownerID)
	project.RecordDomainEvent(
		BuildProjectCreated(project.EntityID(), tenantID, ownerID, name, time.Now()))

	return project, nil
}

// RehydrateProject rebuilds a Project from its persisted snapshot.
// No events are recorded; rehydration is not a state change.
func RehydrateProject(state domainmodel.SecuredEntityState, name ProjectNameString) (*Project, error) {
	if name == "" {
		return nil, ErrEmptyProjectName
	}

	base, err := domainmodel.RehydrateSecuredEntityBase(ProjectEntityKind, state)
	if err != nil {
		return nil, err
	}

	return &Project{
		SecuredEntityBase: base,
		name:              name,
	}, nil
}

// Name returns the current project name.
func (p *Project) Name() ProjectNameString {
	return p.name
}

// Rename changes the project name and records a ProjectRenamed event.
// Renaming to the current name is a no-op.
func (p *Project) Rename(newName ProjectNameString, actorID uuid.UUID) error {
	if newName == "" {
		return ErrEmptyProjectName
	}

	if newName == p.name {
		return nil
	}

	oldName := p.name
	p.name = newName
	p.MarkModifiedBy(actorID)
	p.RecordDomainEvent(
		BuildProjectRenamed(p.EntityID(), oldName, newName, actorID, time.Now()))

	return nil
}

// Archive soft-deletes the project and records a ProjectArchived event.
// Archiving an already archived project is a no-op.
func (p *Project) Archive(actorID uuid.UUID) {
	if p.IsDeleted() {
		return
	}

	p.MarkDeletedBy(actorID)
	p.RecordDomainEvent(
		BuildProjectArchived(p.EntityID(), actorID, time.Now()))
}

// Restore undoes a soft delete and records a ProjectRestored event.
// Restoring a project that is not archived is a no-op.
func (p *Project) Restore(actorID uuid.UUID) {
	if !p.IsDeleted() {
		return
	}

	p.MarkUndeleted()
	p.MarkModifiedBy(actorID)
	p.RecordDomainEvent(
		BuildProjectRestored(p.EntityID(), actorID, time.Now()))
}

// TransferToTenant moves the project to another tenant and records a
// ProjectMovedToTenant event. Transferring to the current tenant is a no-op.
func (p *Project) TransferToTenant(newTenantID uuid.UUID, actorID uuid.UUID) {
	if newTenantID == p.TenantID() {
		return
	}

	fromTenantID := p.TenantID()
	p.ChangeTenant(newTenantID)
	p.MarkModifiedBy(actorID)
	p.RecordDomainEvent(
		BuildProjectMovedToTenant(p.EntityID(), fromTenantID, newTenantID, actorID, time.Now()))
}
