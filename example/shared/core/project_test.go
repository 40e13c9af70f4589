package core_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/domain-model-go/domainmodel"
	"github.com/AntonStoeckl/domain-model-go/example/shared/core"
)

func Test_BuildProject_RecordsProjectCreated(t *testing.T) {
	// arrange
	tenantID := uuid.New()
	ownerID := uuid.New()

	// act
	project, err := core.BuildProject(tenantID, ownerID, "Apollo")

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.ProjectEntityKind, project.EntityKind())
	assert.Equal(t, tenantID.String(), project.PartitionKey())
	assert.Equal(t, core.ProjectNameString("Apollo"), project.Name())

	createdBy, hasCreatedBy := project.CreatedBy()
	require.True(t, hasCreatedBy)
	assert.Equal(t, ownerID, createdBy)

	events := project.DomainEvents()
	require.Len(t, events, 1)
	created, ok := events[0].(core.ProjectCreated)
	require.True(t, ok)
	assert.Equal(t, project.EntityID(), created.ProjectID)
	assert.Equal(t, tenantID, created.TenantID)
	assert.Equal(t, ownerID, created.OwnerID)
	assert.Equal(t, core.ProjectNameString("Apollo"), created.Name)
}

func Test_BuildProject_RejectsEmptyName(t *testing.T) {
	// act
	project, err := core.BuildProject(uuid.New(), uuid.New(), "")

	// assert
	assert.ErrorIs(t, err, core.ErrEmptyProjectName)
	assert.Nil(t, project)
}

func Test_Project_Rename(t *testing.T) {
	// arrange
	actorID := uuid.New()
	project, err := core.BuildProject(uuid.New(), uuid.New(), "Apollo")
	require.NoError(t, err)

	// act
	err = project.Rename("Artemis", actorID)

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.ProjectNameString("Artemis"), project.Name())

	modifiedBy, hasModifiedBy := project.ModifiedBy()
	require.True(t, hasModifiedBy)
	assert.Equal(t, actorID, modifiedBy)

	events := project.DomainEvents()
	require.Len(t, events, 2)
	renamed, ok := events[1].(core.ProjectRenamed)
	require.True(t, ok)
	assert.Equal(t, core.ProjectNameString("Apollo"), renamed.OldName)
	assert.Equal(t, core.ProjectNameString("Artemis"), renamed.NewName)
	assert.Equal(t, actorID, renamed.ActorID)
}

func Test_Project_RenameToTheCurrentNameIsANoOp(t *testing.T) {
	// arrange
	project, err := core.BuildProject(uuid.New(), uuid.New(), "Apollo")
	require.NoError(t, err)

	// act
	err = project.Rename("Apollo", uuid.New())

	// assert
	require.NoError(t, err)
	assert.Len(t, project.DomainEvents(), 1)
}

func Test_Project_RenameRejectsEmptyName(t *testing.T) {
	// arrange
	project, err := core.BuildProject(uuid.New(), uuid.New(), "Apollo")
	require.NoError(t, err)

	// act
	err = project.Rename("", uuid.New())

	// assert
	assert.ErrorIs(t, err, core.ErrEmptyProjectName)
	assert.Equal(t, core.ProjectNameString("Apollo"), project.Name())
	assert.Len(t, project.DomainEvents(), 1)
}

func Test_Project_ArchiveAndRestoreCycle(t *testing.T) {
	// arrange
	actorID := uuid.New()
	project, err := core.BuildProject(uuid.New(), uuid.New(), "Apollo")
	require.NoError(t, err)

	// act
	project.Archive(actorID)

	// assert
	assert.True(t, project.IsDeleted())
	deletedBy, hasDeletedBy := project.DeletedBy()
	require.True(t, hasDeletedBy)
	assert.Equal(t, actorID, deletedBy)

	// act again: archiving twice must not record a second event
	project.Archive(actorID)
	assert.Len(t, project.DomainEvents(), 2)

	// act again: restore clears the deletion
	project.Restore(actorID)
	assert.False(t, project.IsDeleted())
	_, hasDeletedBy = project.DeletedBy()
	assert.False(t, hasDeletedBy)

	events := project.DomainEvents()
	require.Len(t, events, 3)
	assert.IsType(t, core.ProjectArchived{}, events[1])
	assert.IsType(t, core.ProjectRestored{}, events[2])
}

func Test_Project_RestoreWithoutArchiveIsANoOp(t *testing.T) {
	// arrange
	project, err := core.BuildProject(uuid.New(), uuid.New(), "Apollo")
	require.NoError(t, err)

	// act
	project.Restore(uuid.New())

	// assert
	assert.Len(t, project.DomainEvents(), 1)
}

func Test_Project_TransferToTenant(t *testing.T) {
	// arrange
	oldTenantID := uuid.New()
	newTenantID := uuid.New()
	actorID := uuid.New()
	project, err := core.BuildProject(oldTenantID, uuid.New(), "Apollo")
	require.NoError(t, err)

	// act
	project.TransferToTenant(newTenantID, actorID)

	// assert
	assert.Equal(t, newTenantID, project.TenantID())
	assert.Equal(t, newTenantID.String(), project.PartitionKey())

	events := project.DomainEvents()
	require.Len(t, events, 2)
	moved, ok := events[1].(core.ProjectMovedToTenant)
	require.True(t, ok)
	assert.Equal(t, oldTenantID, moved.FromTenantID)
	assert.Equal(t, newTenantID, moved.ToTenantID)
}

func Test_Project_TransferToTheCurrentTenantIsANoOp(t *testing.T) {
	// arrange
	tenantID := uuid.New()
	project, err := core.BuildProject(tenantID, uuid.New(), "Apollo")
	require.NoError(t, err)

	// act
	project.TransferToTenant(tenantID, uuid.New())

	// assert
	assert.Len(t, project.DomainEvents(), 1)
	assert.Equal(t, tenantID, project.TenantID())
}

func Test_RehydrateProject_RestoresTheSnapshotWithoutEvents(t *testing.T) {
	// arrange
	actorID := uuid.New()
	project, err := core.BuildProject(uuid.New(), uuid.New(), "Apollo")
	require.NoError(t, err)
	require.NoError(t, project.Rename("Artemis", actorID))
	state := project.SecuredState()

	// act
	rehydrated, err := core.RehydrateProject(state, project.Name())

	// assert
	require.NoError(t, err)
	assert.Empty(t, rehydrated.DomainEvents())
	assert.True(t, rehydrated.Equals(project))
	assert.Equal(t, project.PartitionKey(), rehydrated.PartitionKey())
	assert.Equal(t, project.Name(), rehydrated.Name())

	modifiedBy, hasModifiedBy := rehydrated.ModifiedBy()
	require.True(t, hasModifiedBy)
	assert.Equal(t, actorID, modifiedBy)
}

func Test_ProjectEvents_CarryNormalizedTimestamps(t *testing.T) {
	// arrange
	local := time.Date(2025, 6, 15, 14, 30, 0, 123456789, time.FixedZone("CEST", 2*60*60))

	// act
	event := core.BuildProjectCreated(uuid.New(), uuid.New(), uuid.New(), "Apollo", local)

	// assert
	occurredAt := event.HasOccurredAt()
	assert.Equal(t, time.UTC, occurredAt.Location())
	assert.Equal(t, domainmodel.ToOccurredAt(local), occurredAt)
	assert.Zero(t, occurredAt.Nanosecond()%1000)
}
