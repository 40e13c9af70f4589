package projectaudit_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/domain-model-go/domainmodel"
	"github.com/AntonStoeckl/domain-model-go/example/features/projectaudit"
	"github.com/AntonStoeckl/domain-model-go/example/shared/core"
)

func Test_Recorder_CapturesTheFullProjectLifecycle(t *testing.T) {
	// arrange
	recorder := projectaudit.NewRecorder()
	registry := domainmodel.NewHandlerRegistry()
	err := projectaudit.RegisterAllProjectEvents(registry, recorder)
	require.NoError(t, err)

	dispatcher, err := domainmodel.BuildDispatcher(registry)
	require.NoError(t, err)

	tenantID := uuid.New()
	ownerID := uuid.New()

	project, err := core.BuildProject(tenantID, ownerID, "Apollo")
	require.NoError(t, err)
	require.NoError(t, project.Rename("Artemis", ownerID))
	project.Archive(ownerID)
	project.Restore(ownerID)
	project.TransferToTenant(uuid.New(), ownerID)

	// act
	err = dispatcher.Dispatch(context.Background(), project.DomainEvents())

	// assert
	require.NoError(t, err)
	entries := recorder.Entries()
	require.Len(t, entries, 5)
	assert.Equal(t, core.ProjectCreatedEventType, entries[0].EventType)
	assert.Equal(t, core.ProjectRenamedEventType, entries[1].EventType)
	assert.Equal(t, core.ProjectArchivedEventType, entries[2].EventType)
	assert.Equal(t, core.ProjectRestoredEventType, entries[3].EventType)
	assert.Equal(t, core.ProjectMovedToTenantEventType, entries[4].EventType)

	for _, entry := range entries {
		assert.Equal(t, project.EntityID(), entry.EntityID)
		assert.False(t, entry.RecordedAt.IsZero())
	}
}

func Test_Recorder_EntriesForEntityFiltersByEntityID(t *testing.T) {
	// arrange
	recorder := projectaudit.NewRecorder()
	registry := domainmodel.NewHandlerRegistry()
	require.NoError(t, projectaudit.RegisterAllProjectEvents(registry, recorder))

	dispatcher, err := domainmodel.BuildDispatcher(registry)
	require.NoError(t, err)

	tenantID := uuid.New()
	ownerID := uuid.New()

	first, err := core.BuildProject(tenantID, ownerID, "Apollo")
	require.NoError(t, err)
	second, err := core.BuildProject(tenantID, ownerID, "Gemini")
	require.NoError(t, err)
	require.NoError(t, second.Rename("Mercury", ownerID))

	require.NoError(t, dispatcher.Dispatch(context.Background(), first.DomainEvents()))
	require.NoError(t, dispatcher.Dispatch(context.Background(), second.DomainEvents()))

	// act
	firstEntries := recorder.EntriesForEntity(first.EntityID())
	secondEntries := recorder.EntriesForEntity(second.EntityID())

	// assert
	require.Len(t, firstEntries, 1)
	assert.Equal(t, core.ProjectCreatedEventType, firstEntries[0].EventType)
	require.Len(t, secondEntries, 2)
	assert.Equal(t, core.ProjectCreatedEventType, secondEntries[0].EventType)
	assert.Equal(t, core.ProjectRenamedEventType, secondEntries[1].EventType)
}

func Test_Recorder_EntriesReturnsACopy(t *testing.T) {
	// arrange
	recorder := projectaudit.NewRecorder()
	registry := domainmodel.NewHandlerRegistry()
	require.NoError(t, projectaudit.RegisterAllProjectEvents(registry, recorder))

	dispatcher, err := domainmodel.BuildDispatcher(registry)
	require.NoError(t, err)

	project, err := core.BuildProject(uuid.New(), uuid.New(), "Apollo")
	require.NoError(t, err)
	require.NoError(t, dispatcher.Dispatch(context.Background(), project.DomainEvents()))

	// act
	entries := recorder.Entries()
	entries[0].EventType = "Tampered"

	// assert
	assert.Equal(t, core.ProjectCreatedEventType, recorder.Entries()[0].EventType)
}

func Test_RegisterAllProjectEvents_RejectsDoubleRegistration(t *testing.T) {
	// arrange
	recorder := projectaudit.NewRecorder()
	registry := domainmodel.NewHandlerRegistry()
	require.NoError(t, projectaudit.RegisterAllProjectEvents(registry, recorder))

	// act
	err := projectaudit.RegisterAllProjectEvents(registry, recorder)

	// assert
	assert.ErrorIs(t, err, domainmodel.ErrHandlerAlreadyRegistered)
}
