package domainmodel_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/domain-model-go/domainmodel"
)

const testEntityKind = "TestEntity"
const otherEntityKind = "OtherEntity"

func Test_BuildEntityBase_GeneratesIdentityAndStampsCreation(t *testing.T) {
	// arrange
	before := time.Now().UTC()

	// act
	entity, err := domainmodel.BuildEntityBase(testEntityKind)

	// assert
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, entity.EntityID())
	assert.Equal(t, testEntityKind, entity.EntityKind())
	assert.Equal(t, entity.EntityID().String(), entity.PartitionKey())
	assert.False(t, entity.CreatedOn().Before(before))
	assert.Equal(t, entity.CreatedOn().UnixNano(), entity.Timestamp())

	_, modified := entity.ModifiedOn()
	assert.False(t, modified)

	_, deleted := entity.DeletedOn()
	assert.False(t, deleted)
}

func Test_BuildEntityBase_CallerSuppliedValuesTakePrecedence(t *testing.T) {
	// arrange
	explicitID := uuid.New()
	explicitCreatedOn := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	// act
	entity, err := domainmodel.BuildEntityBase(
		testEntityKind,
		domainmodel.WithID(explicitID),
		domainmodel.WithCreatedOn(explicitCreatedOn),
		domainmodel.WithTimestamp(42),
		domainmodel.WithPartitionKey("custom-partition"),
	)

	// assert
	require.NoError(t, err)
	assert.Equal(t, explicitID, entity.EntityID())
	assert.Equal(t, explicitCreatedOn, entity.CreatedOn())
	assert.Equal(t, int64(42), entity.Timestamp())
	assert.Equal(t, "custom-partition", entity.PartitionKey())
}

func Test_BuildEntityBase_PartitionKeyDefaultsToExplicitID(t *testing.T) {
	// arrange
	explicitID := uuid.New()

	// act
	entity, err := domainmodel.BuildEntityBase(testEntityKind, domainmodel.WithID(explicitID))

	// assert
	require.NoError(t, err)
	assert.Equal(t, explicitID.String(), entity.PartitionKey())
}

func Test_BuildEntityBase_Errors(t *testing.T) {
	tests := []struct {
		name        string
		build       func() (domainmodel.EntityBase, error)
		expectedErr error
	}{
		{
			name: "empty_kind",
			build: func() (domainmodel.EntityBase, error) {
				return domainmodel.BuildEntityBase("")
			},
			expectedErr: domainmodel.ErrEmptyEntityKind,
		},
		{
			name: "empty_partition_key",
			build: func() (domainmodel.EntityBase, error) {
				return domainmodel.BuildEntityBase(testEntityKind, domainmodel.WithPartitionKey(""))
			},
			expectedErr: domainmodel.ErrEmptyPartitionKey,
		},
		{
			name: "zero_created_on",
			build: func() (domainmodel.EntityBase, error) {
				return domainmodel.BuildEntityBase(testEntityKind, domainmodel.WithCreatedOn(time.Time{}))
			},
			expectedErr: domainmodel.ErrZeroCreatedOn,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.build()
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func Test_Equals_TrueForSameKindAndEqualNonNilIDs(t *testing.T) {
	// arrange - two distinct in-memory instances sharing an identity
	sharedID := uuid.New()

	first, err := domainmodel.BuildEntityBase(testEntityKind, domainmodel.WithID(sharedID))
	require.NoError(t, err)

	second, err := domainmodel.BuildEntityBase(testEntityKind, domainmodel.WithID(sharedID))
	require.NoError(t, err)

	// mutable state differs, equality must not care
	second.MarkModified()
	second.MarkDeleted()

	// act + assert
	assert.True(t, first.Equals(&second))
	assert.True(t, second.Equals(&first))
	assert.True(t, first.Equals(&first))
	assert.Equal(t, first.HashCode(), second.HashCode())
}

func Test_Equals_FalseForNilSentinelIDs(t *testing.T) {
	// arrange
	first, err := domainmodel.BuildEntityBase(testEntityKind, domainmodel.WithID(uuid.Nil))
	require.NoError(t, err)

	second, err := domainmodel.BuildEntityBase(testEntityKind, domainmodel.WithID(uuid.Nil))
	require.NoError(t, err)

	// act + assert - empty-identity entities equal nothing, not even each other
	assert.False(t, first.Equals(&second))
	assert.False(t, first.Equals(&first))
}

func Test_Equals_FalseForDifferentKindsSharingAnID(t *testing.T) {
	// arrange
	sharedID := uuid.New()

	first, err := domainmodel.BuildEntityBase(testEntityKind, domainmodel.WithID(sharedID))
	require.NoError(t, err)

	second, err := domainmodel.BuildEntityBase(otherEntityKind, domainmodel.WithID(sharedID))
	require.NoError(t, err)

	// act + assert
	assert.False(t, first.Equals(&second))
	assert.False(t, second.Equals(&first))
	assert.NotEqual(t, first.HashCode(), second.HashCode())
}

func Test_Equals_FalseForNilOther(t *testing.T) {
	// arrange
	entity, err := domainmodel.BuildEntityBase(testEntityKind)
	require.NoError(t, err)

	// act + assert
	assert.False(t, entity.Equals(nil))
}

func Test_MarkCreated_IsWriteOnce(t *testing.T) {
	// arrange
	entity, err := domainmodel.BuildEntityBase(testEntityKind)
	require.NoError(t, err)

	originalCreatedOn := entity.CreatedOn()
	originalTimestamp := entity.Timestamp()

	// act - attempting to overwrite the construction-time value
	time.Sleep(time.Millisecond)
	entity.MarkCreated()

	// assert - first write wins
	assert.Equal(t, originalCreatedOn, entity.CreatedOn())
	assert.Equal(t, originalTimestamp, entity.Timestamp())
}

func Test_MarkModified_LatestWriteWins(t *testing.T) {
	// arrange
	entity, err := domainmodel.BuildEntityBase(testEntityKind)
	require.NoError(t, err)

	// act
	entity.MarkModified()
	firstModifiedOn, ok := entity.ModifiedOn()
	require.True(t, ok)

	time.Sleep(time.Millisecond)
	entity.MarkModified()
	secondModifiedOn, ok := entity.ModifiedOn()
	require.True(t, ok)

	// assert
	assert.True(t, secondModifiedOn.After(firstModifiedOn))
}

func Test_MarkDeleted_IsIdempotentWhileDeleted(t *testing.T) {
	// arrange
	entity, err := domainmodel.BuildEntityBase(testEntityKind)
	require.NoError(t, err)

	// act
	entity.MarkDeleted()
	firstDeletedOn, deleted := entity.DeletedOn()
	require.True(t, deleted)

	time.Sleep(time.Millisecond)
	entity.MarkDeleted()
	secondDeletedOn, _ := entity.DeletedOn()

	// assert - second call must not overwrite the original deletion instant
	assert.Equal(t, firstDeletedOn, secondDeletedOn)
}

func Test_MarkUndeleted_OnNeverDeletedEntityIsNoOp(t *testing.T) {
	// arrange
	entity, err := domainmodel.BuildEntityBase(testEntityKind)
	require.NoError(t, err)

	// act
	entity.MarkUndeleted()

	// assert
	_, deleted := entity.DeletedOn()
	assert.False(t, deleted)
}

func Test_DeleteUndeleteDelete_IsAValidCycle(t *testing.T) {
	// arrange
	entity, err := domainmodel.BuildEntityBase(testEntityKind)
	require.NoError(t, err)

	// act + assert
	entity.MarkDeleted()
	firstDeletedOn, deleted := entity.DeletedOn()
	require.True(t, deleted)

	entity.MarkUndeleted()
	_, deleted = entity.DeletedOn()
	require.False(t, deleted)

	time.Sleep(time.Millisecond)
	entity.MarkDeleted()
	secondDeletedOn, deleted := entity.DeletedOn()
	require.True(t, deleted)

	assert.True(t, secondDeletedOn.After(firstDeletedOn))
}

func Test_EntityState_RoundTripsThroughRehydration(t *testing.T) {
	// arrange
	entity, err := domainmodel.BuildEntityBase(testEntityKind)
	require.NoError(t, err)

	entity.MarkModified()
	entity.MarkDeleted()

	// act
	rehydrated, err := domainmodel.RehydrateEntityBase(testEntityKind, entity.State())

	// assert
	require.NoError(t, err)
	assert.True(t, entity.Equals(&rehydrated))
	assert.Equal(t, entity.CreatedOn(), rehydrated.CreatedOn())
	assert.Equal(t, entity.Timestamp(), rehydrated.Timestamp())
	assert.Equal(t, entity.PartitionKey(), rehydrated.PartitionKey())

	expectedModifiedOn, _ := entity.ModifiedOn()
	actualModifiedOn, ok := rehydrated.ModifiedOn()
	require.True(t, ok)
	assert.Equal(t, expectedModifiedOn, actualModifiedOn)

	expectedDeletedOn, _ := entity.DeletedOn()
	actualDeletedOn, ok := rehydrated.DeletedOn()
	require.True(t, ok)
	assert.Equal(t, expectedDeletedOn, actualDeletedOn)

	assert.Empty(t, rehydrated.DomainEvents())
}
