package domainmodel

import (
	"time"
)

// EntityState is the snapshot of an EntityBase handed to and received from an
// external persistence mapping. It is built on scalars and pointers so a
// data-access layer can map it to nullable columns or document fields without
// reaching into the entity.
type EntityState struct {
	ID           EntityIDValue
	PartitionKey PartitionKeyString
	CreatedOn    time.Time
	ModifiedOn   *time.Time
	DeletedOn    *time.Time
	Timestamp    int64
}

// State captures the persistable audit state of the entity.
// Pending domain events are deliberately not part of the snapshot.
func (e *EntityBase) State() EntityState {
	state := EntityState{
		ID:           e.id,
		PartitionKey: e.partitionKey,
		CreatedOn:    e.createdOn,
		Timestamp:    e.timestamp,
	}

	if modifiedOn, ok := e.ModifiedOn(); ok {
		state.ModifiedOn = &modifiedOn
	}

	if deletedOn, ok := e.DeletedOn(); ok {
		state.DeletedOn = &deletedOn
	}

	return state
}

// RehydrateEntityBase rebuilds an EntityBase from a persisted snapshot.
//
// No values are regenerated or re-stamped; the snapshot is taken as-is, so a
// load-modify-save cycle round-trips every audit field unchanged. The
// rehydrated entity starts with an empty domain-event log.
func RehydrateEntityBase(kind EntityKindString, state EntityState) (EntityBase, error) {
	if kind == "" {
		return EntityBase{}, ErrEmptyEntityKind
	}

	entity := EntityBase{
		id:           state.ID,
		kind:         kind,
		partitionKey: state.PartitionKey,
		createdOn:    state.CreatedOn,
		timestamp:    state.Timestamp,
	}

	if state.ModifiedOn != nil {
		entity.modifiedOn = *state.ModifiedOn
	}

	if state.DeletedOn != nil {
		entity.deletedOn = *state.DeletedOn
	}

	if entity.partitionKey == "" {
		entity.partitionKey = entity.id.String()
	}

	return entity, nil
}
