package domainmodel

import (
	"github.com/google/uuid"
)

// SecuredEntityState is the persistable snapshot of a SecuredEntityBase.
// Absent actor identities are nil pointers so they map to nullable columns.
type SecuredEntityState struct {
	EntityState

	OwnerID    uuid.UUID
	TenantID   uuid.UUID
	CreatedBy  *ActorIDValue
	ModifiedBy *ActorIDValue
	DeletedBy  *ActorIDValue
}

// SecuredState captures the persistable audit state of the secured entity.
// The embedded partition key reflects the tenant-derived override, not the
// identity-derived default of the base.
func (e *SecuredEntityBase) SecuredState() SecuredEntityState {
	state := SecuredEntityState{
		EntityState: e.EntityBase.State(),
		OwnerID:     e.ownerID,
		TenantID:    e.tenantID,
	}

	state.PartitionKey = e.PartitionKey()

	if createdBy, ok := e.CreatedBy(); ok {
		state.CreatedBy = &createdBy
	}

	if modifiedBy, ok := e.ModifiedBy(); ok {
		state.ModifiedBy = &modifiedBy
	}

	if deletedBy, ok := e.DeletedBy(); ok {
		state.DeletedBy = &deletedBy
	}

	return state
}

// RehydrateSecuredEntityBase rebuilds a SecuredEntityBase from a persisted
// snapshot, taking every field as-is.
func RehydrateSecuredEntityBase(kind EntityKindString, state SecuredEntityState) (SecuredEntityBase, error) {
	base, err := RehydrateEntityBase(kind, state.EntityState)
	if err != nil {
		return SecuredEntityBase{}, err
	}

	entity := SecuredEntityBase{
		EntityBase: base,
		ownerID:    state.OwnerID,
		tenantID:   state.TenantID,
	}

	if state.CreatedBy != nil {
		entity.createdBy = *state.CreatedBy
		entity.hasCreatedBy = true
	}

	if state.ModifiedBy != nil {
		entity.modifiedBy = *state.ModifiedBy
		entity.hasModifiedBy = true
	}

	if state.DeletedBy != nil {
		entity.deletedBy = *state.DeletedBy
		entity.hasDeletedBy = true
	}

	return entity, nil
}
