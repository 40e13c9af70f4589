package domainmodel

import (
	"github.com/google/uuid"
)

// ActorIDValue is an alias type for the identity of the acting principal
// recorded in the CreatedBy/ModifiedBy/DeletedBy audit fields.
//
// The uuid.Nil sentinel is accepted everywhere as a valid-but-unauthorized
// actor; none of the actor operations fail.
type ActorIDValue = uuid.UUID

// SecuredEntity extends Entity with the owner and tenant identities of a
// multi-tenant aggregate.
type SecuredEntity interface {
	Entity
	OwnerID() uuid.UUID
	TenantID() uuid.UUID
}

// SecuredEntityBase extends EntityBase with owner/tenant identities and
// actor-identity audit fields. Its partition key derives from the tenant
// identity instead of the entity identity, so entities of one tenant
// physically co-locate in a partitioned store.
type SecuredEntityBase struct {
	EntityBase

	ownerID  uuid.UUID
	tenantID uuid.UUID

	createdBy     ActorIDValue
	hasCreatedBy  bool
	modifiedBy    ActorIDValue
	hasModifiedBy bool
	deletedBy     ActorIDValue
	hasDeletedBy  bool
}

// BuildSecuredEntityBase is the factory method for SecuredEntityBase.
//
// It accepts the same options as BuildEntityBase for the embedded base state.
// A WithPartitionKey option is ineffective here: the partition key of a
// secured entity always derives live from the tenant identity.
func BuildSecuredEntityBase(
	kind EntityKindString,
	tenantID uuid.UUID,
	ownerID uuid.UUID,
	options ...EntityOption,
) (SecuredEntityBase, error) {

	base, err := BuildEntityBase(kind, options...)
	if err != nil {
		return SecuredEntityBase{}, err
	}

	return SecuredEntityBase{
		EntityBase: base,
		ownerID:    ownerID,
		tenantID:   tenantID,
	}, nil
}

// OwnerID returns the identity of the principal owning this entity.
func (e *SecuredEntityBase) OwnerID() uuid.UUID {
	return e.ownerID
}

// TenantID returns the identity of the tenant this entity belongs to.
func (e *SecuredEntityBase) TenantID() uuid.UUID {
	return e.tenantID
}

// PartitionKey derives the partition key from the current tenant identity.
// There is no caching: changing the tenant changes the reported partition key
// immediately for all future reads.
func (e *SecuredEntityBase) PartitionKey() PartitionKeyString {
	return e.tenantID.String()
}

// ChangeOwner overwrites the owner identity unconditionally.
// Ownership transfer is a deliberate, always-legal operation.
func (e *SecuredEntityBase) ChangeOwner(newOwnerID uuid.UUID) {
	e.ownerID = newOwnerID
}

// ChangeTenant overwrites the tenant identity unconditionally, which also
// changes the derived partition key.
func (e *SecuredEntityBase) ChangeTenant(newTenantID uuid.UUID) {
	e.tenantID = newTenantID
}

// CreatedBy returns the creator identity and whether one was recorded.
func (e *SecuredEntityBase) CreatedBy() (ActorIDValue, bool) {
	return e.createdBy, e.hasCreatedBy
}

// ModifiedBy returns the last modifier identity and whether one was recorded.
func (e *SecuredEntityBase) ModifiedBy() (ActorIDValue, bool) {
	return e.modifiedBy, e.hasModifiedBy
}

// DeletedBy returns the deleter identity and whether the entity currently
// carries one.
func (e *SecuredEntityBase) DeletedBy() (ActorIDValue, bool) {
	return e.deletedBy, e.hasDeletedBy
}

// MarkCreatedBy records the creator identity. The field is write-once and
// independent of the creation instant: CreatedOn is owned by construction,
// while the first MarkCreatedBy call owns CreatedBy. Later calls are no-ops.
func (e *SecuredEntityBase) MarkCreatedBy(actorID ActorIDValue) {
	if e.hasCreatedBy {
		return
	}

	e.createdBy = actorID
	e.hasCreatedBy = true
}

// MarkModifiedBy stamps ModifiedOn to the current UTC instant and overwrites
// the modifier identity. Both follow latest-write-wins.
func (e *SecuredEntityBase) MarkModifiedBy(actorID ActorIDValue) {
	e.MarkModified()
	e.modifiedBy = actorID
	e.hasModifiedBy = true
}

// MarkDeletedBy stamps DeletedOn and records the deleter identity as a pair,
// only if the entity is not already deleted. While deleted, repeat calls are
// no-ops and preserve both the original instant and the original actor.
func (e *SecuredEntityBase) MarkDeletedBy(actorID ActorIDValue) {
	if e.IsDeleted() {
		return
	}

	e.EntityBase.MarkDeleted()
	e.deletedBy = actorID
	e.hasDeletedBy = true
}

// MarkUndeleted clears DeletedOn and the deleter identity together if the
// entity is currently deleted; otherwise it is a no-op.
func (e *SecuredEntityBase) MarkUndeleted() {
	e.EntityBase.MarkUndeleted()
	e.deletedBy = ActorIDValue{}
	e.hasDeletedBy = false
}
