package domainmodel

import (
	"errors"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyEntityKind is returned when an entity base is built without a kind tag.
var ErrEmptyEntityKind = errors.New("entity kind must not be empty")

// EntityIDValue is an alias type for the identity value of an entity.
type EntityIDValue = uuid.UUID

// EntityKindString is an alias type for the explicit type tag of an entity.
//
// The kind tag stands in for the concrete runtime type in equality and
// hashing, so every concrete entity type must use its own unique kind.
type EntityKindString = string

// PartitionKeyString is an alias type for the sharding/co-location hint
// handed to external storage. It is never used for logic inside this package.
type PartitionKeyString = string

// Entity is the minimal capability every concrete entity exposes: a globally
// unique identity plus the kind tag identifying its concrete type.
type Entity interface {
	EntityID() EntityIDValue
	EntityKind() EntityKindString
}

// EntityBase carries identity, audit timestamps, and the pending domain-event
// log for a concrete entity type. Concrete entities embed it and mutate it
// only through its named operations - none of the invariant-protected state
// is reachable from outside.
//
// EntityBase is not safe for uncoordinated concurrent mutation of a single
// instance; callers sharing an instance across goroutines must synchronize
// externally.
type EntityBase struct {
	id            EntityIDValue
	kind          EntityKindString
	partitionKey  PartitionKeyString
	createdOn     time.Time
	modifiedOn    time.Time
	deletedOn     time.Time
	timestamp     int64
	pendingEvents DomainEvents
}

// BuildEntityBase is the factory method for EntityBase.
//
// Without options it generates a fresh identity and stamps CreatedOn and
// Timestamp to the current UTC instant. Caller-supplied option values take
// precedence; nothing is regenerated over them. The partition key defaults to
// the identity rendered as a string unless WithPartitionKey was given.
func BuildEntityBase(kind EntityKindString, options ...EntityOption) (EntityBase, error) {
	if kind == "" {
		return EntityBase{}, ErrEmptyEntityKind
	}

	now := time.Now().UTC()

	entity := EntityBase{
		id:        uuid.New(),
		kind:      kind,
		createdOn: now,
		timestamp: now.UnixNano(),
	}

	for _, option := range options {
		if err := option(&entity); err != nil {
			return EntityBase{}, err
		}
	}

	if entity.partitionKey == "" {
		entity.partitionKey = entity.id.String()
	}

	return entity, nil
}

// EntityID returns the identity of this entity.
func (e *EntityBase) EntityID() EntityIDValue {
	return e.id
}

// EntityKind returns the kind tag identifying the concrete entity type.
func (e *EntityBase) EntityKind() EntityKindString {
	return e.kind
}

// PartitionKey returns the sharding/co-location hint for external storage.
// It defaults to the identity rendered as a string.
func (e *EntityBase) PartitionKey() PartitionKeyString {
	return e.partitionKey
}

// CreatedOn returns the creation instant of this entity.
func (e *EntityBase) CreatedOn() time.Time {
	return e.createdOn
}

// ModifiedOn returns the last-modification instant and whether one was recorded.
func (e *EntityBase) ModifiedOn() (time.Time, bool) {
	return e.modifiedOn, !e.modifiedOn.IsZero()
}

// DeletedOn returns the soft-delete instant and whether the entity is currently deleted.
func (e *EntityBase) DeletedOn() (time.Time, bool) {
	return e.deletedOn, !e.deletedOn.IsZero()
}

// IsDeleted reports whether the entity is currently soft-deleted.
func (e *EntityBase) IsDeleted() bool {
	return !e.deletedOn.IsZero()
}

// Timestamp returns the opaque ordering/concurrency value stamped at construction.
func (e *EntityBase) Timestamp() int64 {
	return e.timestamp
}

// MarkCreated stamps CreatedOn and Timestamp to the current UTC instant if
// they were never set. The creation instant is write-once: on an entity whose
// constructor already stamped it, MarkCreated is a no-op.
func (e *EntityBase) MarkCreated() {
	if !e.createdOn.IsZero() {
		return
	}

	now := time.Now().UTC()
	e.createdOn = now
	e.timestamp = now.UnixNano()
}

// MarkModified stamps ModifiedOn to the current UTC instant, unconditionally.
// The latest write wins.
func (e *EntityBase) MarkModified() {
	e.modifiedOn = time.Now().UTC()
}

// MarkDeleted stamps DeletedOn to the current UTC instant if the entity is
// not already deleted. Repeat calls while deleted are no-ops, not errors:
// the original deletion instant is preserved.
func (e *EntityBase) MarkDeleted() {
	if !e.deletedOn.IsZero() {
		return
	}

	e.deletedOn = time.Now().UTC()
}

// MarkUndeleted clears DeletedOn if the entity is currently deleted;
// otherwise it is a no-op. A later MarkDeleted starts a fresh delete cycle.
func (e *EntityBase) MarkUndeleted() {
	e.deletedOn = time.Time{}
}

// RecordDomainEvent appends a pending domain event, preserving insertion order.
func (e *EntityBase) RecordDomainEvent(event DomainEvent) {
	e.pendingEvents = append(e.pendingEvents, event)
}

// DomainEvents returns the pending domain events in insertion order.
//
// The returned slice is a copy: callers cannot inject or remove events
// through it, only the owning entity's methods mutate the log.
func (e *EntityBase) DomainEvents() DomainEvents {
	if len(e.pendingEvents) == 0 {
		return nil
	}

	events := make(DomainEvents, len(e.pendingEvents))
	copy(events, e.pendingEvents)

	return events
}

// ClearDomainEvents truncates the pending event log in one operation.
// It is called by application code after successful dispatch, never by the
// entity itself.
func (e *EntityBase) ClearDomainEvents() {
	e.pendingEvents = nil
}

// Equals reports whether the other entity is the same entity: same kind tag
// and equal, non-nil identities. An entity with the uuid.Nil identity never
// equals anything, including another nil-identity entity of the same kind.
// A nil other is never equal. Mutable business fields, the partition key, and
// audit fields play no part in equality.
func (e *EntityBase) Equals(other Entity) bool {
	if other == nil {
		return false
	}

	if e.id == uuid.Nil || other.EntityID() == uuid.Nil {
		return false
	}

	return e.kind == other.EntityKind() && e.id == other.EntityID()
}

// HashCode returns a hash consistent with Equals: it depends only on the
// kind tag and the identity.
func (e *EntityBase) HashCode() uint64 {
	hash := fnv.New64a()
	_, _ = hash.Write([]byte(e.kind))
	_, _ = hash.Write(e.id[:])

	return hash.Sum64()
}
