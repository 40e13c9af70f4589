package postgresrepo

import (
	"errors"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/domain-model-go/domainmodel"
)

var (
	// ErrInvalidPayloadJSON is returned when an event payload is not valid JSON.
	ErrInvalidPayloadJSON = errors.New("payload json is not valid")

	// ErrInvalidMetadataJSON is returned when event metadata is not valid JSON.
	ErrInvalidMetadataJSON = errors.New("metadata json is not valid")
)

// EventRecords is an alias type for a slice of EventRecord.
type EventRecords = []EventRecord

// EventRecord is the persistable (outbox) form of a domain event.
//
// It is built on scalars to be completely agnostic of the implementation of
// domain events in the client code. While its properties are exported, it
// should only be constructed with BuildEventRecord.
type EventRecord struct {
	EventID      uuid.UUID
	EntityID     uuid.UUID
	EventType    domainmodel.EventTypeString
	OccurredAt   time.Time
	PayloadJSON  []byte
	MetadataJSON []byte
}

// BuildEventRecord is the factory method for EventRecord.
// Returns an error if payloadJSON or metadataJSON are not valid JSON.
func BuildEventRecord(
	eventID uuid.UUID,
	entityID uuid.UUID,
	eventType domainmodel.EventTypeString,
	occurredAt time.Time,
	payloadJSON []byte,
	metadataJSON []byte,
) (EventRecord, error) {

	if !jsoniter.ConfigFastest.Valid(payloadJSON) {
		return EventRecord{}, ErrInvalidPayloadJSON
	}

	if !jsoniter.ConfigFastest.Valid(metadataJSON) {
		return EventRecord{}, ErrInvalidMetadataJSON
	}

	return EventRecord{
		EventID:      eventID,
		EntityID:     entityID,
		EventType:    eventType,
		OccurredAt:   occurredAt,
		PayloadJSON:  payloadJSON,
		MetadataJSON: metadataJSON,
	}, nil
}
