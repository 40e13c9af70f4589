package shell

import (
	"errors"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/domain-model-go/domainmodel"
	"github.com/AntonStoeckl/domain-model-go/example/shared/shell/postgresrepo"
)

var (
	// ErrMarshalingDomainEventFailed is returned when an event payload cannot be serialized.
	ErrMarshalingDomainEventFailed = errors.New("marshaling domain event to json failed")

	// ErrMarshalingEventMetadataFailed is returned when event metadata cannot be serialized.
	ErrMarshalingEventMetadataFailed = errors.New("marshaling event metadata to json failed")

	// ErrUnmarshalingEventMetadataFailed is returned when stored metadata cannot be deserialized.
	ErrUnmarshalingEventMetadataFailed = errors.New("unmarshaling event metadata from json failed")
)

// eventRecordNamespace is the UUIDv5 namespace for deriving record identities.
var eventRecordNamespace = uuid.MustParse("f7d9c4e2-3b5a-4c8d-9e1f-2a6b8c0d4e7f")

// EventRecordFrom serializes a domain event and its metadata into a
// persistable postgresrepo.EventRecord.
//
// The record identity is derived deterministically from the event content, so
// serializing the same event again yields the same identity and a store
// keyed on it can recognize an already-appended row.
func EventRecordFrom(event domainmodel.DomainEvent, metadata EventMetadata) (postgresrepo.EventRecord, error) {
	payloadJSON, payloadErr := jsoniter.ConfigFastest.Marshal(event)
	if payloadErr != nil {
		return postgresrepo.EventRecord{}, errors.Join(ErrMarshalingDomainEventFailed, payloadErr)
	}

	metadataJSON, metadataErr := jsoniter.ConfigFastest.Marshal(metadata)
	if metadataErr != nil {
		return postgresrepo.EventRecord{}, errors.Join(ErrMarshalingEventMetadataFailed, metadataErr)
	}

	return postgresrepo.BuildEventRecord(
		eventRecordIDFor(event, payloadJSON),
		event.EntityID(),
		event.EventType(),
		event.HasOccurredAt(),
		payloadJSON,
		metadataJSON,
	)
}

// eventRecordIDFor derives a stable UUIDv5 record identity from the entity
// identity, the event type, the occurrence instant, and the payload.
func eventRecordIDFor(event domainmodel.DomainEvent, payloadJSON []byte) uuid.UUID {
	entityID := event.EntityID()

	data := make([]byte, 0, len(entityID)+len(event.EventType())+len(payloadJSON)+32)
	data = append(data, entityID[:]...)
	data = append(data, event.EventType()...)
	data = append(data, event.HasOccurredAt().UTC().Format(time.RFC3339Nano)...)
	data = append(data, payloadJSON...)

	return uuid.NewSHA1(eventRecordNamespace, data)
}

// EventRecordsFrom serializes a batch of domain events with shared metadata,
// preserving the batch order.
func EventRecordsFrom(events domainmodel.DomainEvents, metadata EventMetadata) (postgresrepo.EventRecords, error) {
	records := make(postgresrepo.EventRecords, 0, len(events))

	for _, event := range events {
		record, err := EventRecordFrom(event, metadata)
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return records, nil
}

// EventMetadataFrom deserializes the metadata stored in an EventRecord.
func EventMetadataFrom(record postgresrepo.EventRecord) (EventMetadata, error) {
	metadata := new(EventMetadata)

	if err := jsoniter.ConfigFastest.Unmarshal(record.MetadataJSON, metadata); err != nil {
		return EventMetadata{}, errors.Join(ErrUnmarshalingEventMetadataFailed, err)
	}

	return *metadata, nil
}
