package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/domain-model-go/domainmodel"
	"github.com/AntonStoeckl/domain-model-go/example/shared/core"
	"github.com/AntonStoeckl/domain-model-go/example/shared/shell/postgresrepo"
)

var (
	// ErrUnmarshalingDomainEventFailed is returned when an event payload cannot be deserialized.
	ErrUnmarshalingDomainEventFailed = errors.New("unmarshaling domain event from json failed")

	// ErrUnknownEventType is returned when an EventRecord carries an event type this
	// application does not know.
	ErrUnknownEventType = errors.New("unknown event type")
)

// DomainEventFrom deserializes an EventRecord back into the concrete domain
// event it was built from, keyed by the record's event type.
func DomainEventFrom(record postgresrepo.EventRecord) (domainmodel.DomainEvent, error) {
	switch record.EventType {
	case core.ProjectCreatedEventType:
		return unmarshalEvent[core.ProjectCreated](record.PayloadJSON)

	case core.ProjectRenamedEventType:
		return unmarshalEvent[core.ProjectRenamed](record.PayloadJSON)

	case core.ProjectArchivedEventType:
		return unmarshalEvent[core.ProjectArchived](record.PayloadJSON)

	case core.ProjectRestoredEventType:
		return unmarshalEvent[core.ProjectRestored](record.PayloadJSON)

	case core.ProjectMovedToTenantEventType:
		return unmarshalEvent[core.ProjectMovedToTenant](record.PayloadJSON)

	default:
		return nil, ErrUnknownEventType
	}
}

// DomainEventsFrom deserializes a batch of EventRecords, preserving order.
func DomainEventsFrom(records postgresrepo.EventRecords) (domainmodel.DomainEvents, error) {
	events := make(domainmodel.DomainEvents, 0, len(records))

	for _, record := range records {
		event, err := DomainEventFrom(record)
		if err != nil {
			return nil, err
		}

		events = append(events, event)
	}

	return events, nil
}

// unmarshalEvent deserializes a payload into the given concrete event type.
func unmarshalEvent[T domainmodel.DomainEvent](payloadJSON []byte) (domainmodel.DomainEvent, error) {
	event := new(T)

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, event); err != nil {
		return nil, errors.Join(ErrUnmarshalingDomainEventFailed, err)
	}

	return *event, nil
}
