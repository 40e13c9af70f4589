package shell

import (
	"github.com/google/uuid"
)

// MessageID represents a unique message identifier.
type MessageID = string

// CausationID represents the ID of the command or event that caused this event.
type CausationID = string

// CorrelationID represents the ID correlating all events of one logical operation.
type CorrelationID = string

// EventMetadata contains event tracking information stored alongside the payload.
type EventMetadata struct {
	MessageID     MessageID
	CausationID   CausationID
	CorrelationID CorrelationID
}

// BuildEventMetadata creates EventMetadata from UUID values.
func BuildEventMetadata(messageID uuid.UUID, causationID uuid.UUID, correlationID uuid.UUID) EventMetadata {
	return EventMetadata{
		MessageID:     messageID.String(),
		CausationID:   causationID.String(),
		CorrelationID: correlationID.String(),
	}
}
