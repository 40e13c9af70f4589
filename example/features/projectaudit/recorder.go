package projectaudit

import (
	"context"
	"sync"
	"time"

	"github.com/AntonStoeckl/domain-model-go/domainmodel"
	"github.com/AntonStoeckl/domain-model-go/example/shared/core"
)

// AuditEntry is one line of the audit trail, capturing which event happened
// to which entity and when.
type AuditEntry struct {
	EventType  domainmodel.EventTypeString
	EntityID   domainmodel.EntityIDValue
	OccurredAt time.Time
	RecordedAt time.Time
}

// AuditEntries is an alias to improve the readability of code using a slice of AuditEntry.
type AuditEntries = []AuditEntry

// Recorder is a domain event handler that appends an audit entry for every
// event it handles. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries AuditEntries
	clock   func() time.Time
}

// NewRecorder creates a Recorder with an empty audit trail.
func NewRecorder() *Recorder {
	return &Recorder{
		clock: time.Now,
	}
}

// Handle appends an audit entry for the supplied domain event.
// It implements domainmodel.EventHandler.
func (r *Recorder) Handle(_ context.Context, event domainmodel.DomainEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, AuditEntry{
		EventType:  event.EventType(),
		EntityID:   event.EntityID(),
		OccurredAt: event.HasOccurredAt(),
		RecordedAt: r.clock().UTC(),
	})

	return nil
}

// Entries returns a copy of the audit trail in the order the events were handled.
func (r *Recorder) Entries() AuditEntries {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make(AuditEntries, len(r.entries))
	copy(entries, r.entries)

	return entries
}

// EntriesForEntity returns the audit entries recorded for a single entity,
// in the order the events were handled.
func (r *Recorder) EntriesForEntity(entityID domainmodel.EntityIDValue) AuditEntries {
	r.mu.Lock()
	defer r.mu.Unlock()

	var entries AuditEntries
	for _, entry := range r.entries {
		if entry.EntityID == entityID {
			entries = append(entries, entry)
		}
	}

	return entries
}

var _ domainmodel.EventHandler = (*Recorder)(nil)

// RegisterAllProjectEvents registers the recorder for every project event type,
// so the complete lifecycle of a project ends up in the audit trail.
func RegisterAllProjectEvents(registry *domainmodel.HandlerRegistry, recorder *Recorder) error {
	eventTypes := []domainmodel.EventTypeString{
		core.ProjectCreatedEventType,
		core.ProjectRenamedEventType,
		core.ProjectArchivedEventType,
		core.ProjectRestoredEventType,
		core.ProjectMovedToTenantEventType,
	}

	for _, eventType := range eventTypes {
		if err := registry.Register(eventType, recorder); err != nil {
			return err
		}
	}

	return nil
}
