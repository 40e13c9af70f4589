package shell

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/domain-model-go/domainmodel"
	"github.com/AntonStoeckl/domain-model-go/example/shared/core"
	"github.com/AntonStoeckl/domain-model-go/example/shared/shell/postgresrepo"
)

// ProjectStore is the persistence capability SaveAndDispatch needs.
type ProjectStore interface {
	Save(ctx context.Context, project *core.Project, records postgresrepo.EventRecords) error
}

// SaveAndDispatch runs the persist-dispatch-clear flow for a mutated Project:
// serialize the pending events, save the aggregate with its outbox rows,
// dispatch the events, and clear the entity's event log.
//
// The event log is cleared only after both the save and the dispatch
// succeeded: on any error the events stay on the entity so the caller can
// retry the whole flow (saves are retried here when the store reports a
// concurrency conflict). Retrying is safe against duplicate outbox rows:
// record identities derive deterministically from the event content, and the
// repository ignores rows it already appended.
func SaveAndDispatch(
	ctx context.Context,
	store ProjectStore,
	dispatcher domainmodel.Dispatcher,
	project *core.Project,
	options ...RetryOption,
) error {

	events := project.DomainEvents()

	messageID := uuid.New()
	records, mapErr := EventRecordsFrom(events, BuildEventMetadata(messageID, messageID, messageID))
	if mapErr != nil {
		return mapErr
	}

	saveErr := RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return store.Save(retryCtx, project, records)
	}, options...)
	if saveErr != nil {
		return saveErr
	}

	if dispatchErr := dispatcher.Dispatch(ctx, events); dispatchErr != nil {
		return dispatchErr
	}

	project.ClearDomainEvents()

	return nil
}
