package postgresrepo

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/domain-model-go/domainmodel"
	"github.com/AntonStoeckl/domain-model-go/example/shared/core"
)

// ErrMappingRowFailed is returned when a database row cannot be mapped back
// to a Project aggregate.
var ErrMappingRowFailed = errors.New("mapping database row to project failed")

// projectRow mirrors the column layout of the project table. Nullable
// columns use database/sql null types, which both pgx and database/sql based
// adapters can scan into.
type projectRow struct {
	id           string
	partitionKey string
	tenantID     string
	ownerID      string
	name         string
	createdOn    time.Time
	createdBy    sql.NullString
	modifiedOn   sql.NullTime
	modifiedBy   sql.NullString
	deletedOn    sql.NullTime
	deletedBy    sql.NullString
	timestamp    int64
}

// toProject maps the row to a rehydrated Project aggregate.
func (row projectRow) toProject() (*core.Project, error) {
	id, idErr := uuid.Parse(row.id)
	if idErr != nil {
		return nil, errors.Join(ErrMappingRowFailed, idErr)
	}

	tenantID, tenantErr := uuid.Parse(row.tenantID)
	if tenantErr != nil {
		return nil, errors.Join(ErrMappingRowFailed, tenantErr)
	}

	ownerID, ownerErr := uuid.Parse(row.ownerID)
	if ownerErr != nil {
		return nil, errors.Join(ErrMappingRowFailed, ownerErr)
	}

	state := domainmodel.SecuredEntityState{
		EntityState: domainmodel.EntityState{
			ID:           id,
			PartitionKey: row.partitionKey,
			CreatedOn:    row.createdOn.UTC(),
			Timestamp:    row.timestamp,
		},
		OwnerID:  ownerID,
		TenantID: tenantID,
	}

	if row.modifiedOn.Valid {
		modifiedOn := row.modifiedOn.Time.UTC()
		state.ModifiedOn = &modifiedOn
	}

	if row.deletedOn.Valid {
		deletedOn := row.deletedOn.Time.UTC()
		state.DeletedOn = &deletedOn
	}

	var actorErr error

	if state.CreatedBy, actorErr = parseNullableActor(row.createdBy); actorErr != nil {
		return nil, actorErr
	}

	if state.ModifiedBy, actorErr = parseNullableActor(row.modifiedBy); actorErr != nil {
		return nil, actorErr
	}

	if state.DeletedBy, actorErr = parseNullableActor(row.deletedBy); actorErr != nil {
		return nil, actorErr
	}

	project, rehydrateErr := core.RehydrateProject(state, row.name)
	if rehydrateErr != nil {
		return nil, errors.Join(ErrMappingRowFailed, rehydrateErr)
	}

	return project, nil
}

// parseNullableActor parses an optional actor identity column.
func parseNullableActor(column sql.NullString) (*domainmodel.ActorIDValue, error) {
	if !column.Valid {
		return nil, nil
	}

	actorID, err := uuid.Parse(column.String)
	if err != nil {
		return nil, errors.Join(ErrMappingRowFailed, err)
	}

	return &actorID, nil
}
