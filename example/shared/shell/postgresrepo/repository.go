package postgresrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/domain-model-go/domainmodel"
	"github.com/AntonStoeckl/domain-model-go/example/shared/core"
)

var (
	// ErrNilDatabaseConnection is returned when a repository is built without a connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrConcurrencyConflict is returned when a save would overwrite a newer row version.
	ErrConcurrencyConflict = errors.New("concurrency conflict, no rows were affected")

	// ErrProjectNotFound is returned when no row exists for the requested project identity.
	ErrProjectNotFound = errors.New("project not found")

	// ErrSavingProjectFailed is returned when the save operation fails.
	ErrSavingProjectFailed = errors.New("saving project failed")

	// ErrLoadingProjectFailed is returned when the load operation fails.
	ErrLoadingProjectFailed = errors.New("loading project failed")

	// ErrAppendingEventRecordsFailed is returned when writing outbox rows fails.
	ErrAppendingEventRecordsFailed = errors.New("appending event records failed")
)

const (
	defaultProjectTableName = "projects"
	defaultOutboxTableName  = "project_events"

	logMsgBuildQueryFailed  = "failed to build sql statement"
	logMsgDBExecFailed      = "database execution failed"
	logMsgDBQueryFailed     = "database query execution failed"
	logMsgScanRowFailed     = "failed to scan database row"
	logMsgCloseRowsFailed   = "failed to close database rows"
	logMsgProjectSaved      = "project saved"
	logMsgProjectLoaded     = "project loaded"
	logMsgConflictDetected  = "concurrency conflict detected"
	logMsgSQLExecuted       = "executed sql for: "
	logAttrError            = "error"
	logAttrQuery            = "query"
	logAttrProjectID        = "project_id"
	logAttrEventCount       = "event_count"
	logAttrDurationMS       = "duration_ms"
	logActionUpsertProject  = "upsert project"
	logActionAppendEvents   = "append event records"
	logActionSelectProjects = "select projects"

	colID           = "id"
	colPartitionKey = "partition_key"
	colTenantID     = "tenant_id"
	colOwnerID      = "owner_id"
	colName         = "name"
	colCreatedOn    = "created_on"
	colCreatedBy    = "created_by"
	colModifiedOn   = "modified_on"
	colModifiedBy   = "modified_by"
	colDeletedOn    = "deleted_on"
	colDeletedBy    = "deleted_by"
	colTimestamp    = "row_timestamp"

	colEventID    = "event_id"
	colEntityID   = "entity_id"
	colEventType  = "event_type"
	colOccurredAt = "occurred_at"
	colPayload    = "payload"
	colMetadata   = "metadata"

	dialectPostgres = "postgres"
	castJsonb       = "?::jsonb"
	excludedPrefix  = "EXCLUDED."
)

// Repository stores Project aggregates and their pending domain events in Postgres.
//
// Save writes the project row as an upsert guarded against overwriting a
// newer version, then appends the supplied event records to the outbox table.
// The two writes are separate statements; callers needing atomicity should
// run both tables on the same database and wrap the call in their own
// transaction handling at the connection level.
type Repository struct {
	db           DBAdapter
	projectTable string
	outboxTable  string
	logger       domainmodel.Logger
}

// NewRepositoryFromPGXPool creates a Repository using a pgxpool.Pool with optional configuration.
func NewRepositoryFromPGXPool(pool *pgxpool.Pool, options ...Option) (Repository, error) {
	if pool == nil {
		return Repository{}, ErrNilDatabaseConnection
	}

	return newRepository(pgxAdapter{pool: pool}, options...)
}

// NewRepositoryFromSQLX creates a Repository using a sqlx.DB with optional configuration.
func NewRepositoryFromSQLX(db *sqlx.DB, options ...Option) (Repository, error) {
	if db == nil {
		return Repository{}, ErrNilDatabaseConnection
	}

	return newRepository(stdAdapter{db: db}, options...)
}

// NewRepositoryFromSQLDB creates a Repository using a database/sql DB with optional configuration.
func NewRepositoryFromSQLDB(db *sql.DB, options ...Option) (Repository, error) {
	if db == nil {
		return Repository{}, ErrNilDatabaseConnection
	}

	return newRepository(stdAdapter{db: db}, options...)
}

func newRepository(db DBAdapter, options ...Option) (Repository, error) {
	repository := Repository{
		db:           db,
		projectTable: defaultProjectTableName,
		outboxTable:  defaultOutboxTableName,
	}

	for _, option := range options {
		if err := option(&repository); err != nil {
			return Repository{}, err
		}
	}

	return repository, nil
}

// Save upserts the project row and appends the event records to the outbox.
//
// The upsert refuses to overwrite a row whose modification instant is newer
// than the snapshot being saved and reports that as ErrConcurrencyConflict,
// so a caller can reload and retry.
func (r Repository) Save(ctx context.Context, project *core.Project, records EventRecords) error {
	upsertSQL, buildErr := r.buildUpsertProjectSQL(project)
	if buildErr != nil {
		r.logError(logMsgBuildQueryFailed, buildErr)

		return errors.Join(ErrSavingProjectFailed, buildErr)
	}

	rowsAffected, execErr := r.execute(ctx, upsertSQL, logActionUpsertProject)
	if execErr != nil {
		return errors.Join(ErrSavingProjectFailed, execErr)
	}

	if rowsAffected == 0 {
		if r.logger != nil {
			r.logger.Warn(logMsgConflictDetected, logAttrProjectID, project.EntityID().String())
		}

		return ErrConcurrencyConflict
	}

	if len(records) > 0 {
		if appendErr := r.appendEventRecords(ctx, records); appendErr != nil {
			return appendErr
		}
	}

	if r.logger != nil {
		r.logger.Info(logMsgProjectSaved,
			logAttrProjectID, project.EntityID().String(),
			logAttrEventCount, len(records))
	}

	return nil
}

// Load reads the project row for the identity and rehydrates the aggregate.
func (r Repository) Load(ctx context.Context, projectID uuid.UUID) (*core.Project, error) {
	selectSQL, _, buildErr := r.selectDataset().
		Where(goqu.C(colID).Eq(projectID.String())).
		ToSQL()
	if buildErr != nil {
		r.logError(logMsgBuildQueryFailed, buildErr)

		return nil, errors.Join(ErrLoadingProjectFailed, buildErr)
	}

	projects, queryErr := r.queryProjects(ctx, selectSQL)
	if queryErr != nil {
		return nil, errors.Join(ErrLoadingProjectFailed, queryErr)
	}

	if len(projects) == 0 {
		return nil, ErrProjectNotFound
	}

	if r.logger != nil {
		r.logger.Debug(logMsgProjectLoaded, logAttrProjectID, projectID.String())
	}

	return projects[0], nil
}

// FindByTenant reads all project rows co-located under the tenant's
// partition key, ordered by creation instant.
func (r Repository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]*core.Project, error) {
	selectSQL, _, buildErr := r.selectDataset().
		Where(goqu.C(colPartitionKey).Eq(tenantID.String())).
		Order(goqu.I(colCreatedOn).Asc()).
		ToSQL()
	if buildErr != nil {
		r.logError(logMsgBuildQueryFailed, buildErr)

		return nil, errors.Join(ErrLoadingProjectFailed, buildErr)
	}

	projects, queryErr := r.queryProjects(ctx, selectSQL)
	if queryErr != nil {
		return nil, errors.Join(ErrLoadingProjectFailed, queryErr)
	}

	return projects, nil
}

// buildUpsertProjectSQL builds the guarded upsert statement for the project row.
// The update set leaves the creation fields and the construction timestamp
// alone: those are write-once and keep their first stored value.
func (r Repository) buildUpsertProjectSQL(project *core.Project) (string, error) {
	state := project.SecuredState()

	insertRow := goqu.Record{
		colID:           state.ID.String(),
		colPartitionKey: state.PartitionKey,
		colTenantID:     state.TenantID.String(),
		colOwnerID:      state.OwnerID.String(),
		colName:         project.Name(),
		colCreatedOn:    state.CreatedOn,
		colCreatedBy:    nullableActor(state.CreatedBy),
		colModifiedOn:   nullableInstant(state.ModifiedOn),
		colModifiedBy:   nullableActor(state.ModifiedBy),
		colDeletedOn:    nullableInstant(state.DeletedOn),
		colDeletedBy:    nullableActor(state.DeletedBy),
		colTimestamp:    state.Timestamp,
	}

	updateSet := goqu.Record{
		colPartitionKey: goqu.L(excludedPrefix + colPartitionKey),
		colTenantID:     goqu.L(excludedPrefix + colTenantID),
		colOwnerID:      goqu.L(excludedPrefix + colOwnerID),
		colName:         goqu.L(excludedPrefix + colName),
		colModifiedOn:   goqu.L(excludedPrefix + colModifiedOn),
		colModifiedBy:   goqu.L(excludedPrefix + colModifiedBy),
		colDeletedOn:    goqu.L(excludedPrefix + colDeletedOn),
		colDeletedBy:    goqu.L(excludedPrefix + colDeletedBy),
	}

	storedModifiedOn := goqu.I(r.projectTable + "." + colModifiedOn)
	notStale := goqu.Or(
		storedModifiedOn.IsNull(),
		storedModifiedOn.Lte(goqu.L(excludedPrefix+colModifiedOn)),
	)

	upsertSQL, _, err := goqu.Dialect(dialectPostgres).
		Insert(r.projectTable).
		Rows(insertRow).
		OnConflict(goqu.DoUpdate(colID, updateSet).Where(notStale)).
		ToSQL()

	return upsertSQL, err
}

// appendEventRecords writes the outbox rows in one multi-row insert,
// preserving the batch order. Rows whose event identity already exists are
// ignored, so re-saving a batch with deterministic record identities cannot
// append duplicates.
func (r Repository) appendEventRecords(ctx context.Context, records EventRecords) error {
	rows := make([]any, 0, len(records))

	for _, record := range records {
		rows = append(rows, goqu.Record{
			colEventID:    record.EventID.String(),
			colEntityID:   record.EntityID.String(),
			colEventType:  record.EventType,
			colOccurredAt: record.OccurredAt,
			colPayload:    goqu.L(castJsonb, string(record.PayloadJSON)),
			colMetadata:   goqu.L(castJsonb, string(record.MetadataJSON)),
		})
	}

	insertSQL, _, buildErr := goqu.Dialect(dialectPostgres).
		Insert(r.outboxTable).
		Rows(rows...).
		OnConflict(goqu.DoNothing()).
		ToSQL()
	if buildErr != nil {
		r.logError(logMsgBuildQueryFailed, buildErr)

		return errors.Join(ErrAppendingEventRecordsFailed, buildErr)
	}

	if _, execErr := r.execute(ctx, insertSQL, logActionAppendEvents); execErr != nil {
		return errors.Join(ErrAppendingEventRecordsFailed, execErr)
	}

	return nil
}

// selectDataset is the shared projection of project rows.
func (r Repository) selectDataset() *goqu.SelectDataset {
	return goqu.Dialect(dialectPostgres).
		From(r.projectTable).
		Select(
			goqu.C(colID), goqu.C(colPartitionKey), goqu.C(colTenantID), goqu.C(colOwnerID),
			goqu.C(colName), goqu.C(colCreatedOn), goqu.C(colCreatedBy),
			goqu.C(colModifiedOn), goqu.C(colModifiedBy),
			goqu.C(colDeletedOn), goqu.C(colDeletedBy), goqu.C(colTimestamp),
		)
}

// execute runs a statement, logs it with timing, and returns the rows affected.
func (r Repository) execute(ctx context.Context, sqlStatement string, action string) (int64, error) {
	start := time.Now()
	result, execErr := r.db.Exec(ctx, sqlStatement)
	r.logSQL(sqlStatement, action, time.Since(start))

	if execErr != nil {
		r.logError(logMsgDBExecFailed, execErr)

		return 0, execErr
	}

	rowsAffected, rowsErr := result.RowsAffected()
	if rowsErr != nil {
		return 0, rowsErr
	}

	return rowsAffected, nil
}

// queryProjects runs a select statement and rehydrates every returned row.
func (r Repository) queryProjects(ctx context.Context, sqlQuery string) ([]*core.Project, error) {
	start := time.Now()
	rows, queryErr := r.db.Query(ctx, sqlQuery)
	r.logSQL(sqlQuery, logActionSelectProjects, time.Since(start))

	if queryErr != nil {
		r.logError(logMsgDBQueryFailed, queryErr)

		return nil, queryErr
	}

	defer r.closeRows(rows)

	var projects []*core.Project

	for rows.Next() {
		row := projectRow{}

		if scanErr := rows.Scan(
			&row.id, &row.partitionKey, &row.tenantID, &row.ownerID,
			&row.name, &row.createdOn, &row.createdBy,
			&row.modifiedOn, &row.modifiedBy,
			&row.deletedOn, &row.deletedBy, &row.timestamp,
		); scanErr != nil {
			r.logError(logMsgScanRowFailed, scanErr)

			return nil, scanErr
		}

		project, mapErr := row.toProject()
		if mapErr != nil {
			return nil, mapErr
		}

		projects = append(projects, project)
	}

	return projects, nil
}

// closeRows safely closes database rows and logs any errors.
func (r Repository) closeRows(rows DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if r.logger != nil {
			r.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

// logSQL logs an executed statement with its duration at debug level.
func (r Repository) logSQL(sqlStatement string, action string, duration time.Duration) {
	if r.logger != nil {
		r.logger.Debug(logMsgSQLExecuted+action,
			logAttrQuery, sqlStatement,
			logAttrDurationMS, float64(duration.Microseconds())/1000.0)
	}
}

// logError logs a failure at error level.
func (r Repository) logError(msg string, err error) {
	if r.logger != nil {
		r.logger.Error(msg, logAttrError, err.Error())
	}
}

// nullableActor renders an optional actor identity for a nullable column.
func nullableActor(actorID *uuid.UUID) any {
	if actorID == nil {
		return nil
	}

	return actorID.String()
}

// nullableInstant renders an optional instant for a nullable column.
func nullableInstant(instant *time.Time) any {
	if instant == nil {
		return nil
	}

	return *instant
}
