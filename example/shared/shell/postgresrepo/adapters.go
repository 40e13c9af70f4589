package postgresrepo

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
)

// DBAdapter defines the database operations the repository needs,
// independent of the access layer behind it.
type DBAdapter interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
}

/***** pgxpool *****/

// pgxAdapter implements DBAdapter for pgxpool.Pool.
type pgxAdapter struct {
	pool *pgxpool.Pool
}

func (a pgxAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	rows, err := a.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	return pgxRows{rows: rows}, nil
}

func (a pgxAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	tag, err := a.pool.Exec(ctx, query)
	if err != nil {
		return nil, err
	}

	return pgxResult{tag: tag}, nil
}

type pgxRows struct {
	rows pgx.Rows
}

func (r pgxRows) Next() bool {
	return r.rows.Next()
}

func (r pgxRows) Scan(dest ...any) error {
	return r.rows.Scan(dest...)
}

func (r pgxRows) Close() error {
	r.rows.Close()

	return nil
}

type pgxResult struct {
	tag pgconn.CommandTag
}

func (r pgxResult) RowsAffected() (int64, error) {
	return r.tag.RowsAffected(), nil
}

/***** sqlx and database/sql *****/

// stdQuerier covers both sqlx.DB and sql.DB, which share the database/sql
// row and result types.
type stdQuerier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// stdAdapter implements DBAdapter for any database/sql based access layer.
type stdAdapter struct {
	db stdQuerier
}

func (a stdAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return stdRows{rows: rows}, nil
}

func (a stdAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	result, err := a.db.ExecContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return result, nil
}

type stdRows struct {
	rows *sql.Rows
}

func (r stdRows) Next() bool {
	return r.rows.Next()
}

func (r stdRows) Scan(dest ...any) error {
	return r.rows.Scan(dest...)
}

func (r stdRows) Close() error {
	return r.rows.Close()
}

// sql.Result already satisfies DBResult.
var _ DBResult = (sql.Result)(nil)

var (
	_ DBAdapter  = pgxAdapter{}
	_ DBAdapter  = stdAdapter{}
	_ stdQuerier = (*sqlx.DB)(nil)
	_ stdQuerier = (*sql.DB)(nil)
)
