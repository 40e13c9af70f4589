// Package postgresrepo persists the example Project aggregate and its
// pending domain events (as outbox rows) in Postgres.
//
// It supports three database access layers through a small adapter interface:
// pgxpool.Pool, sqlx.DB, and database/sql. SQL is built with goqu, and writes
// guard against overwriting a newer row version, surfacing
// ErrConcurrencyConflict for the caller to retry.
package postgresrepo
