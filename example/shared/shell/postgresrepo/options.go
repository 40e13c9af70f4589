package postgresrepo

import (
	"errors"

	"github.com/AntonStoeckl/domain-model-go/domainmodel"
)

var (
	// ErrEmptyProjectTableName is returned when an empty project table name is supplied.
	ErrEmptyProjectTableName = errors.New("empty projectTableName supplied")

	// ErrEmptyOutboxTableName is returned when an empty outbox table name is supplied.
	ErrEmptyOutboxTableName = errors.New("empty outboxTableName supplied")
)

// Option defines a functional option for configuring a Repository.
type Option func(*Repository) error

// WithProjectTableName sets the table name for project rows.
func WithProjectTableName(tableName string) Option {
	return func(r *Repository) error {
		if tableName == "" {
			return ErrEmptyProjectTableName
		}

		r.projectTable = tableName

		return nil
	}
}

// WithOutboxTableName sets the table name for outbox event rows.
func WithOutboxTableName(tableName string) Option {
	return func(r *Repository) error {
		if tableName == "" {
			return ErrEmptyOutboxTableName
		}

		r.outboxTable = tableName

		return nil
	}
}

// WithLogger sets the logger for the Repository.
//
// Debug level: SQL statements with execution timing (development use)
// Info level: row counts and durations (production-safe)
// Warn level: concurrency conflicts
func WithLogger(logger domainmodel.Logger) Option {
	return func(r *Repository) error {
		r.logger = logger

		return nil
	}
}
