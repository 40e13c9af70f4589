package domainmodel

import (
	"errors"
	"time"
)

var (
	// ErrEmptyPartitionKey is returned when an empty partition key is supplied.
	ErrEmptyPartitionKey = errors.New("partition key must not be empty")

	// ErrZeroCreatedOn is returned when a zero creation instant is supplied.
	ErrZeroCreatedOn = errors.New("creation instant must not be the zero time")
)

// EntityOption defines a functional option for configuring an EntityBase at construction.
type EntityOption func(*EntityBase) error

// WithID sets an explicit identity instead of generating a fresh one.
//
// The uuid.Nil sentinel is accepted; the resulting entity simply never
// compares equal to anything.
func WithID(id EntityIDValue) EntityOption {
	return func(e *EntityBase) error {
		e.id = id

		return nil
	}
}

// WithPartitionKey sets an explicit partition key instead of deriving it from the identity.
func WithPartitionKey(partitionKey PartitionKeyString) EntityOption {
	return func(e *EntityBase) error {
		if partitionKey == "" {
			return ErrEmptyPartitionKey
		}

		e.partitionKey = partitionKey

		return nil
	}
}

// WithCreatedOn sets an explicit creation instant, normalized to UTC.
func WithCreatedOn(createdOn time.Time) EntityOption {
	return func(e *EntityBase) error {
		if createdOn.IsZero() {
			return ErrZeroCreatedOn
		}

		e.createdOn = createdOn.UTC()

		return nil
	}
}

// WithTimestamp sets an explicit ordering/concurrency value instead of the
// construction-time default.
func WithTimestamp(timestamp int64) EntityOption {
	return func(e *EntityBase) error {
		e.timestamp = timestamp

		return nil
	}
}
