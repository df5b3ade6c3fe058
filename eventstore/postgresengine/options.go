package postgresengine

import (
	"github.com/AntonStoeckl/library-allocations/eventstore"
)

// Option defines a functional option for configuring EventStore.
type Option func(*EventStore) error

// WithTableName sets the table name for the EventStore.
// The name is interpolated into SQL, so it must pass eventstore.ValidateEventsTableName.
func WithTableName(tableName string) Option {
	return func(es *EventStore) error {
		if err := eventstore.ValidateEventsTableName(tableName); err != nil {
			return err
		}

		es.eventTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the EventStore.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL queries with execution timing (development use)
// Info level: Event counts, durations, concurrency conflicts (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger eventstore.Logger) Option {
	return func(es *EventStore) error {
		es.logger = logger
		return nil
	}
}
