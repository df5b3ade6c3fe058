package sqliteengine

import (
	"github.com/AntonStoeckl/library-allocations/eventstore"
)

// Option defines a functional option for configuring EventStore.
type Option func(*EventStore) error

// WithTableName sets the table name for the EventStore.
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
// SQL statements are logged at debug level, completed operations and concurrency conflicts at info level.
func WithLogger(logger eventstore.Logger) Option {
	return func(es *EventStore) error {
		es.logger = logger
		return nil
	}
}
