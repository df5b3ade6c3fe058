package helper

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-allocations/eventstore/sqliteengine"
)

// FakeClock is a fixed point in time, used as the base for the OccurredAt of commands in tests.
func FakeClock() time.Time {
	return time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
}

// CreateSQLiteEventStore opens a SQLite event store in a fresh temp directory and creates its schema.
// The store is closed when the test ends.
func CreateSQLiteEventStore(t testing.TB, options ...sqliteengine.Option) sqliteengine.EventStore {
	t.Helper()

	es, err := sqliteengine.Open(filepath.Join(t.TempDir(), "library.db"), options...)
	require.NoError(t, err, "error opening the sqlite event store in test setup")

	t.Cleanup(func() {
		_ = es.Close() // makes no sense to handle this
	})

	require.NoError(t, es.CreateSchema(context.Background()), "error creating the sqlite schema in test setup")

	return es
}
