package sqliteengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // sqlite driver

	"github.com/AntonStoeckl/library-allocations/eventstore"
)

const (
	driverName                     = "sqlite"
	defaultEventTableName          = "events"
	dsnPragmas                     = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	occurredAtLayout               = time.RFC3339Nano
	logMsgBuildSelectQueryFailed   = "failed to build select query"
	logMsgDBQueryFailed            = "database query execution failed"
	logMsgBuildStorableEventFailed = "failed to build storable event from database row"
	logMsgBuildInsertQueryFailed   = "failed to build insert query"
	logMsgDBExecFailed             = "database execution failed during event append"
	logMsgRollbackFailed           = "failed to roll back append transaction"
	logMsgMigrationFailed          = "failed to apply migration"
	logMsgQueryCompleted           = "query completed"
	logMsgEventsAppended           = "events appended"
	logMsgConcurrencyConflict      = "concurrency conflict detected"
	logMsgMigrationApplied         = "migration applied"
	logMsgSQLExecuted              = "executed sql for: "
	logMsgOperation                = "eventstore operation: "
	logAttrError                   = "error"
	logAttrQuery                   = "query"
	logAttrFilter                  = "filter"
	logAttrMigration               = "migration"
	logAttrEventType               = "event_type"
	logAttrEventCount              = "event_count"
	logAttrDurationMS              = "duration_ms"
	logAttrExpectedSequence        = "expected_sequence"
	logActionQuery                 = "query"
	logActionAppend                = "append"
)

// EventStore is the SQLite engine of the event store.
type EventStore struct {
	db             *sqlx.DB
	eventTableName string
	logger         eventstore.Logger
}

// eventRow is the shape of one row of the events table, as read by sqlx.
type eventRow struct {
	SequenceNumber int64  `db:"sequence_number"`
	OccurredAt     string `db:"occurred_at"`
	EventType      string `db:"event_type"`
	Payload        string `db:"payload"`
	Metadata       string `db:"metadata"`
}

// Open opens (and creates, if needed) the SQLite database file at path.
// The connection pool is limited to a single connection, which serializes all writers.
func Open(path string, options ...Option) (EventStore, error) {
	if strings.TrimSpace(path) == "" {
		return EventStore{}, fmt.Errorf("sqlite path is required")
	}

	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return EventStore{}, fmt.Errorf("create sqlite directory: %w", err)
		}
	}

	db, err := sqlx.Open(driverName, cleanPath+dsnPragmas)
	if err != nil {
		return EventStore{}, fmt.Errorf("open sqlite db: %w", err)
	}

	db.SetMaxOpenConns(1)

	if pingErr := db.Ping(); pingErr != nil {
		_ = db.Close()
		return EventStore{}, fmt.Errorf("ping sqlite db: %w", pingErr)
	}

	es, err := NewEventStoreFromSQLX(db, options...)
	if err != nil {
		_ = db.Close()
		return EventStore{}, err
	}

	return es, nil
}

// NewEventStoreFromSQLX creates a new EventStore on an already opened sqlx.DB using the "sqlite" driver.
func NewEventStoreFromSQLX(db *sqlx.DB, options ...Option) (EventStore, error) {
	if db == nil {
		return EventStore{}, eventstore.ErrNilDatabaseConnection
	}

	es := EventStore{
		db:             db,
		eventTableName: defaultEventTableName,
	}

	for _, option := range options {
		if err := option(&es); err != nil {
			return EventStore{}, err
		}
	}

	return es, nil
}

// Close closes the underlying database handle.
func (es EventStore) Close() error {
	if es.db == nil {
		return nil
	}

	return es.db.Close()
}

// Ping checks that the database is reachable.
func (es EventStore) Ping(ctx context.Context) error {
	return es.db.PingContext(ctx)
}

// Query retrieves the events matching the filter in sequence order,
// together with the MaxSequenceNumberUint of this "dynamic event stream" at the time of the query.
func (es EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	var empty eventstore.StorableEvents

	sqlQuery, args, buildQueryErr := es.buildSelectQuery(filter)
	if buildQueryErr != nil {
		es.logError(logMsgBuildSelectQueryFailed, buildQueryErr, logAttrFilter, filter.String())

		return empty, 0, buildQueryErr
	}

	rows := make([]eventRow, 0)

	start := time.Now()
	queryErr := es.db.SelectContext(ctx, &rows, sqlQuery, args...)
	duration := time.Since(start)
	es.logQueryWithDuration(sqlQuery, logActionQuery, duration)

	if queryErr != nil {
		es.logError(logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)

		return empty, 0, errors.Join(eventstore.ErrQueryingEventsFailed, queryErr)
	}

	eventStream := make(eventstore.StorableEvents, 0, len(rows))
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for _, row := range rows {
		event, buildErr := row.toStorableEvent()
		if buildErr != nil {
			es.logError(logMsgBuildStorableEventFailed, buildErr, logAttrEventType, row.EventType)

			return empty, 0, errors.Join(eventstore.ErrBuildingStorableEventFailed, buildErr)
		}

		eventStream = append(eventStream, event)
		maxSequenceNumber = event.SequenceNumber
	}

	es.logOperation(
		logMsgQueryCompleted,
		logAttrEventCount, len(eventStream),
		logAttrDurationMS, toMilliseconds(duration),
	)

	return eventStream, maxSequenceNumber, nil
}

func (row eventRow) toStorableEvent() (eventstore.StorableEvent, error) {
	occurredAt, parseErr := time.Parse(occurredAtLayout, row.OccurredAt)
	if parseErr != nil {
		return eventstore.StorableEvent{}, parseErr
	}

	event, buildErr := eventstore.BuildStorableEvent(row.EventType, occurredAt.UTC(), []byte(row.Payload), []byte(row.Metadata))
	if buildErr != nil {
		return eventstore.StorableEvent{}, buildErr
	}

	return event.WithSequenceNumber(eventstore.MaxSequenceNumberUint(row.SequenceNumber)), nil
}

// Append appends one or multiple events, but only if the maximum sequence number of the events matching
// the filter still equals expectedMaxSequenceNumber. Otherwise, it returns eventstore.ErrConcurrencyConflict
// and nothing is written.
//
// The filter should be the same as the one used for the Query before making the business decisions.
func (es EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	conditionalInsert, conditionalArgs, buildErr := es.buildConditionalInsertQuery(event, filter, expectedMaxSequenceNumber)
	if buildErr != nil {
		es.logError(logMsgBuildInsertQueryFailed, buildErr, logAttrEventType, event.EventType)

		return buildErr
	}

	start := time.Now()

	tx, beginErr := es.db.BeginTxx(ctx, nil)
	if beginErr != nil {
		es.logError(logMsgDBExecFailed, beginErr)

		return errors.Join(eventstore.ErrAppendingEventFailed, beginErr)
	}

	appended, execErr := es.appendInTx(ctx, tx, conditionalInsert, conditionalArgs, additionalEvents)
	if execErr != nil || !appended {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			es.logWarn(logMsgRollbackFailed, rollbackErr)
		}
	}

	duration := time.Since(start)
	es.logQueryWithDuration(conditionalInsert, logActionAppend, duration)

	if execErr != nil {
		return execErr
	}

	if !appended {
		es.logOperation(
			logMsgConcurrencyConflict,
			logAttrEventType, event.EventType,
			logAttrExpectedSequence, expectedMaxSequenceNumber,
		)

		return eventstore.ErrConcurrencyConflict
	}

	if commitErr := tx.Commit(); commitErr != nil {
		es.logError(logMsgDBExecFailed, commitErr)

		return errors.Join(eventstore.ErrAppendingEventFailed, commitErr)
	}

	es.logOperation(
		logMsgEventsAppended,
		logAttrEventType, event.EventType,
		logAttrEventCount, 1+len(additionalEvents),
		logAttrDurationMS, toMilliseconds(duration),
	)

	return nil
}

// appendInTx runs the conditional insert and, if it wrote its row, the plain inserts of the additional events.
// It reports false when the conditional insert was rejected.
func (es EventStore) appendInTx(
	ctx context.Context,
	tx *sqlx.Tx,
	conditionalInsert string,
	conditionalArgs []any,
	additionalEvents eventstore.StorableEvents,
) (bool, error) {

	result, execErr := tx.ExecContext(ctx, conditionalInsert, conditionalArgs...)
	if execErr != nil {
		es.logError(logMsgDBExecFailed, execErr, logAttrQuery, conditionalInsert)

		return false, errors.Join(eventstore.ErrAppendingEventFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		return false, errors.Join(eventstore.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	if rowsAffected == 0 {
		return false, nil
	}

	for _, additional := range additionalEvents {
		plainInsert, plainArgs, buildErr := es.buildPlainInsertQuery(additional)
		if buildErr != nil {
			es.logError(logMsgBuildInsertQueryFailed, buildErr, logAttrEventType, additional.EventType)

			return false, buildErr
		}

		if _, err := tx.ExecContext(ctx, plainInsert, plainArgs...); err != nil {
			es.logError(logMsgDBExecFailed, err, logAttrQuery, plainInsert)

			return false, errors.Join(eventstore.ErrAppendingEventFailed, err)
		}
	}

	return true, nil
}
