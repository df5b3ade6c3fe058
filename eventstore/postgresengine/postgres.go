package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-allocations/eventstore"
	"github.com/AntonStoeckl/library-allocations/eventstore/postgresengine/internal/adapters"
)

const (
	defaultEventTableName          = "events"
	logMsgBuildSelectQueryFailed   = "failed to build select query"
	logMsgDBQueryFailed            = "database query execution failed"
	logMsgCloseRowsFailed          = "failed to close database rows"
	logMsgScanRowFailed            = "failed to scan database row"
	logMsgBuildStorableEventFailed = "failed to build storable event from database row"
	logMsgBuildInsertQueryFailed   = "failed to build insert query"
	logMsgDBExecFailed             = "database execution failed during event append"
	logMsgRowsAffectedFailed       = "failed to get rows affected count"
	logMsgCreateSchemaFailed       = "failed to create event store schema"
	logMsgQueryCompleted           = "query completed"
	logMsgEventsAppended           = "events appended"
	logMsgConcurrencyConflict      = "concurrency conflict detected"
	logMsgSchemaCreated            = "schema created"
	logMsgSQLExecuted              = "executed sql for: "
	logMsgOperation                = "eventstore operation: "
	logAttrError                   = "error"
	logAttrQuery                   = "query"
	logAttrFilter                  = "filter"
	logAttrTable                   = "table"
	logAttrEventType               = "event_type"
	logAttrEventCount              = "event_count"
	logAttrDurationMS              = "duration_ms"
	logAttrExpectedEvents          = "expected_events"
	logAttrRowsAffected            = "rows_affected"
	logAttrExpectedSequence        = "expected_sequence"
	logAttrReason                  = "reason"
	logActionQuery                 = "query"
	logActionAppend                = "append"
	reasonSerializationFailure     = "serialization_failure"
	reasonStreamChanged            = "stream_changed"
	colEventType                   = "event_type"
	colOccurredAt                  = "occurred_at"
	colPayload                     = "payload"
	colMetadata                    = "metadata"
	colSequenceNumber              = "sequence_number"
	cteContext                     = "context"
	cteVals                        = "vals"
	dialectPostgres                = "postgres"
	aliasMaxSeq                    = "max_seq"
	castText                       = "?::text"
	castTimestamp                  = "?::timestamp with time zone"
	castJsonb                      = "?::jsonb"
	containsJsonb                  = colPayload + " @> ?::jsonb"
)

type (
	sqlQueryString    = string
	rowsAffectedInt64 = int64
)

// EventStore is the PostgreSQL engine of the event store.
// It is a value type and safe for concurrent use, as long as the underlying connection pool is.
type EventStore struct {
	db             adapters.DBAdapter
	eventTableName string
	logger         eventstore.Logger
}

type queryResultRow struct {
	eventType      string
	payload        []byte
	metadata       []byte
	occurredAt     time.Time
	sequenceNumber eventstore.MaxSequenceNumberUint
}

// NewEventStoreFromPGXPool creates a new EventStore using a pgx Pool with optional configuration.
func NewEventStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (EventStore, error) {
	if db == nil {
		return EventStore{}, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewPGXAdapter(db), options...)
}

// NewEventStoreFromSQLDB creates a new EventStore using a sql.DB with optional configuration.
func NewEventStoreFromSQLDB(db *sql.DB, options ...Option) (EventStore, error) {
	if db == nil {
		return EventStore{}, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLAdapter(db), options...)
}

// NewEventStoreFromSQLX creates a new EventStore using a sqlx.DB with optional configuration.
func NewEventStoreFromSQLX(db *sqlx.DB, options ...Option) (EventStore, error) {
	if db == nil {
		return EventStore{}, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLXAdapter(db), options...)
}

func newEventStore(db adapters.DBAdapter, options ...Option) (EventStore, error) {
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

// Query retrieves events from the Postgres event store based on the provided eventstore.Filter criteria
// and returns them as eventstore.StorableEvents
// as well as the MaxSequenceNumberUint for this "dynamic event stream" at the time of the query.
func (es EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	var empty eventstore.StorableEvents

	sqlQuery, buildQueryErr := es.buildSelectQuery(filter)
	if buildQueryErr != nil {
		es.logError(logMsgBuildSelectQueryFailed, buildQueryErr, logAttrFilter, filter.String())

		return empty, 0, buildQueryErr
	}

	start := time.Now()
	rows, queryErr := es.db.Query(ctx, sqlQuery)
	if queryErr != nil {
		es.logQueryWithDuration(sqlQuery, logActionQuery, time.Since(start))
		es.logError(logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)

		return empty, 0, errors.Join(eventstore.ErrQueryingEventsFailed, queryErr)
	}
	defer es.closeRows(rows)

	eventStream, maxSequenceNumber, scanErr := es.processQueryResults(rows)
	duration := time.Since(start)
	es.logQueryWithDuration(sqlQuery, logActionQuery, duration)

	if scanErr != nil {
		return empty, 0, scanErr
	}

	es.logOperation(
		logMsgQueryCompleted,
		logAttrEventCount, len(eventStream),
		logAttrDurationMS, toMilliseconds(duration),
	)

	return eventStream, maxSequenceNumber, nil
}

// closeRows safely closes database rows and logs any errors.
func (es EventStore) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		es.logWarn(logMsgCloseRowsFailed, closeErr)
	}
}

// processQueryResults scans the database rows into storable events.
func (es EventStore) processQueryResults(rows adapters.DBRows) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	var empty eventstore.StorableEvents
	result := queryResultRow{}
	eventStream := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for rows.Next() {
		rowScanErr := rows.Scan(&result.eventType, &result.occurredAt, &result.payload, &result.metadata, &result.sequenceNumber)
		if rowScanErr != nil {
			es.logError(logMsgScanRowFailed, rowScanErr)

			return empty, 0, errors.Join(eventstore.ErrScanningDBRowFailed, rowScanErr)
		}

		event, buildStorableErr := eventstore.BuildStorableEvent(
			result.eventType,
			result.occurredAt.UTC(),
			result.payload,
			result.metadata,
		)
		if buildStorableErr != nil {
			es.logError(logMsgBuildStorableEventFailed, buildStorableErr, logAttrEventType, result.eventType)

			return empty, 0, errors.Join(eventstore.ErrBuildingStorableEventFailed, buildStorableErr)
		}

		eventStream = append(eventStream, event.WithSequenceNumber(result.sequenceNumber))
		maxSequenceNumber = result.sequenceNumber
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		es.logError(logMsgScanRowFailed, rowsErr)

		return empty, 0, errors.Join(eventstore.ErrScanningDBRowFailed, rowsErr)
	}

	return eventStream, maxSequenceNumber, nil
}

// Append attempts to append one or multiple eventstore.StorableEvent(s) onto the Postgres event store respecting concurrency constraints
// for this "dynamic event stream" based on the provided eventstore.Filter criteria and the expected MaxSequenceNumberUint.
//
// The provided eventstore.Filter criteria should be the same as the ones used for the Query before making the business decisions.
// All events are written atomically, or none is.
func (es EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	allEvents := eventstore.StorableEvents{event}
	allEvents = append(allEvents, additionalEvents...)

	sqlQuery, buildQueryErr := es.buildInsertQuery(allEvents, filter, expectedMaxSequenceNumber)
	if buildQueryErr != nil {
		es.logError(logMsgBuildInsertQueryFailed, buildQueryErr, logAttrEventCount, len(allEvents))

		return buildQueryErr
	}

	rowsAffected, duration, execErr := es.executeAppendQuery(ctx, sqlQuery)
	if execErr != nil {
		if errors.Is(execErr, adapters.ErrSerializationFailure) {
			es.logOperation(
				logMsgConcurrencyConflict,
				logAttrReason, reasonSerializationFailure,
				logAttrExpectedSequence, expectedMaxSequenceNumber,
			)

			return eventstore.ErrConcurrencyConflict
		}

		return execErr
	}

	if rowsAffected < int64(len(allEvents)) {
		es.logOperation(
			logMsgConcurrencyConflict,
			logAttrReason, reasonStreamChanged,
			logAttrExpectedEvents, len(allEvents),
			logAttrRowsAffected, rowsAffected,
			logAttrExpectedSequence, expectedMaxSequenceNumber,
		)

		return eventstore.ErrConcurrencyConflict
	}

	es.logOperation(
		logMsgEventsAppended,
		logAttrEventType, event.EventType,
		logAttrEventCount, len(allEvents),
		logAttrDurationMS, toMilliseconds(duration),
	)

	return nil
}

// executeAppendQuery executes the SQL append query and returns rows affected and duration.
func (es EventStore) executeAppendQuery(ctx context.Context, sqlQuery string) (
	rowsAffectedInt64,
	time.Duration,
	error,
) {

	start := time.Now()
	result, execErr := es.db.ExecSerializable(ctx, sqlQuery)
	duration := time.Since(start)
	es.logQueryWithDuration(sqlQuery, logActionAppend, duration)

	if execErr != nil {
		if errors.Is(execErr, adapters.ErrSerializationFailure) {
			return 0, duration, execErr
		}

		es.logError(logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)

		return 0, duration, errors.Join(eventstore.ErrAppendingEventFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		es.logError(logMsgRowsAffectedFailed, rowsAffectedErr)

		return 0, duration, errors.Join(eventstore.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, duration, nil
}

func (es EventStore) buildSelectQuery(filter eventstore.Filter) (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(es.eventTableName).
		Select(colEventType, colOccurredAt, colPayload, colMetadata, colSequenceNumber).
		Order(goqu.I(colSequenceNumber).Asc())

	selectStmt, whereErr := es.addWhereClause(filter, selectStmt)
	if whereErr != nil {
		return "", whereErr
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// buildInsertQuery builds one conditional INSERT for all events:
//
//	WITH context AS (SELECT COALESCE(MAX(sequence_number), 0) AS max_seq FROM events WHERE <filter>),
//	     vals AS (SELECT ... UNION ALL SELECT ...)
//	INSERT INTO events (...) SELECT vals.* FROM context, vals WHERE max_seq = <expected>
func (es EventStore) buildInsertQuery(
	events eventstore.StorableEvents,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
) (sqlQueryString, error) {

	builder := goqu.Dialect(dialectPostgres)

	cteStmt := builder.
		From(es.eventTableName).
		Select(goqu.COALESCE(goqu.MAX(colSequenceNumber), 0).As(aliasMaxSeq))

	cteStmt, whereErr := es.addWhereClause(filter, cteStmt)
	if whereErr != nil {
		return "", whereErr
	}

	var valuesStmt *goqu.SelectDataset
	for _, event := range events {
		eventStmt := builder.
			Select(
				goqu.L(castText, event.EventType).As(colEventType),
				goqu.L(castTimestamp, event.OccurredAt.UTC()).As(colOccurredAt),
				goqu.L(castJsonb, string(event.PayloadJSON)).As(colPayload),
				goqu.L(castJsonb, string(event.MetadataJSON)).As(colMetadata),
			)

		if valuesStmt == nil {
			valuesStmt = eventStmt
			continue
		}

		valuesStmt = valuesStmt.UnionAll(eventStmt)
	}

	insertStmt := builder.
		Insert(es.eventTableName).
		Cols(colEventType, colOccurredAt, colPayload, colMetadata).
		With(cteContext, cteStmt).
		With(cteVals, valuesStmt).
		FromQuery(
			builder.From(cteContext, cteVals).
				Select(
					fmt.Sprintf("%s.%s", cteVals, colEventType),
					fmt.Sprintf("%s.%s", cteVals, colOccurredAt),
					fmt.Sprintf("%s.%s", cteVals, colPayload),
					fmt.Sprintf("%s.%s", cteVals, colMetadata),
				).
				Where(goqu.C(aliasMaxSeq).Eq(goqu.V(expectedMaxSequenceNumber))),
		)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// addWhereClause translates the filter: FilterItems are ORed, inside an item the event types are ORed
// and ANDed with the predicates, which are ORed or ANDed depending on the item.
// An empty filter adds no WHERE clause at all.
func (es EventStore) addWhereClause(
	filter eventstore.Filter,
	selectStmt *goqu.SelectDataset,
) (*goqu.SelectDataset, error) {

	if len(filter.Items()) == 0 {
		return selectStmt, nil
	}

	itemsExpressions := make([]goqu.Expression, 0, len(filter.Items()))

	for _, item := range filter.Items() {
		itemExpressions := make([]goqu.Expression, 0, 2)

		if len(item.EventTypes()) > 0 {
			itemExpressions = append(itemExpressions, goqu.C(colEventType).In(item.EventTypes()))
		}

		if len(item.Predicates()) > 0 {
			predicateExpressions := make([]goqu.Expression, 0, len(item.Predicates()))

			for _, predicate := range item.Predicates() {
				containment, marshalErr := jsoniter.ConfigFastest.MarshalToString(
					map[string]string{predicate.Key(): predicate.Val()},
				)
				if marshalErr != nil {
					return nil, errors.Join(eventstore.ErrBuildingQueryFailed, marshalErr)
				}

				predicateExpressions = append(predicateExpressions, goqu.L(containsJsonb, containment))
			}

			if item.AllPredicatesMustMatch() {
				itemExpressions = append(itemExpressions, goqu.And(predicateExpressions...))
			} else {
				itemExpressions = append(itemExpressions, goqu.Or(predicateExpressions...))
			}
		}

		itemsExpressions = append(itemsExpressions, goqu.And(itemExpressions...))
	}

	return selectStmt.Where(goqu.Or(itemsExpressions...)), nil
}
