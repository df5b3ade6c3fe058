package postgresengine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-allocations/eventstore"
)

func givenEventStoreForQueryBuilding() EventStore {
	return EventStore{eventTableName: defaultEventTableName}
}

func givenStorableEvent(t *testing.T, eventType string, payload string) eventstore.StorableEvent {
	event, err := eventstore.BuildStorableEventWithEmptyMetadata(
		eventType,
		time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		[]byte(payload),
	)
	require.NoError(t, err, "error in arranging test data")

	return event
}

func Test_BuildSelectQuery_WithEmptyFilter(t *testing.T) {
	// arrange
	es := givenEventStoreForQueryBuilding()

	// act
	sqlQuery, err := es.buildSelectQuery(eventstore.BuildEventFilter().MatchingAnyEvent())

	// assert
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `FROM "events"`)
	assert.Contains(t, sqlQuery, `ORDER BY "sequence_number" ASC`)
	assert.NotContains(t, sqlQuery, "WHERE")
}

func Test_BuildSelectQuery_WithEventTypesAndPredicates(t *testing.T) {
	// arrange
	es := givenEventStoreForQueryBuilding()
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookAdded", "BookRemoved").
		AndAnyPredicateOf(eventstore.P("BookID", "b-1"), eventstore.P("MemberID", "m-1")).
		Finalize()

	// act
	sqlQuery, err := es.buildSelectQuery(filter)

	// assert
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `"event_type" IN ('BookAdded', 'BookRemoved')`)
	assert.Contains(t, sqlQuery, `payload @> '{"BookID":"b-1"}'::jsonb`)
	assert.Contains(t, sqlQuery, `payload @> '{"MemberID":"m-1"}'::jsonb`)
	assert.Contains(t, sqlQuery, " OR ")
}

func Test_BuildSelectQuery_EscapesPredicateValues(t *testing.T) {
	// arrange
	es := givenEventStoreForQueryBuilding()
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyPredicateOf(eventstore.P("Author", "O'Reilly")).
		Finalize()

	// act
	sqlQuery, err := es.buildSelectQuery(filter)

	// assert
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `payload @> '{"Author":"O''Reilly"}'::jsonb`)
}

func Test_BuildInsertQuery_ForSingleEvent(t *testing.T) {
	// arrange
	es := givenEventStoreForQueryBuilding()
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookAdded").
		AndAnyPredicateOf(eventstore.P("BookID", "b-1")).
		Finalize()
	event := givenStorableEvent(t, "BookAdded", `{"BookID":"b-1"}`)

	// act
	sqlQuery, err := es.buildInsertQuery(eventstore.StorableEvents{event}, filter, 7)

	// assert
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `INSERT INTO "events"`)
	assert.Contains(t, sqlQuery, `'BookAdded'::text`)
	assert.Contains(t, sqlQuery, `'{"BookID":"b-1"}'::jsonb`)
	assert.Contains(t, sqlQuery, `("max_seq" = 7)`)
	assert.NotContains(t, sqlQuery, "UNION ALL")
}

func Test_BuildInsertQuery_ForMultipleEvents(t *testing.T) {
	// arrange
	es := givenEventStoreForQueryBuilding()
	filter := eventstore.BuildEventFilter().MatchingAnyEvent()
	first := givenStorableEvent(t, "BookAdded", `{"BookID":"b-1"}`)
	second := givenStorableEvent(t, "BookAdded", `{"BookID":"b-2"}`)

	// act
	sqlQuery, err := es.buildInsertQuery(eventstore.StorableEvents{first, second}, filter, 0)

	// assert
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, "UNION ALL")
	assert.Contains(t, sqlQuery, `'{"BookID":"b-2"}'::jsonb`)
	assert.Contains(t, sqlQuery, `("max_seq" = 0)`)
}

func Test_SchemaStatements_UseTableName(t *testing.T) {
	statements := schemaStatements("library_events")

	require.Len(t, statements, 3)
	assert.Contains(t, statements[0], "CREATE TABLE IF NOT EXISTS library_events")
	assert.Contains(t, statements[2], "library_events_payload_idx")
	for _, statement := range statements {
		assert.NotContains(t, statement, tablePlaceholder)
	}
}
