package sqliteengine

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
	t.Helper()

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
	sqlQuery, args, err := es.buildSelectQuery(eventstore.BuildEventFilter().MatchingAnyEvent())

	// assert
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, "FROM `events`")
	assert.Contains(t, sqlQuery, "ORDER BY `sequence_number` ASC")
	assert.NotContains(t, sqlQuery, "WHERE")
	assert.Empty(t, args)
}

func Test_BuildSelectQuery_BindsAllFilterValues(t *testing.T) {
	// arrange
	es := givenEventStoreForQueryBuilding()
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookAdded", "BookRemoved").
		AndAnyPredicateOf(eventstore.P("BookID", "b-1")).
		OrMatching().
		AnyEventTypeOf("MemberRegistered").
		AndAllPredicatesOf(eventstore.P("MemberID", "m-1"), eventstore.P("Name", "O'Hara")).
		Finalize()

	// act
	sqlQuery, args, err := es.buildSelectQuery(filter)

	// assert
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, "`event_type` IN (?, ?)")
	assert.Contains(t, sqlQuery, "json_extract(payload, ?) = ?")
	assert.Contains(t, sqlQuery, " OR ")
	assert.Contains(t, sqlQuery, " AND ")
	assert.NotContains(t, sqlQuery, "b-1")
	assert.NotContains(t, sqlQuery, "O'Hara")
	assert.Equal(
		t,
		[]any{"BookAdded", "BookRemoved", "$.BookID", "b-1", "MemberRegistered", "$.MemberID", "m-1", "$.Name", "O'Hara"},
		args,
	)
}

func Test_BuildSelectQuery_RejectsPredicateKeysThatAreNoPropertyNames(t *testing.T) {
	// arrange
	es := givenEventStoreForQueryBuilding()
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyPredicateOf(eventstore.P("Book.ID", "b-1")).
		Finalize()

	// act
	_, _, err := es.buildSelectQuery(filter)

	// assert
	assert.ErrorIs(t, err, eventstore.ErrBuildingQueryFailed)
	assert.ErrorIs(t, err, ErrInvalidPredicateKey)
}

func Test_BuildConditionalInsertQuery_GuardsOnTheMaxSequenceNumber(t *testing.T) {
	// arrange
	es := givenEventStoreForQueryBuilding()
	event := givenStorableEvent(t, "BookEdited", `{"BookID":"b-1","Name":"Dune"}`)
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookAdded").
		AndAnyPredicateOf(eventstore.P("BookID", "b-1")).
		Finalize()

	// act
	sqlQuery, args, err := es.buildConditionalInsertQuery(event, filter, 3)

	// assert
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, "INSERT INTO `events`")
	assert.Contains(t, sqlQuery, "SELECT ?, ?, ?, ?")
	assert.Contains(t, sqlQuery, "COALESCE(MAX(`sequence_number`)")
	assert.Contains(t, sqlQuery, "json_extract(payload, ?) = ?")
	assert.NotContains(t, sqlQuery, "Dune")

	require.NotEmpty(t, args)
	assert.Equal(t, "2026-03-01T10:00:00Z", args[0])
	assert.Equal(t, "BookEdited", args[1])
	assert.Equal(t, `{"BookID":"b-1","Name":"Dune"}`, args[2])
	assert.Contains(t, args, "BookAdded")
	assert.Contains(t, args, "$.BookID")
	assert.Equal(t, int64(3), args[len(args)-1])
}

func Test_BuildPlainInsertQuery(t *testing.T) {
	// arrange
	es := givenEventStoreForQueryBuilding()
	event := givenStorableEvent(t, "BookRemoved", `{"BookID":"b-1"}`)

	// act
	sqlQuery, args, err := es.buildPlainInsertQuery(event)

	// assert
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, "INSERT INTO `events`")
	assert.Contains(t, sqlQuery, "VALUES (?, ?, ?, ?)")
	assert.Equal(t, []any{"2026-03-01T10:00:00Z", "BookRemoved", `{"BookID":"b-1"}`, "{}"}, args)
}

func Test_ExtractUpMigration(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE x (id INTEGER);\n-- +migrate Down\nDROP TABLE x;\n"

	assert.Equal(t, "\nCREATE TABLE x (id INTEGER);\n", extractUpMigration(content))
	assert.Equal(t, "SELECT 1;", extractUpMigration("SELECT 1;"))
}
