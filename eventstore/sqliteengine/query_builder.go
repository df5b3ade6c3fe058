package sqliteengine

import (
	"errors"
	"regexp"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3" // dialect registration

	"github.com/AntonStoeckl/library-allocations/eventstore"
)

// ErrInvalidPredicateKey is returned for predicate keys that are not plain top-level JSON property names.
var ErrInvalidPredicateKey = errors.New("predicate key must only contain letters, digits and underscores")

var predicateKeyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

const (
	dialectSQLite     = "sqlite3"
	colSequenceNumber = "sequence_number"
	colOccurredAt     = "occurred_at"
	colEventType      = "event_type"
	colPayload        = "payload"
	colMetadata       = "metadata"
	jsonPathPrefix    = "$."
	jsonExtractEquals = "json_extract(payload, ?) = ?"
	subselectEquals   = "? = ?"
)

func (es EventStore) buildSelectQuery(filter eventstore.Filter) (string, []any, error) {
	selectStmt := goqu.Dialect(dialectSQLite).
		From(es.eventTableName).
		Prepared(true).
		Select(colSequenceNumber, colOccurredAt, colEventType, colPayload, colMetadata).
		Order(goqu.I(colSequenceNumber).Asc())

	selectStmt, whereErr := addWhereClause(filter, selectStmt)
	if whereErr != nil {
		return "", nil, whereErr
	}

	sqlQuery, args, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", nil, errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, args, nil
}

// buildConditionalInsertQuery builds an INSERT that only writes the row when the current
// maximum sequence number of the filtered events equals the expected one:
//
//	INSERT INTO events (...) SELECT ?, ?, ?, ?
//	WHERE (SELECT COALESCE(MAX(sequence_number), 0) FROM events WHERE <filter>) = <expected>
func (es EventStore) buildConditionalInsertQuery(
	event eventstore.StorableEvent,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
) (string, []any, error) {

	builder := goqu.Dialect(dialectSQLite)

	maxSequenceStmt := builder.
		From(es.eventTableName).
		Prepared(true).
		Select(goqu.COALESCE(goqu.MAX(colSequenceNumber), 0))

	maxSequenceStmt, whereErr := addWhereClause(filter, maxSequenceStmt)
	if whereErr != nil {
		return "", nil, whereErr
	}

	valuesStmt := builder.
		Select(insertValues(event)...).
		Prepared(true).
		Where(goqu.L(subselectEquals, maxSequenceStmt, int64(expectedMaxSequenceNumber)))

	insertStmt := builder.
		Insert(es.eventTableName).
		Prepared(true).
		Cols(colOccurredAt, colEventType, colPayload, colMetadata).
		FromQuery(valuesStmt)

	sqlQuery, args, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", nil, errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, args, nil
}

// buildPlainInsertQuery builds the unconditional INSERT for the additional events of one Append,
// which run in the same transaction after the conditional insert succeeded.
func (es EventStore) buildPlainInsertQuery(event eventstore.StorableEvent) (string, []any, error) {
	insertStmt := goqu.Dialect(dialectSQLite).
		Insert(es.eventTableName).
		Prepared(true).
		Cols(colOccurredAt, colEventType, colPayload, colMetadata).
		Vals(insertValues(event))

	sqlQuery, args, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", nil, errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, args, nil
}

func insertValues(event eventstore.StorableEvent) []any {
	return []any{
		goqu.V(event.OccurredAt.UTC().Format(occurredAtLayout)),
		goqu.V(event.EventType),
		goqu.V(string(event.PayloadJSON)),
		goqu.V(string(event.MetadataJSON)),
	}
}

// addWhereClause translates the filter: FilterItems are ORed, inside an item the event types are ORed
// and ANDed with the predicates, which are ORed or ANDed depending on the item.
// An empty filter adds no WHERE clause at all.
func addWhereClause(filter eventstore.Filter, selectStmt *goqu.SelectDataset) (*goqu.SelectDataset, error) {
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
				if !predicateKeyPattern.MatchString(predicate.Key()) {
					return nil, errors.Join(eventstore.ErrBuildingQueryFailed, ErrInvalidPredicateKey)
				}

				predicateExpressions = append(
					predicateExpressions,
					goqu.L(jsonExtractEquals, jsonPathPrefix+predicate.Key(), predicate.Val()),
				)
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
