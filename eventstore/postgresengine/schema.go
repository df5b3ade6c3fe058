package postgresengine

import (
	"context"
	_ "embed"
	"errors"
	"strings"

	"github.com/AntonStoeckl/library-allocations/eventstore"
)

const tablePlaceholder = "{{table}}"

//go:embed schema.sql
var schemaSQL string

// CreateSchema creates the events table and its indexes if they do not exist yet.
// It is idempotent and safe to run on every start.
func (es EventStore) CreateSchema(ctx context.Context) error {
	for _, statement := range schemaStatements(es.eventTableName) {
		if _, err := es.db.Exec(ctx, statement); err != nil {
			es.logError(logMsgCreateSchemaFailed, err, logAttrQuery, statement)

			return errors.Join(eventstore.ErrCreatingSchemaFailed, err)
		}
	}

	es.logOperation(logMsgSchemaCreated, logAttrTable, es.eventTableName)

	return nil
}

func schemaStatements(tableName string) []string {
	rendered := strings.ReplaceAll(schemaSQL, tablePlaceholder, tableName)

	statements := make([]string, 0)
	for _, statement := range strings.Split(rendered, ";") {
		if trimmed := strings.TrimSpace(statement); trimmed != "" {
			statements = append(statements, trimmed)
		}
	}

	return statements
}
