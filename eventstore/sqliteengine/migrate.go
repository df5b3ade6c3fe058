package sqliteengine

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-allocations/eventstore"
)

const (
	tablePlaceholder      = "{{table}}"
	markerUp              = "-- +migrate Up"
	markerDown            = "-- +migrate Down"
	colMigrationName      = "name"
	colMigrationAppliedAt = "applied_at"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// CreateSchema applies the embedded migrations that were not applied yet, each in its own transaction.
// Applied migrations are recorded per events table in <table>_migrations.
func (es EventStore) CreateSchema(ctx context.Context) error {
	migrationTable := es.eventTableName + "_migrations"

	createMigrationTable := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (name TEXT PRIMARY KEY, applied_at TEXT NOT NULL)",
		migrationTable,
	)
	if _, err := es.db.ExecContext(ctx, createMigrationTable); err != nil {
		es.logError(logMsgMigrationFailed, err, logAttrMigration, migrationTable)

		return errors.Join(eventstore.ErrCreatingSchemaFailed, err)
	}

	files, err := migrationFiles()
	if err != nil {
		return errors.Join(eventstore.ErrCreatingSchemaFailed, err)
	}

	for _, file := range files {
		if err := es.applyMigration(ctx, migrationTable, file); err != nil {
			es.logError(logMsgMigrationFailed, err, logAttrMigration, file)

			return errors.Join(eventstore.ErrCreatingSchemaFailed, err)
		}
	}

	return nil
}

func (es EventStore) applyMigration(ctx context.Context, migrationTable string, file string) error {
	countQuery, countArgs, err := goqu.Dialect(dialectSQLite).
		From(migrationTable).
		Prepared(true).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.C(colMigrationName).Eq(file)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build migration check %s: %w", file, err)
	}

	var applied int
	if err := es.db.GetContext(ctx, &applied, countQuery, countArgs...); err != nil {
		return fmt.Errorf("check migration %s: %w", file, err)
	}

	if applied > 0 {
		return nil
	}

	content, err := fs.ReadFile(migrationsFS, "migrations/"+file)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", file, err)
	}

	upSQL := strings.ReplaceAll(extractUpMigration(string(content)), tablePlaceholder, es.eventTableName)

	tx, err := es.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", file, err)
	}

	if strings.TrimSpace(upSQL) != "" {
		if _, err := tx.ExecContext(ctx, upSQL); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", file, err)
		}
	}

	recordQuery, recordArgs, err := goqu.Dialect(dialectSQLite).
		Insert(migrationTable).
		Prepared(true).
		Rows(goqu.Record{
			colMigrationName:      file,
			colMigrationAppliedAt: time.Now().UTC().Format(time.RFC3339),
		}).
		ToSQL()
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("build migration record %s: %w", file, err)
	}

	if _, err := tx.ExecContext(ctx, recordQuery, recordArgs...); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record migration %s: %w", file, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %s: %w", file, err)
	}

	es.logOperation(logMsgMigrationApplied, logAttrMigration, file)

	return nil
}

func migrationFiles() ([]string, error) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	return files, nil
}

// extractUpMigration returns the SQL between the Up and Down markers, or all of it without markers.
func extractUpMigration(content string) string {
	upIdx := strings.Index(content, markerUp)
	if upIdx == -1 {
		return content
	}

	downIdx := strings.Index(content, markerDown)
	if downIdx == -1 {
		return content[upIdx+len(markerUp):]
	}

	return content[upIdx+len(markerUp) : downIdx]
}
