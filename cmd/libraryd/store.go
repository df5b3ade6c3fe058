package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AntonStoeckl/library-allocations/config"
	"github.com/AntonStoeckl/library-allocations/eventstore/postgresengine"
	"github.com/AntonStoeckl/library-allocations/eventstore/sqliteengine"
	"github.com/AntonStoeckl/library-allocations/library/shell"
)

// eventStore is what the service needs from a storage engine.
type eventStore interface {
	shell.EventStore
	CreateSchema(ctx context.Context) error
}

// openEventStore opens the configured engine. The returned close function releases its connections.
func openEventStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (eventStore, func(), error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		es, err := sqliteengine.Open(
			cfg.SQLitePath,
			sqliteengine.WithTableName(cfg.EventsTable),
			sqliteengine.WithLogger(logger),
		)
		if err != nil {
			return nil, nil, err
		}

		return es, func() { _ = es.Close() }, nil

	case config.StoragePostgres:
		return openPostgresEventStore(ctx, cfg, logger)

	default:
		return nil, nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}

func openPostgresEventStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (eventStore, func(), error) {
	options := []postgresengine.Option{
		postgresengine.WithTableName(cfg.EventsTable),
		postgresengine.WithLogger(logger),
	}

	switch cfg.PostgresAdapter {
	case config.AdapterPGXPool:
		pool, err := config.OpenPostgresPGXPool(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}

		es, err := postgresengine.NewEventStoreFromPGXPool(pool, options...)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}

		return es, pool.Close, nil

	case config.AdapterSQLDB:
		db, err := config.OpenPostgresSQLDB(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}

		es, err := postgresengine.NewEventStoreFromSQLDB(db, options...)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return es, func() { _ = db.Close() }, nil

	case config.AdapterSQLX:
		db, err := config.OpenPostgresSQLX(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}

		es, err := postgresengine.NewEventStoreFromSQLX(db, options...)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return es, func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown postgres adapter %q", cfg.PostgresAdapter)
	}
}
