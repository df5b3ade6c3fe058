// Package postgresengine provides a PostgreSQL implementation of the event store.
//
// It supports three database adapters (pgx.Pool, sql.DB with lib/pq, sqlx.DB). Filter predicates
// are translated into jsonb containment checks (payload @> '{"BookID": "..."}'), which the GIN
// index created by CreateSchema serves.
//
// Append is a conditional INSERT ... SELECT that only writes when the maximum sequence number of
// the filtered "dynamic event stream" still equals the expected one. The statement runs in a
// SERIALIZABLE transaction, so concurrent writers on overlapping streams are detected even when
// neither has committed yet; both outcomes surface as eventstore.ErrConcurrencyConflict.
//
// Usage:
//
//	pool, _ := pgxpool.New(ctx, dsn)
//	store, _ := postgresengine.NewEventStoreFromPGXPool(
//		pool,
//		postgresengine.WithTableName("events"),
//		postgresengine.WithLogger(slog.Default()),
//	)
//	_ = store.CreateSchema(ctx)
//
//	events, maxSeq, _ := store.Query(ctx, filter)
//	err := store.Append(ctx, filter, maxSeq, newEvent)
package postgresengine
