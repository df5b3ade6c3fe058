// Package sqliteengine provides an embedded SQLite implementation of the event store,
// built on modernc.org/sqlite (no cgo) and sqlx, with statements built by goqu's sqlite3 dialect.
//
// Filter predicates are evaluated with json_extract on the TEXT payload column. Append is a single
// conditional INSERT ... SELECT ... WHERE (SELECT MAX(sequence_number) ...) = ?, and SQLite executes
// every statement under its database-wide write lock, so the check and the insert can not interleave
// with another writer. Appends of several events run in one transaction.
//
// Usage:
//
//	store, err := sqliteengine.Open("data/library.db", sqliteengine.WithLogger(slog.Default()))
//	if err != nil {
//		// handle error
//	}
//	defer store.Close()
//
//	if err := store.CreateSchema(ctx); err != nil {
//		// handle error
//	}
package sqliteengine
