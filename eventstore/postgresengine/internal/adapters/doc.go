// Package adapters provide database adapter implementations for the PostgreSQL event store.
//
// The adapters support pgx.Pool, sql.DB, and sqlx.DB behind the common DBAdapter interface.
// Appends run through ExecSerializable, which wraps the conditional insert into a SERIALIZABLE
// transaction and reports serialization failures as ErrSerializationFailure, so that two writers
// racing on the same dynamic event stream can never both succeed.
package adapters
