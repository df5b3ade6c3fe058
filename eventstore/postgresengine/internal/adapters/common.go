package adapters

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
)

// ErrSerializationFailure is returned when PostgreSQL aborted a SERIALIZABLE transaction
// because a concurrent transaction touched the same rows or predicates.
var ErrSerializationFailure = errors.New("serialization failure")

// DBAdapter defines the interface for database operations needed by the event store.
type DBAdapter interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
	ExecSerializable(ctx context.Context, query string) (DBResult, error)
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
}

// stdRows wraps standard library sql.Rows to implement DBRows interface.
type stdRows struct {
	rows *sql.Rows
}

func (s *stdRows) Next() bool {
	return s.rows.Next()
}

func (s *stdRows) Scan(dest ...any) error {
	return s.rows.Scan(dest...)
}

func (s *stdRows) Err() error {
	return s.rows.Err()
}

func (s *stdRows) Close() error {
	return s.rows.Close()
}

// stdResult wraps standard library sql.Result to implement DBResult interface.
type stdResult struct {
	result sql.Result
}

func (s *stdResult) RowsAffected() (int64, error) {
	return s.result.RowsAffected()
}

// execInSerializableStdTx runs the statement in a SERIALIZABLE transaction on a database/sql connection pool.
func execInSerializableStdTx(ctx context.Context, db *sql.DB, query string) (DBResult, error) {
	tx, beginErr := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if beginErr != nil {
		return nil, beginErr
	}

	result, execErr := tx.ExecContext(ctx, query)
	if execErr != nil {
		_ = tx.Rollback()
		return nil, classify(execErr)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return nil, classify(commitErr)
	}

	return &stdResult{result: result}, nil
}

// classify marks serialization failures and deadlocks with ErrSerializationFailure,
// for both the pgx and the lib/pq error types.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && isRetryableSQLState(pgErr.Code) {
		return errors.Join(ErrSerializationFailure, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && isRetryableSQLState(string(pqErr.Code)) {
		return errors.Join(ErrSerializationFailure, err)
	}

	return err
}

func isRetryableSQLState(code string) bool {
	return code == sqlStateSerializationFailure || code == sqlStateDeadlockDetected
}
