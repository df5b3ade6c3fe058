package eventstore

import (
	"errors"
	"regexp"
)

var (
	ErrNilDatabaseConnection       = errors.New("nil database connection supplied")
	ErrEmptyEventsTableName        = errors.New("empty eventTableName supplied")
	ErrInvalidEventsTableName      = errors.New("eventTableName must start with a letter and only contain letters, digits and underscores")
	ErrConcurrencyConflict         = errors.New("concurrency error, no rows were affected")
	ErrQueryingEventsFailed        = errors.New("querying events failed")
	ErrScanningDBRowFailed         = errors.New("scanning db row failed")
	ErrBuildingStorableEventFailed = errors.New("building storable event failed")
	ErrBuildingQueryFailed         = errors.New("building query failed")
	ErrAppendingEventFailed        = errors.New("appending the event failed")
	ErrGettingRowsAffectedFailed   = errors.New("getting rows affected failed")
	ErrCreatingSchemaFailed        = errors.New("creating the event store schema failed")
)

// MaxSequenceNumberUint is a type alias for uint, representing the maximum sequence number for a "dynamic event stream".
type MaxSequenceNumberUint = uint

var eventsTableNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,62}$`)

// ValidateEventsTableName checks a table name before an engine interpolates it into DDL and queries.
func ValidateEventsTableName(tableName string) error {
	if tableName == "" {
		return ErrEmptyEventsTableName
	}

	if !eventsTableNamePattern.MatchString(tableName) {
		return ErrInvalidEventsTableName
	}

	return nil
}
