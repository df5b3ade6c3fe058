package allocationhistory

import (
	"github.com/AntonStoeckl/library-allocations/library/core"
)

const (
	queryType = "AllocationHistory"
)

// Query represents the intent to read the complete allocation history, evaluated on the given day.
type Query struct {
	Today core.Date
}

// BuildQuery creates a new Query.
func BuildQuery(today core.Date) Query {
	return Query{Today: today}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
