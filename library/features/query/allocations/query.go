package allocations

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-allocations/library/core"
)

const (
	queryType = "Allocations"
)

// Query represents the intent to list allocations.
// Unset (nil) keys match any allocation, set keys must match exactly.
type Query struct {
	AllocationID uuid.UUID
	BookID       uuid.UUID
	MemberID     uuid.UUID
	Returned     *bool
	Today        core.Date
}

// BuildQuery creates a Query for all allocations, evaluated on the given day.
func BuildQuery(today core.Date) Query {
	return Query{Today: today}
}

// BuildQueryForAllocation creates a Query for a single allocation.
func BuildQueryForAllocation(allocationID uuid.UUID, today core.Date) Query {
	return Query{AllocationID: allocationID, Today: today}
}

// ForBook narrows the query to the allocations of a book.
func (q Query) ForBook(bookID uuid.UUID) Query {
	q.BookID = bookID
	return q
}

// ForMember narrows the query to the allocations of a member.
func (q Query) ForMember(memberID uuid.UUID) Query {
	q.MemberID = memberID
	return q
}

// WithReturned narrows the query to returned (true) or open (false) allocations.
func (q Query) WithReturned(returned bool) Query {
	q.Returned = &returned
	return q
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

func (q Query) isForSingleAllocation() bool {
	return q.AllocationID != uuid.Nil
}
