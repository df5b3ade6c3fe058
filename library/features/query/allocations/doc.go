// Package allocations implements the Allocations query: allocations matching an optional book, member
// and returned filter, or a single allocation by its ID.
//
// Whether an allocation is overdue depends on the date the query is executed, so the query carries "today".
package allocations
