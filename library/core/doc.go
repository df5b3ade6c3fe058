// Package core contains the domain of the library: books, members and the allocation of book copies
// to members, expressed as domain events.
//
// Nothing in this package is persisted as state. Books, members and allocations are projections of the
// event history: allocated copies of a book are the open BookCopyAllocated events without a matching
// AllocationReturned, and overdue is derived at read time from the end date and the current date.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
