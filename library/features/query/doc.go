// Package query contains the read side of the library: one package per projection.
//
// Every projection is rebuilt from the event history on each request. Derived values like the allocated
// copies of a book or whether an allocation is overdue are computed there and never stored.
package query
