// Package shell provides conversion functions between domain events and storable events
// for the library: books, members and allocations of book copies.
//
// This package implements the "imperative shell" pattern, handling the
// translation between the functional core (domain events) and the external
// storage layer (storable events). It manages event serialization, deserialization,
// metadata handling and the retry of conflicting appends.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
