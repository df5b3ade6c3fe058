// Package eventstore provides the engine-agnostic types of the event store that backs the library:
// filters, storable events and the common error definitions.
//
// Events are never grouped into fixed streams. Every read selects a "dynamic event stream" with a
// Filter (event types combined with JSON payload predicates), and every write is conditional on the
// maximum sequence number that the same Filter returned when the decision was made:
//
//	filter := BuildEventFilter().
//		Matching().
//		AnyEventTypeOf(
//			core.BookCopyAllocatedEventType,
//			core.AllocationReturnedEventType).
//		AndAnyPredicateOf(P("BookID", bookID.String())).
//		Finalize()
//
//	events, maxSeq, err := store.Query(ctx, filter)
//	if err != nil {
//		// handle error
//	}
//
//	newEvent, err := eventstore.BuildStorableEvent(eventType, time.Now(), payload, metadata)
//	err = store.Append(ctx, filter, maxSeq, newEvent)
//
// Append fails with ErrConcurrencyConflict if any event matching the filter was appended in between.
// Concrete engines live in the postgresengine and sqliteengine subpackages.
package eventstore
