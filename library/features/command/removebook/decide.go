package removebook

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-allocations/eventstore"
	"github.com/AntonStoeckl/library-allocations/library/core"
)

// state represents the current state projected from the event history.
type state struct {
	bookExists      bool
	openAllocations map[core.AllocationIDString]struct{}
}

// Decide implements the business logic to determine whether a book can be removed.
//
// Business Rules:
//
//	GIVEN: A book with BookID and its allocations
//	WHEN: RemoveBook command is received
//	THEN: BookRemoved event is generated
//	ERROR: not found if the book was never added or was already removed
//	ERROR: open allocations exist if any copy of the book is still allocated
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history, command.BookID.String())

	if !s.bookExists {
		return core.ErrorDecision(core.NotFoundError("book", command.BookID.String()))
	}

	if len(s.openAllocations) > 0 {
		return core.ErrorDecision(fmt.Errorf(
			"%w: %d copies of book %s are allocated", core.ErrHasOpenAllocations, len(s.openAllocations), command.BookID,
		))
	}

	return core.SuccessDecision(core.BuildBookRemoved(command.BookID, command.OccurredAt))
}

// project builds the current state by replaying all events from the history.
func project(history core.DomainEvents, bookID string) state {
	s := state{openAllocations: make(map[core.AllocationIDString]struct{})}

	for _, event := range history {
		switch e := event.(type) {
		case core.BookAdded:
			if e.BookID == bookID {
				s.bookExists = true
			}

		case core.BookRemoved:
			if e.BookID == bookID {
				s.bookExists = false
			}

		case core.BookCopyAllocated:
			if e.BookID == bookID {
				s.openAllocations[e.AllocationID] = struct{}{}
			}

		case core.AllocationReturned:
			delete(s.openAllocations, e.AllocationID)
		}
	}

	return s
}

// BuildEventFilter creates the filter for querying the lifecycle and the allocations of the specified book.
func BuildEventFilter(bookID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedEventType,
			core.BookRemovedEventType,
			core.BookCopyAllocatedEventType,
			core.AllocationReturnedEventType,
		).
		AndAnyPredicateOf(eventstore.P(core.BookIDPredicateKey, bookID.String())).
		Finalize()
}
