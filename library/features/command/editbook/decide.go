package editbook

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-allocations/eventstore"
	"github.com/AntonStoeckl/library-allocations/library/core"
)

// state represents the current state projected from the event history.
type state struct {
	bookExists      bool
	name            string
	author          string
	totalCopies     int
	openAllocations map[core.AllocationIDString]struct{}
}

// Decide implements the business logic to determine whether a book can be edited.
// This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A book with BookID and its allocations
//	WHEN: EditBook command is received
//	THEN: BookEdited event is generated
//	ERROR: not found if the book was never added or was removed
//	ERROR: validation error if name or author are blank, or total copies are negative
//	ERROR: total copies below allocated copies if fewer copies than currently allocated remain
//	IDEMPOTENCY: If nothing changes, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history, command.BookID.String())

	if !s.bookExists {
		return core.ErrorDecision(core.NotFoundError("book", command.BookID.String()))
	}

	name, author := strings.TrimSpace(command.Name), strings.TrimSpace(command.Author)

	if err := core.ValidateBook(name, author, command.TotalCopies); err != nil {
		return core.ErrorDecision(err)
	}

	if name == s.name && author == s.author && command.TotalCopies == s.totalCopies {
		return core.IdempotentDecision()
	}

	if command.TotalCopies < len(s.openAllocations) {
		return core.ErrorDecision(fmt.Errorf(
			"%w: %d copies are allocated, total copies cannot be %d",
			core.ErrCopiesBelowAllocated, len(s.openAllocations), command.TotalCopies,
		))
	}

	return core.SuccessDecision(
		core.BuildBookEdited(command.BookID, name, author, command.TotalCopies, command.OccurredAt),
	)
}

// project builds the current state by replaying all events from the history.
func project(history core.DomainEvents, bookID string) state {
	s := state{openAllocations: make(map[core.AllocationIDString]struct{})}

	for _, event := range history {
		switch e := event.(type) {
		case core.BookAdded:
			if e.BookID == bookID {
				s.bookExists = true
				s.name, s.author, s.totalCopies = e.Name, e.Author, e.TotalCopies
			}

		case core.BookEdited:
			if e.BookID == bookID {
				s.name, s.author, s.totalCopies = e.Name, e.Author, e.TotalCopies
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

// BuildEventFilter creates the filter for querying all events
// related to the specified book and its allocations.
func BuildEventFilter(bookID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedEventType,
			core.BookEditedEventType,
			core.BookRemovedEventType,
			core.BookCopyAllocatedEventType,
			core.AllocationReturnedEventType,
		).
		AndAnyPredicateOf(eventstore.P(core.BookIDPredicateKey, bookID.String())).
		Finalize()
}
