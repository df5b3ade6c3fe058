package addbook

import (
	"strings"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-allocations/eventstore"
	"github.com/AntonStoeckl/library-allocations/library/core"
)

// state represents the current state projected from the event history.
type state struct {
	bookAlreadyAdded bool
}

// Decide implements the business logic to determine whether a book should be added.
// This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A book with BookID, name, author and total copies
//	WHEN: AddBook command is received
//	THEN: BookAdded event is generated
//	ERROR: validation error if name or author are blank, or total copies are negative
//	IDEMPOTENCY: If a book with this BookID was already added, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history, command.BookID.String())

	if s.bookAlreadyAdded {
		return core.IdempotentDecision()
	}

	name, author := strings.TrimSpace(command.Name), strings.TrimSpace(command.Author)

	if err := core.ValidateBook(name, author, command.TotalCopies); err != nil {
		return core.ErrorDecision(err)
	}

	return core.SuccessDecision(
		core.BuildBookAdded(command.BookID, name, author, command.TotalCopies, command.OccurredAt),
	)
}

// project builds the current state by replaying all events from the history.
func project(history core.DomainEvents, bookID string) state {
	s := state{}

	for _, event := range history {
		if e, ok := event.(core.BookAdded); ok && e.BookID == bookID {
			s.bookAlreadyAdded = true
		}
	}

	return s
}

// BuildEventFilter creates the filter for querying all events
// related to the specified book which are relevant for this feature/use-case.
func BuildEventFilter(bookID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.BookAddedEventType).
		AndAnyPredicateOf(eventstore.P(core.BookIDPredicateKey, bookID.String())).
		Finalize()
}
