package allocatebookcopy

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-allocations/eventstore"
	"github.com/AntonStoeckl/library-allocations/library/core"
)

// state represents the current state projected from the event history.
type state struct {
	bookExists            bool
	totalCopies           int
	openAllocations       map[core.AllocationIDString]struct{}
	allocationAlreadyMade bool
	memberIsNotRegistered bool
}

// Decide implements the business logic to determine whether a copy of a book can be allocated to a member.
// This is a pure function with no side effects - it takes the current domain events and a command
// and returns the event that should be appended based on the business rules.
//
// Business Rules:
//
//	GIVEN: A book with BookID and a member with MemberID
//	WHEN: AllocateBookCopy command is received
//	THEN: BookCopyAllocated event is generated
//	ERROR: validation error if the end date is before the start date
//	ERROR: not found if the book or the member does not exist (or was removed)
//	ERROR: capacity exceeded if all copies of the book are allocated
//	IDEMPOTENCY: If the allocation with this AllocationID was already made, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history, command.BookID.String(), command.MemberID.String(), command.AllocationID.String())

	if s.allocationAlreadyMade {
		return core.IdempotentDecision()
	}

	if err := core.ValidateAllocationPeriod(command.StartDate, command.EndDate); err != nil {
		return core.ErrorDecision(err)
	}

	if !s.bookExists {
		return core.ErrorDecision(core.NotFoundError("book", command.BookID.String()))
	}

	if s.memberIsNotRegistered {
		return core.ErrorDecision(core.NotFoundError("member", command.MemberID.String()))
	}

	if len(s.openAllocations) >= s.totalCopies {
		return core.ErrorDecision(fmt.Errorf(
			"%w: all %d copies of book %s are allocated", core.ErrCapacityExceeded, s.totalCopies, command.BookID,
		))
	}

	return core.SuccessDecision(
		core.BuildBookCopyAllocated(
			command.AllocationID,
			command.BookID,
			command.MemberID,
			command.StartDate,
			command.EndDate,
			command.OccurredAt,
		),
	)
}

// project builds the current state by replaying all events from the history.
func project(history core.DomainEvents, bookID string, memberID string, allocationID string) state {
	s := state{
		openAllocations:       make(map[core.AllocationIDString]struct{}),
		memberIsNotRegistered: true,
	}

	for _, event := range history {
		switch e := event.(type) {
		case core.BookAdded:
			if e.BookID == bookID {
				s.bookExists = true
				s.totalCopies = e.TotalCopies
			}

		case core.BookEdited:
			if e.BookID == bookID {
				s.totalCopies = e.TotalCopies
			}

		case core.BookRemoved:
			if e.BookID == bookID {
				s.bookExists = false
			}

		case core.BookCopyAllocated:
			if e.AllocationID == allocationID {
				s.allocationAlreadyMade = true
			}

			if e.BookID == bookID {
				s.openAllocations[e.AllocationID] = struct{}{}
			}

		case core.AllocationReturned:
			delete(s.openAllocations, e.AllocationID)

		case core.MemberRegistered:
			if e.MemberID == memberID {
				s.memberIsNotRegistered = false
			}

		case core.MemberRemoved:
			if e.MemberID == memberID {
				s.memberIsNotRegistered = true
			}
		}
	}

	return s
}

// BuildEventFilter creates the filter for querying all events
// related to the specified book and member which are relevant for this feature/use-case:
// the book's lifecycle and allocations, OR the member's registration and removal.
func BuildEventFilter(bookID uuid.UUID, memberID uuid.UUID) eventstore.Filter {
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
		OrMatching().
		AnyEventTypeOf(
			core.MemberRegisteredEventType,
			core.MemberRemovedEventType,
		).
		AndAnyPredicateOf(eventstore.P(core.MemberIDPredicateKey, memberID.String())).
		Finalize()
}
