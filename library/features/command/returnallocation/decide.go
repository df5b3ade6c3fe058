package returnallocation

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-allocations/eventstore"
	"github.com/AntonStoeckl/library-allocations/library/core"
)

// state represents the current state projected from the event history.
type state struct {
	allocated bool
	returned  bool
	bookID    core.BookIDString
	memberID  core.MemberIDString
}

// Decide implements the business logic to determine whether an allocation can be returned.
//
// Business Rules:
//
//	GIVEN: An allocation with AllocationID
//	WHEN: ReturnAllocation command is received
//	THEN: AllocationReturned event is generated
//	ERROR: not found if the allocation does not exist
//	ERROR: allocation already returned if it was returned before
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history, command.AllocationID.String())

	if !s.allocated {
		return core.ErrorDecision(core.NotFoundError("allocation", command.AllocationID.String()))
	}

	if s.returned {
		return core.ErrorDecision(fmt.Errorf("%w: %s", core.ErrAlreadyReturned, command.AllocationID))
	}

	return core.SuccessDecision(
		core.BuildAllocationReturned(
			command.AllocationID,
			uuid.MustParse(s.bookID),
			uuid.MustParse(s.memberID),
			command.OccurredAt,
		),
	)
}

// project builds the current state by replaying all events from the history.
func project(history core.DomainEvents, allocationID string) state {
	s := state{}

	for _, event := range history {
		switch e := event.(type) {
		case core.BookCopyAllocated:
			if e.AllocationID == allocationID {
				s.allocated = true
				s.bookID, s.memberID = e.BookID, e.MemberID
			}

		case core.AllocationReturned:
			if e.AllocationID == allocationID {
				s.returned = true
			}
		}
	}

	return s
}

// BuildEventFilter creates the filter for querying the events of the specified allocation.
func BuildEventFilter(allocationID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.BookCopyAllocatedEventType, core.AllocationReturnedEventType).
		AndAnyPredicateOf(eventstore.P(core.AllocationIDPredicateKey, allocationID.String())).
		Finalize()
}
