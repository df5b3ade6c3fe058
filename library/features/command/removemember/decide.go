package removemember

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-allocations/eventstore"
	"github.com/AntonStoeckl/library-allocations/library/core"
)

// state represents the current state projected from the event history.
type state struct {
	memberExists    bool
	openAllocations map[core.AllocationIDString]struct{}
}

// Decide implements the business logic to determine whether a member can be removed.
//
// Business Rules:
//
//	GIVEN: A member with MemberID and their allocations
//	WHEN: RemoveMember command is received
//	THEN: MemberRemoved event is generated
//	ERROR: not found if the member was never registered or was already removed
//	ERROR: open allocations exist if the member still holds allocated copies
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history, command.MemberID.String())

	if !s.memberExists {
		return core.ErrorDecision(core.NotFoundError("member", command.MemberID.String()))
	}

	if len(s.openAllocations) > 0 {
		return core.ErrorDecision(fmt.Errorf(
			"%w: member %s holds %d copies", core.ErrHasOpenAllocations, command.MemberID, len(s.openAllocations),
		))
	}

	return core.SuccessDecision(core.BuildMemberRemoved(command.MemberID, command.OccurredAt))
}

// project builds the current state by replaying all events from the history.
func project(history core.DomainEvents, memberID string) state {
	s := state{openAllocations: make(map[core.AllocationIDString]struct{})}

	for _, event := range history {
		switch e := event.(type) {
		case core.MemberRegistered:
			if e.MemberID == memberID {
				s.memberExists = true
			}

		case core.MemberRemoved:
			if e.MemberID == memberID {
				s.memberExists = false
			}

		case core.BookCopyAllocated:
			if e.MemberID == memberID {
				s.openAllocations[e.AllocationID] = struct{}{}
			}

		case core.AllocationReturned:
			delete(s.openAllocations, e.AllocationID)
		}
	}

	return s
}

// BuildEventFilter creates the filter for querying the lifecycle and the allocations of the specified member.
func BuildEventFilter(memberID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.MemberRegisteredEventType,
			core.MemberRemovedEventType,
			core.BookCopyAllocatedEventType,
			core.AllocationReturnedEventType,
		).
		AndAnyPredicateOf(eventstore.P(core.MemberIDPredicateKey, memberID.String())).
		Finalize()
}
