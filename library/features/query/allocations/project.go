package allocations

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-allocations/eventstore"
	"github.com/AntonStoeckl/library-allocations/library/core"
)

// ProjectAllocations implements the query logic to determine the matching allocations.
// This is a pure function with no side effects.
//
// Query Logic:
//
//	GIVEN: Allocation and return events
//	WHEN: Allocations query is executed
//	THEN: Allocations struct is returned in the order the allocations were made
//	INCLUDES: overdue = not returned and end date strictly before query.Today
//	EXCLUDES: allocations not matching the set keys of the query
func ProjectAllocations(history core.DomainEvents, query Query, maxSequenceNumber uint) Allocations {
	byID := make(map[core.AllocationIDString]*AllocationInfo)
	order := make([]core.AllocationIDString, 0)

	for _, event := range history {
		switch e := event.(type) {
		case core.BookCopyAllocated:
			if _, exists := byID[e.AllocationID]; exists {
				continue
			}

			startDate, startErr := core.ParseDate(e.StartDate)
			endDate, endErr := core.ParseDate(e.EndDate)

			if startErr != nil || endErr != nil {
				continue
			}

			order = append(order, e.AllocationID)
			byID[e.AllocationID] = &AllocationInfo{
				AllocationID: e.AllocationID,
				BookID:       e.BookID,
				MemberID:     e.MemberID,
				StartDate:    startDate,
				EndDate:      endDate,
				AllocatedAt:  e.OccurredAt,
			}

		case core.AllocationReturned:
			if allocation, exists := byID[e.AllocationID]; exists {
				allocation.Returned = true
			}
		}
	}

	result := make([]AllocationInfo, 0, len(order))

	for _, allocationID := range order {
		allocation := byID[allocationID]
		allocation.Overdue = core.IsOverdue(allocation.Returned, allocation.EndDate, query.Today)

		if matches(*allocation, query) {
			result = append(result, *allocation)
		}
	}

	return Allocations{
		Allocations:    result,
		Count:          len(result),
		SequenceNumber: maxSequenceNumber,
	}
}

func matches(allocation AllocationInfo, query Query) bool {
	switch {
	case query.isForSingleAllocation() && allocation.AllocationID != query.AllocationID.String():
		return false
	case query.BookID != uuid.Nil && allocation.BookID != query.BookID.String():
		return false
	case query.MemberID != uuid.Nil && allocation.MemberID != query.MemberID.String():
		return false
	case query.Returned != nil && allocation.Returned != *query.Returned:
		return false
	default:
		return true
	}
}

// BuildEventFilter creates the filter for querying the allocation events selected by the set keys of the query.
// Returns carry the BookID and MemberID of their allocation, so the predicates select both event types.
func BuildEventFilter(query Query) eventstore.Filter {
	predicates := make([]eventstore.FilterPredicate, 0, 3)

	if query.isForSingleAllocation() {
		predicates = append(predicates, eventstore.P(core.AllocationIDPredicateKey, query.AllocationID.String()))
	}

	if query.BookID != uuid.Nil {
		predicates = append(predicates, eventstore.P(core.BookIDPredicateKey, query.BookID.String()))
	}

	if query.MemberID != uuid.Nil {
		predicates = append(predicates, eventstore.P(core.MemberIDPredicateKey, query.MemberID.String()))
	}

	if len(predicates) == 0 {
		return eventstore.BuildEventFilter().
			Matching().
			AnyEventTypeOf(core.BookCopyAllocatedEventType, core.AllocationReturnedEventType).
			Finalize()
	}

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.BookCopyAllocatedEventType, core.AllocationReturnedEventType).
		AndAllPredicatesOf(predicates[0], predicates[1:]...).
		Finalize()
}
