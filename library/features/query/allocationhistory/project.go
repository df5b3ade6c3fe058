package allocationhistory

import (
	"github.com/AntonStoeckl/library-allocations/eventstore"
	"github.com/AntonStoeckl/library-allocations/library/core"
)

// ProjectAllocationHistory implements the query logic for the allocation history.
//
// Query Logic:
//
//	GIVEN: All allocation events and the naming events of books and members
//	WHEN: AllocationHistory query is executed
//	THEN: AllocationHistory struct is returned in the order the allocations were made
//	INCLUDES: returned allocations (never overdue) and open ones
func ProjectAllocationHistory(history core.DomainEvents, query Query, maxSequenceNumber uint) AllocationHistory {
	bookNames := make(map[core.BookIDString]string)
	memberNames := make(map[core.MemberIDString]string)
	entries := make([]Entry, 0)
	indexOf := make(map[core.AllocationIDString]int)

	for _, event := range history {
		switch e := event.(type) {
		case core.BookAdded:
			bookNames[e.BookID] = e.Name

		case core.BookEdited:
			bookNames[e.BookID] = e.Name

		case core.MemberRegistered:
			memberNames[e.MemberID] = e.Name

		case core.MemberEdited:
			memberNames[e.MemberID] = e.Name

		case core.BookCopyAllocated:
			if _, exists := indexOf[e.AllocationID]; exists {
				continue
			}

			startDate, startErr := core.ParseDate(e.StartDate)
			endDate, endErr := core.ParseDate(e.EndDate)

			if startErr != nil || endErr != nil {
				continue
			}

			indexOf[e.AllocationID] = len(entries)
			entries = append(entries, Entry{
				AllocationID: e.AllocationID,
				BookID:       e.BookID,
				MemberID:     e.MemberID,
				StartDate:    startDate,
				EndDate:      endDate,
				AllocatedAt:  e.OccurredAt,
			})

		case core.AllocationReturned:
			if i, exists := indexOf[e.AllocationID]; exists {
				returnedAt := e.OccurredAt
				entries[i].Returned = true
				entries[i].ReturnedAt = &returnedAt
			}
		}
	}

	for i := range entries {
		entries[i].BookName = bookNames[entries[i].BookID]
		entries[i].MemberName = memberNames[entries[i].MemberID]
		entries[i].Overdue = core.IsOverdue(entries[i].Returned, entries[i].EndDate, query.Today)
	}

	return AllocationHistory{
		Entries:        entries,
		Count:          len(entries),
		SequenceNumber: maxSequenceNumber,
	}
}

// BuildEventFilter creates the filter for querying allocation events plus the events naming books and members.
func BuildEventFilter() eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookCopyAllocatedEventType,
			core.AllocationReturnedEventType,
			core.BookAddedEventType,
			core.BookEditedEventType,
			core.MemberRegisteredEventType,
			core.MemberEditedEventType,
		).
		Finalize()
}
