package core

import (
	"time"

	"github.com/google/uuid"
)

// BookCopyAllocatedEventType is the event type identifier.
const BookCopyAllocatedEventType = "BookCopyAllocated"

// BookCopyAllocated represents when one copy of a book is allocated to a member for a period.
type BookCopyAllocated struct {
	EventType    EventTypeString
	AllocationID AllocationIDString
	BookID       BookIDString
	MemberID     MemberIDString
	StartDate    DateString
	EndDate      DateString
	OccurredAt   OccurredAtTS
}

// BuildBookCopyAllocated creates a new BookCopyAllocated event.
func BuildBookCopyAllocated(
	allocationID uuid.UUID,
	bookID uuid.UUID,
	memberID uuid.UUID,
	startDate Date,
	endDate Date,
	occurredAt time.Time,
) BookCopyAllocated {

	event := BookCopyAllocated{
		EventType:    BookCopyAllocatedEventType,
		AllocationID: allocationID.String(),
		BookID:       bookID.String(),
		MemberID:     memberID.String(),
		StartDate:    startDate.String(),
		EndDate:      endDate.String(),
		OccurredAt:   ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e BookCopyAllocated) IsEventType() string {
	return BookCopyAllocatedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookCopyAllocated) HasOccurredAt() time.Time {
	return e.OccurredAt
}
