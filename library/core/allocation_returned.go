package core

import (
	"time"

	"github.com/google/uuid"
)

// AllocationReturnedEventType is the event type identifier.
const AllocationReturnedEventType = "AllocationReturned"

// AllocationReturned represents when the copy of an allocation is brought back.
// BookID and MemberID are repeated so that book and member streams see the return.
type AllocationReturned struct {
	EventType    EventTypeString
	AllocationID AllocationIDString
	BookID       BookIDString
	MemberID     MemberIDString
	OccurredAt   OccurredAtTS
}

// BuildAllocationReturned creates a new AllocationReturned event.
func BuildAllocationReturned(
	allocationID uuid.UUID,
	bookID uuid.UUID,
	memberID uuid.UUID,
	occurredAt time.Time,
) AllocationReturned {

	event := AllocationReturned{
		EventType:    AllocationReturnedEventType,
		AllocationID: allocationID.String(),
		BookID:       bookID.String(),
		MemberID:     memberID.String(),
		OccurredAt:   ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e AllocationReturned) IsEventType() string {
	return AllocationReturnedEventType
}

// HasOccurredAt returns when this event occurred.
func (e AllocationReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}
