package allocations

import (
	"time"

	"github.com/AntonStoeckl/library-allocations/library/core"
)

// AllocationInfo represents one allocation of a book copy to a member.
type AllocationInfo struct {
	AllocationID core.AllocationIDString
	BookID       core.BookIDString
	MemberID     core.MemberIDString
	StartDate    core.Date
	EndDate      core.Date
	Returned     bool
	Overdue      bool
	AllocatedAt  time.Time
}

// Allocations represents the query result, ordered by the time the allocations were made.
type Allocations struct {
	Allocations    []AllocationInfo
	Count          int
	SequenceNumber uint
}

// GetSequenceNumber returns the sequence number of the last event the projection was built from.
func (r Allocations) GetSequenceNumber() uint {
	return r.SequenceNumber
}
