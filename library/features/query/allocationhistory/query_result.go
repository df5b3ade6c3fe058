package allocationhistory

import (
	"time"

	"github.com/AntonStoeckl/library-allocations/library/core"
)

// Entry represents one allocation in the history.
type Entry struct {
	AllocationID core.AllocationIDString
	BookID       core.BookIDString
	BookName     string
	MemberID     core.MemberIDString
	MemberName   string
	StartDate    core.Date
	EndDate      core.Date
	Returned     bool
	Overdue      bool
	AllocatedAt  time.Time
	ReturnedAt   *time.Time
}

// AllocationHistory represents the query result.
type AllocationHistory struct {
	Entries        []Entry
	Count          int
	SequenceNumber uint
}

// GetSequenceNumber returns the sequence number of the last event the projection was built from.
func (r AllocationHistory) GetSequenceNumber() uint {
	return r.SequenceNumber
}
