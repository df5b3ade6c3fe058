package allocatebookcopy

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-allocations/library/core"
)

const (
	commandType = "AllocateBookCopy"
)

// Command represents the intent to allocate a copy of a book to a member.
type Command struct {
	AllocationID uuid.UUID
	BookID       uuid.UUID
	MemberID     uuid.UUID
	StartDate    core.Date
	EndDate      core.Date
	OccurredAt   core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	allocationID uuid.UUID,
	bookID uuid.UUID,
	memberID uuid.UUID,
	startDate core.Date,
	endDate core.Date,
	occurredAt time.Time,
) Command {

	return Command{
		AllocationID: allocationID,
		BookID:       bookID,
		MemberID:     memberID,
		StartDate:    startDate,
		EndDate:      endDate,
		OccurredAt:   core.ToOccurredAt(occurredAt),
	}
}
