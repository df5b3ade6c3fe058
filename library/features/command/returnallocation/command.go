package returnallocation

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-allocations/library/core"
)

const (
	commandType = "ReturnAllocation"
)

// Command represents the intent to return the copy of an allocation.
type Command struct {
	AllocationID uuid.UUID
	OccurredAt   core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(allocationID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		AllocationID: allocationID,
		OccurredAt:   core.ToOccurredAt(occurredAt),
	}
}
