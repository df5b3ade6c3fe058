package editmember

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-allocations/library/core"
)

const (
	commandType = "EditMember"
)

// Command represents the intent to change the contact details of a member.
type Command struct {
	MemberID   uuid.UUID
	Name       string
	Email      string
	Phone      string
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(memberID uuid.UUID, name string, email string, phone string, occurredAt time.Time) Command {
	return Command{
		MemberID:   memberID,
		Name:       name,
		Email:      email,
		Phone:      phone,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
