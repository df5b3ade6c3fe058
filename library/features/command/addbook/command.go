package addbook

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-allocations/library/core"
)

const (
	commandType = "AddBook"
)

// Command represents the intent to add a book to the catalogue.
type Command struct {
	BookID      uuid.UUID
	Name        string
	Author      string
	TotalCopies int
	OccurredAt  core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, name string, author string, totalCopies int, occurredAt time.Time) Command {
	return Command{
		BookID:      bookID,
		Name:        name,
		Author:      author,
		TotalCopies: totalCopies,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}
