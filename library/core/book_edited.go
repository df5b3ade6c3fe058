package core

import (
	"time"

	"github.com/google/uuid"
)

// BookEditedEventType is the event type identifier.
const BookEditedEventType = "BookEdited"

// BookEdited represents when the name, author or number of copies of a book changed.
// It always carries the complete new state of the book.
type BookEdited struct {
	EventType   EventTypeString
	BookID      BookIDString
	Name        string
	Author      string
	TotalCopies int
	OccurredAt  OccurredAtTS
}

// BuildBookEdited creates a new BookEdited event.
func BuildBookEdited(bookID uuid.UUID, name string, author string, totalCopies int, occurredAt time.Time) BookEdited {
	event := BookEdited{
		EventType:   BookEditedEventType,
		BookID:      bookID.String(),
		Name:        name,
		Author:      author,
		TotalCopies: totalCopies,
		OccurredAt:  ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e BookEdited) IsEventType() string {
	return BookEditedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookEdited) HasOccurredAt() time.Time {
	return e.OccurredAt
}
