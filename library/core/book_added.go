package core

import (
	"time"

	"github.com/google/uuid"
)

// BookAddedEventType is the event type identifier.
const BookAddedEventType = "BookAdded"

// BookAdded represents when a book with a number of copies is added to the catalogue.
type BookAdded struct {
	EventType   EventTypeString
	BookID      BookIDString
	Name        string
	Author      string
	TotalCopies int
	OccurredAt  OccurredAtTS
}

// BuildBookAdded creates a new BookAdded event.
func BuildBookAdded(bookID uuid.UUID, name string, author string, totalCopies int, occurredAt time.Time) BookAdded {
	event := BookAdded{
		EventType:   BookAddedEventType,
		BookID:      bookID.String(),
		Name:        name,
		Author:      author,
		TotalCopies: totalCopies,
		OccurredAt:  ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e BookAdded) IsEventType() string {
	return BookAddedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookAdded) HasOccurredAt() time.Time {
	return e.OccurredAt
}
