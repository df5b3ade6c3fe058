package core

import (
	"time"

	"github.com/google/uuid"
)

// BookRemovedEventType is the event type identifier.
const BookRemovedEventType = "BookRemoved"

// BookRemoved represents when a book is removed from the catalogue.
type BookRemoved struct {
	EventType  EventTypeString
	BookID     BookIDString
	OccurredAt OccurredAtTS
}

// BuildBookRemoved creates a new BookRemoved event.
func BuildBookRemoved(bookID uuid.UUID, occurredAt time.Time) BookRemoved {
	event := BookRemoved{
		EventType:  BookRemovedEventType,
		BookID:     bookID.String(),
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e BookRemoved) IsEventType() string {
	return BookRemovedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookRemoved) HasOccurredAt() time.Time {
	return e.OccurredAt
}
