package core

import (
	"time"

	"github.com/google/uuid"
)

// BookIDString represents a book identifier
type BookIDString = string

// MemberIDString represents a member identifier
type MemberIDString = string

// AllocationIDString represents an allocation identifier
type AllocationIDString = string

// DateString is a calendar date in the form YYYY-MM-DD
type DateString = string

// OccurredAtTS represents when an event occurred
type OccurredAtTS = time.Time

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}

// ParseID parses an entity identifier. Anything but a canonical UUID is a validation error.
func ParseID(kind string, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ValidationError("%s ID must be a valid UUID", kind)
	}

	return id, nil
}

// EventTypeString represents the type of domain event
type EventTypeString = string
