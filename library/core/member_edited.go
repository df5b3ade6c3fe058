package core

import (
	"time"

	"github.com/google/uuid"
)

// MemberEditedEventType is the event type identifier.
const MemberEditedEventType = "MemberEdited"

// MemberEdited represents when the contact details of a member changed.
type MemberEdited struct {
	EventType  EventTypeString
	MemberID   MemberIDString
	Name       string
	Email      string
	Phone      string
	OccurredAt OccurredAtTS
}

// BuildMemberEdited creates a new MemberEdited event.
func BuildMemberEdited(
	memberID uuid.UUID,
	name string,
	email string,
	phone string,
	occurredAt time.Time,
) MemberEdited {

	event := MemberEdited{
		EventType:  MemberEditedEventType,
		MemberID:   memberID.String(),
		Name:       name,
		Email:      email,
		Phone:      phone,
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e MemberEdited) IsEventType() string {
	return MemberEditedEventType
}

// HasOccurredAt returns when this event occurred.
func (e MemberEdited) HasOccurredAt() time.Time {
	return e.OccurredAt
}
