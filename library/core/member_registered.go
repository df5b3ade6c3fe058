package core

import (
	"time"

	"github.com/google/uuid"
)

// MemberRegisteredEventType is the event type identifier.
const MemberRegisteredEventType = "MemberRegistered"

// MemberRegistered represents when a person becomes a member of the library.
type MemberRegistered struct {
	EventType  EventTypeString
	MemberID   MemberIDString
	Name       string
	Email      string
	Phone      string
	OccurredAt OccurredAtTS
}

// BuildMemberRegistered creates a new MemberRegistered event.
func BuildMemberRegistered(
	memberID uuid.UUID,
	name string,
	email string,
	phone string,
	occurredAt time.Time,
) MemberRegistered {

	event := MemberRegistered{
		EventType:  MemberRegisteredEventType,
		MemberID:   memberID.String(),
		Name:       name,
		Email:      email,
		Phone:      phone,
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e MemberRegistered) IsEventType() string {
	return MemberRegisteredEventType
}

// HasOccurredAt returns when this event occurred.
func (e MemberRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}
