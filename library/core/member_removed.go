package core

import (
	"time"

	"github.com/google/uuid"
)

// MemberRemovedEventType is the event type identifier.
const MemberRemovedEventType = "MemberRemoved"

// MemberRemoved represents when a member leaves the library.
type MemberRemoved struct {
	EventType  EventTypeString
	MemberID   MemberIDString
	OccurredAt OccurredAtTS
}

// BuildMemberRemoved creates a new MemberRemoved event.
func BuildMemberRemoved(memberID uuid.UUID, occurredAt time.Time) MemberRemoved {
	event := MemberRemoved{
		EventType:  MemberRemovedEventType,
		MemberID:   memberID.String(),
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e MemberRemoved) IsEventType() string {
	return MemberRemovedEventType
}

// HasOccurredAt returns when this event occurred.
func (e MemberRemoved) HasOccurredAt() time.Time {
	return e.OccurredAt
}
