package core

// Payload property names used as predicates in event filters.
const (
	BookIDPredicateKey       = "BookID"
	MemberIDPredicateKey     = "MemberID"
	AllocationIDPredicateKey = "AllocationID"
)

// BookEventTypes are the event types describing the lifecycle of a book.
func BookEventTypes() []EventTypeString {
	return []EventTypeString{BookAddedEventType, BookEditedEventType, BookRemovedEventType}
}

// MemberEventTypes are the event types describing the lifecycle of a member.
func MemberEventTypes() []EventTypeString {
	return []EventTypeString{MemberRegisteredEventType, MemberEditedEventType, MemberRemovedEventType}
}

// AllocationEventTypes are the event types describing the lifecycle of an allocation.
func AllocationEventTypes() []EventTypeString {
	return []EventTypeString{BookCopyAllocatedEventType, AllocationReturnedEventType}
}
