package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-allocations/eventstore"
	"github.com/AntonStoeckl/library-allocations/library/core"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents eventstore.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent eventstore.StorableEvent) (core.DomainEvent, error) {
	switch storableEvent.EventType {
	case core.BookAddedEventType:
		return unmarshal[core.BookAdded](storableEvent.PayloadJSON)

	case core.BookEditedEventType:
		return unmarshal[core.BookEdited](storableEvent.PayloadJSON)

	case core.BookRemovedEventType:
		return unmarshal[core.BookRemoved](storableEvent.PayloadJSON)

	case core.MemberRegisteredEventType:
		return unmarshal[core.MemberRegistered](storableEvent.PayloadJSON)

	case core.MemberEditedEventType:
		return unmarshal[core.MemberEdited](storableEvent.PayloadJSON)

	case core.MemberRemovedEventType:
		return unmarshal[core.MemberRemoved](storableEvent.PayloadJSON)

	case core.BookCopyAllocatedEventType:
		return unmarshal[core.BookCopyAllocated](storableEvent.PayloadJSON)

	case core.AllocationReturnedEventType:
		return unmarshal[core.AllocationReturned](storableEvent.PayloadJSON)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshal[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	var payload E

	err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &payload)
	if err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return payload, nil
}
