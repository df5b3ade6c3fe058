package shell

import (
	"context"

	"github.com/AntonStoeckl/library-allocations/eventstore"
	"github.com/AntonStoeckl/library-allocations/library/core"
)

// Logger is the structured logger the handlers accept. *slog.Logger satisfies it.
type Logger = eventstore.Logger

// QueriesEvents defines the interface needed by query handlers for event store operations.
type QueriesEvents interface {
	Query(ctx context.Context, filter eventstore.Filter) (
		eventstore.StorableEvents,
		eventstore.MaxSequenceNumberUint,
		error,
	)
}

// AppendsEvents defines the conditional append of the event store.
type AppendsEvents interface {
	Append(
		ctx context.Context,
		filter eventstore.Filter,
		expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
		event eventstore.StorableEvent,
		additionalEvents ...eventstore.StorableEvent,
	) error
}

// EventStore is what command handlers need: read a dynamic event stream and append to it conditionally.
type EventStore interface {
	QueriesEvents
	AppendsEvents
}

// ReadHistory queries the events matching the filter and maps them to domain events.
func ReadHistory(ctx context.Context, eventStore QueriesEvents, filter eventstore.Filter) (
	core.DomainEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	storableEvents, maxSequenceNumber, err := eventStore.Query(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	history, err := DomainEventsFrom(storableEvents)
	if err != nil {
		return nil, 0, err
	}

	return history, maxSequenceNumber, nil
}

// ApplyDecision turns a DecisionResult into effects: a business error is returned as is,
// an idempotent decision reports true, a success decision appends its event
// conditionally on the filter and the sequence number the decision was based on.
func ApplyDecision(
	ctx context.Context,
	eventStore AppendsEvents,
	filter eventstore.Filter,
	maxSequenceNumber eventstore.MaxSequenceNumberUint,
	result core.DecisionResult,
) (bool, error) {

	if err := result.HasError(); err != nil {
		return false, err
	}

	if result.IsIdempotent() {
		return true, nil
	}

	storableEvent, err := StorableEventFrom(result.Event, NewEventMetadata())
	if err != nil {
		return false, err
	}

	return false, eventStore.Append(ctx, filter, maxSequenceNumber, storableEvent)
}

// QueryResult represents the contract for all query result types (projections).
// GetSequenceNumber returns the highest event sequence number the projection was built from.
type QueryResult interface {
	GetSequenceNumber() uint
}
