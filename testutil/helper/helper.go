package helper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-allocations/eventstore"
	"github.com/AntonStoeckl/library-allocations/library/core"
	"github.com/AntonStoeckl/library-allocations/library/shell"
)

func GivenUniqueID(t testing.TB) uuid.UUID {
	id, err := uuid.NewV7()
	assert.NoError(t, err, "error in arranging test data")

	return id
}

func QueryMaxSequenceNumberBeforeAppend(
	t testing.TB,
	ctx context.Context,
	es shell.QueriesEvents,
	filter eventstore.Filter,
) eventstore.MaxSequenceNumberUint {

	_, maxSequenceNumBeforeAppend, err := es.Query(ctx, filter)
	assert.NoError(t, err, "error in arranging test data")

	return maxSequenceNumBeforeAppend
}

func FixtureBookAdded(bookID uuid.UUID, totalCopies int, fakeClock time.Time) core.DomainEvent {
	return core.BuildBookAdded(bookID, "Learning Domain-Driven Design", "Vlad Khononov", totalCopies, fakeClock)
}

func FixtureMemberRegistered(memberID uuid.UUID, fakeClock time.Time) core.DomainEvent {
	return core.BuildMemberRegistered(memberID, "Ada Lovelace", "", "", fakeClock)
}

func FixtureBookCopyAllocated(
	allocationID uuid.UUID,
	bookID uuid.UUID,
	memberID uuid.UUID,
	startDate core.Date,
	endDate core.Date,
	fakeClock time.Time,
) core.DomainEvent {

	return core.BuildBookCopyAllocated(allocationID, bookID, memberID, startDate, endDate, fakeClock)
}

func FixtureAllocationReturned(allocationID uuid.UUID, bookID uuid.UUID, memberID uuid.UUID, fakeClock time.Time) core.DomainEvent {
	return core.BuildAllocationReturned(allocationID, bookID, memberID, fakeClock)
}

func ToStorable(t testing.TB, domainEvent core.DomainEvent) eventstore.StorableEvent {
	storableEvent, err := shell.StorableEventFrom(domainEvent, shell.NewEventMetadata())
	require.NoError(t, err, "error in arranging test data")

	return storableEvent
}

// GivenEventsWereAppended appends the domain events unconditionally, bypassing the deciders.
// It is meant for arranging a history that no sequence of commands would produce as cheaply.
func GivenEventsWereAppended(t testing.TB, ctx context.Context, es shell.EventStore, events ...core.DomainEvent) {
	t.Helper()

	filter := eventstore.BuildEventFilter().MatchingAnyEvent()

	for _, event := range events {
		err := es.Append(ctx, filter, QueryMaxSequenceNumberBeforeAppend(t, ctx, es, filter), ToStorable(t, event))
		require.NoError(t, err, "error in arranging test data")
	}
}
