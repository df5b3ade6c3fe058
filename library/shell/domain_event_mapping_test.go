package shell_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-allocations/eventstore"
	"github.com/AntonStoeckl/library-allocations/library/core"
	"github.com/AntonStoeckl/library-allocations/library/shell"
)

func Test_StorableEventFrom_And_DomainEventFrom_PreserveEveryEventType(t *testing.T) {
	// arrange
	now := time.Date(2024, 3, 1, 9, 30, 0, 123456789, time.UTC)
	bookID, memberID, allocationID := uuid.New(), uuid.New(), uuid.New()
	start, end := core.MustParseDate("2024-03-01"), core.MustParseDate("2024-03-15")

	domainEvents := core.DomainEvents{
		core.BuildBookAdded(bookID, "Dune", "Frank Herbert", 3, now),
		core.BuildBookEdited(bookID, "Dune", "F. Herbert", 4, now),
		core.BuildBookRemoved(bookID, now),
		core.BuildMemberRegistered(memberID, "Ada", "ada@example.org", "+44 1", now),
		core.BuildMemberEdited(memberID, "Ada L.", "ada@example.org", "", now),
		core.BuildMemberRemoved(memberID, now),
		core.BuildBookCopyAllocated(allocationID, bookID, memberID, start, end, now),
		core.BuildAllocationReturned(allocationID, bookID, memberID, now),
	}

	for _, domainEvent := range domainEvents {
		t.Run(domainEvent.IsEventType(), func(t *testing.T) {
			// act
			storableEvent, err := shell.StorableEventFrom(domainEvent, shell.NewEventMetadata())
			require.NoError(t, err)

			mapped, err := shell.DomainEventFrom(storableEvent)
			require.NoError(t, err)

			// assert
			assert.Equal(t, domainEvent.IsEventType(), storableEvent.EventType)
			assert.Equal(t, domainEvent, mapped)
			assert.True(t, now.Truncate(time.Microsecond).Equal(mapped.HasOccurredAt()))
		})
	}
}

func Test_StorableEventFrom_PayloadCarriesPredicateKeys(t *testing.T) {
	// arrange
	allocation := core.BuildBookCopyAllocated(
		uuid.New(), uuid.New(), uuid.New(), core.MustParseDate("2024-03-01"), core.MustParseDate("2024-03-02"), time.Now(),
	)

	// act
	storableEvent, err := shell.StorableEventFrom(allocation, shell.NewEventMetadata())

	// assert
	require.NoError(t, err)
	assert.Contains(t, string(storableEvent.PayloadJSON), `"`+core.BookIDPredicateKey+`":"`+allocation.BookID+`"`)
	assert.Contains(t, string(storableEvent.PayloadJSON), `"`+core.MemberIDPredicateKey+`":"`+allocation.MemberID+`"`)
	assert.Contains(t, string(storableEvent.PayloadJSON), `"`+core.AllocationIDPredicateKey+`":"`+allocation.AllocationID+`"`)
}

func Test_DomainEventFrom_UnknownEventType(t *testing.T) {
	// arrange
	storableEvent, err := eventstore.BuildStorableEventWithEmptyMetadata("BookBurned", time.Now(), []byte(`{}`))
	require.NoError(t, err)

	// act
	_, err = shell.DomainEventFrom(storableEvent)

	// assert
	assert.ErrorIs(t, err, shell.ErrMappingToDomainEventFailed)
	assert.ErrorIs(t, err, shell.ErrMappingToDomainEventUnknownEventType)
}

func Test_DomainEventFrom_MalformedPayload(t *testing.T) {
	// arrange
	storableEvent, err := eventstore.BuildStorableEventWithEmptyMetadata(
		core.BookAddedEventType, time.Now(), []byte(`{"TotalCopies":"many"}`),
	)
	require.NoError(t, err)

	// act
	_, err = shell.DomainEventFrom(storableEvent)

	// assert
	assert.ErrorIs(t, err, shell.ErrMappingToDomainEventFailed)
}

func Test_EventMetadataFrom(t *testing.T) {
	// arrange
	metadata := shell.NewEventMetadata()
	storableEvent, err := shell.StorableEventFrom(core.BuildBookRemoved(uuid.New(), time.Now()), metadata)
	require.NoError(t, err)

	// act
	mapped, err := shell.EventMetadataFrom(storableEvent)

	// assert
	require.NoError(t, err)
	assert.Equal(t, metadata, mapped)
	assert.Equal(t, mapped.MessageID, mapped.CorrelationID)
}
