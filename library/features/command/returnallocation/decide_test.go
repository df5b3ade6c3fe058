package returnallocation_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-allocations/library/core"
	"github.com/AntonStoeckl/library-allocations/library/features/command/returnallocation"
)

func Test_Decide_Success_WhenAllocationIsOpen(t *testing.T) {
	// arrange
	allocationID, bookID, memberID := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		givenBookCopyAllocated(t, allocationID, bookID, memberID, now.Add(-1*time.Hour)),
	}

	// act
	result := returnallocation.Decide(events, returnallocation.BuildCommand(allocationID, now))

	// assert
	assert.Equal(t, "success", result.Outcome)
	returned, ok := result.Event.(core.AllocationReturned)
	assert.True(t, ok, "Expected AllocationReturned event")
	assert.Equal(t, allocationID.String(), returned.AllocationID)
	assert.Equal(t, bookID.String(), returned.BookID, "the return must be visible in the book's stream")
	assert.Equal(t, memberID.String(), returned.MemberID, "the return must be visible in the member's stream")
}

func Test_Decide_BusinessErrors(t *testing.T) {
	allocationID, bookID, memberID := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()

	testCases := []struct {
		name          string
		events        core.DomainEvents
		expectedError error
	}{
		{
			name:          "allocation does not exist",
			events:        core.DomainEvents{},
			expectedError: core.ErrNotFound,
		},
		{
			name: "allocation already returned",
			events: core.DomainEvents{
				givenBookCopyAllocated(t, allocationID, bookID, memberID, now.Add(-2*time.Hour)),
				core.BuildAllocationReturned(allocationID, bookID, memberID, now.Add(-1*time.Hour)),
			},
			expectedError: core.ErrAlreadyReturned,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := returnallocation.Decide(tc.events, returnallocation.BuildCommand(allocationID, now))

			// assert
			assert.Equal(t, "error", result.Outcome)
			assert.ErrorIs(t, result.HasError(), tc.expectedError)
		})
	}
}

func givenBookCopyAllocated(t *testing.T, allocationID, bookID, memberID uuid.UUID, at time.Time) core.DomainEvent {
	t.Helper()
	return core.BuildBookCopyAllocated(
		allocationID, bookID, memberID, core.MustParseDate("2024-06-01"), core.MustParseDate("2024-06-14"), at,
	)
}
