package removebook_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-allocations/library/core"
	"github.com/AntonStoeckl/library-allocations/library/features/command/removebook"
)

func Test_Decide(t *testing.T) {
	bookID, memberID, allocationID := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()
	start, end := core.MustParseDate("2024-06-01"), core.MustParseDate("2024-06-14")

	added := core.BuildBookAdded(bookID, "Dune", "Frank Herbert", 1, now.Add(-4*time.Hour))
	allocated := core.BuildBookCopyAllocated(allocationID, bookID, memberID, start, end, now.Add(-3*time.Hour))
	returned := core.BuildAllocationReturned(allocationID, bookID, memberID, now.Add(-2*time.Hour))
	removed := core.BuildBookRemoved(bookID, now.Add(-1*time.Hour))

	testCases := []struct {
		name            string
		events          core.DomainEvents
		expectedOutcome string
		expectedError   error
	}{
		{name: "book without allocations", events: core.DomainEvents{added}, expectedOutcome: "success"},
		{name: "all allocations returned", events: core.DomainEvents{added, allocated, returned}, expectedOutcome: "success"},
		{name: "book never added", events: core.DomainEvents{}, expectedOutcome: "error", expectedError: core.ErrNotFound},
		{name: "book already removed", events: core.DomainEvents{added, removed}, expectedOutcome: "error", expectedError: core.ErrNotFound},
		{name: "copy still allocated", events: core.DomainEvents{added, allocated}, expectedOutcome: "error", expectedError: core.ErrHasOpenAllocations},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := removebook.Decide(tc.events, removebook.BuildCommand(bookID, now))

			// assert
			assert.Equal(t, tc.expectedOutcome, result.Outcome)

			if tc.expectedError != nil {
				assert.ErrorIs(t, result.HasError(), tc.expectedError)
				return
			}

			_, ok := result.Event.(core.BookRemoved)
			assert.True(t, ok, "Expected BookRemoved event")
		})
	}
}
