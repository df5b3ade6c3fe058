package removemember_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-allocations/library/core"
	"github.com/AntonStoeckl/library-allocations/library/features/command/removemember"
)

func Test_Decide(t *testing.T) {
	bookID, memberID, allocationID := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()
	start, end := core.MustParseDate("2024-06-01"), core.MustParseDate("2024-06-14")

	registered := core.BuildMemberRegistered(memberID, "Ada Lovelace", "ada@example.org", "", now.Add(-4*time.Hour))
	allocated := core.BuildBookCopyAllocated(allocationID, bookID, memberID, start, end, now.Add(-3*time.Hour))
	returned := core.BuildAllocationReturned(allocationID, bookID, memberID, now.Add(-2*time.Hour))
	removed := core.BuildMemberRemoved(memberID, now.Add(-1*time.Hour))

	testCases := []struct {
		name            string
		events          core.DomainEvents
		expectedOutcome string
		expectedError   error
	}{
		{name: "member without allocations", events: core.DomainEvents{registered}, expectedOutcome: "success"},
		{name: "all allocations returned", events: core.DomainEvents{registered, allocated, returned}, expectedOutcome: "success"},
		{name: "member never registered", events: core.DomainEvents{}, expectedOutcome: "error", expectedError: core.ErrNotFound},
		{name: "member already removed", events: core.DomainEvents{registered, removed}, expectedOutcome: "error", expectedError: core.ErrNotFound},
		{name: "member holds a copy", events: core.DomainEvents{registered, allocated}, expectedOutcome: "error", expectedError: core.ErrHasOpenAllocations},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := removemember.Decide(tc.events, removemember.BuildCommand(memberID, now))

			// assert
			assert.Equal(t, tc.expectedOutcome, result.Outcome)

			if tc.expectedError != nil {
				assert.ErrorIs(t, result.HasError(), tc.expectedError)
				return
			}

			_, ok := result.Event.(core.MemberRemoved)
			assert.True(t, ok, "Expected MemberRemoved event")
		})
	}
}
