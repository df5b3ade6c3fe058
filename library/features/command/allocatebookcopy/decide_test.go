package allocatebookcopy_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-allocations/library/core"
	"github.com/AntonStoeckl/library-allocations/library/features/command/allocatebookcopy"
)

var (
	startDate = core.MustParseDate("2024-06-01")
	endDate   = core.MustParseDate("2024-06-14")
)

func Test_Decide_Success_WhenCopiesAreAvailable(t *testing.T) {
	// arrange
	bookID, memberID, allocationID := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		givenBookAdded(t, bookID, 2, now.Add(-3*time.Hour)),
		givenMemberRegistered(t, memberID, now.Add(-2*time.Hour)),
		givenBookCopyAllocated(t, uuid.New(), bookID, uuid.New(), now.Add(-1*time.Hour)),
	}

	command := allocatebookcopy.BuildCommand(allocationID, bookID, memberID, startDate, endDate, now)

	// act
	result := allocatebookcopy.Decide(events, command)

	// assert
	assertSuccessDecision(t, result, allocationID, bookID, memberID)
}

func Test_Decide_Success_WhenEndDateEqualsStartDate(t *testing.T) {
	// arrange
	bookID, memberID, allocationID := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		givenBookAdded(t, bookID, 1, now.Add(-2*time.Hour)),
		givenMemberRegistered(t, memberID, now.Add(-1*time.Hour)),
	}

	command := allocatebookcopy.BuildCommand(allocationID, bookID, memberID, startDate, startDate, now)

	// act
	result := allocatebookcopy.Decide(events, command)

	// assert
	assertSuccessDecision(t, result, allocationID, bookID, memberID)
}

func Test_Decide_Success_AfterReturnFreesTheLastCopy(t *testing.T) {
	// arrange
	bookID, memberID, allocationID := uuid.New(), uuid.New(), uuid.New()
	previousAllocationID, otherMemberID := uuid.New(), uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		givenBookAdded(t, bookID, 1, now.Add(-5*time.Hour)),
		givenMemberRegistered(t, memberID, now.Add(-4*time.Hour)),
		givenBookCopyAllocated(t, previousAllocationID, bookID, otherMemberID, now.Add(-3*time.Hour)),
		givenAllocationReturned(t, previousAllocationID, bookID, otherMemberID, now.Add(-2*time.Hour)),
	}

	command := allocatebookcopy.BuildCommand(allocationID, bookID, memberID, startDate, endDate, now)

	// act
	result := allocatebookcopy.Decide(events, command)

	// assert
	assertSuccessDecision(t, result, allocationID, bookID, memberID)
}

func Test_Decide_Success_WhenTotalCopiesWereRaised(t *testing.T) {
	// arrange
	bookID, memberID, allocationID := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		givenBookAdded(t, bookID, 1, now.Add(-5*time.Hour)),
		givenMemberRegistered(t, memberID, now.Add(-4*time.Hour)),
		givenBookCopyAllocated(t, uuid.New(), bookID, uuid.New(), now.Add(-3*time.Hour)),
		givenBookEdited(t, bookID, 2, now.Add(-2*time.Hour)),
	}

	command := allocatebookcopy.BuildCommand(allocationID, bookID, memberID, startDate, endDate, now)

	// act
	result := allocatebookcopy.Decide(events, command)

	// assert
	assertSuccessDecision(t, result, allocationID, bookID, memberID)
}

func Test_Decide_Idempotent_WhenAllocationWasAlreadyMade(t *testing.T) {
	// arrange
	bookID, memberID, allocationID := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		givenBookAdded(t, bookID, 1, now.Add(-3*time.Hour)),
		givenMemberRegistered(t, memberID, now.Add(-2*time.Hour)),
		givenBookCopyAllocated(t, allocationID, bookID, memberID, now.Add(-1*time.Hour)),
	}

	command := allocatebookcopy.BuildCommand(allocationID, bookID, memberID, startDate, endDate, now)

	// act
	result := allocatebookcopy.Decide(events, command)

	// assert
	assertIdempotentDecision(t, result)
}

//nolint:funlen
func Test_Decide_BusinessErrors(t *testing.T) {
	bookID, memberID := uuid.New(), uuid.New()
	now := time.Now()

	testCases := []struct {
		name          string
		events        core.DomainEvents
		endDate       core.Date
		expectedError error
	}{
		{
			name: "end date before start date",
			events: core.DomainEvents{
				givenBookAdded(t, bookID, 1, now),
				givenMemberRegistered(t, memberID, now),
			},
			endDate:       startDate.AddDays(-1),
			expectedError: core.ErrValidation,
		},
		{
			name: "book never added",
			events: core.DomainEvents{
				givenMemberRegistered(t, memberID, now),
			},
			endDate:       endDate,
			expectedError: core.ErrNotFound,
		},
		{
			name: "book removed",
			events: core.DomainEvents{
				givenBookAdded(t, bookID, 1, now.Add(-2*time.Hour)),
				givenBookRemoved(t, bookID, now.Add(-1*time.Hour)),
				givenMemberRegistered(t, memberID, now),
			},
			endDate:       endDate,
			expectedError: core.ErrNotFound,
		},
		{
			name: "member never registered",
			events: core.DomainEvents{
				givenBookAdded(t, bookID, 1, now),
			},
			endDate:       endDate,
			expectedError: core.ErrNotFound,
		},
		{
			name: "member removed",
			events: core.DomainEvents{
				givenBookAdded(t, bookID, 1, now.Add(-3*time.Hour)),
				givenMemberRegistered(t, memberID, now.Add(-2*time.Hour)),
				givenMemberRemoved(t, memberID, now.Add(-1*time.Hour)),
			},
			endDate:       endDate,
			expectedError: core.ErrNotFound,
		},
		{
			name: "book without copies",
			events: core.DomainEvents{
				givenBookAdded(t, bookID, 0, now.Add(-2*time.Hour)),
				givenMemberRegistered(t, memberID, now.Add(-1*time.Hour)),
			},
			endDate:       endDate,
			expectedError: core.ErrCapacityExceeded,
		},
		{
			name: "all copies allocated",
			events: core.DomainEvents{
				givenBookAdded(t, bookID, 2, now.Add(-4*time.Hour)),
				givenMemberRegistered(t, memberID, now.Add(-3*time.Hour)),
				givenBookCopyAllocated(t, uuid.New(), bookID, memberID, now.Add(-2*time.Hour)),
				givenBookCopyAllocated(t, uuid.New(), bookID, uuid.New(), now.Add(-1*time.Hour)),
			},
			endDate:       endDate,
			expectedError: core.ErrCapacityExceeded,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			command := allocatebookcopy.BuildCommand(uuid.New(), bookID, memberID, startDate, tc.endDate, now)

			// act
			result := allocatebookcopy.Decide(tc.events, command)

			// assert
			assertErrorDecision(t, result, tc.expectedError)
		})
	}
}

// Test helper functions with t.Helper() for better error reporting

func givenBookAdded(t *testing.T, bookID uuid.UUID, totalCopies int, at time.Time) core.DomainEvent {
	t.Helper()
	return core.BuildBookAdded(bookID, "Dune", "Frank Herbert", totalCopies, at)
}

func givenBookEdited(t *testing.T, bookID uuid.UUID, totalCopies int, at time.Time) core.DomainEvent {
	t.Helper()
	return core.BuildBookEdited(bookID, "Dune", "Frank Herbert", totalCopies, at)
}

func givenBookRemoved(t *testing.T, bookID uuid.UUID, at time.Time) core.DomainEvent {
	t.Helper()
	return core.BuildBookRemoved(bookID, at)
}

func givenMemberRegistered(t *testing.T, memberID uuid.UUID, at time.Time) core.DomainEvent {
	t.Helper()
	return core.BuildMemberRegistered(memberID, "Ada Lovelace", "", "", at)
}

func givenMemberRemoved(t *testing.T, memberID uuid.UUID, at time.Time) core.DomainEvent {
	t.Helper()
	return core.BuildMemberRemoved(memberID, at)
}

func givenBookCopyAllocated(t *testing.T, allocationID, bookID, memberID uuid.UUID, at time.Time) core.DomainEvent {
	t.Helper()
	return core.BuildBookCopyAllocated(allocationID, bookID, memberID, startDate, endDate, at)
}

func givenAllocationReturned(t *testing.T, allocationID, bookID, memberID uuid.UUID, at time.Time) core.DomainEvent {
	t.Helper()
	return core.BuildAllocationReturned(allocationID, bookID, memberID, at)
}

func assertSuccessDecision(t *testing.T, result core.DecisionResult, allocationID, bookID, memberID uuid.UUID) {
	t.Helper()
	assert.Equal(t, "success", result.Outcome, "Expected success decision")
	assert.NoError(t, result.HasError(), "Expected no error for success decision")

	allocated, ok := result.Event.(core.BookCopyAllocated)
	assert.True(t, ok, "Expected BookCopyAllocated event")
	assert.Equal(t, allocationID.String(), allocated.AllocationID, "Event should have correct AllocationID")
	assert.Equal(t, bookID.String(), allocated.BookID, "Event should have correct BookID")
	assert.Equal(t, memberID.String(), allocated.MemberID, "Event should have correct MemberID")
}

func assertIdempotentDecision(t *testing.T, result core.DecisionResult) {
	t.Helper()
	assert.Equal(t, "idempotent", result.Outcome, "Expected idempotent decision")
	assert.Nil(t, result.Event, "Expected no event for idempotent decision")
	assert.NoError(t, result.HasError(), "Expected no error for idempotent decision")
}

func assertErrorDecision(t *testing.T, result core.DecisionResult, expectedError error) {
	t.Helper()
	assert.Equal(t, "error", result.Outcome, "Expected error decision")
	assert.Nil(t, result.Event, "Expected no event for error decision")
	assert.ErrorIs(t, result.HasError(), expectedError)
	assert.False(t, result.HasEventToAppend())
}
