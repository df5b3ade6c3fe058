package editbook_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-allocations/library/core"
	"github.com/AntonStoeckl/library-allocations/library/features/command/editbook"
)

func Test_Decide_Success_WhenTotalCopiesStayAboveAllocated(t *testing.T) {
	// arrange
	bookID := uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		givenBookAdded(t, bookID, 3, now.Add(-3*time.Hour)),
		givenBookCopyAllocated(t, uuid.New(), bookID, now.Add(-2*time.Hour)),
		givenBookCopyAllocated(t, uuid.New(), bookID, now.Add(-1*time.Hour)),
	}

	// act
	result := editbook.Decide(events, editbook.BuildCommand(bookID, "Dune Messiah", "Frank Herbert", 2, now))

	// assert
	assert.Equal(t, "success", result.Outcome)
	edited, ok := result.Event.(core.BookEdited)
	assert.True(t, ok, "Expected BookEdited event")
	assert.Equal(t, "Dune Messiah", edited.Name)
	assert.Equal(t, 2, edited.TotalCopies)
}

func Test_Decide_Success_ReturnedAllocationsDoNotCount(t *testing.T) {
	// arrange
	bookID, allocationID := uuid.New(), uuid.New()
	now := time.Now()

	events := core.DomainEvents{
		givenBookAdded(t, bookID, 1, now.Add(-3*time.Hour)),
		givenBookCopyAllocated(t, allocationID, bookID, now.Add(-2*time.Hour)),
		core.BuildAllocationReturned(allocationID, bookID, uuid.New(), now.Add(-1*time.Hour)),
	}

	// act
	result := editbook.Decide(events, editbook.BuildCommand(bookID, "Dune", "Frank Herbert", 0, now))

	// assert
	assert.Equal(t, "success", result.Outcome)
}

func Test_Decide_Idempotent_WhenNothingChanges(t *testing.T) {
	// arrange
	bookID := uuid.New()
	now := time.Now()
	events := core.DomainEvents{givenBookAdded(t, bookID, 3, now.Add(-time.Hour))}

	// act
	result := editbook.Decide(events, editbook.BuildCommand(bookID, "Dune ", "Frank Herbert", 3, now))

	// assert
	assert.True(t, result.IsIdempotent())
}

func Test_Decide_BusinessErrors(t *testing.T) {
	bookID := uuid.New()
	now := time.Now()

	testCases := []struct {
		name          string
		events        core.DomainEvents
		totalCopies   int
		expectedError error
	}{
		{
			name:          "book never added",
			events:        core.DomainEvents{},
			totalCopies:   1,
			expectedError: core.ErrNotFound,
		},
		{
			name: "book removed",
			events: core.DomainEvents{
				givenBookAdded(t, bookID, 1, now.Add(-2*time.Hour)),
				core.BuildBookRemoved(bookID, now.Add(-1*time.Hour)),
			},
			totalCopies:   1,
			expectedError: core.ErrNotFound,
		},
		{
			name: "negative total copies",
			events: core.DomainEvents{
				givenBookAdded(t, bookID, 1, now.Add(-1*time.Hour)),
			},
			totalCopies:   -1,
			expectedError: core.ErrValidation,
		},
		{
			name: "total copies below allocated copies",
			events: core.DomainEvents{
				givenBookAdded(t, bookID, 2, now.Add(-3*time.Hour)),
				givenBookCopyAllocated(t, uuid.New(), bookID, now.Add(-2*time.Hour)),
				givenBookCopyAllocated(t, uuid.New(), bookID, now.Add(-1*time.Hour)),
			},
			totalCopies:   1,
			expectedError: core.ErrCopiesBelowAllocated,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := editbook.Decide(tc.events, editbook.BuildCommand(bookID, "Dune", "Frank Herbert", tc.totalCopies, now))

			// assert
			assert.Equal(t, "error", result.Outcome)
			assert.ErrorIs(t, result.HasError(), tc.expectedError)
		})
	}
}

func givenBookAdded(t *testing.T, bookID uuid.UUID, totalCopies int, at time.Time) core.DomainEvent {
	t.Helper()
	return core.BuildBookAdded(bookID, "Dune", "Frank Herbert", totalCopies, at)
}

func givenBookCopyAllocated(t *testing.T, allocationID, bookID uuid.UUID, at time.Time) core.DomainEvent {
	t.Helper()
	return core.BuildBookCopyAllocated(
		allocationID, bookID, uuid.New(), core.MustParseDate("2024-06-01"), core.MustParseDate("2024-06-14"), at,
	)
}
