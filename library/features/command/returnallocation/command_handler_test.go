package returnallocation_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-allocations/eventstore/sqliteengine"
	"github.com/AntonStoeckl/library-allocations/library/core"
	"github.com/AntonStoeckl/library-allocations/library/features/command/returnallocation"
	"github.com/AntonStoeckl/library-allocations/library/features/query/allocations"
	"github.com/AntonStoeckl/library-allocations/library/features/query/booksincatalogue"
	"github.com/AntonStoeckl/library-allocations/library/shell"
	"github.com/AntonStoeckl/library-allocations/testutil/helper"
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	ctx := context.Background()
	es := helper.CreateSQLiteEventStore(t)
	fakeClock := helper.FakeClock()
	bookID, allocationID := givenOpenAllocation(ctx, t, es, fakeClock)

	// act
	result, err := returnallocation.NewCommandHandler(es).Handle(ctx, returnallocation.BuildCommand(allocationID, fakeClock.Add(time.Hour)))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)
	assertAllocatedCopies(ctx, t, es, bookID, 0)

	returned, err := allocations.NewQueryHandler(es).Handle(
		ctx,
		allocations.BuildQueryForAllocation(allocationID, core.DateOf(fakeClock)),
	)
	require.NoError(t, err)
	assert.True(t, returned.Allocations[0].Returned)
	assert.False(t, returned.Allocations[0].Overdue)
}

func Test_CommandHandler_Handle_Error_UnknownAllocation(t *testing.T) {
	// setup
	ctx := context.Background()
	es := helper.CreateSQLiteEventStore(t)

	// act
	_, err := returnallocation.NewCommandHandler(es).Handle(ctx, returnallocation.BuildCommand(uuid.New(), helper.FakeClock()))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func Test_CommandHandler_Handle_ConcurrentReturnsOfTheSameAllocation(t *testing.T) {
	// setup
	ctx := context.Background()
	es := helper.CreateSQLiteEventStore(t)
	fakeClock := helper.FakeClock()
	bookID, allocationID := givenOpenAllocation(ctx, t, es, fakeClock)

	const concurrentReturns = 8

	handler := returnallocation.NewCommandHandler(es, returnallocation.WithRetryOptions(shell.WithBaseDelay(time.Millisecond)))

	// act
	var wg sync.WaitGroup
	errs := make([]error, concurrentReturns)

	for i := range concurrentReturns {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, errs[i] = handler.Handle(ctx, returnallocation.BuildCommand(allocationID, fakeClock.Add(time.Hour)))
		}()
	}

	wg.Wait()

	// assert
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}

		assert.ErrorIs(t, err, core.ErrAlreadyReturned, "losers must see the fresh state, not a conflict")
	}

	assert.Equal(t, 1, succeeded, "exactly one return of the allocation must succeed")
	assertAllocatedCopies(ctx, t, es, bookID, 0)
}

func givenOpenAllocation(ctx context.Context, t *testing.T, es sqliteengine.EventStore, fakeClock time.Time) (uuid.UUID, uuid.UUID) {
	t.Helper()

	bookID := helper.GivenUniqueID(t)
	memberID := helper.GivenUniqueID(t)
	allocationID := helper.GivenUniqueID(t)
	today := core.DateOf(fakeClock)

	helper.GivenEventsWereAppended(
		t,
		ctx,
		es,
		helper.FixtureBookAdded(bookID, 1, fakeClock),
		helper.FixtureMemberRegistered(memberID, fakeClock),
		helper.FixtureBookCopyAllocated(allocationID, bookID, memberID, today, today.AddDays(14), fakeClock),
	)

	assertAllocatedCopies(ctx, t, es, bookID, 1)

	return bookID, allocationID
}

func assertAllocatedCopies(ctx context.Context, t *testing.T, es sqliteengine.EventStore, bookID uuid.UUID, expected int) {
	t.Helper()

	result, err := booksincatalogue.NewQueryHandler(es).Handle(ctx, booksincatalogue.BuildQueryForBook(bookID))
	require.NoError(t, err)
	assert.Equal(t, expected, result.Books[0].AllocatedCopies)
}
