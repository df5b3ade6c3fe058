package allocations_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-allocations/library/core"
	"github.com/AntonStoeckl/library-allocations/library/features/command/addbook"
	"github.com/AntonStoeckl/library-allocations/library/features/command/allocatebookcopy"
	"github.com/AntonStoeckl/library-allocations/library/features/command/registermember"
	"github.com/AntonStoeckl/library-allocations/library/features/query/allocations"
	"github.com/AntonStoeckl/library-allocations/library/shell"
	"github.com/AntonStoeckl/library-allocations/testutil/helper"
)

func Test_QueryHandler_Handle(t *testing.T) {
	// setup
	ctx := context.Background()
	es := helper.CreateSQLiteEventStore(t)
	fakeClock := helper.FakeClock()
	today := core.DateOf(fakeClock)
	bookID, otherBookID, memberID := uuid.New(), uuid.New(), uuid.New()

	_, err := addbook.NewCommandHandler(es).Handle(ctx, addbook.BuildCommand(bookID, "Dune", "Frank Herbert", 1, fakeClock))
	require.NoError(t, err)
	_, err = addbook.NewCommandHandler(es).Handle(ctx, addbook.BuildCommand(otherBookID, "Emma", "Jane Austen", 1, fakeClock))
	require.NoError(t, err)
	_, err = registermember.NewCommandHandler(es).Handle(ctx, registermember.BuildCommand(memberID, "Ada Lovelace", "", "", fakeClock))
	require.NoError(t, err)

	allocationID := uuid.New()
	for _, allocation := range []struct {
		allocationID uuid.UUID
		bookID       uuid.UUID
	}{
		{allocationID: allocationID, bookID: bookID},
		{allocationID: uuid.New(), bookID: otherBookID},
	} {
		_, err = allocatebookcopy.NewCommandHandler(es).Handle(
			ctx,
			allocatebookcopy.BuildCommand(allocation.allocationID, allocation.bookID, memberID, today, today.AddDays(7), fakeClock),
		)
		require.NoError(t, err)
	}

	logger, spy := helper.NewSpyLogger()
	handler := allocations.NewQueryHandler(es, allocations.WithLogger(logger))

	t.Run("all allocations", func(t *testing.T) {
		// act
		result, err := handler.Handle(ctx, allocations.BuildQuery(today))

		// assert
		require.NoError(t, err)
		assert.Equal(t, 2, result.Count)
		assert.True(t, spy.HasLogWithAttr(slog.LevelDebug, shell.LogMsgQueryCompleted, shell.LogAttrResultCount))
	})

	t.Run("allocations of one member and book", func(t *testing.T) {
		// act
		result, err := handler.Handle(ctx, allocations.BuildQuery(today).ForMember(memberID).ForBook(otherBookID))

		// assert
		require.NoError(t, err)
		require.Equal(t, 1, result.Count)
		assert.Equal(t, otherBookID.String(), result.Allocations[0].BookID)
	})

	t.Run("single allocation", func(t *testing.T) {
		// act
		result, err := handler.Handle(ctx, allocations.BuildQueryForAllocation(allocationID, today))

		// assert
		require.NoError(t, err)
		require.Equal(t, 1, result.Count)
		assert.False(t, result.Allocations[0].Overdue)
	})

	t.Run("unknown allocation is not found", func(t *testing.T) {
		// act
		_, err := handler.Handle(ctx, allocations.BuildQueryForAllocation(uuid.New(), today))

		// assert
		assert.ErrorIs(t, err, core.ErrNotFound)
		assert.True(t, spy.HasLogWithAttr(slog.LevelInfo, shell.LogMsgQueryFailed, shell.LogAttrError))
	})
}
