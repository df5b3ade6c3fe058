package removemember_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-allocations/library/core"
	"github.com/AntonStoeckl/library-allocations/library/features/command/addbook"
	"github.com/AntonStoeckl/library-allocations/library/features/command/allocatebookcopy"
	"github.com/AntonStoeckl/library-allocations/library/features/command/registermember"
	"github.com/AntonStoeckl/library-allocations/library/features/command/removemember"
	"github.com/AntonStoeckl/library-allocations/library/features/command/returnallocation"
	"github.com/AntonStoeckl/library-allocations/library/features/query/allocationhistory"
	"github.com/AntonStoeckl/library-allocations/library/features/query/registeredmembers"
	"github.com/AntonStoeckl/library-allocations/testutil/helper"
)

func Test_CommandHandler_Handle_MemberWithOpenAllocation(t *testing.T) {
	// setup
	ctx := context.Background()
	es := helper.CreateSQLiteEventStore(t)
	fakeClock := helper.FakeClock()
	today := core.DateOf(fakeClock)
	bookID, memberID, allocationID := uuid.New(), uuid.New(), uuid.New()

	_, err := addbook.NewCommandHandler(es).Handle(ctx, addbook.BuildCommand(bookID, "Dune", "Frank Herbert", 1, fakeClock))
	require.NoError(t, err)
	_, err = registermember.NewCommandHandler(es).Handle(ctx, registermember.BuildCommand(memberID, "Ada Lovelace", "ada@example.com", "", fakeClock))
	require.NoError(t, err)
	_, err = allocatebookcopy.NewCommandHandler(es).Handle(
		ctx,
		allocatebookcopy.BuildCommand(allocationID, bookID, memberID, today, today.AddDays(14), fakeClock),
	)
	require.NoError(t, err)

	handler := removemember.NewCommandHandler(es)

	// act & assert - an open allocation blocks the removal
	_, err = handler.Handle(ctx, removemember.BuildCommand(memberID, fakeClock))
	require.ErrorIs(t, err, core.ErrHasOpenAllocations)

	// act & assert - after the return the member can be removed
	_, err = returnallocation.NewCommandHandler(es).Handle(ctx, returnallocation.BuildCommand(allocationID, fakeClock))
	require.NoError(t, err)

	_, err = handler.Handle(ctx, removemember.BuildCommand(memberID, fakeClock))
	require.NoError(t, err)

	members, err := registeredmembers.NewQueryHandler(es).Handle(ctx, registeredmembers.BuildQuery())
	require.NoError(t, err)
	assert.Equal(t, 0, members.Count)

	// act & assert - removing again reports not found
	_, err = handler.Handle(ctx, removemember.BuildCommand(memberID, fakeClock))
	require.ErrorIs(t, err, core.ErrNotFound)

	// the history still shows who had the book
	history, err := allocationhistory.NewQueryHandler(es).Handle(ctx, allocationhistory.BuildQuery(today))
	require.NoError(t, err)
	require.Len(t, history.Entries, 1)
	assert.Equal(t, "Ada Lovelace", history.Entries[0].MemberName)
	assert.True(t, history.Entries[0].Returned)

	// act & assert - the freed email can be registered again
	_, err = registermember.NewCommandHandler(es).Handle(ctx, registermember.BuildCommand(uuid.New(), "Ada King", "ADA@example.com", "", fakeClock))
	assert.NoError(t, err)
}
