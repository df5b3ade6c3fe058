package editmember_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-allocations/library/core"
	"github.com/AntonStoeckl/library-allocations/library/features/command/editmember"
)

func Test_Decide_Success_KeepingOwnEmail(t *testing.T) {
	// arrange
	memberID := uuid.New()
	now := time.Now()
	events := core.DomainEvents{
		core.BuildMemberRegistered(memberID, "Ada", "ada@example.org", "", now.Add(-time.Hour)),
	}

	// act
	result := editmember.Decide(events, editmember.BuildCommand(memberID, "Ada Lovelace", "ADA@example.org", "+44 20", now))

	// assert
	assert.Equal(t, "success", result.Outcome)
	edited, ok := result.Event.(core.MemberEdited)
	assert.True(t, ok, "Expected MemberEdited event")
	assert.Equal(t, "Ada Lovelace", edited.Name)
	assert.Equal(t, "+44 20", edited.Phone)
}

func Test_Decide_Idempotent_WhenNothingChanges(t *testing.T) {
	// arrange
	memberID := uuid.New()
	now := time.Now()
	events := core.DomainEvents{
		core.BuildMemberRegistered(memberID, "Ada", "ada@example.org", "123", now.Add(-2*time.Hour)),
	}

	// act
	result := editmember.Decide(events, editmember.BuildCommand(memberID, "Ada", "ada@example.org", " 123", now))

	// assert
	assert.True(t, result.IsIdempotent())
}

func Test_Decide_BusinessErrors(t *testing.T) {
	memberID, otherID, removedID := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()
	events := core.DomainEvents{
		core.BuildMemberRegistered(memberID, "Ada", "ada@example.org", "", now.Add(-4*time.Hour)),
		core.BuildMemberRegistered(otherID, "Grace", "grace@example.org", "", now.Add(-3*time.Hour)),
		core.BuildMemberRegistered(removedID, "Alan", "alan@example.org", "", now.Add(-2*time.Hour)),
		core.BuildMemberRemoved(removedID, now.Add(-1*time.Hour)),
	}

	testCases := []struct {
		name          string
		memberID      uuid.UUID
		memberName    string
		email         string
		expectedError error
	}{
		{name: "member never registered", memberID: uuid.New(), memberName: "Ada", email: "", expectedError: core.ErrNotFound},
		{name: "member removed", memberID: removedID, memberName: "Alan", email: "", expectedError: core.ErrNotFound},
		{name: "blank name", memberID: memberID, memberName: "", email: "", expectedError: core.ErrValidation},
		{name: "email used by another member", memberID: memberID, memberName: "Ada", email: "grace@example.org", expectedError: core.ErrDuplicateEmail},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := editmember.Decide(events, editmember.BuildCommand(tc.memberID, tc.memberName, tc.email, "", now))

			// assert
			assert.Equal(t, "error", result.Outcome)
			assert.ErrorIs(t, result.HasError(), tc.expectedError)
		})
	}
}
