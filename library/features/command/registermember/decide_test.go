package registermember_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-allocations/library/core"
	"github.com/AntonStoeckl/library-allocations/library/features/command/registermember"
)

func Test_Decide_Success(t *testing.T) {
	// arrange
	memberID := uuid.New()
	now := time.Now()
	events := core.DomainEvents{
		core.BuildMemberRegistered(uuid.New(), "Grace Hopper", "grace@example.org", "", now.Add(-time.Hour)),
	}

	// act
	result := registermember.Decide(events, registermember.BuildCommand(memberID, " Ada ", "ada@example.org", "+44 20", now))

	// assert
	assert.Equal(t, "success", result.Outcome)
	registered, ok := result.Event.(core.MemberRegistered)
	assert.True(t, ok, "Expected MemberRegistered event")
	assert.Equal(t, memberID.String(), registered.MemberID)
	assert.Equal(t, "Ada", registered.Name)
	assert.Equal(t, "+44 20", registered.Phone)
}

func Test_Decide_Success_WhenEmailIsEmpty(t *testing.T) {
	// arrange
	now := time.Now()
	events := core.DomainEvents{
		core.BuildMemberRegistered(uuid.New(), "Grace Hopper", "", "", now.Add(-time.Hour)),
	}

	// act
	result := registermember.Decide(events, registermember.BuildCommand(uuid.New(), "Ada", "", "", now))

	// assert
	assert.Equal(t, "success", result.Outcome, "empty emails are never duplicates")
}

func Test_Decide_Success_WhenEmailWasFreedByRemovalOrEdit(t *testing.T) {
	// arrange
	removedID, editedID := uuid.New(), uuid.New()
	now := time.Now()
	events := core.DomainEvents{
		core.BuildMemberRegistered(removedID, "Grace Hopper", "grace@example.org", "", now.Add(-4*time.Hour)),
		core.BuildMemberRemoved(removedID, now.Add(-3*time.Hour)),
		core.BuildMemberRegistered(editedID, "Alan Turing", "alan@example.org", "", now.Add(-2*time.Hour)),
		core.BuildMemberEdited(editedID, "Alan Turing", "turing@example.org", "", now.Add(-1*time.Hour)),
	}

	// act
	resultGrace := registermember.Decide(events, registermember.BuildCommand(uuid.New(), "Grace", "grace@example.org", "", now))
	resultAlan := registermember.Decide(events, registermember.BuildCommand(uuid.New(), "Alan", "alan@example.org", "", now))

	// assert
	assert.Equal(t, "success", resultGrace.Outcome)
	assert.Equal(t, "success", resultAlan.Outcome)
}

func Test_Decide_Idempotent_WhenMemberWasAlreadyRegistered(t *testing.T) {
	// arrange
	memberID := uuid.New()
	now := time.Now()
	events := core.DomainEvents{
		core.BuildMemberRegistered(memberID, "Ada", "ada@example.org", "", now.Add(-time.Hour)),
	}

	// act
	result := registermember.Decide(events, registermember.BuildCommand(memberID, "Ada", "ada@example.org", "", now))

	// assert
	assert.True(t, result.IsIdempotent(), "the member's own email must not count as duplicate")
}

func Test_Decide_BusinessErrors(t *testing.T) {
	now := time.Now()
	events := core.DomainEvents{
		core.BuildMemberRegistered(uuid.New(), "Grace Hopper", "grace@example.org", "", now.Add(-time.Hour)),
	}

	testCases := []struct {
		name          string
		memberName    string
		email         string
		expectedError error
	}{
		{name: "blank name", memberName: "  ", email: "", expectedError: core.ErrValidation},
		{name: "malformed email", memberName: "Ada", email: "ada-at-example", expectedError: core.ErrValidation},
		{name: "email used by another member", memberName: "Ada", email: "GRACE@example.org", expectedError: core.ErrDuplicateEmail},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := registermember.Decide(events, registermember.BuildCommand(uuid.New(), tc.memberName, tc.email, "", now))

			// assert
			assert.Equal(t, "error", result.Outcome)
			assert.ErrorIs(t, result.HasError(), tc.expectedError)
		})
	}
}
