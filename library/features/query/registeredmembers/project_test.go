package registeredmembers_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-allocations/library/core"
	"github.com/AntonStoeckl/library-allocations/library/features/query/registeredmembers"
)

func Test_ProjectRegisteredMembers(t *testing.T) {
	// arrange
	ada, grace, alan := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()

	history := core.DomainEvents{
		core.BuildMemberRegistered(ada, "Ada", "ada@example.org", "", now.Add(-4*time.Hour)),
		core.BuildMemberRegistered(alan, "Alan", "", "", now.Add(-3*time.Hour)),
		core.BuildMemberRegistered(grace, "Grace", "", "555", now.Add(-2*time.Hour)),
		core.BuildMemberRemoved(alan, now.Add(-1*time.Hour)),
		core.BuildMemberEdited(ada, "Ada Lovelace", "ada@example.org", "+44", now),
	}

	// act
	result := registeredmembers.ProjectRegisteredMembers(history, 5)

	// assert
	require.Equal(t, 2, result.Count)
	assert.Equal(t, ada.String(), result.Members[0].MemberID)
	assert.Equal(t, "Ada Lovelace", result.Members[0].Name)
	assert.Equal(t, "+44", result.Members[0].Phone)
	assert.Equal(t, grace.String(), result.Members[1].MemberID)
	assert.Equal(t, uint(5), result.GetSequenceNumber())
}
