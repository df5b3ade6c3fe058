package registeredmembers

import (
	"github.com/AntonStoeckl/library-allocations/eventstore"
	"github.com/AntonStoeckl/library-allocations/library/core"
)

// ProjectRegisteredMembers implements the query logic to determine the current members.
//
// Query Logic:
//
//	GIVEN: The lifecycle events of members
//	WHEN: RegisteredMembers query is executed
//	THEN: RegisteredMembers struct is returned in order of registration
//	EXCLUDES: members that were removed
func ProjectRegisteredMembers(history core.DomainEvents, maxSequenceNumber uint) RegisteredMembers {
	members := make(map[core.MemberIDString]*MemberInfo)
	order := make([]core.MemberIDString, 0)

	for _, event := range history {
		switch e := event.(type) {
		case core.MemberRegistered:
			if _, exists := members[e.MemberID]; !exists {
				order = append(order, e.MemberID)
			}

			members[e.MemberID] = &MemberInfo{
				MemberID:     e.MemberID,
				Name:         e.Name,
				Email:        e.Email,
				Phone:        e.Phone,
				RegisteredAt: e.OccurredAt,
			}

		case core.MemberEdited:
			if member, exists := members[e.MemberID]; exists {
				member.Name, member.Email, member.Phone = e.Name, e.Email, e.Phone
			}

		case core.MemberRemoved:
			delete(members, e.MemberID)
		}
	}

	result := make([]MemberInfo, 0, len(members))
	for _, memberID := range order {
		if member, exists := members[memberID]; exists {
			result = append(result, *member)
		}
	}

	return RegisteredMembers{
		Members:        result,
		Count:          len(result),
		SequenceNumber: maxSequenceNumber,
	}
}

// BuildEventFilter creates the filter for querying the events of all members, or of a single member.
func BuildEventFilter(query Query) eventstore.Filter {
	if !query.isForSingleMember() {
		return eventstore.BuildEventFilter().
			Matching().
			AnyEventTypeOf(core.MemberRegisteredEventType, core.MemberEditedEventType, core.MemberRemovedEventType).
			Finalize()
	}

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.MemberRegisteredEventType, core.MemberEditedEventType, core.MemberRemovedEventType).
		AndAnyPredicateOf(eventstore.P(core.MemberIDPredicateKey, query.MemberID.String())).
		Finalize()
}
