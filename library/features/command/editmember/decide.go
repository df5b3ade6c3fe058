package editmember

import (
	"fmt"
	"strings"

	"github.com/AntonStoeckl/library-allocations/eventstore"
	"github.com/AntonStoeckl/library-allocations/library/core"
)

type member struct {
	name  string
	email string
	phone string
}

// state represents the current state projected from the event history.
type state struct {
	members map[core.MemberIDString]member
}

// emailTakenByOther reports whether a current member other than memberID uses the email address.
func (s state) emailTakenByOther(memberID core.MemberIDString, email string) bool {
	normalized := core.NormalizeEmail(email)
	if normalized == "" {
		return false
	}

	for id, m := range s.members {
		if id != memberID && core.NormalizeEmail(m.email) == normalized {
			return true
		}
	}

	return false
}

// Decide implements the business logic to determine whether a member can be edited.
//
// Business Rules:
//
//	GIVEN: All current members
//	WHEN: EditMember command is received
//	THEN: MemberEdited event is generated
//	ERROR: not found if the member was never registered or was removed
//	ERROR: validation error if the name is blank or the email is malformed
//	ERROR: email already registered if another current member uses the same email
//	IDEMPOTENCY: If nothing changes, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history)
	memberID := command.MemberID.String()

	current, exists := s.members[memberID]
	if !exists {
		return core.ErrorDecision(core.NotFoundError("member", memberID))
	}

	edited := member{
		name:  strings.TrimSpace(command.Name),
		email: strings.TrimSpace(command.Email),
		phone: strings.TrimSpace(command.Phone),
	}

	if err := core.ValidateMember(edited.name, edited.email); err != nil {
		return core.ErrorDecision(err)
	}

	if edited == current {
		return core.IdempotentDecision()
	}

	if s.emailTakenByOther(memberID, edited.email) {
		return core.ErrorDecision(fmt.Errorf("%w: %s", core.ErrDuplicateEmail, edited.email))
	}

	return core.SuccessDecision(
		core.BuildMemberEdited(command.MemberID, edited.name, edited.email, edited.phone, command.OccurredAt),
	)
}

// project builds the current state by replaying all events from the history.
func project(history core.DomainEvents) state {
	s := state{members: make(map[core.MemberIDString]member)}

	for _, event := range history {
		switch e := event.(type) {
		case core.MemberRegistered:
			s.members[e.MemberID] = member{name: e.Name, email: e.Email, phone: e.Phone}

		case core.MemberEdited:
			if _, ok := s.members[e.MemberID]; ok {
				s.members[e.MemberID] = member{name: e.Name, email: e.Email, phone: e.Phone}
			}

		case core.MemberRemoved:
			delete(s.members, e.MemberID)
		}
	}

	return s
}

// BuildEventFilter creates the filter for querying the events of all members.
func BuildEventFilter() eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.MemberRegisteredEventType,
			core.MemberEditedEventType,
			core.MemberRemovedEventType,
		).
		Finalize()
}
