package registermember

import (
	"fmt"
	"strings"

	"github.com/AntonStoeckl/library-allocations/eventstore"
	"github.com/AntonStoeckl/library-allocations/library/core"
)

// state represents the current state projected from the event history.
type state struct {
	memberAlreadyRegistered bool
	emailsInUse             map[string]core.MemberIDString
}

// Decide implements the business logic to determine whether a member can be registered.
//
// Business Rules:
//
//	GIVEN: All current members
//	WHEN: RegisterMember command is received
//	THEN: MemberRegistered event is generated
//	ERROR: validation error if the name is blank or the email is malformed
//	ERROR: email already registered if another current member uses the same email (case-insensitive)
//	IDEMPOTENCY: If a member with this MemberID was already registered, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history, command.MemberID.String())

	if s.memberAlreadyRegistered {
		return core.IdempotentDecision()
	}

	name, email, phone := strings.TrimSpace(command.Name), strings.TrimSpace(command.Email), strings.TrimSpace(command.Phone)

	if err := core.ValidateMember(name, email); err != nil {
		return core.ErrorDecision(err)
	}

	if email != "" {
		if _, inUse := s.emailsInUse[core.NormalizeEmail(email)]; inUse {
			return core.ErrorDecision(fmt.Errorf("%w: %s", core.ErrDuplicateEmail, email))
		}
	}

	return core.SuccessDecision(
		core.BuildMemberRegistered(command.MemberID, name, email, phone, command.OccurredAt),
	)
}

// project builds the current state by replaying all events from the history.
func project(history core.DomainEvents, memberID string) state {
	s := state{emailsInUse: make(map[string]core.MemberIDString)}
	emailOf := make(map[core.MemberIDString]string)

	setEmail := func(id core.MemberIDString, email string) {
		if previous, ok := emailOf[id]; ok && s.emailsInUse[previous] == id {
			delete(s.emailsInUse, previous)
		}

		normalized := core.NormalizeEmail(email)
		emailOf[id] = normalized

		if normalized != "" {
			s.emailsInUse[normalized] = id
		}
	}

	for _, event := range history {
		switch e := event.(type) {
		case core.MemberRegistered:
			if e.MemberID == memberID {
				s.memberAlreadyRegistered = true
			}

			setEmail(e.MemberID, e.Email)

		case core.MemberEdited:
			setEmail(e.MemberID, e.Email)

		case core.MemberRemoved:
			setEmail(e.MemberID, "")
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
