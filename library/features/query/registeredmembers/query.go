package registeredmembers

import (
	"github.com/google/uuid"
)

const (
	queryType = "RegisteredMembers"
)

// Query represents the intent to list the current members.
// A non-nil MemberID narrows the result to that member.
type Query struct {
	MemberID uuid.UUID
}

// BuildQuery creates a Query for all members.
func BuildQuery() Query {
	return Query{}
}

// BuildQueryForMember creates a Query for a single member.
func BuildQueryForMember(memberID uuid.UUID) Query {
	return Query{MemberID: memberID}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

func (q Query) isForSingleMember() bool {
	return q.MemberID != uuid.Nil
}
