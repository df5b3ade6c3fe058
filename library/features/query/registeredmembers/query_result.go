package registeredmembers

import (
	"time"

	"github.com/AntonStoeckl/library-allocations/library/core"
)

// MemberInfo represents a current member.
type MemberInfo struct {
	MemberID     core.MemberIDString
	Name         string
	Email        string
	Phone        string
	RegisteredAt time.Time
}

// RegisteredMembers represents the query result, ordered by registration.
type RegisteredMembers struct {
	Members        []MemberInfo
	Count          int
	SequenceNumber uint
}

// GetSequenceNumber returns the sequence number of the last event the projection was built from.
func (r RegisteredMembers) GetSequenceNumber() uint {
	return r.SequenceNumber
}
