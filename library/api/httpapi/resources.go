package httpapi

import (
	"time"

	"github.com/AntonStoeckl/library-allocations/library/core"
	"github.com/AntonStoeckl/library-allocations/library/features/query/allocationhistory"
	"github.com/AntonStoeckl/library-allocations/library/features/query/allocations"
	"github.com/AntonStoeckl/library-allocations/library/features/query/booksincatalogue"
	"github.com/AntonStoeckl/library-allocations/library/features/query/registeredmembers"
)

/***** requests *****/

// bookRequest is the body of POST and PUT on books. allocated_copies is derived, so it is ignored if sent.
type bookRequest struct {
	Name        string    `json:"name"`
	Author      string    `json:"author"`
	TotalCopies copyCount `json:"total_copies"`
}

func (req bookRequest) totalCopies() (int, error) {
	if !req.TotalCopies.set {
		return 0, core.ValidationError("total_copies is required")
	}

	return req.TotalCopies.value, nil
}

type memberRequest struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

func (req memberRequest) email() string {
	return valueOrEmpty(req.Email)
}

func (req memberRequest) phone() string {
	return valueOrEmpty(req.Phone)
}

type allocationRequest struct {
	BookID    string `json:"book_id"`
	MemberID  string `json:"member_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func valueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

/***** responses *****/

type bookResource struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Author          string `json:"author"`
	TotalCopies     int    `json:"total_copies"`
	AllocatedCopies int    `json:"allocated_copies"`
}

func bookResourceFrom(book booksincatalogue.BookInfo) bookResource {
	return bookResource{
		ID:              book.BookID,
		Name:            book.Name,
		Author:          book.Author,
		TotalCopies:     book.TotalCopies,
		AllocatedCopies: book.AllocatedCopies,
	}
}

type memberResource struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func memberResourceFrom(member registeredmembers.MemberInfo) memberResource {
	return memberResource{
		ID:    member.MemberID,
		Name:  member.Name,
		Email: member.Email,
		Phone: member.Phone,
	}
}

type allocationResource struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	MemberID  string    `json:"member_id"`
	StartDate core.Date `json:"start_date"`
	EndDate   core.Date `json:"end_date"`
	Returned  bool      `json:"returned"`
	Overdue   bool      `json:"overdue"`
}

func allocationResourceFrom(allocation allocations.AllocationInfo) allocationResource {
	return allocationResource{
		ID:        allocation.AllocationID,
		BookID:    allocation.BookID,
		MemberID:  allocation.MemberID,
		StartDate: allocation.StartDate,
		EndDate:   allocation.EndDate,
		Returned:  allocation.Returned,
		Overdue:   allocation.Overdue,
	}
}

// historyResource is an allocation with the names of book and member and the time of the return.
type historyResource struct {
	allocationResource
	BookName   string     `json:"book_name"`
	MemberName string     `json:"member_name"`
	ReturnedAt *time.Time `json:"returned_at"`
}

func historyResourceFrom(entry allocationhistory.Entry) historyResource {
	return historyResource{
		allocationResource: allocationResource{
			ID:        entry.AllocationID,
			BookID:    entry.BookID,
			MemberID:  entry.MemberID,
			StartDate: entry.StartDate,
			EndDate:   entry.EndDate,
			Returned:  entry.Returned,
			Overdue:   entry.Overdue,
		},
		BookName:   entry.BookName,
		MemberName: entry.MemberName,
		ReturnedAt: entry.ReturnedAt,
	}
}

func mapSlice[S any, R any](in []S, mapper func(S) R) []R {
	out := make([]R, 0, len(in))
	for _, item := range in {
		out = append(out, mapper(item))
	}

	return out
}
