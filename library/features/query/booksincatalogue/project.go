package booksincatalogue

import (
	"github.com/AntonStoeckl/library-allocations/eventstore"
	"github.com/AntonStoeckl/library-allocations/library/core"
)

// ProjectBooksInCatalogue implements the query logic to determine the books in the catalogue.
// This is a pure function with no side effects.
//
// Query Logic:
//
//	GIVEN: The lifecycle events of books and their allocations
//	WHEN: BooksInCatalogue query is executed
//	THEN: BooksInCatalogue struct is returned with books in the order they were added
//	INCLUDES: allocated copies = allocations of the book which are not returned
//	EXCLUDES: books that were removed
func ProjectBooksInCatalogue(history core.DomainEvents, maxSequenceNumber uint) BooksInCatalogue {
	books := make(map[core.BookIDString]*BookInfo)
	order := make([]core.BookIDString, 0)
	bookOfOpenAllocation := make(map[core.AllocationIDString]core.BookIDString)

	for _, event := range history {
		switch e := event.(type) {
		case core.BookAdded:
			if _, exists := books[e.BookID]; !exists {
				order = append(order, e.BookID)
			}

			books[e.BookID] = &BookInfo{
				BookID:      e.BookID,
				Name:        e.Name,
				Author:      e.Author,
				TotalCopies: e.TotalCopies,
				AddedAt:     e.OccurredAt,
			}

		case core.BookEdited:
			if book, exists := books[e.BookID]; exists {
				book.Name, book.Author, book.TotalCopies = e.Name, e.Author, e.TotalCopies
			}

		case core.BookRemoved:
			delete(books, e.BookID)

		case core.BookCopyAllocated:
			bookOfOpenAllocation[e.AllocationID] = e.BookID

		case core.AllocationReturned:
			delete(bookOfOpenAllocation, e.AllocationID)
		}
	}

	for _, bookID := range bookOfOpenAllocation {
		if book, exists := books[bookID]; exists {
			book.AllocatedCopies++
		}
	}

	result := make([]BookInfo, 0, len(books))
	for _, bookID := range order {
		if book, exists := books[bookID]; exists {
			result = append(result, *book)
		}
	}

	return BooksInCatalogue{
		Books:          result,
		Count:          len(result),
		SequenceNumber: maxSequenceNumber,
	}
}

// BuildEventFilter creates the filter for querying the events of all books, or of a single book.
func BuildEventFilter(query Query) eventstore.Filter {
	eventTypes := append(core.BookEventTypes(), core.AllocationEventTypes()...)

	if !query.isForSingleBook() {
		return eventstore.BuildEventFilter().
			Matching().
			AnyEventTypeOf(eventTypes[0], eventTypes[1:]...).
			Finalize()
	}

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(eventTypes[0], eventTypes[1:]...).
		AndAnyPredicateOf(eventstore.P(core.BookIDPredicateKey, query.BookID.String())).
		Finalize()
}
