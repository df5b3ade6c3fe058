package booksincatalogue

import (
	"github.com/google/uuid"
)

const (
	queryType = "BooksInCatalogue"
)

// Query represents the intent to list the books in the catalogue.
// A non-nil BookID narrows the result to that book.
type Query struct {
	BookID uuid.UUID
}

// BuildQuery creates a Query for all books.
func BuildQuery() Query {
	return Query{}
}

// BuildQueryForBook creates a Query for a single book.
func BuildQueryForBook(bookID uuid.UUID) Query {
	return Query{BookID: bookID}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

func (q Query) isForSingleBook() bool {
	return q.BookID != uuid.Nil
}
