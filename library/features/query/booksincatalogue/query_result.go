package booksincatalogue

import (
	"time"

	"github.com/AntonStoeckl/library-allocations/library/core"
)

// BookInfo represents a book in the catalogue.
type BookInfo struct {
	BookID          core.BookIDString
	Name            string
	Author          string
	TotalCopies     int
	AllocatedCopies int
	AddedAt         time.Time
}

// AvailableCopies is the capacity of the book: total copies minus the allocated copies.
func (b BookInfo) AvailableCopies() int {
	return b.TotalCopies - b.AllocatedCopies
}

// BooksInCatalogue represents the query result, ordered by the time the books were added.
type BooksInCatalogue struct {
	Books          []BookInfo
	Count          int
	SequenceNumber uint
}

// GetSequenceNumber returns the sequence number of the last event the projection was built from.
func (r BooksInCatalogue) GetSequenceNumber() uint {
	return r.SequenceNumber
}
