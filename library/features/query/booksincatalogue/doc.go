// Package booksincatalogue implements the Books In Catalogue query:
// all current books, or a single one, with their allocated copies derived from the open allocations.
package booksincatalogue
