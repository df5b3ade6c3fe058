// Package addbook implements the Add Book use case.
//
// A book enters the catalogue with a name, an author and a number of copies.
// It follows the Command-Query-Decide-Append pattern with proper separation between
// infrastructure concerns (CommandHandler) and pure business logic (Decide function).
package addbook
