// Package allocatebookcopy implements the Allocate Book Copy use case.
//
// A copy of a catalogued book is allocated to a registered member for a period of days.
// It follows the Command-Query-Decide-Append pattern with proper separation between
// infrastructure concerns (CommandHandler) and pure business logic (Decide function).
//
// The consistency boundary covers all allocations and returns of the book plus the lifecycle
// of the member. Two concurrent allocations of the last copy therefore touch the same boundary:
// one append wins, the other is retried on fresh history and sees that no copy is left.
package allocatebookcopy
