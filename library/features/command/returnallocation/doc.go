// Package returnallocation implements the Return Allocation use case.
//
// Returning closes an allocation and frees its copy. The decision is made on the allocation's
// own events, so a repeated or concurrent return can never free the same copy twice.
package returnallocation
