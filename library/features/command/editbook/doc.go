// Package editbook implements the Edit Book use case.
//
// Name, author and total copies of a catalogued book can change at any time,
// but the total copies can never drop below the copies that are currently allocated.
// The allocated copies are always derived from the allocations and never taken from the caller.
package editbook
