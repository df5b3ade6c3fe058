// Package removebook implements the Remove Book use case.
//
// A book leaves the catalogue only when none of its copies is allocated.
// Its allocations stay in the history.
package removebook
