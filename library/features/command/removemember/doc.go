// Package removemember implements the Remove Member use case.
//
// Members holding allocated copies cannot be removed. Their closed allocations stay in the history.
package removemember
