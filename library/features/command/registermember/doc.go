// Package registermember implements the Register Member use case.
//
// The decision needs the complete member population because email addresses are unique
// among current members, so the consistency boundary spans all member events.
package registermember
