// Package editmember implements the Edit Member use case.
package editmember
