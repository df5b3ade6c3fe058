// Package registeredmembers implements the Registered Members query.
package registeredmembers
