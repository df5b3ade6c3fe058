package core

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed input, like a non-numeric copy count or an end date before the start date.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks a book, member or allocation that does not exist (or was removed).
	ErrNotFound = errors.New("not found")

	// ErrCapacityExceeded is returned when all copies of a book are allocated.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrAlreadyReturned is returned when an allocation is returned a second time.
	ErrAlreadyReturned = errors.New("allocation already returned")

	// ErrCopiesBelowAllocated is returned when total copies would drop below the currently allocated copies.
	ErrCopiesBelowAllocated = errors.New("total copies below allocated copies")

	// ErrHasOpenAllocations is returned when a book or member with open allocations should be removed.
	ErrHasOpenAllocations = errors.New("open allocations exist")

	// ErrDuplicateEmail is returned when another current member already uses the email address.
	ErrDuplicateEmail = errors.New("email already registered")
)

// ValidationError builds an error wrapping ErrValidation.
func ValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundError builds an error wrapping ErrNotFound for the given kind of entity.
func NotFoundError(kind string, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
}

// IsBusinessError reports whether err is one of the domain's rejections, as opposed to a technical failure.
func IsBusinessError(err error) bool {
	for _, target := range []error{
		ErrValidation,
		ErrNotFound,
		ErrCapacityExceeded,
		ErrAlreadyReturned,
		ErrCopiesBelowAllocated,
		ErrHasOpenAllocations,
		ErrDuplicateEmail,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
