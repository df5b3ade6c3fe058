package core

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateBook checks the user supplied fields of a book.
func ValidateBook(name string, author string, totalCopies int) error {
	if strings.TrimSpace(name) == "" {
		return ValidationError("book name must not be empty")
	}

	if strings.TrimSpace(author) == "" {
		return ValidationError("book author must not be empty")
	}

	if totalCopies < 0 {
		return ValidationError("total copies must not be negative")
	}

	return nil
}

// ValidateMember checks the user supplied fields of a member. The email address is optional.
func ValidateMember(name string, email string) error {
	if strings.TrimSpace(name) == "" {
		return ValidationError("member name must not be empty")
	}

	if email != "" && !emailPattern.MatchString(email) {
		return ValidationError("email %q is not a valid address", email)
	}

	return nil
}

// ValidateAllocationPeriod checks that the period of an allocation does not end before it starts.
func ValidateAllocationPeriod(startDate Date, endDate Date) error {
	if endDate.Before(startDate) {
		return ValidationError("end date %s is before start date %s", endDate, startDate)
	}

	return nil
}

// NormalizeEmail is the form in which email addresses are compared for uniqueness.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
