package core

// IsOverdue reports whether an allocation is overdue on the given day:
// it is not returned and its end date lies strictly before today.
// It depends on the wall clock and must be evaluated on every read, never stored.
func IsOverdue(returned bool, endDate Date, today Date) bool {
	return !returned && endDate.Before(today)
}
