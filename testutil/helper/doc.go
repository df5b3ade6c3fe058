// Package helper provides test helpers shared by the feature and API tests:
// a throwaway SQLite event store per test and a slog handler spy to assert on log output.
package helper
