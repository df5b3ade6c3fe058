// Package config loads the service configuration from LIBRARY_* environment variables
// and builds the logger and the PostgreSQL connections it describes.
package config
