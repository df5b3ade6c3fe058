package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"

	AdapterPGXPool = "pgx.pool"
	AdapterSQLDB   = "sql.db"
	AdapterSQLX    = "sqlx.db"

	LogFormatJSON = "json"
	LogFormatText = "text"
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config is the configuration of the libraryd service.
type Config struct {
	HTTPAddr          string        `env:"LIBRARY_HTTP_ADDR" envDefault:":8000"`
	Storage           string        `env:"LIBRARY_STORAGE" envDefault:"sqlite"`
	SQLitePath        string        `env:"LIBRARY_SQLITE_PATH" envDefault:"data/library.db"`
	PostgresDSN       string        `env:"LIBRARY_POSTGRES_DSN"`
	PostgresAdapter   string        `env:"LIBRARY_POSTGRES_ADAPTER" envDefault:"pgx.pool"`
	EventsTable       string        `env:"LIBRARY_EVENTS_TABLE" envDefault:"events"`
	LogLevel          string        `env:"LIBRARY_LOG_LEVEL" envDefault:"info"`
	LogFormat         string        `env:"LIBRARY_LOG_FORMAT" envDefault:"json"`
	CORSOrigins       []string      `env:"LIBRARY_CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost,http://localhost:3000,http://localhost:5173,http://localhost:8000"`
	ReadHeaderTimeout time.Duration `env:"LIBRARY_READ_HEADER_TIMEOUT" envDefault:"5s"`
	RequestTimeout    time.Duration `env:"LIBRARY_REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout   time.Duration `env:"LIBRARY_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RetryMaxAttempts  int           `env:"LIBRARY_RETRY_MAX_ATTEMPTS" envDefault:"6"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	cfg, err := Parse()
	if err != nil {
		return Config{}, err
	}

	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Parse reads the environment into a Config without validating it, so that callers can override values first.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// Validate checks the enumerations and the settings that depend on each other.
func (cfg Config) Validate() error {
	var errs []error

	switch cfg.Storage {
	case StorageSQLite:
		if strings.TrimSpace(cfg.SQLitePath) == "" {
			errs = append(errs, fmt.Errorf("LIBRARY_SQLITE_PATH must be set for storage %q", StorageSQLite))
		}
	case StoragePostgres:
		if strings.TrimSpace(cfg.PostgresDSN) == "" {
			errs = append(errs, fmt.Errorf("LIBRARY_POSTGRES_DSN must be set for storage %q", StoragePostgres))
		}

		if !slices.Contains([]string{AdapterPGXPool, AdapterSQLDB, AdapterSQLX}, cfg.PostgresAdapter) {
			errs = append(errs, fmt.Errorf("unknown postgres adapter %q", cfg.PostgresAdapter))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage %q", cfg.Storage))
	}

	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		errs = append(errs, err)
	}

	if cfg.LogFormat != LogFormatJSON && cfg.LogFormat != LogFormatText {
		errs = append(errs, fmt.Errorf("unknown log format %q", cfg.LogFormat))
	}

	if cfg.RetryMaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("LIBRARY_RETRY_MAX_ATTEMPTS must be at least 1"))
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}

	return nil
}
