package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-allocations/config"
)

const (
	flagHTTPAddr        = "http-addr"
	flagStorage         = "storage"
	flagSQLitePath      = "sqlite-path"
	flagPostgresDSN     = "postgres-dsn"
	flagPostgresAdapter = "postgres-adapter"
	flagEventsTable     = "events-table"
	flagLogLevel        = "log-level"
	flagLogFormat       = "log-format"
)

// app carries what every subcommand needs after the configuration was loaded.
type app struct {
	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "libraryd",
		Short: "Library allocation service",
		Long: `libraryd manages books, members and the allocation of book copies to members.

Configuration is read from LIBRARY_* environment variables, flags override them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String(flagHTTPAddr, "", "listen address of the HTTP server (LIBRARY_HTTP_ADDR)")
	flags.String(flagStorage, "", "storage engine: sqlite or postgres (LIBRARY_STORAGE)")
	flags.String(flagSQLitePath, "", "path of the SQLite database file (LIBRARY_SQLITE_PATH)")
	flags.String(flagPostgresDSN, "", "PostgreSQL connection string (LIBRARY_POSTGRES_DSN)")
	flags.String(flagPostgresAdapter, "", "pgx.pool, sql.db or sqlx.db (LIBRARY_POSTGRES_ADAPTER)")
	flags.String(flagEventsTable, "", "name of the events table (LIBRARY_EVENTS_TABLE)")
	flags.String(flagLogLevel, "", "debug, info, warn or error (LIBRARY_LOG_LEVEL)")
	flags.String(flagLogFormat, "", "json or text (LIBRARY_LOG_FORMAT)")

	rootCmd.AddCommand(newServeCmd(a), newMigrateCmd(a), newSeedCmd(a))

	return rootCmd
}

// load reads the environment, applies the flags that were set and builds the logger.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Parse()
	if err != nil {
		return err
	}

	overrides := map[string]*string{
		flagHTTPAddr:        &cfg.HTTPAddr,
		flagStorage:         &cfg.Storage,
		flagSQLitePath:      &cfg.SQLitePath,
		flagPostgresDSN:     &cfg.PostgresDSN,
		flagPostgresAdapter: &cfg.PostgresAdapter,
		flagEventsTable:     &cfg.EventsTable,
		flagLogLevel:        &cfg.LogLevel,
		flagLogFormat:       &cfg.LogFormat,
	}

	for name, target := range overrides {
		if !cmd.Flags().Changed(name) {
			continue
		}

		if *target, err = cmd.Flags().GetString(name); err != nil {
			return err
		}
	}

	if err = cfg.Validate(); err != nil {
		return err
	}

	logger, err := config.NewLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}

	a.cfg, a.logger = cfg, logger

	return nil
}
