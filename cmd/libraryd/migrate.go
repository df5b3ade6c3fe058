package main

import (
	"github.com/spf13/cobra"
)

const logMsgSchemaReady = "event store schema is up to date"

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the event store schema and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, closeStore, err := openEventStore(ctx, a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer closeStore()

			if err = store.CreateSchema(ctx); err != nil {
				return err
			}

			a.logger.Info(logMsgSchemaReady, logAttrStorage, a.cfg.Storage)

			return nil
		},
	}
}
