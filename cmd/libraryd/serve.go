package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/AntonStoeckl/library-allocations/library/api/httpapi"
	"github.com/AntonStoeckl/library-allocations/library/shell"
)

const (
	logMsgServerListening = "http server listening"
	logMsgServerStopping  = "http server shutting down"
	logMsgServerStopped   = "http server stopped"
	logAttrAddr           = "addr"
	logAttrStorage        = "storage"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, creating the schema first if needed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	store, closeStore, err := openEventStore(ctx, a.cfg, a.logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if err = store.CreateSchema(ctx); err != nil {
		return err
	}

	api := httpapi.NewAPI(
		store,
		httpapi.WithLogger(a.logger),
		httpapi.WithCORSOrigins(a.cfg.CORSOrigins...),
		httpapi.WithRequestTimeout(a.cfg.RequestTimeout),
		httpapi.WithRetryOptions(shell.WithMaxAttempts(a.cfg.RetryMaxAttempts)),
	)

	server := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: a.cfg.ReadHeaderTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info(logMsgServerListening, logAttrAddr, a.cfg.HTTPAddr, logAttrStorage, a.cfg.Storage)

		if serveErr := server.ListenAndServe(); !errors.Is(serveErr, http.ErrServerClosed) {
			return serveErr
		}

		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info(logMsgServerStopping)

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.ShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err = g.Wait(); err != nil {
		return err
	}

	a.logger.Info(logMsgServerStopped)

	return nil
}
