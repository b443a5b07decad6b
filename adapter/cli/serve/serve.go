// Package serve implements the `triage serve` command.
package serve

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/triage/adapter/api"
	"github.com/felixgeelhaar/triage/adapter/cli"
	"github.com/felixgeelhaar/triage/internal/triage/application/services"
	"github.com/felixgeelhaar/triage/pkg/config"
)

var addr string

// Cmd is the serve command.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Triage HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := cli.Logger()

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if addr != "" {
			cfg.HTTPAddr = addr
		}

		handler := api.NewTriageHandler(api.TriageHandlerConfig{
			Analyzer:        services.NewAnalyzer(logger),
			Logger:          logger,
			DefaultStrategy: cfg.DefaultStrategy,
			DefaultCount:    cfg.SuggestionCount,
		})

		server := api.NewServer(api.ServerConfig{
			Addr:         cfg.HTTPAddr,
			ReadTimeout:  cfg.HTTPReadTimeout,
			WriteTimeout: cfg.HTTPWriteTimeout,
			IdleTimeout:  cfg.HTTPIdleTimeout,
		}, handler, logger)

		errCh := make(chan error, 1)
		go func() {
			if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return err
		case <-cmd.Context().Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	},
}

func init() {
	Cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides TRIAGE_HTTP_ADDR)")
}
