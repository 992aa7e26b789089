package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/devstefancho/claude-hook-logger/internal/adapters/otel"
	"github.com/devstefancho/claude-hook-logger/internal/domain"
	"github.com/devstefancho/claude-hook-logger/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web dashboard and JSON API",
	Long: `Start the local web dashboard and JSON API. Every request re-reads the
selected log file.

With HOOKLOG_OTEL_ENABLED=true, the summary of the current log is also
exported as OTLP gauges to HOOKLOG_OTEL_ENDPOINT.

Examples:
  hooklog serve              # Start on default port 7777
  hooklog serve --port 3000  # Start on port 3000`,
	RunE: runServe,
}

var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default $HOOKLOG_PORT or 7777)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := app.Config
	if servePort != 0 {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exporter, err := otel.New(ctx, otel.Config{
		Endpoint: cfg.OTelEndpoint,
		Enabled:  cfg.OTelEnabled,
		Insecure: cfg.OTelInsecure,
	})
	if err != nil {
		return fmt.Errorf("failed to start metrics exporter: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := exporter.Close(closeCtx); err != nil {
			app.Logger.Error().Err(err).Msg("metrics exporter shutdown failed")
		}
	}()

	if err := exporter.Register(func(ctx context.Context) (domain.Summary, error) {
		return app.Queries.Summary(ctx, "")
	}); err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}
	if cfg.OTelEnabled {
		app.Logger.Info().Str("endpoint", cfg.OTelEndpoint).Msg("exporting summary metrics")
	}

	app.Logger.Info().Str("dir", cfg.Dir).Msg("serving hook event log")
	server := web.NewServer(cfg.Port, app.Queries, app.Tools, app.Logger, cfg.ShutdownTimeout)
	return server.Start(ctx)
}
