package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/monitor/internal/httpserver"
	"github.com/example/monitor/internal/httpserver/deps"
	"github.com/example/monitor/internal/logger"
	"github.com/example/monitor/internal/version"
	"github.com/example/monitor/internal/wire"
)

// ServeCmd returns the serve command.
func ServeCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the service registry and status API over HTTP, including the
websocket status stream. Stops gracefully on SIGINT/SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := wire.Default()
			defer c.Close()
			defer func() { _ = c.Logger.Sync() }()

			addr := c.Config.ListenAddr
			if listen != "" {
				addr = listen
			}

			server := httpserver.New(addr, c.Logger, deps.Deps{
				Logger:         c.Logger,
				StartTime:      time.Now(),
				Version:        version.String(),
				Commit:         version.Commit,
				BuildTime:      version.BuildTime,
				Service:        c.Service,
				Ready:          c.Ready,
				RequestTimeout: c.Config.RequestTimeout,
			})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				if err := server.Start(); err != nil {
					errCh <- fmt.Errorf("http server error: %w", err)
				}
			}()

			select {
			case <-ctx.Done():
				c.Logger.Info("shutting down gracefully")
			case err := <-errCh:
				return err
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), c.Config.ShutdownTimeout)
			defer cancel()
			if err := server.Stop(shutdownCtx); err != nil {
				c.Logger.Error("graceful shutdown failed", logger.Error(err))
				return err
			}
			c.Logger.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (overrides config listen_addr)")
	return cmd
}
