package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/huangsam/relicdb/internal/api"
	"github.com/spf13/cobra"
)

// serveCmd exposes the database over HTTP.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the weight database over a read-only HTTP API",
	Long: `Start an HTTP server exposing the weight database.

Routes:
  GET /api/weights            all records (filter with ?ids=1102,1205)
  GET /api/weights/{id}       one record
  GET /api/weights/{id}/rows  one record as flat rows
  GET /health                 liveness probe

The database file is read on every request, so a concurrent update is picked
up without a restart.

Examples:
  relicdb serve --addr 127.0.0.1:8080`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := &http.Server{
			Addr:              cfg.Addr,
			Handler:           api.New(cfg.DBPath),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			fmt.Printf("🚀 relicdb API listening on http://%s\n", cfg.Addr)
			fmt.Printf("📦 Database: %s\n", cfg.DBPath)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
