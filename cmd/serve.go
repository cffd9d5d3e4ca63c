package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/schedview/internal/server"
	"github.com/ziadkadry99/schedview/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the live schedule web server",
	Long: `Starts an HTTP server that renders pages on request, exposes the page
model as JSON under /api, pushes the clock over a websocket at /ws/clock
and reports Prometheus metrics at /metrics.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (defaults to server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	l, err := newLoader(cfg)
	if err != nil {
		return err
	}

	port, _ := cmd.Flags().GetInt("port")
	if port == 0 {
		port = cfg.Server.Port
	}

	ctx := cmd.Context()
	load := tablesLoader(cfg, l)
	initial, _ := load(ctx, cfg.Language)
	live, err := site.NewLive(cfg.Language, initial, load, newRenderer(cfg))
	if err != nil {
		return err
	}
	live.ClockInterval = cfg.ClockInterval()

	srv := server.New(server.Config{
		Port:     port,
		AllowAll: cfg.Server.AllowAll,
	})
	live.RegisterRoutes(srv.Timed(), srv.Router())

	// Graceful shutdown.
	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	fmt.Fprintf(os.Stderr, "schedview server v%s starting on port %d\n", Version, port)
	fmt.Fprintf(os.Stderr, "  Source: %s\n", l.Source())
	fmt.Fprintf(os.Stderr, "  Language: %s\n", cfg.Language)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
