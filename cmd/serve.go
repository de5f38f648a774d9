package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gowall/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the wall calculator over HTTP",
	Long: `Start the HTTP API.

Endpoints:
  POST /api/wall/calc    - JSON {"height", "width", "depth"} to spec and materials
  POST /api/wall/report  - materials list as text, or PDF with Accept: application/pdf
  GET  /healthz          - liveness

Requests under /api are rate limited per client address.
The server shuts down gracefully on SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		sc := cfg.Server
		if serveAddr != "" {
			sc.Addr = serveAddr
		}
		return server.Run(ctx, sc, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
