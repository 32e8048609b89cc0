package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hablemosbien/bookforge/internal/config"
	"github.com/hablemosbien/bookforge/internal/home"
	"github.com/hablemosbien/bookforge/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Bookforge server",
	Long: `Start the Bookforge HTTP server.

The server accepts generation requests, runs the pipeline in the
background, and serves the finished .docx for download.

Examples:
  bookforge serve                    # Start on default port 8080
  bookforge serve --port 3000        # Start on custom port
  bookforge serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Set up logger
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))

		// Get home directory
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		cm, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}

		srv, err := server.New(server.Config{
			Host:          serveHost,
			Port:          servePort,
			ConfigManager: cm,
			Home:          h,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}
