package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hablemosbien/bookforge/internal/api"
	"github.com/hablemosbien/bookforge/internal/server/endpoints"
)

var serverURL string

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

var waitTimeout time.Duration

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait until the server answers health checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client := api.NewClient(getServerURL())
		if err := client.WaitReady(ctx, waitTimeout); err != nil {
			return fmt.Errorf("server not ready: %w", err)
		}
		fmt.Println("server is ready")
		return nil
	},
}

func init() {
	// Build the api command tree from the endpoint registry so HTTP
	// routes and CLI commands cannot drift apart.
	reg := api.NewRegistry()
	for _, ep := range endpoints.All() {
		reg.Register(ep)
	}
	apiCmd := reg.BuildCommands(getServerURL)
	apiCmd.Long = `API commands call the running Bookforge server via HTTP.

These commands require a running server (bookforge serve).
Use --server to specify a custom server URL.

Examples:
  bookforge api health                  # Check server health
  bookforge api generate --topic ...    # Start a generation run
  bookforge api get <book_id>           # Inspect a run
  bookforge api download <book_id>      # Fetch the finished .docx`

	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8080", "Server URL",
	)

	waitCmd.Flags().DurationVar(&waitTimeout, "timeout", 30*time.Second, "How long to wait")
	apiCmd.AddCommand(waitCmd)

	rootCmd.AddCommand(apiCmd)
}
