// ABOUTME: Root command for the brightwave CLI
// ABOUTME: Handles global flags, configuration, and shared command helpers

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/brightwave-hq/brightwave-cli/internal/api"
	"github.com/brightwave-hq/brightwave-cli/internal/config"
	"github.com/brightwave-hq/brightwave-cli/internal/feedback"
	"github.com/brightwave-hq/brightwave-cli/internal/logger"
	"github.com/brightwave-hq/brightwave-cli/internal/session"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "brightwave",
	Short: "CLI for the Brightwave site",
	Long: `brightwave is the command-line companion of the Brightwave site.

It manages your session (login, logout, sign-up) and submits the site's
forms (contact, password reset, newsletter) from the terminal or from
scripts.

Exit codes:
  0 - Success
  1 - Request rejected by the server
  2 - Error (connectivity, configuration, invalid input)

Environment Variables:
  BRIGHTWAVE_API_URL          Site API base URL (default: https://api.brightwave.io)
  BRIGHTWAVE_REQUEST_TIMEOUT  Request timeout in seconds (default: 30)
  BRIGHTWAVE_CONFIG_DIR       Where the session token is stored (default: XDG config dir)`,
}

// Execute runs the root command
func Execute() error {
	logger.Init(os.Stderr)
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Site API base URL (overrides BRIGHTWAVE_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// signalContext returns a context canceled by SIGINT/SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// buildClient constructs the API client from config and flags
func buildClient() (*api.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	url := cfg.APIURL
	if apiURL != "" {
		url = apiURL
	}
	return api.NewWithTimeout(url, time.Duration(cfg.RequestTimeout)*time.Second), nil
}

// buildController constructs the session controller with durable token storage
func buildController() (*session.Controller, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	url := cfg.APIURL
	if apiURL != "" {
		url = apiURL
	}
	dir := cfg.ConfigDir
	if dir == "" {
		dir = session.DefaultConfigDir()
	}
	client := api.NewWithTimeout(url, time.Duration(cfg.RequestTimeout)*time.Second)
	return session.NewController(client, session.NewStore(), session.NewTokenFile(dir)), nil
}

// printFailure renders a failed request through the shared extraction
// algorithm, one message per line (or a JSON errors array with --json).
func printFailure(w io.Writer, err error, fallback string) {
	msgs := feedback.Messages(err, fallback)
	if jsonOutput {
		json.NewEncoder(w).Encode(struct {
			Errors []string `json:"errors"`
		}{Errors: msgs})
		return
	}
	for _, msg := range msgs {
		fmt.Fprintf(w, "Error: %s\n", msg)
	}
}

// exitCodeFor maps a failed request to an exit code: rejections that came
// with an HTTP status are 1, transport-level failures are 2.
func exitCodeFor(err error) int {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Status != 0 {
		return 1
	}
	return 2
}
