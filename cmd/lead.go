// ABOUTME: Lead-capture command for the brightwave CLI
// ABOUTME: Signs an email up for the newsletter / product updates

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/brightwave-hq/brightwave-cli/internal/api"
)

var (
	leadEmail   string
	leadName    string
	leadCompany string
	leadSource  string
)

var leadCmd = &cobra.Command{
	Use:   "subscribe",
	Short: "Subscribe to Brightwave updates",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		if exitCode := runLead(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(leadCmd)
	leadCmd.Flags().StringVar(&leadEmail, "email", "", "Email to subscribe")
	leadCmd.Flags().StringVar(&leadName, "name", "", "Your name (optional)")
	leadCmd.Flags().StringVar(&leadCompany, "company", "", "Company (optional)")
	leadCmd.Flags().StringVar(&leadSource, "source", "cli", "Where the signup came from")
}

// runLead executes the lead capture and returns an exit code
func runLead(ctx context.Context, w io.Writer) int {
	if leadEmail == "" {
		fmt.Fprintln(w, "Error: --email is required")
		return 2
	}

	client, err := buildClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	resp, err := client.CaptureLead(ctx, api.LeadRequest{
		Email:   leadEmail,
		Name:    leadName,
		Company: leadCompany,
		Source:  leadSource,
	})
	if err != nil {
		printFailure(w, err, "Unable to sign you up. Please try again.")
		return exitCodeFor(err)
	}

	if jsonOutput {
		json.NewEncoder(w).Encode(resp)
	} else if resp.Message != "" {
		fmt.Fprintln(w, resp.Message)
	} else {
		fmt.Fprintln(w, "Thanks for subscribing!")
	}
	return 0
}
