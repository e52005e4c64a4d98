// ABOUTME: Forgot-password command for the brightwave CLI
// ABOUTME: Requests a password reset email for an account

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var forgotEmail string

var forgotCmd = &cobra.Command{
	Use:   "forgot-password",
	Short: "Request a password reset",
	Long:  `Ask the site to send a password reset link to the given email. Complete the reset with "brightwave reset-password".`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		if exitCode := runForgot(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(forgotCmd)
	forgotCmd.Flags().StringVar(&forgotEmail, "email", "", "Account email")
}

// runForgot executes the reset request and returns an exit code
func runForgot(ctx context.Context, w io.Writer) int {
	if forgotEmail == "" {
		fmt.Fprintln(w, "Error: --email is required")
		return 2
	}

	client, err := buildClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	resp, err := client.ForgotPassword(ctx, forgotEmail)
	if err != nil {
		printFailure(w, err, "Unable to request a reset. Please try again.")
		return exitCodeFor(err)
	}

	if jsonOutput {
		json.NewEncoder(w).Encode(resp)
	} else if resp.Message != "" {
		fmt.Fprintln(w, resp.Message)
	} else {
		fmt.Fprintln(w, "If that email exists, a reset link is on its way.")
	}
	return 0
}
