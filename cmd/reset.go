// ABOUTME: Reset-password command for the brightwave CLI
// ABOUTME: Completes a password reset using the emailed token

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
	resetEmail    string
	resetToken    string
	resetPassword string
	resetConfirm  string
)

var resetCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Complete a password reset",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		if exitCode := runReset(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().StringVar(&resetEmail, "email", "", "Account email")
	resetCmd.Flags().StringVar(&resetToken, "token", "", "Reset token from the email")
	resetCmd.Flags().StringVar(&resetPassword, "password", "", "New password")
	resetCmd.Flags().StringVar(&resetConfirm, "password-confirmation", "", "Repeat the new password")
}

// runReset executes the reset and returns an exit code
func runReset(ctx context.Context, w io.Writer) int {
	if resetEmail == "" || resetToken == "" || resetPassword == "" {
		fmt.Fprintln(w, "Error: --email, --token and --password are required")
		return 2
	}

	client, err := buildClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	resp, err := client.ResetPassword(ctx, api.ResetPasswordRequest{
		Email:                resetEmail,
		Token:                resetToken,
		Password:             resetPassword,
		PasswordConfirmation: resetConfirm,
	})
	if err != nil {
		printFailure(w, err, "Unable to reset your password. Please try again.")
		return exitCodeFor(err)
	}

	if jsonOutput {
		json.NewEncoder(w).Encode(resp)
	} else if resp.Message != "" {
		fmt.Fprintln(w, resp.Message)
	} else {
		fmt.Fprintln(w, "Password updated. You can now log in.")
	}
	return 0
}
