// ABOUTME: Login command for the brightwave CLI
// ABOUTME: Authenticates and persists the session token for later commands

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to Brightwave",
	Long:  `Log in with your email and password. The session token is stored in the config directory and reused by later commands.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		if exitCode := runLogin(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
}

// runLogin executes the login and returns an exit code
func runLogin(ctx context.Context, w io.Writer) int {
	if loginEmail == "" || loginPassword == "" {
		fmt.Fprintln(w, "Error: --email and --password are required")
		return 2
	}

	ctrl, err := buildController()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	user, err := ctrl.Login(ctx, loginEmail, loginPassword)
	if err != nil {
		printFailure(w, err, "Unable to log in. Please try again.")
		return exitCodeFor(err)
	}

	if jsonOutput {
		json.NewEncoder(w).Encode(user)
	} else {
		fmt.Fprintf(w, "Logged in as %s <%s>\n", user.Name, user.Email)
	}
	return 0
}
