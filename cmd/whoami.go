// ABOUTME: Whoami command for the brightwave CLI
// ABOUTME: Hydrates the stored session and prints the current identity

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	Long: `Validate the stored session token against the API and print the account
it belongs to. A stale or rejected token is removed silently.

Exit codes:
  0 - Logged in
  1 - Not logged in
  2 - Error`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		if exitCode := runWhoami(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// whoamiResult is the --json shape for whoami
type whoamiResult struct {
	Authenticated bool   `json:"authenticated"`
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
	Role          string `json:"role,omitempty"`
}

// runWhoami executes the session check and returns an exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	ctrl, err := buildController()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	ctrl.Hydrate(ctx)

	user := ctrl.Store().User()
	if user == nil {
		if jsonOutput {
			json.NewEncoder(w).Encode(whoamiResult{Authenticated: false})
		} else {
			fmt.Fprintln(w, "Not logged in.")
		}
		return 1
	}

	if jsonOutput {
		json.NewEncoder(w).Encode(whoamiResult{
			Authenticated: true,
			Name:          user.Name,
			Email:         user.Email,
			Role:          user.Role,
		})
	} else {
		fmt.Fprintf(w, "Logged in as %s <%s>\n", user.Name, user.Email)
	}
	return 0
}
