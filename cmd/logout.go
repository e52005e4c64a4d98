// ABOUTME: Logout command for the brightwave CLI
// ABOUTME: Ends the remote session and always clears the local token

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out of Brightwave",
	Long:  `Invalidate the session on the server and remove the stored token. The local session is cleared even if the server cannot be reached.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		if exitCode := runLogout(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout executes the logout and returns an exit code
func runLogout(ctx context.Context, w io.Writer) int {
	ctrl, err := buildController()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	ctrl.Hydrate(ctx)
	ctrl.Logout(ctx)

	if jsonOutput {
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	} else {
		fmt.Fprintln(w, "Logged out.")
	}
	return 0
}
