// ABOUTME: Register command for the brightwave CLI
// ABOUTME: Creates an account and logs the new user in

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
	registerName     string
	registerEmail    string
	registerPassword string
	registerConfirm  string
	registerCompany  string
	registerRoleID   int
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a Brightwave account",
	Long:  `Sign up for a new account. A mismatched password confirmation is rejected locally, before anything is sent to the server.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		if exitCode := runRegister(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVar(&registerName, "name", "", "Full name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Account password")
	registerCmd.Flags().StringVar(&registerConfirm, "password-confirmation", "", "Repeat the password")
	registerCmd.Flags().StringVar(&registerCompany, "company", "", "Company name (optional)")
	registerCmd.Flags().IntVar(&registerRoleID, "role-id", 0, "Role ID (optional)")
}

// runRegister executes the sign-up and returns an exit code
func runRegister(ctx context.Context, w io.Writer) int {
	if registerName == "" || registerEmail == "" || registerPassword == "" {
		fmt.Fprintln(w, "Error: --name, --email and --password are required")
		return 2
	}

	ctrl, err := buildController()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	user, err := ctrl.Register(ctx, api.RegisterRequest{
		Name:                 registerName,
		Email:                registerEmail,
		Password:             registerPassword,
		PasswordConfirmation: registerConfirm,
		Company:              registerCompany,
		RoleID:               registerRoleID,
	})
	if err != nil {
		printFailure(w, err, "Unable to create your account. Please try again.")
		return exitCodeFor(err)
	}

	if jsonOutput {
		json.NewEncoder(w).Encode(user)
	} else {
		fmt.Fprintf(w, "Welcome, %s! You are now logged in.\n", user.Name)
	}
	return 0
}
