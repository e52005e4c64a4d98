// ABOUTME: Contact command for the brightwave CLI
// ABOUTME: Submits the site's contact form from the terminal

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
	contactName    string
	contactEmail   string
	contactMessage string
	contactPhone   string
	contactSubject string
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Send a message to the Brightwave team",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		if exitCode := runContact(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(contactCmd)
	contactCmd.Flags().StringVar(&contactName, "name", "", "Your name")
	contactCmd.Flags().StringVar(&contactEmail, "email", "", "Your email")
	contactCmd.Flags().StringVar(&contactMessage, "message", "", "The message to send")
	contactCmd.Flags().StringVar(&contactPhone, "phone", "", "Phone number (optional)")
	contactCmd.Flags().StringVar(&contactSubject, "subject", "", "Subject line (optional)")
}

// runContact executes the contact submission and returns an exit code
func runContact(ctx context.Context, w io.Writer) int {
	if contactName == "" || contactEmail == "" || contactMessage == "" {
		fmt.Fprintln(w, "Error: --name, --email and --message are required")
		return 2
	}

	client, err := buildClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	resp, err := client.Contact(ctx, api.ContactRequest{
		Name:    contactName,
		Email:   contactEmail,
		Message: contactMessage,
		Phone:   contactPhone,
		Subject: contactSubject,
	})
	if err != nil {
		printFailure(w, err, "Unable to send your message. Please try again.")
		return exitCodeFor(err)
	}

	if jsonOutput {
		json.NewEncoder(w).Encode(resp)
	} else if resp.Message != "" {
		fmt.Fprintln(w, resp.Message)
	} else {
		fmt.Fprintln(w, "Message sent. We'll be in touch.")
	}
	return 0
}
