// ABOUTME: TUI command for the brightwave CLI
// ABOUTME: Launches the interactive form screens

package cmd

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/brightwave-hq/brightwave-cli/internal/logger"
	"github.com/brightwave-hq/brightwave-cli/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive Brightwave forms",
	Long:  `Open the interactive terminal UI: log in, sign up, contact, password reset, and newsletter forms.`,
	Run: func(cmd *cobra.Command, args []string) {
		if exitCode := runTUI(); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// runTUI starts the bubbletea program and returns an exit code
func runTUI() int {
	// Log lines must not corrupt the rendered screen
	logger.Init(io.Discard)

	ctrl, err := buildController()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	client, err := buildClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	p := tea.NewProgram(tui.New(ctrl, client), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}
