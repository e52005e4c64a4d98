// ABOUTME: Entry point for the brightwave CLI
// ABOUTME: Command-line and TUI client for the Brightwave site

package main

import (
	"fmt"
	"os"

	"github.com/brightwave-hq/brightwave-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
