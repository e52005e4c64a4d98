// ABOUTME: Shared theme and rendering helpers for the form screens
// ABOUTME: Each form is an independent bubbletea model wrapping a huh form

package forms

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/brightwave-hq/brightwave-cli/internal/tui/styles"
)

// Theme returns the huh theme shared by all Brightwave forms
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	t.Group.Title = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Primary)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(styles.Accent).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(styles.Muted)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(styles.Danger).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(styles.Danger)

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(styles.Accent)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(styles.Muted)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(styles.Primary)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(styles.Text)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(styles.Primary).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(styles.Text).
		Background(styles.Muted).
		Padding(0, 2).
		MarginRight(1)

	return t
}

// renderErrors renders the extracted messages above a form, one per line
func renderErrors(errs []string) string {
	if len(errs) == 0 {
		return ""
	}
	var b strings.Builder
	for _, msg := range errs {
		b.WriteString(styles.ErrorLine.Render("• " + msg))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

// notEmpty is the validator used by required inputs
func notEmpty(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return &requiredError{label: label}
		}
		return nil
	}
}

type requiredError struct {
	label string
}

func (e *requiredError) Error() string {
	return e.label + " is required"
}
