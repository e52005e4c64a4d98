// ABOUTME: Reset-password form screen as a bubbletea model
// ABOUTME: Completes a reset using the token from the email

package forms

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/brightwave-hq/brightwave-cli/internal/api"
	"github.com/brightwave-hq/brightwave-cli/internal/feedback"
	"github.com/brightwave-hq/brightwave-cli/internal/tui/styles"
)

// ResetDoneMsg is sent to the parent when the password is updated
type ResetDoneMsg struct {
	Ack string
}

type resetResultMsg struct {
	resp *api.ResetPasswordResponse
	err  error
}

// Reset is the reset-password form screen
type Reset struct {
	client *api.Client
	form   *huh.Form
	spin   spinner.Model

	email    string
	token    string
	password string
	confirm  string

	submitting bool
	errs       []string
}

// NewReset creates the reset-password form
func NewReset(client *api.Client) *Reset {
	m := &Reset{client: client, spin: newSpinner()}
	m.form = m.newForm()
	return m
}

func (m *Reset) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Validate(notEmpty("Email")).
				Value(&m.email),
			huh.NewInput().
				Title("Reset token").
				Description("From the reset email.").
				Validate(notEmpty("Reset token")).
				Value(&m.token),
			huh.NewInput().
				Title("New password").
				EchoMode(huh.EchoModePassword).
				Validate(notEmpty("New password")).
				Value(&m.password),
			huh.NewInput().
				Title("Confirm new password").
				EchoMode(huh.EchoModePassword).
				Value(&m.confirm),
		),
	).WithTheme(Theme())
}

// Init starts the underlying huh form
func (m *Reset) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles form input and the async submit result
func (m *Reset) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resetResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errs = feedback.Messages(msg.err, "Unable to reset your password. Please try again.")
			m.form = m.newForm()
			return m, m.form.Init()
		}
		ack := msg.resp.Message
		if ack == "" {
			ack = "Password updated. You can now log in."
		}
		return m, func() tea.Msg { return ResetDoneMsg{Ack: ack} }
	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	if m.submitting {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		m.submitting = true
		m.errs = nil
		return m, tea.Batch(m.spin.Tick, m.submit())
	}
	return m, cmd
}

func (m *Reset) submit() tea.Cmd {
	req := api.ResetPasswordRequest{
		Email:                m.email,
		Token:                m.token,
		Password:             m.password,
		PasswordConfirmation: m.confirm,
	}
	return func() tea.Msg {
		resp, err := m.client.ResetPassword(context.Background(), req)
		return resetResultMsg{resp: resp, err: err}
	}
}

// View renders the form, errors first
func (m *Reset) View() string {
	out := styles.Title.Render("Reset your password") + "\n"
	out += renderErrors(m.errs)
	if m.submitting {
		return out + m.spin.View() + " Updating password..."
	}
	return out + m.form.View()
}
