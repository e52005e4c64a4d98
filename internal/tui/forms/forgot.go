// ABOUTME: Forgot-password form screen as a bubbletea model
// ABOUTME: Requests a reset link for the given email

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

// ForgotDoneMsg is sent to the parent when the reset request is accepted
type ForgotDoneMsg struct {
	Ack string
}

type forgotResultMsg struct {
	resp *api.ForgotPasswordResponse
	err  error
}

// Forgot is the forgot-password form screen
type Forgot struct {
	client *api.Client
	form   *huh.Form
	spin   spinner.Model

	email string

	submitting bool
	errs       []string
}

// NewForgot creates the forgot-password form
func NewForgot(client *api.Client) *Forgot {
	m := &Forgot{client: client, spin: newSpinner()}
	m.form = m.newForm()
	return m
}

func (m *Forgot) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Description("We'll send a reset link to this address.").
				Placeholder("you@example.com").
				Validate(notEmpty("Email")).
				Value(&m.email),
		),
	).WithTheme(Theme())
}

// Init starts the underlying huh form
func (m *Forgot) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles form input and the async submit result
func (m *Forgot) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case forgotResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errs = feedback.Messages(msg.err, "Unable to request a reset. Please try again.")
			m.form = m.newForm()
			return m, m.form.Init()
		}
		ack := msg.resp.Message
		if ack == "" {
			ack = "If that email exists, a reset link is on its way."
		}
		return m, func() tea.Msg { return ForgotDoneMsg{Ack: ack} }
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

func (m *Forgot) submit() tea.Cmd {
	email := m.email
	return func() tea.Msg {
		resp, err := m.client.ForgotPassword(context.Background(), email)
		return forgotResultMsg{resp: resp, err: err}
	}
}

// View renders the form, errors first
func (m *Forgot) View() string {
	out := styles.Title.Render("Forgot your password?") + "\n"
	out += renderErrors(m.errs)
	if m.submitting {
		return out + m.spin.View() + " Requesting reset..."
	}
	return out + m.form.View()
}
