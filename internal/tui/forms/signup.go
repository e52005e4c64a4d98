// ABOUTME: Sign-up form screen as a bubbletea model
// ABOUTME: Registration goes through the session controller, including the local confirmation check

package forms

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/brightwave-hq/brightwave-cli/internal/api"
	"github.com/brightwave-hq/brightwave-cli/internal/feedback"
	"github.com/brightwave-hq/brightwave-cli/internal/session"
	"github.com/brightwave-hq/brightwave-cli/internal/tui/styles"
)

// SignUpDoneMsg is sent to the parent when registration succeeds
type SignUpDoneMsg struct {
	User *api.User
}

type signUpResultMsg struct {
	user *api.User
	err  error
}

// SignUp is the registration form screen
type SignUp struct {
	ctrl *session.Controller
	form *huh.Form
	spin spinner.Model

	name     string
	email    string
	password string
	confirm  string
	company  string

	submitting bool
	errs       []string
}

// NewSignUp creates the sign-up form
func NewSignUp(ctrl *session.Controller) *SignUp {
	m := &SignUp{ctrl: ctrl, spin: newSpinner()}
	m.form = m.newForm()
	return m
}

func (m *SignUp) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Validate(notEmpty("Name")).
				Value(&m.name),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Validate(notEmpty("Email")).
				Value(&m.email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Validate(notEmpty("Password")).
				Value(&m.password),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&m.confirm),
			huh.NewInput().
				Title("Company (optional)").
				Value(&m.company),
		),
	).WithTheme(Theme())
}

// Init starts the underlying huh form
func (m *SignUp) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles form input and the async submit result
func (m *SignUp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case signUpResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errs = feedback.Messages(msg.err, "Unable to create your account. Please try again.")
			m.form = m.newForm()
			return m, m.form.Init()
		}
		return m, func() tea.Msg { return SignUpDoneMsg{User: msg.user} }
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

func (m *SignUp) submit() tea.Cmd {
	req := api.RegisterRequest{
		Name:                 m.name,
		Email:                m.email,
		Password:             m.password,
		PasswordConfirmation: m.confirm,
		Company:              m.company,
	}
	return func() tea.Msg {
		user, err := m.ctrl.Register(context.Background(), req)
		return signUpResultMsg{user: user, err: err}
	}
}

// View renders the form, errors first
func (m *SignUp) View() string {
	out := styles.Title.Render("Create your account") + "\n"
	out += renderErrors(m.errs)
	if m.submitting {
		return out + m.spin.View() + " Creating account..."
	}
	return out + m.form.View()
}
