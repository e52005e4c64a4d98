// ABOUTME: Login form screen as a bubbletea model
// ABOUTME: Submits through the session controller and renders extracted errors

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

// LoginDoneMsg is sent to the parent when login succeeds
type LoginDoneMsg struct {
	User *api.User
}

// loginResultMsg carries the outcome of the network call
type loginResultMsg struct {
	user *api.User
	err  error
}

// Login is the login form screen
type Login struct {
	ctrl *session.Controller
	form *huh.Form
	spin spinner.Model

	email    string
	password string

	submitting bool
	errs       []string
}

// NewLogin creates the login form
func NewLogin(ctrl *session.Controller) *Login {
	m := &Login{ctrl: ctrl, spin: newSpinner()}
	m.form = m.newForm()
	return m
}

func newSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = s.Style.Foreground(styles.Primary)
	return s
}

func (m *Login) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
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
		),
	).WithTheme(Theme())
}

// Init starts the underlying huh form
func (m *Login) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles form input and the async submit result
func (m *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errs = feedback.Messages(msg.err, "Unable to log in. Please try again.")
			m.form = m.newForm()
			return m, m.form.Init()
		}
		return m, func() tea.Msg { return LoginDoneMsg{User: msg.user} }
	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	// Input is ignored while a request is in flight
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

// submit performs the login off the UI loop. A late result after the user
// has left this screen is simply discarded by the router.
func (m *Login) submit() tea.Cmd {
	email, password := m.email, m.password
	return func() tea.Msg {
		user, err := m.ctrl.Login(context.Background(), email, password)
		return loginResultMsg{user: user, err: err}
	}
}

// View renders the form, errors first
func (m *Login) View() string {
	out := styles.Title.Render("Log in") + "\n"
	out += renderErrors(m.errs)
	if m.submitting {
		return out + m.spin.View() + " Logging in..."
	}
	return out + m.form.View()
}
