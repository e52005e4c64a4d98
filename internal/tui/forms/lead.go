// ABOUTME: Lead-capture form screen as a bubbletea model
// ABOUTME: Newsletter / product-updates signup

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

// LeadDoneMsg is sent to the parent when the signup is accepted
type LeadDoneMsg struct {
	Ack string
}

type leadResultMsg struct {
	resp *api.LeadResponse
	err  error
}

// Lead is the lead-capture form screen
type Lead struct {
	client *api.Client
	form   *huh.Form
	spin   spinner.Model

	email   string
	name    string
	company string

	submitting bool
	errs       []string
}

// NewLead creates the lead-capture form
func NewLead(client *api.Client) *Lead {
	m := &Lead{client: client, spin: newSpinner()}
	m.form = m.newForm()
	return m
}

func (m *Lead) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Validate(notEmpty("Email")).
				Value(&m.email),
			huh.NewInput().
				Title("Name (optional)").
				Value(&m.name),
			huh.NewInput().
				Title("Company (optional)").
				Value(&m.company),
		),
	).WithTheme(Theme())
}

// Init starts the underlying huh form
func (m *Lead) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles form input and the async submit result
func (m *Lead) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case leadResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errs = feedback.Messages(msg.err, "Unable to sign you up. Please try again.")
			m.form = m.newForm()
			return m, m.form.Init()
		}
		ack := msg.resp.Message
		if ack == "" {
			ack = "Thanks for subscribing!"
		}
		return m, func() tea.Msg { return LeadDoneMsg{Ack: ack} }
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

func (m *Lead) submit() tea.Cmd {
	req := api.LeadRequest{
		Email:   m.email,
		Name:    m.name,
		Company: m.company,
		Source:  "cli",
	}
	return func() tea.Msg {
		resp, err := m.client.CaptureLead(context.Background(), req)
		return leadResultMsg{resp: resp, err: err}
	}
}

// View renders the form, errors first
func (m *Lead) View() string {
	out := styles.Title.Render("Stay in the loop") + "\n"
	out += renderErrors(m.errs)
	if m.submitting {
		return out + m.spin.View() + " Subscribing..."
	}
	return out + m.form.View()
}
