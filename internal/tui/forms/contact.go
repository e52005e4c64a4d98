// ABOUTME: Contact form screen as a bubbletea model
// ABOUTME: Talks to the API client directly; no session required

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

// ContactDoneMsg is sent to the parent when the message is delivered
type ContactDoneMsg struct {
	Ack string
}

type contactResultMsg struct {
	resp *api.ContactResponse
	err  error
}

// Contact is the contact form screen
type Contact struct {
	client *api.Client
	form   *huh.Form
	spin   spinner.Model

	name    string
	email   string
	subject string
	message string
	phone   string

	submitting bool
	errs       []string
}

// NewContact creates the contact form
func NewContact(client *api.Client) *Contact {
	m := &Contact{client: client, spin: newSpinner()}
	m.form = m.newForm()
	return m
}

func (m *Contact) newForm() *huh.Form {
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
				Title("Subject (optional)").
				Value(&m.subject),
			huh.NewText().
				Title("Message").
				Validate(notEmpty("Message")).
				Value(&m.message),
			huh.NewInput().
				Title("Phone (optional)").
				Value(&m.phone),
		),
	).WithTheme(Theme())
}

// Init starts the underlying huh form
func (m *Contact) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles form input and the async submit result
func (m *Contact) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case contactResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errs = feedback.Messages(msg.err, "Unable to send your message. Please try again.")
			m.form = m.newForm()
			return m, m.form.Init()
		}
		ack := msg.resp.Message
		if ack == "" {
			ack = "Message sent. We'll be in touch."
		}
		return m, func() tea.Msg { return ContactDoneMsg{Ack: ack} }
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

func (m *Contact) submit() tea.Cmd {
	req := api.ContactRequest{
		Name:    m.name,
		Email:   m.email,
		Message: m.message,
		Phone:   m.phone,
		Subject: m.subject,
	}
	return func() tea.Msg {
		resp, err := m.client.Contact(context.Background(), req)
		return contactResultMsg{resp: resp, err: err}
	}
}

// View renders the form, errors first
func (m *Contact) View() string {
	out := styles.Title.Render("Contact us") + "\n"
	out += renderErrors(m.errs)
	if m.submitting {
		return out + m.spin.View() + " Sending..."
	}
	return out + m.form.View()
}
