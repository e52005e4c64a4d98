// ABOUTME: Root bubbletea model for the interactive TUI
// ABOUTME: Hydrates the session on start and routes input to the form screens

package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/brightwave-hq/brightwave-cli/internal/api"
	"github.com/brightwave-hq/brightwave-cli/internal/session"
	"github.com/brightwave-hq/brightwave-cli/internal/tui/forms"
	"github.com/brightwave-hq/brightwave-cli/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenLogin
	ScreenSignUp
	ScreenContact
	ScreenForgot
	ScreenReset
	ScreenLead
)

// hydratedMsg is sent when session hydration finishes
type hydratedMsg struct{}

// loggedOutMsg is sent when logout finishes
type loggedOutMsg struct{}

// menuItem is one selectable entry on the main menu
type menuItem struct {
	label  string
	screen Screen
	logout bool
	quit   bool
}

// App is the root model for the TUI
type App struct {
	ctrl   *session.Controller
	client *api.Client

	screen Screen
	cursor int
	width  int
	height int
	status string
	spin   spinner.Model

	login   *forms.Login
	signup  *forms.SignUp
	contact *forms.Contact
	forgot  *forms.Forgot
	reset   *forms.Reset
	lead    *forms.Lead
}

// New creates the root TUI model
func New(ctrl *session.Controller, client *api.Client) *App {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = s.Style.Foreground(styles.Primary)
	return &App{ctrl: ctrl, client: client, spin: s}
}

// Init hydrates the persisted session before anything else
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spin.Tick, a.hydrateCmd())
}

func (a *App) hydrateCmd() tea.Cmd {
	return func() tea.Msg {
		a.ctrl.Hydrate(context.Background())
		return hydratedMsg{}
	}
}

func (a *App) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		a.ctrl.Logout(context.Background())
		return loggedOutMsg{}
	}
}

// menuItems returns the menu for the current session state
func (a *App) menuItems() []menuItem {
	if a.ctrl.Store().Authenticated() {
		return []menuItem{
			{label: "Contact us", screen: ScreenContact},
			{label: "Subscribe to updates", screen: ScreenLead},
			{label: "Log out", logout: true},
			{label: "Quit", quit: true},
		}
	}
	return []menuItem{
		{label: "Log in", screen: ScreenLogin},
		{label: "Sign up", screen: ScreenSignUp},
		{label: "Contact us", screen: ScreenContact},
		{label: "Forgot password", screen: ScreenForgot},
		{label: "Reset password", screen: ScreenReset},
		{label: "Subscribe to updates", screen: ScreenLead},
		{label: "Quit", quit: true},
	}
}

// Update routes messages to the menu or the active form screen. Results
// arriving for a screen that is no longer active fall through and are
// discarded, which is how an abandoned submit is handled.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case hydratedMsg:
		return a, nil

	case loggedOutMsg:
		a.status = "Logged out."
		a.cursor = 0
		return a, nil

	case forms.LoginDoneMsg:
		a.status = "Logged in as " + msg.User.Name + "."
		return a.backToMenu()
	case forms.SignUpDoneMsg:
		a.status = "Welcome, " + msg.User.Name + "! You are now logged in."
		return a.backToMenu()
	case forms.ContactDoneMsg:
		a.status = msg.Ack
		return a.backToMenu()
	case forms.ForgotDoneMsg:
		a.status = msg.Ack
		return a.backToMenu()
	case forms.ResetDoneMsg:
		a.status = msg.Ack
		return a.backToMenu()
	case forms.LeadDoneMsg:
		a.status = msg.Ack
		return a.backToMenu()

	case spinner.TickMsg:
		if a.ctrl.Loading() {
			var cmd tea.Cmd
			a.spin, cmd = a.spin.Update(msg)
			return a, cmd
		}
		return a.routeToForm(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "esc":
			if a.screen != ScreenMenu {
				model, _ := a.backToMenu()
				return model, nil
			}
			return a, nil
		}
		if a.screen == ScreenMenu {
			return a.updateMenu(msg)
		}
		return a.routeToForm(msg)
	}

	return a.routeToForm(msg)
}

// backToMenu returns to the menu, dropping the active form
func (a *App) backToMenu() (tea.Model, tea.Cmd) {
	a.screen = ScreenMenu
	a.cursor = 0
	a.login = nil
	a.signup = nil
	a.contact = nil
	a.forgot = nil
	a.reset = nil
	a.lead = nil
	return a, nil
}

// updateMenu handles key input while the menu is showing
func (a *App) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := a.menuItems()
	switch msg.String() {
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(items)-1 {
			a.cursor++
		}
	case "enter":
		item := items[a.cursor]
		switch {
		case item.quit:
			return a, tea.Quit
		case item.logout:
			a.status = ""
			return a, a.logoutCmd()
		default:
			a.status = ""
			return a.openScreen(item.screen)
		}
	case "q":
		return a, tea.Quit
	}
	return a, nil
}

// openScreen creates the form model for the chosen screen
func (a *App) openScreen(screen Screen) (tea.Model, tea.Cmd) {
	a.screen = screen
	switch screen {
	case ScreenLogin:
		a.login = forms.NewLogin(a.ctrl)
		return a, a.login.Init()
	case ScreenSignUp:
		a.signup = forms.NewSignUp(a.ctrl)
		return a, a.signup.Init()
	case ScreenContact:
		a.contact = forms.NewContact(a.client)
		return a, a.contact.Init()
	case ScreenForgot:
		a.forgot = forms.NewForgot(a.client)
		return a, a.forgot.Init()
	case ScreenReset:
		a.reset = forms.NewReset(a.client)
		return a, a.reset.Init()
	case ScreenLead:
		a.lead = forms.NewLead(a.client)
		return a, a.lead.Init()
	}
	return a, nil
}

// routeToForm forwards a message to whichever form is active
func (a *App) routeToForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.screen {
	case ScreenLogin:
		if a.login != nil {
			var model tea.Model
			model, cmd = a.login.Update(msg)
			a.login = model.(*forms.Login)
		}
	case ScreenSignUp:
		if a.signup != nil {
			var model tea.Model
			model, cmd = a.signup.Update(msg)
			a.signup = model.(*forms.SignUp)
		}
	case ScreenContact:
		if a.contact != nil {
			var model tea.Model
			model, cmd = a.contact.Update(msg)
			a.contact = model.(*forms.Contact)
		}
	case ScreenForgot:
		if a.forgot != nil {
			var model tea.Model
			model, cmd = a.forgot.Update(msg)
			a.forgot = model.(*forms.Forgot)
		}
	case ScreenReset:
		if a.reset != nil {
			var model tea.Model
			model, cmd = a.reset.Update(msg)
			a.reset = model.(*forms.Reset)
		}
	case ScreenLead:
		if a.lead != nil {
			var model tea.Model
			model, cmd = a.lead.Update(msg)
			a.lead = model.(*forms.Lead)
		}
	}
	return a, cmd
}

// sessionLine renders the session state under the header
func (a *App) sessionLine() string {
	if a.ctrl.Loading() {
		return a.spin.View() + " Restoring session..."
	}
	if user := a.ctrl.Store().User(); user != nil {
		return styles.StatusOK.Render("Signed in as " + user.Name + " <" + user.Email + ">")
	}
	return styles.Subtitle.Render("Not signed in")
}

// View renders the header, the active screen, and the footer help
func (a *App) View() string {
	out := styles.Title.Render("Brightwave") + "\n"
	out += a.sessionLine() + "\n\n"

	if a.status != "" && a.screen == ScreenMenu {
		out += styles.StatusOK.Render(a.status) + "\n\n"
	}

	switch a.screen {
	case ScreenMenu:
		items := a.menuItems()
		for i, item := range items {
			if i == a.cursor {
				out += styles.MenuSelected.Render("> "+item.label) + "\n"
			} else {
				out += styles.MenuItem.Render(item.label) + "\n"
			}
		}
		out += styles.Help.Render("↑/↓ navigate • enter select • q quit")
	case ScreenLogin:
		out += a.login.View()
	case ScreenSignUp:
		out += a.signup.View()
	case ScreenContact:
		out += a.contact.View()
	case ScreenForgot:
		out += a.forgot.View()
	case ScreenReset:
		out += a.reset.View()
	case ScreenLead:
		out += a.lead.View()
	}

	if a.screen != ScreenMenu {
		out += "\n" + styles.Help.Render("esc back • ctrl+c quit")
	}
	return out
}
