// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/drivelot/drivelot/lib/api"
	"github.com/drivelot/drivelot/lib/guard"
	"github.com/drivelot/drivelot/lib/session"
)

// App bundles the dependencies every page needs: the session store,
// the HTTP gateway, and the request budgets. It is constructed once in
// the command layer and handed to Run.
type App struct {
	Session *session.Store
	API     *api.Client

	// RequestTimeout bounds ordinary fetches; UploadTimeout bounds
	// multipart submissions.
	RequestTimeout time.Duration
	UploadTimeout  time.Duration

	Theme Theme
	Keys  KeyMap
}

// Route identifies a page.
type Route int

const (
	RouteHome Route = iota
	RouteBrowse
	RouteDetail
	RouteForm
	RouteProfile
	RouteNotifications
	RouteLogin
	RouteRegister
)

// title returns the page name shown in the header bar.
func (r Route) title() string {
	switch r {
	case RouteBrowse:
		return "Available Cars"
	case RouteDetail:
		return "Listing"
	case RouteForm:
		return "List a Car"
	case RouteProfile:
		return "Your Profile"
	case RouteNotifications:
		return "Notifications"
	case RouteLogin:
		return "Log In"
	case RouteRegister:
		return "Register"
	default:
		return "Drivelot"
	}
}

// access returns the guard requirements for the route. The browse and
// detail pages are public; the submission form additionally requires
// the CONSUMER role, matching the web client's route table.
func (r Route) access() (guarded bool, roles []session.Role) {
	switch r {
	case RouteForm:
		return true, []session.Role{session.RoleConsumer}
	case RouteProfile, RouteNotifications:
		return true, nil
	default:
		return false, nil
	}
}

// navigateMsg asks the root model to switch pages.
type navigateMsg struct {
	route Route

	// listingID is set when route is RouteDetail.
	listingID string
}

// navigateTo returns a command that switches to the given page.
func navigateTo(route Route) tea.Cmd {
	return func() tea.Msg { return navigateMsg{route: route} }
}

// openListing returns a command that opens the detail page for one
// listing.
func openListing(id string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{route: RouteDetail, listingID: id} }
}

// statusMsg sets the transient notice in the status bar.
type statusMsg struct {
	text    string
	failure bool
}

func notify(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func notifyError(err error) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: err.Error(), failure: true} }
}

// Model is the root bubbletea model: the current route, the page
// models, and the shared chrome (header and status bar).
type Model struct {
	app *App

	route  Route
	width  int
	height int

	// status is the transient notice line; statusFailure selects its
	// color.
	status        string
	statusFailure bool

	home          homeModel
	browse        browseModel
	detail        detailModel
	form          formModel
	profile       profileModel
	notifications notificationsModel
	login         loginModel
	register      registerModel
}

// NewModel creates the root model on the home page.
func NewModel(app *App) Model {
	return Model{
		app:           app,
		route:         RouteHome,
		home:          newHomeModel(app),
		browse:        newBrowseModel(app),
		detail:        newDetailModel(app),
		form:          newFormModel(app),
		profile:       newProfileModel(app),
		notifications: newNotificationsModel(app),
		login:         newLoginModel(app),
		register:      newRegisterModel(app),
	}
}

// Run starts the TUI and blocks until the user quits.
func Run(app *App) error {
	program := tea.NewProgram(NewModel(app), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case navigateMsg:
		return m.navigate(msg)

	case statusMsg:
		m.status = msg.text
		m.statusFailure = msg.failure
		return m, nil

	case tea.KeyMsg:
		if !m.typing() {
			switch {
			case key.Matches(msg, m.app.Keys.Quit):
				return m, tea.Quit
			case key.Matches(msg, m.app.Keys.Back):
				return m.goBack()
			}
		}

	default:
		// A fetch result carrying a 401 means the stored token has
		// gone stale: route to login instead of showing the page
		// error. The backend is the sole authority on token validity.
		if failure, ok := msg.(interface{ fetchError() error }); ok {
			if err := failure.fetchError(); err != nil && api.IsUnauthorized(err) {
				m.status = "Session expired — please log in again"
				m.statusFailure = true
				return m.navigate(navigateMsg{route: RouteLogin})
			}
		}
	}

	return m.updatePage(msg)
}

// updatePage delegates a message to the page that owns it. Fetch
// results go to their owning page even when another page is active so
// the generation bookkeeping stays in one place.
func (m Model) updatePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.routeFor(msg) {
	case RouteHome:
		m.home, cmd = m.home.update(msg)
	case RouteBrowse:
		m.browse, cmd = m.browse.update(msg)
	case RouteDetail:
		m.detail, cmd = m.detail.update(msg)
	case RouteForm:
		m.form, cmd = m.form.update(msg)
	case RouteProfile:
		m.profile, cmd = m.profile.update(msg)
	case RouteNotifications:
		m.notifications, cmd = m.notifications.update(msg)
	case RouteLogin:
		m.login, cmd = m.login.update(msg)
	case RouteRegister:
		m.register, cmd = m.register.update(msg)
	}
	return m, cmd
}

// routeFor returns the page a message belongs to: data messages go to
// their owner, everything else to the active page.
func (m Model) routeFor(msg tea.Msg) Route {
	switch msg.(type) {
	case carsLoadedMsg:
		return RouteBrowse
	case carCreatedMsg:
		return RouteForm
	case carLoadedMsg:
		return RouteDetail
	case notificationsLoadedMsg:
		return RouteNotifications
	case profileUpdatedMsg:
		return RouteProfile
	case loggedInMsg:
		// Both the login and register pages log in; route the result
		// to whichever submitted it.
		if m.route == RouteRegister {
			return RouteRegister
		}
		return RouteLogin
	default:
		return m.route
	}
}

// navigate applies the route guard and switches pages. A redirected
// navigation lands on the login or home page with a notice, mirroring
// the web client's <Navigate> redirects.
func (m Model) navigate(msg navigateMsg) (tea.Model, tea.Cmd) {
	if guarded, roles := msg.route.access(); guarded {
		switch guard.Check(m.app.Session.Current(), roles...) {
		case guard.RedirectLogin:
			m.route = RouteLogin
			m.login = m.login.reset()
			return m, nil
		case guard.RedirectHome:
			m.route = RouteHome
			m.status = "Your account can't open that page"
			m.statusFailure = true
			return m, nil
		}
	}

	m.route = msg.route
	m.status = ""
	m.statusFailure = false

	var cmd tea.Cmd
	switch msg.route {
	case RouteBrowse:
		m.browse, cmd = m.browse.enter()
	case RouteDetail:
		m.detail, cmd = m.detail.enter(msg.listingID)
	case RouteForm:
		m.form = m.form.reset()
	case RouteProfile:
		m.profile = m.profile.reset()
	case RouteNotifications:
		m.notifications, cmd = m.notifications.enter()
	case RouteLogin:
		m.login = m.login.reset()
	case RouteRegister:
		m.register = m.register.reset()
	}
	return m, cmd
}

// goBack returns from a leaf page: detail goes back to browse,
// everything else to home.
func (m Model) goBack() (tea.Model, tea.Cmd) {
	if m.route == RouteDetail {
		return m.navigate(navigateMsg{route: RouteBrowse})
	}
	if m.route == RouteHome {
		return m, nil
	}
	return m.navigate(navigateMsg{route: RouteHome})
}

// typing reports whether the active page has a focused input field, in
// which case global key bindings must not fire.
func (m Model) typing() bool {
	switch m.route {
	case RouteBrowse:
		return m.browse.typing()
	case RouteDetail:
		return m.detail.typing()
	case RouteForm:
		return m.form.typing()
	case RouteProfile:
		return m.profile.typing()
	case RouteLogin:
		return m.login.typing()
	case RouteRegister:
		return m.register.typing()
	default:
		return false
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.headerView()
	status := m.statusView()
	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(status)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	switch m.route {
	case RouteHome:
		body = m.home.view(m.width, bodyHeight)
	case RouteBrowse:
		body = m.browse.view(m.width, bodyHeight)
	case RouteDetail:
		body = m.detail.view(m.width, bodyHeight)
	case RouteForm:
		body = m.form.view(m.width, bodyHeight)
	case RouteProfile:
		body = m.profile.view(m.width, bodyHeight)
	case RouteNotifications:
		body = m.notifications.view(m.width, bodyHeight)
	case RouteLogin:
		body = m.login.view(m.width, bodyHeight)
	case RouteRegister:
		body = m.register.view(m.width, bodyHeight)
	}
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

// headerView renders the top bar: brand, page title, and identity.
func (m Model) headerView() string {
	theme := m.app.Theme

	brand := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("DRIVELOT")
	title := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Render(m.route.title())

	identity := "not logged in"
	if current := m.app.Session.Current(); current != nil {
		identity = current.Email
		if current.Role != "" {
			identity += " · " + string(current.Role)
		}
	}
	identityStyled := lipgloss.NewStyle().Foreground(theme.FaintText).Render(identity)

	left := brand + "  " + title
	gap := m.width - ansi.StringWidth(left) - ansi.StringWidth(identityStyled) - 1
	if gap < 1 {
		gap = 1
	}
	line := left + spaces(gap) + identityStyled

	rule := lipgloss.NewStyle().Foreground(theme.BorderColor).Render(repeatRune('─', m.width))
	return ansi.Truncate(line, m.width, "…") + "\n" + rule
}

// statusView renders the bottom bar: transient notice plus help hint.
func (m Model) statusView() string {
	theme := m.app.Theme

	notice := m.status
	style := lipgloss.NewStyle().Foreground(theme.SuccessText)
	if m.statusFailure {
		style = lipgloss.NewStyle().Foreground(theme.ErrorText)
	}
	help := lipgloss.NewStyle().Foreground(theme.HelpText).Render("esc back · q quit")

	line := style.Render(notice)
	gap := m.width - ansi.StringWidth(line) - ansi.StringWidth(help)
	if gap < 1 {
		gap = 1
	}
	return ansi.Truncate(line+spaces(gap)+help, m.width, "…")
}

func repeatRune(r rune, count int) string {
	if count < 0 {
		count = 0
	}
	out := make([]rune, count)
	for i := range out {
		out[i] = r
	}
	return string(out)
}

func spaces(count int) string {
	return repeatRune(' ', count)
}
