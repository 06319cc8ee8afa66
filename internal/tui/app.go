package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vlpworks/vlp/internal/auth"
	"github.com/vlpworks/vlp/internal/browser"
	"github.com/vlpworks/vlp/internal/calendar"
	"github.com/vlpworks/vlp/internal/logctx"
	"github.com/vlpworks/vlp/internal/routes"
	"github.com/vlpworks/vlp/internal/session"
	"github.com/vlpworks/vlp/pkg/client"
	"github.com/vlpworks/vlp/pkg/domain"
)

// Deps are the collaborators shared by every page.
type Deps struct {
	Ctx     context.Context
	Client  *client.Client
	Session *session.Session
	Memos   *calendar.Memos
	Routes  *routes.Table
	Gate    *auth.Gate

	// DocumentURL returns the printable page of a billing document.
	DocumentURL func(id string) string
	Copy        func(string) error
	Open        func(string) error
	Now         func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Ctx == nil {
		d.Ctx = context.Background()
	}
	if d.Routes == nil {
		d.Routes = routes.New()
	}
	if d.Gate == nil {
		var tokens auth.TokenChecker
		if d.Session != nil {
			tokens = d.Session
		}
		d.Gate = auth.NewGate(tokens, logctx.From(d.Ctx))
	}
	if d.DocumentURL == nil {
		d.DocumentURL = func(id string) string { return "/billing/" + id }
	}
	if d.Copy == nil {
		d.Copy = clipboard.WriteAll
	}
	if d.Open == nil {
		d.Open = browser.Open
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

func (d Deps) log() *slog.Logger {
	return logctx.From(d.Ctx)
}

// navigateMsg asks the App to mount the page at to.
type navigateMsg struct {
	to     string
	reason auth.Reason
}

func navigate(to string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to} }
}

// apiResult is implemented by messages carrying an API call outcome. The App
// inspects them for 401 answers before the page sees them.
type apiResult interface {
	apiErr() error
}

type result struct{ err error }

func (r result) apiErr() error { return r.err }

type meLoadedMsg struct {
	result
	me *domain.Me
}

// App is the root Bubbletea model.
type App struct {
	deps     Deps
	start    string
	route    routes.Match
	mounted  bool
	guard    *auth.Guard
	me       *domain.Me
	notice   string
	helpOpen bool
	width    int
	height   int

	login     loginModel
	dashboard dashboardModel
	cars      carsModel
	car       carModel
	works     worksModel
	billing   billingModel
	doc       docModel
	reports   reportsModel
	licenses  licensesModel
	calendar  calendarModel
}

// NewApp creates the console starting at the page path start.
func NewApp(deps Deps, start string) App {
	if start == "" {
		start = auth.DefaultNext
	}
	return App{deps: deps.withDefaults(), start: start}
}

func (a App) Init() tea.Cmd {
	return navigate(a.start)
}

// Route returns the mounted page path.
func (a App) Route() string {
	return a.route.String()
}

func (a App) loadMe() tea.Cmd {
	c, ctx := a.deps.Client, a.deps.Ctx
	return func() tea.Msg {
		me, err := c.Me(ctx)
		return meLoadedMsg{result: result{err}, me: me}
	}
}

// navigate mounts the page at raw. Protected pages consult the auth gate
// first; an unauthorized mount is sent to the login page once.
func (a App) navigate(raw string, reason auth.Reason) (App, tea.Cmd) {
	m, ok := a.deps.Routes.Resolve(raw)
	if !ok {
		notice := "no such page: " + raw
		if !a.mounted && raw != auth.DefaultNext {
			next, cmd := a.navigate(auth.DefaultNext, "")
			next.notice = notice
			return next, cmd
		}
		a.notice = notice
		return a, nil
	}
	a.notice = ""
	a.helpOpen = false

	if m.Route.Public {
		a.guard = nil
	} else {
		a.guard = a.deps.Gate.Mount(m.String(), reason)
		d := a.guard.Check()
		if d.State != auth.Authorized {
			if d.Redirected() {
				return a.navigate(d.Redirect, "")
			}
			return a, nil
		}
	}

	a.route = m
	a.mounted = true
	a.deps.log().Debug("mount", slog.String("path", m.String()))

	cmd := a.mount()
	if !m.Route.Public && a.me == nil {
		cmd = tea.Batch(cmd, a.loadMe())
	}
	return a, cmd
}

// mount builds a fresh model for the current route.
func (a *App) mount() tea.Cmd {
	h := a.bodyHeight()
	switch a.route.Route.Page {
	case routes.PageLogin:
		a.login = newLoginModel(a.deps, a.route.Query)
		return a.login.Init()
	case routes.PageDashboard:
		a.dashboard = newDashboardModel(a.deps)
		return a.dashboard.Init()
	case routes.PageCars:
		a.cars = newCarsModel(a.deps, h)
		return a.cars.Init()
	case routes.PageCar:
		a.car = newCarModel(a.deps, a.route.Param("id"))
		return a.car.Init()
	case routes.PageWorks:
		a.works = newWorksModel(a.deps, h)
		return a.works.Init()
	case routes.PageBilling:
		a.billing = newBillingModel(a.deps, a.route.Query, h)
		return a.billing.Init()
	case routes.PageBillingDoc:
		a.doc = newDocModel(a.deps, a.route.Param("id"))
		return a.doc.Init()
	case routes.PageReports:
		a.reports = newReportsModel(a.deps, h)
		return a.reports.Init()
	case routes.PageLicenses:
		a.licenses = newLicensesModel(a.deps, a.me, h)
		return a.licenses.Init()
	case routes.PageCalendar:
		a.calendar = newCalendarModel(a.deps)
		return a.calendar.Init()
	}
	return nil
}

// expire drops the session after the API rejected the token.
func (a App) expire() (App, tea.Cmd) {
	if a.route.Route.Public {
		return a, nil
	}
	if err := a.deps.Session.Clear(); err != nil {
		a.deps.log().Warn("session_clear_failed", slog.String("err", err.Error()))
	}
	a.me = nil
	return a.navigate(a.route.String(), auth.ReasonSessionExpired)
}

func (a App) logout() (App, tea.Cmd) {
	if err := a.deps.Session.Clear(); err != nil {
		a.notice = "sign out failed: " + err.Error()
		return a, nil
	}
	a.me = nil
	a.deps.log().Info("logout")
	return a.navigate(a.route.String(), auth.ReasonLoggedOut)
}

func (a App) bodyHeight() int {
	// Chrome: header(1) + tabs(1) + notice(1) + help(1)
	return a.height - 4
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		h := a.bodyHeight()
		a.cars.height = h
		a.works.height = h
		a.billing.height = h
		a.reports.height = h
		a.licenses.height = h
		return a, nil

	case navigateMsg:
		return a.navigate(msg.to, msg.reason)

	case loggedInMsg:
		a.me = nil
		return a.navigate(msg.next, "")

	case meLoadedMsg:
		if msg.err == nil {
			a.me = msg.me
		}
	}

	if r, ok := msg.(apiResult); ok && client.IsUnauthorized(r.apiErr()) {
		return a.expire()
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		if key.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.guard != nil {
			if d := a.guard.Check(); d.State != auth.Authorized {
				if d.Redirected() {
					return a.navigate(d.Redirect, "")
				}
				return a, nil
			}
		}
		if a.helpOpen {
			switch key.String() {
			case "?", "esc":
				a.helpOpen = false
			case "q":
				return a, tea.Quit
			}
			return a, nil
		}
		if !a.isEditing() {
			switch key.String() {
			case "q":
				return a, tea.Quit
			case "?":
				a.helpOpen = true
				return a, nil
			case "L":
				if !a.route.Route.Public {
					return a.logout()
				}
			default:
				if r, ok := routes.ByTab(key.String()); ok && !a.route.Route.Public {
					if r.Page == a.route.Route.Page {
						return a, nil
					}
					return a.navigate(r.Pattern, "")
				}
			}
		}
	}

	if !a.mounted {
		return a, nil
	}

	var cmd tea.Cmd
	switch a.route.Route.Page {
	case routes.PageLogin:
		a.login, cmd = a.login.Update(msg)
	case routes.PageDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case routes.PageCars:
		a.cars, cmd = a.cars.Update(msg)
	case routes.PageCar:
		a.car, cmd = a.car.Update(msg)
	case routes.PageWorks:
		a.works, cmd = a.works.Update(msg)
	case routes.PageBilling:
		a.billing, cmd = a.billing.Update(msg)
	case routes.PageBillingDoc:
		a.doc, cmd = a.doc.Update(msg)
	case routes.PageReports:
		a.reports, cmd = a.reports.Update(msg)
	case routes.PageLicenses:
		a.licenses, cmd = a.licenses.Update(msg)
	case routes.PageCalendar:
		a.calendar, cmd = a.calendar.Update(msg)
	}
	return a, cmd
}

// isEditing reports whether the active page owns the keyboard.
func (a App) isEditing() bool {
	if !a.mounted {
		return false
	}
	switch a.route.Route.Page {
	case routes.PageLogin:
		return true
	case routes.PageCars:
		return a.cars.editing()
	case routes.PageCar:
		return a.car.editing || a.car.confirming
	case routes.PageWorks:
		return a.works.searching
	case routes.PageBillingDoc:
		return a.doc.confirming
	case routes.PageCalendar:
		return a.calendar.editing
	}
	return false
}

func (a App) View() string {
	if !a.mounted {
		if a.notice != "" {
			return "\n  " + noticeStyle.Render(a.notice)
		}
		return "\n  " + dimStyle.Render("loading...")
	}

	header := " " + logo()
	if a.me != nil {
		header += "  " + metaStyle.Render(a.me.Email+" ("+a.me.Role+")")
	}

	var body, help string
	switch a.route.Route.Page {
	case routes.PageLogin:
		body = a.login.View()
		help = helpBar("tab", "next field", "enter", "sign in", "ctrl+c", "quit")
	case routes.PageDashboard:
		body = a.dashboard.View()
		help = helpBar("1-7", "pages", "[/]", "month", "r", "reload", "?", "help", "q", "quit")
	case routes.PageCars:
		body = a.cars.View()
		help = a.cars.helpKeys()
	case routes.PageCar:
		body = a.car.View()
		help = a.car.helpKeys()
	case routes.PageWorks:
		body = a.works.View()
		help = a.works.helpKeys()
	case routes.PageBilling:
		body = a.billing.View()
		help = helpBar("1-7", "pages", "j/k", "nav", "enter", "open", "s", "status", "t", "kind", "n/p", "page", "q", "quit")
	case routes.PageBillingDoc:
		body = a.doc.View()
		help = a.doc.helpKeys()
	case routes.PageReports:
		body = a.reports.View()
		help = a.reports.helpKeys()
	case routes.PageLicenses:
		body = a.licenses.View()
		help = a.licenses.helpKeys()
	case routes.PageCalendar:
		body = a.calendar.View()
		help = a.calendar.helpKeys()
	}

	if a.helpOpen {
		body = helpView()
		help = helpBar("?", "close", "q", "quit")
	}

	notice := ""
	if a.notice != "" {
		notice = " " + noticeStyle.Render(a.notice)
	}

	body = strings.TrimRight(truncateToHeight(body, a.bodyHeight()), "\n")
	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s", header, a.tabBar(), body, notice, help)
}

func (a App) tabBar() string {
	if a.route.Route.Public {
		return ""
	}
	tabs := routes.Tabs()
	colWidth := 0
	if a.width > 0 {
		colWidth = a.width / len(tabs)
	}
	var b strings.Builder
	for _, t := range tabs {
		active := t.Page == a.route.Route.Page ||
			(t.Page == routes.PageCars && a.route.Route.Page == routes.PageCar) ||
			(t.Page == routes.PageBilling && a.route.Route.Page == routes.PageBillingDoc)
		var label string
		if active {
			label = accentStyle.Render(t.Tab) + " " + selectedStyle.Underline(true).Render(t.Title)
		} else {
			label = metaStyle.Render(t.Tab) + " " + dimStyle.Render(t.Title)
		}
		w := lipgloss.Width(label)
		pad := colWidth - w
		if pad < 2 {
			pad = 2
		}
		b.WriteString(" " + label + strings.Repeat(" ", pad-1))
	}
	return b.String()
}
