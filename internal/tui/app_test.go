package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vlpworks/vlp/internal/auth"
	"github.com/vlpworks/vlp/internal/calendar"
	"github.com/vlpworks/vlp/internal/logctx"
	"github.com/vlpworks/vlp/internal/routes"
	"github.com/vlpworks/vlp/internal/session"
	"github.com/vlpworks/vlp/internal/storage"
	"github.com/vlpworks/vlp/pkg/client"
	"github.com/vlpworks/vlp/pkg/domain"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type recorder struct {
	copied []string
	opened []string
}

func newTestDeps(t *testing.T) (Deps, *session.Session, *recorder) {
	t.Helper()
	t.Setenv(session.EnvToken, "")

	log := logctx.Discard()
	st := storage.NewMemory()
	sess := session.New(st, log)
	rec := &recorder{}
	return Deps{
		Ctx:         logctx.Into(context.Background(), log),
		Session:     sess,
		Memos:       calendar.NewMemos(st, log),
		DocumentURL: func(id string) string { return "https://app.example.com/billing/" + id + "/print" },
		Copy:        func(s string) error { rec.copied = append(rec.copied, s); return nil },
		Open:        func(u string) error { rec.opened = append(rec.opened, u); return nil },
		Now:         func() time.Time { return fixedNow },
	}, sess, rec
}

func newTestApp(t *testing.T) (App, *session.Session) {
	t.Helper()
	deps, sess, _ := newTestDeps(t)
	a := NewApp(deps, "")
	a.width = 100
	a.height = 40
	return a, sess
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func send(a App, msg tea.Msg) (App, tea.Cmd) {
	model, cmd := a.Update(msg)
	return model.(App), cmd
}

func typeText(a App, s string) App {
	for _, r := range s {
		a, _ = send(a, keyMsg(string(r)))
	}
	return a
}

func TestAppInitNavigatesToStart(t *testing.T) {
	a, _ := newTestApp(t)
	cmd := a.Init()
	if cmd == nil {
		t.Fatal("Init() returned nil cmd")
	}
	msg, ok := cmd().(navigateMsg)
	if !ok {
		t.Fatalf("Init() msg = %T, want navigateMsg", cmd())
	}
	if msg.to != auth.DefaultNext {
		t.Errorf("start = %q, want %q", msg.to, auth.DefaultNext)
	}
}

func TestAppRedirectsToLoginWithoutToken(t *testing.T) {
	a, _ := newTestApp(t)

	a, _ = a.navigate("/cars", "")

	if a.route.Route.Page != routes.PageLogin {
		t.Fatalf("page = %v, want login", a.route.Route.Page)
	}
	if got, want := a.Route(), "/login?next=%2Fcars&reason=login_required"; got != want {
		t.Errorf("route = %q, want %q", got, want)
	}
	if a.login.next != "/cars" {
		t.Errorf("login next = %q, want /cars", a.login.next)
	}
	if !strings.Contains(a.View(), auth.ReasonLoginRequired.Message()) {
		t.Error("login view does not explain the redirect")
	}
}

func TestAppMountsProtectedPageWithToken(t *testing.T) {
	a, sess := newTestApp(t)
	if err := sess.Save("tok"); err != nil {
		t.Fatal(err)
	}

	a, cmd := a.navigate("/cars", "")

	if a.route.Route.Page != routes.PageCars {
		t.Fatalf("page = %v, want cars", a.route.Route.Page)
	}
	if cmd == nil {
		t.Error("expected load cmd on mount")
	}
	if !a.cars.loading {
		t.Error("cars page should start loading")
	}
}

func TestAppDetailRouteCarriesParam(t *testing.T) {
	a, sess := newTestApp(t)
	sess.Save("tok") //nolint:errcheck

	a, _ = a.navigate(routes.CarPath("car-42"), "")

	if a.route.Route.Page != routes.PageCar {
		t.Fatalf("page = %v, want car detail", a.route.Route.Page)
	}
	if a.car.id != "car-42" {
		t.Errorf("car id = %q, want car-42", a.car.id)
	}
}

func TestAppLogoutRedirectsToLoginOnce(t *testing.T) {
	a, sess := newTestApp(t)
	sess.Save("tok") //nolint:errcheck
	a, _ = a.navigate("/billing", "")

	a, _ = send(a, keyMsg("L"))

	if sess.Present() {
		t.Fatal("token still present after logout")
	}
	if got, want := a.Route(), "/login?next=%2Fbilling&reason=logged_out"; got != want {
		t.Errorf("route = %q, want %q", got, want)
	}

	// A fresh mount of a protected page is redirected again, once.
	a, _ = a.navigate("/cars", "")
	if got, want := a.Route(), "/login?next=%2Fcars&reason=login_required"; got != want {
		t.Errorf("route = %q, want %q", got, want)
	}
}

func TestAppRedirectsWhenTokenDisappears(t *testing.T) {
	a, sess := newTestApp(t)
	sess.Save("tok") //nolint:errcheck
	a, _ = a.navigate("/works", "")

	// Another process removed the token.
	sess.Clear() //nolint:errcheck
	a, _ = send(a, keyMsg("j"))

	if a.route.Route.Page != routes.PageLogin {
		t.Fatalf("page = %v, want login", a.route.Route.Page)
	}
	if a.login.next != "/works" {
		t.Errorf("next = %q, want /works", a.login.next)
	}
}

func TestAppSessionExpiredOn401(t *testing.T) {
	a, sess := newTestApp(t)
	sess.Save("stale") //nolint:errcheck
	a, _ = a.navigate("/cars", "")

	a, _ = send(a, carsLoadedMsg{result: result{&client.HTTPError{StatusCode: 401, Message: "Could not validate credentials"}}})

	if sess.Present() {
		t.Error("token should be cleared after 401")
	}
	if got, want := a.Route(), "/login?next=%2Fcars&reason=session_expired"; got != want {
		t.Errorf("route = %q, want %q", got, want)
	}
}

func TestAppOtherErrorsStayInline(t *testing.T) {
	a, sess := newTestApp(t)
	sess.Save("tok") //nolint:errcheck
	a, _ = a.navigate("/cars", "")

	a, _ = send(a, carsLoadedMsg{result: result{&client.HTTPError{StatusCode: 403, Message: "Store access denied"}}})

	if a.route.Route.Page != routes.PageCars {
		t.Fatalf("page = %v, want cars", a.route.Route.Page)
	}
	if !sess.Present() {
		t.Error("403 must not clear the token")
	}
	if !strings.Contains(a.View(), "Store access denied") {
		t.Error("view does not show the server detail")
	}
}

func TestAppTabSwitching(t *testing.T) {
	tests := []struct {
		key  string
		want routes.Page
	}{
		{"1", routes.PageDashboard},
		{"2", routes.PageCars},
		{"3", routes.PageWorks},
		{"4", routes.PageBilling},
		{"5", routes.PageReports},
		{"6", routes.PageLicenses},
		{"7", routes.PageCalendar},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			a, sess := newTestApp(t)
			sess.Save("tok") //nolint:errcheck
			a, _ = a.navigate("/reports", "")
			a, _ = send(a, keyMsg(tc.key))
			if a.route.Route.Page != tc.want {
				t.Errorf("after key %q: page = %v, want %v", tc.key, a.route.Route.Page, tc.want)
			}
		})
	}
}

func TestAppGlobalQuitOnQ(t *testing.T) {
	a, sess := newTestApp(t)
	sess.Save("tok") //nolint:errcheck
	a, _ = a.navigate("/dashboard", "")

	_, cmd := send(a, keyMsg("q"))
	if cmd == nil {
		t.Fatal("expected quit command on 'q', got nil")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("cmd() = %T, want tea.QuitMsg", cmd())
	}
}

func TestAppHelpOverlay(t *testing.T) {
	a, sess := newTestApp(t)
	sess.Save("tok") //nolint:errcheck
	a, _ = a.navigate("/dashboard", "")

	a, _ = send(a, keyMsg("?"))
	if !a.helpOpen {
		t.Fatal("expected help open after '?'")
	}
	if !strings.Contains(a.View(), "vlp login") {
		t.Error("help view missing commands")
	}
	a, _ = send(a, keyMsg("esc"))
	if a.helpOpen {
		t.Error("expected help closed after esc")
	}
}

func TestAppUnknownPageKeepsRoute(t *testing.T) {
	a, sess := newTestApp(t)
	sess.Save("tok") //nolint:errcheck
	a, _ = a.navigate("/cars", "")

	a, _ = a.navigate("/settings", "")

	if a.route.Route.Page != routes.PageCars {
		t.Errorf("page = %v, want cars", a.route.Route.Page)
	}
	if !strings.Contains(a.notice, "/settings") {
		t.Errorf("notice = %q, want mention of /settings", a.notice)
	}
}

func TestAppMeShownInHeader(t *testing.T) {
	a, sess := newTestApp(t)
	sess.Save("tok") //nolint:errcheck
	a, _ = a.navigate("/dashboard", "")

	a, _ = send(a, meLoadedMsg{me: &domain.Me{Email: "owner@example.com", Role: domain.RoleAdmin}})

	if !strings.Contains(a.View(), "owner@example.com") {
		t.Error("header missing signed-in user")
	}
}

func TestAppUnknownStartFallsBackToDashboard(t *testing.T) {
	deps, sess, _ := newTestDeps(t)
	sess.Save("tok") //nolint:errcheck
	a := NewApp(deps, "/settings")
	a.width, a.height = 100, 40

	a, _ = send(a, a.Init()())

	if !a.mounted || a.route.Route.Page != routes.PageDashboard {
		t.Fatalf("mounted=%v page=%v, want dashboard", a.mounted, a.route.Route.Page)
	}
	if !strings.Contains(a.View(), "no such page: /settings") {
		t.Error("view does not explain the fallback")
	}
	_, cmd := send(a, keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should quit after the fallback")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("cmd() = %T, want tea.QuitMsg", cmd())
	}
}

func TestAppQuitBeforeFirstMount(t *testing.T) {
	a, _ := newTestApp(t)

	_, cmd := send(a, keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should quit before any page is mounted")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("cmd() = %T, want tea.QuitMsg", cmd())
	}
}
