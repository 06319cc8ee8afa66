package tui

import (
	"errors"
	"log/slog"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vlpworks/vlp/internal/auth"
	"github.com/vlpworks/vlp/pkg/domain"
)

type loginField int

const (
	loginEmail loginField = iota
	loginPassword
	numLoginFields
)

var errCredentialsRequired = errors.New("email and password are required")

type loginModel struct {
	deps       Deps
	next       string
	reason     auth.Reason
	email      string
	password   string
	focus      loginField
	submitting bool
	err        error
}

type loginResultMsg struct {
	res *domain.LoginResult
	err error
}

// loggedInMsg is sent once the token is stored.
type loggedInMsg struct {
	next string
}

func newLoginModel(d Deps, q url.Values) loginModel {
	next, reason := auth.ParseLogin(q)
	return loginModel{deps: d, next: next, reason: reason}
}

func (m loginModel) Init() tea.Cmd {
	return nil
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err
			m.password = ""
			return m, nil
		}
		if err := m.deps.Session.Save(msg.res.AccessToken); err != nil {
			m.err = err
			return m, nil
		}
		m.deps.log().Info("login", slog.String("role", msg.res.Role), slog.String("next", m.next))
		next := m.next
		return m, func() tea.Msg { return loggedInMsg{next: next} }

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.focus = (m.focus + 1) % numLoginFields
		case "shift+tab", "up":
			m.focus = (m.focus + numLoginFields - 1) % numLoginFields
		case "enter":
			if m.focus == loginEmail {
				m.focus = loginPassword
				return m, nil
			}
			return m.submit()
		default:
			m.err = nil
			if m.focus == loginEmail {
				m.email = editRune(m.email, msg.String())
			} else {
				m.password = editRune(m.password, msg.String())
			}
		}
	}
	return m, nil
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	email := strings.TrimSpace(m.email)
	if email == "" || m.password == "" {
		m.err = errCredentialsRequired
		return m, nil
	}
	m.submitting = true
	m.err = nil
	c, ctx, password := m.deps.Client, m.deps.Ctx, m.password
	return m, func() tea.Msg {
		res, err := c.Login(ctx, email, password)
		return loginResultMsg{res: res, err: err}
	}
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Sign in") + "\n")
	if msg := m.reason.Message(); msg != "" {
		b.WriteString("  " + noticeStyle.Render(msg) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(renderField("Email", m.email, m.focus == loginEmail, false) + "\n")
	b.WriteString(renderField("Password", m.password, m.focus == loginPassword, true) + "\n\n")

	switch {
	case m.submitting:
		b.WriteString("  " + dimStyle.Render("signing in...") + "\n")
	case m.err != nil:
		b.WriteString("  " + errorStyle.Render(errText(m.err)) + "\n")
	}
	if m.next != auth.DefaultNext {
		b.WriteString("  " + metaStyle.Render("continue to "+m.next) + "\n")
	}
	return b.String()
}
