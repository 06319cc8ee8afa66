// Package auth gates protected pages on the presence of a session token.
//
// Presence is the whole check: the token is never validated for expiry or
// signature here. The API remains the authority and answers 401 for a token
// it does not accept.
package auth

import (
	"log/slog"
	"net/url"
	"strings"
)

// LoginRoute is the page unauthorized mounts are sent to.
const LoginRoute = "/login"

// DefaultNext is where a completed login lands when no safe next target was given.
const DefaultNext = "/dashboard"

// State is the gate state of a mount.
type State int

const (
	Unauthorized State = iota
	Authorized
)

func (s State) String() string {
	if s == Authorized {
		return "authorized"
	}
	return "unauthorized"
}

// Reason explains a redirect to the login page.
type Reason string

const (
	ReasonLoginRequired  Reason = "login_required"
	ReasonSessionExpired Reason = "session_expired"
	ReasonLoggedOut      Reason = "logged_out"
)

// Message is the notice shown on the login page for the reason.
func (r Reason) Message() string {
	switch r {
	case ReasonLoginRequired:
		return "please sign in to continue"
	case ReasonSessionExpired:
		return "your session has expired, sign in again"
	case ReasonLoggedOut:
		return "signed out"
	default:
		return ""
	}
}

// TokenChecker reports whether a session token is stored.
type TokenChecker interface {
	Present() bool
}

// Gate decides whether protected pages may render.
type Gate struct {
	tokens TokenChecker
	log    *slog.Logger
}

// NewGate returns a gate over tokens.
func NewGate(tokens TokenChecker, log *slog.Logger) *Gate {
	if log == nil {
		log = slog.Default()
	}
	return &Gate{tokens: tokens, log: log}
}

// Decision is the outcome of a guard check. Redirect is set only on the
// first unauthorized check of a mount.
type Decision struct {
	State    State
	Redirect string
}

// Redirected reports whether the caller must navigate to Redirect.
func (d Decision) Redirected() bool {
	return d.Redirect != ""
}

// Guard is the gate bound to one page mount.
type Guard struct {
	gate       *Gate
	target     string
	reason     Reason
	redirected bool
}

// Mount starts a guard for a page mounted at target. reason is carried on
// the login redirect; empty means ReasonLoginRequired.
func (g *Gate) Mount(target string, reason Reason) *Guard {
	if reason == "" {
		reason = ReasonLoginRequired
	}
	return &Guard{gate: g, target: target, reason: reason}
}

// Check evaluates the token. An unauthorized mount yields a redirect exactly
// once; later checks of the same mount report Unauthorized without one.
func (g *Guard) Check() Decision {
	if g.gate.tokens != nil && g.gate.tokens.Present() {
		return Decision{State: Authorized}
	}
	if g.redirected {
		return Decision{State: Unauthorized}
	}
	g.redirected = true
	to := LoginPath(g.target, g.reason)
	g.gate.log.Info("auth_redirect", slog.String("target", g.target), slog.String("reason", string(g.reason)))
	return Decision{State: Unauthorized, Redirect: to}
}

// LoginPath builds the login route carrying the next target and reason.
// Unsafe or login-page targets are dropped.
func LoginPath(next string, reason Reason) string {
	params := url.Values{}
	if next != "" && SafeNext(next) && pathOf(next) != LoginRoute {
		params.Set("next", next)
	}
	if reason != "" {
		params.Set("reason", string(reason))
	}
	if len(params) == 0 {
		return LoginRoute
	}
	return LoginRoute + "?" + params.Encode()
}

// ParseLogin reads next and reason from a login route query. A missing or
// unsafe next becomes DefaultNext.
func ParseLogin(q url.Values) (next string, reason Reason) {
	next = q.Get("next")
	if next == "" || !SafeNext(next) || pathOf(next) == LoginRoute {
		next = DefaultNext
	}
	return next, Reason(q.Get("reason"))
}

// SafeNext reports whether next is a local page path. Absolute URLs and
// protocol-relative paths are rejected.
func SafeNext(next string) bool {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return false
	}
	if strings.ContainsAny(next, "\\\r\n") {
		return false
	}
	u, err := url.Parse(next)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}

func pathOf(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		return p[:i]
	}
	return p
}
