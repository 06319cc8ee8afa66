// Package session owns the access token lifecycle: saved after login, read on
// every gated page load and API call, removed on logout.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/vlpworks/vlp/internal/storage"
)

// TokenKey is the storage key holding the access token.
const TokenKey = "access_token"

// EnvToken overrides the stored token when set.
const EnvToken = "VLP_TOKEN"

// ErrEmptyToken is returned when saving a blank token.
var ErrEmptyToken = errors.New("session: empty token")

// Session reads and writes the access token. The token is opaque: nothing
// here inspects its claims or expiry.
type Session struct {
	store    storage.Store
	override string
	log      *slog.Logger
}

// New returns a Session over store. The VLP_TOKEN env var, if set, takes
// precedence over the stored token.
func New(store storage.Store, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	return &Session{
		store:    store,
		override: strings.TrimSpace(os.Getenv(EnvToken)),
		log:      log,
	}
}

// Token returns the current token, or "" when there is none. A storage read
// failure counts as no token.
func (s *Session) Token() string {
	if s.override != "" {
		return s.override
	}
	tok, ok, err := s.store.Get(TokenKey)
	if err != nil {
		s.log.Warn("session_read_failed", slog.String("err", err.Error()))
		return ""
	}
	if !ok {
		return ""
	}
	return strings.TrimSpace(tok)
}

// Present reports whether a token exists.
func (s *Session) Present() bool {
	return s.Token() != ""
}

// Overridden reports whether the token comes from the environment.
func (s *Session) Overridden() bool {
	return s.override != ""
}

// Save stores token after a successful login.
func (s *Session) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}
	if err := s.store.Set(TokenKey, token); err != nil {
		return fmt.Errorf("session.Save: %w", err)
	}
	s.log.Info("session_saved")
	return nil
}

// Clear removes the stored token and drops the env override for the rest of
// the process, so Token reports no session afterwards.
func (s *Session) Clear() error {
	if err := s.store.Remove(TokenKey); err != nil {
		return fmt.Errorf("session.Clear: %w", err)
	}
	s.override = ""
	s.log.Info("session_cleared")
	return nil
}
