package auth

import (
	"net/url"
	"testing"
)

type fakeTokens struct{ present bool }

func (f *fakeTokens) Present() bool { return f.present }

func TestGuardAuthorized(t *testing.T) {
	g := NewGate(&fakeTokens{present: true}, nil)
	d := g.Mount("/cars", "").Check()
	if d.State != Authorized {
		t.Errorf("State = %v, want authorized", d.State)
	}
	if d.Redirected() {
		t.Errorf("Redirect = %q, want none", d.Redirect)
	}
}

func TestGuardRedirectsToLoginWhenTokenAbsent(t *testing.T) {
	g := NewGate(&fakeTokens{}, nil)
	d := g.Mount("/cars", "").Check()
	if d.State != Unauthorized {
		t.Fatalf("State = %v, want unauthorized", d.State)
	}
	u, err := url.Parse(d.Redirect)
	if err != nil {
		t.Fatalf("parse redirect: %v", err)
	}
	if u.Path != "/login" {
		t.Errorf("redirect path = %q, want /login", u.Path)
	}
	if got := u.Query().Get("next"); got != "/cars" {
		t.Errorf("next = %q, want /cars", got)
	}
	if got := u.Query().Get("reason"); got != string(ReasonLoginRequired) {
		t.Errorf("reason = %q, want %q", got, ReasonLoginRequired)
	}
}

func TestGuardRedirectsOncePerMount(t *testing.T) {
	tokens := &fakeTokens{present: true}
	g := NewGate(tokens, nil)

	// logout
	tokens.present = false

	guard := g.Mount("/billing", ReasonLoggedOut)
	redirects := 0
	for i := 0; i < 3; i++ {
		if d := guard.Check(); d.Redirected() {
			redirects++
		}
	}
	if redirects != 1 {
		t.Errorf("redirects = %d, want 1", redirects)
	}

	// A new mount redirects again.
	if d := g.Mount("/billing", ReasonLoggedOut).Check(); !d.Redirected() {
		t.Error("expected redirect on a fresh mount")
	}
}

func TestLoginPath(t *testing.T) {
	tests := []struct {
		name   string
		next   string
		reason Reason
		want   string
	}{
		{"bare", "", "", "/login"},
		{"next only", "/works", "", "/login?next=%2Fworks"},
		{"reason only", "", ReasonLoggedOut, "/login?reason=logged_out"},
		{"login target dropped", "/login?next=/cars", ReasonSessionExpired, "/login?reason=session_expired"},
		{"external dropped", "https://evil.example", "", "/login"},
		{"protocol-relative dropped", "//evil.example/x", "", "/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LoginPath(tt.next, tt.reason); got != tt.want {
				t.Errorf("LoginPath(%q, %q) = %q, want %q", tt.next, tt.reason, got, tt.want)
			}
		})
	}
}

func TestParseLogin(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantNext   string
		wantReason Reason
	}{
		{"round trip", "next=%2Fcars%2F42&reason=session_expired", "/cars/42", ReasonSessionExpired},
		{"default next", "", DefaultNext, ""},
		{"unsafe next", "next=http%3A%2F%2Fx.example", DefaultNext, ""},
		{"login next", "next=%2Flogin", DefaultNext, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("ParseQuery: %v", err)
			}
			next, reason := ParseLogin(q)
			if next != tt.wantNext {
				t.Errorf("next = %q, want %q", next, tt.wantNext)
			}
			if reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", reason, tt.wantReason)
			}
		})
	}
}

func TestReasonMessage(t *testing.T) {
	if ReasonSessionExpired.Message() == "" {
		t.Error("expected a message for session_expired")
	}
	if Reason("bogus").Message() != "" {
		t.Error("expected no message for unknown reason")
	}
}
