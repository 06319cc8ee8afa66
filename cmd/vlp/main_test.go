package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vlpworks/vlp/internal/session"
)

// fakeAPI serves the handful of endpoints the subcommands call.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status":"ok","service":"vlp-api","database":"connected"}`)) //nolint:errcheck
	})
	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Email, Password string }
		json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck
		if body.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Invalid credentials"}`)) //nolint:errcheck
			return
		}
		w.Write([]byte(`{"access_token":"tok-123","token_type":"bearer","user_id":"6f1c2d3e-0000-4000-8000-000000000001","role":"admin"}`)) //nolint:errcheck
	})
	mux.HandleFunc("/api/v1/users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Could not validate credentials"}`)) //nolint:errcheck
			return
		}
		w.Write([]byte(`{"id":"u1","email":"owner@example.com","store_id":"s1","role":"admin"}`)) //nolint:errcheck
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// testEnv points the CLI at srv with a fresh data dir and returns that dir.
func testEnv(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CONFIG_PATH", "")
	t.Setenv(session.EnvToken, "")
	t.Setenv("VLP_API_URL", srv.URL+"/api/v1")
	t.Setenv("VLP_DATA_DIR", dir)
	t.Chdir(t.TempDir())
	return dir
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(stdin), &out)
	return out.String(), err
}

func TestVersion(t *testing.T) {
	for _, arg := range []string{"version", "--version", "-v"} {
		out, err := runCLI(t, "", arg)
		if err != nil {
			t.Fatalf("run(%s) error: %v", arg, err)
		}
		if out != "vlp dev\n" {
			t.Errorf("run(%s) = %q", arg, out)
		}
	}
}

func TestHelp(t *testing.T) {
	out, err := runCLI(t, "", "help")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"vlp login", "VLP_API_URL", "/calendar"} {
		if !strings.Contains(out, want) {
			t.Errorf("help missing %q", want)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	_, err := runCLI(t, "", "frobnicate")
	if err == nil || !strings.Contains(err.Error(), `unknown command "frobnicate"`) {
		t.Errorf("error = %v", err)
	}
}

func TestBadFlag(t *testing.T) {
	if _, err := runCLI(t, "", "--nope"); err == nil {
		t.Error("expected error for unknown flag")
	}
}

func TestLoginStatusLogout(t *testing.T) {
	srv := fakeAPI(t)
	dir := testEnv(t, srv)

	out, err := runCLI(t, "owner@example.com\nsecret\n", "login")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if !strings.Contains(out, "Signed in as owner@example.com (admin).") {
		t.Errorf("login output = %q", out)
	}
	raw, err := os.ReadFile(filepath.Join(dir, "storage.json"))
	if err != nil {
		t.Fatalf("read storage: %v", err)
	}
	if !strings.Contains(string(raw), "tok-123") {
		t.Errorf("storage = %s, want token saved", raw)
	}

	out, err = runCLI(t, "", "status")
	if err != nil {
		t.Fatalf("status error: %v", err)
	}
	for _, want := range []string{"API      " + srv.URL + "/api/v1", "Health   ok (database: connected)", "Session  owner@example.com (admin)"} {
		if !strings.Contains(out, want) {
			t.Errorf("status missing %q in:\n%s", want, out)
		}
	}

	out, err = runCLI(t, "", "logout")
	if err != nil {
		t.Fatalf("logout error: %v", err)
	}
	if out != "Signed out.\n" {
		t.Errorf("logout output = %q", out)
	}

	out, _ = runCLI(t, "", "logout")
	if out != "Already signed out.\n" {
		t.Errorf("second logout output = %q", out)
	}

	out, _ = runCLI(t, "", "status")
	if !strings.Contains(out, "Session  signed out") {
		t.Errorf("status after logout = %q", out)
	}
}

func TestLoginRejected(t *testing.T) {
	testEnv(t, fakeAPI(t))

	_, err := runCLI(t, "owner@example.com\nwrong\n", "login")
	if err == nil {
		t.Fatal("expected error for bad password")
	}
	if !strings.Contains(err.Error(), "Invalid credentials") {
		t.Errorf("error = %v, want server detail", err)
	}
}

func TestLoginRequiresBothFields(t *testing.T) {
	testEnv(t, fakeAPI(t))

	if _, err := runCLI(t, "\n\n", "login"); err == nil {
		t.Error("expected error for empty credentials")
	}
}

func TestStatusExpiredToken(t *testing.T) {
	testEnv(t, fakeAPI(t))
	t.Setenv(session.EnvToken, "stale")

	out, err := runCLI(t, "", "status")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Session  expired") {
		t.Errorf("status = %q", out)
	}
}

func TestLogoutWithEnvOverride(t *testing.T) {
	testEnv(t, fakeAPI(t))
	t.Setenv(session.EnvToken, "from-env")

	out, err := runCLI(t, "", "logout")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "VLP_TOKEN is set in the environment") {
		t.Errorf("logout output = %q", out)
	}
}

func TestRunTUIRejectsUnsafePage(t *testing.T) {
	testEnv(t, fakeAPI(t))

	_, err := runCLI(t, "", "--page", "https://evil.example")
	if err == nil || !strings.Contains(err.Error(), "--page") {
		t.Errorf("error = %v", err)
	}
}

func TestFlagsAfterSubcommand(t *testing.T) {
	srv := fakeAPI(t)
	testEnv(t, srv)
	// Only the config file names the API.
	t.Setenv("VLP_API_URL", "")
	os.Unsetenv("VLP_API_URL") //nolint:errcheck

	cfgPath := filepath.Join(t.TempDir(), "vlp.yaml")
	yaml := "api:\n  base_url: " + srv.URL + "/api/v1\nstorage:\n  dir: " + t.TempDir() + "\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "", "status", "--config", cfgPath)
	if err != nil {
		t.Fatalf("status error: %v", err)
	}
	if !strings.Contains(out, "API      "+srv.URL+"/api/v1") {
		t.Errorf("status ignored --config after the subcommand:\n%s", out)
	}
}

func TestExtraArgumentRejected(t *testing.T) {
	testEnv(t, fakeAPI(t))

	_, err := runCLI(t, "", "logout", "now")
	if err == nil || !strings.Contains(err.Error(), `unexpected argument "now"`) {
		t.Errorf("error = %v", err)
	}
}

func TestRunTUIRejectsUnknownPage(t *testing.T) {
	testEnv(t, fakeAPI(t))

	for _, page := range []string{"/settings", "/login"} {
		_, err := runCLI(t, "", "--page", page)
		if err == nil || !strings.Contains(err.Error(), "not a console page") {
			t.Errorf("--page %s: error = %v", page, err)
		}
	}
}
