package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"

	"github.com/vlpworks/vlp/internal/auth"
	"github.com/vlpworks/vlp/internal/browser"
	"github.com/vlpworks/vlp/internal/calendar"
	"github.com/vlpworks/vlp/internal/config"
	"github.com/vlpworks/vlp/internal/logctx"
	"github.com/vlpworks/vlp/internal/routes"
	"github.com/vlpworks/vlp/internal/session"
	"github.com/vlpworks/vlp/internal/storage"
	"github.com/vlpworks/vlp/internal/tui"
	"github.com/vlpworks/vlp/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// console holds the wired collaborators for one invocation.
type console struct {
	cfg     *config.Config
	log     *slog.Logger
	store   *storage.File
	session *session.Session
	client  *client.Client
	closer  io.Closer
}

func setup(configPath string) (*console, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logFile, err := logctx.OpenFile(cfg.LogPath())
	if err != nil {
		return nil, err
	}
	log := logctx.New(cfg.Env, cfg.Log.Level, logFile)
	slog.SetDefault(log)

	store, err := storage.Open(cfg.Storage.Dir)
	if err != nil {
		logFile.Close() //nolint:errcheck
		return nil, err
	}
	sess := session.New(store, log)
	c := client.New(cfg.API.BaseURL, sess,
		client.WithTimeout(cfg.API.Timeout),
		client.WithLogger(log),
	)
	return &console{cfg: cfg, log: log, store: store, session: sess, client: c, closer: logFile}, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "version", "-v":
			fmt.Fprintln(stdout, "vlp "+version)
			return nil
		case "help", "--help", "-h":
			printHelp(stdout)
			return nil
		}
	}

	fs := flag.NewFlagSet("vlp", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", "", "path to config file")
	page := fs.String("page", auth.DefaultNext, "page to open")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w (see: vlp help)", err)
	}

	cmd := fs.Arg(0)
	switch cmd {
	case "", "login", "logout", "status":
	default:
		return fmt.Errorf("unknown command %q (see: vlp help)", cmd)
	}
	// Flags may also follow the subcommand: vlp login --config x.yaml
	if cmd != "" {
		if err := fs.Parse(fs.Args()[1:]); err != nil {
			return fmt.Errorf("%w (see: vlp help)", err)
		}
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q (see: vlp help)", fs.Arg(0))
	}
	if cmd == "" {
		if err := checkPage(*page); err != nil {
			return err
		}
	}

	con, err := setup(*configPath)
	if err != nil {
		return err
	}
	defer con.closer.Close() //nolint:errcheck

	ctx = logctx.Into(ctx, con.log)
	con.log.Debug("start", slog.String("cmd", cmd), slog.String("version", version))

	switch cmd {
	case "login":
		return runLogin(ctx, con, stdin, stdout)
	case "logout":
		return runLogout(con, stdout)
	case "status":
		return runStatus(ctx, con, stdout)
	}
	return runTUI(ctx, con, *page)
}

// checkPage rejects --page values that are not console pages.
func checkPage(page string) error {
	if !auth.SafeNext(page) {
		return fmt.Errorf("--page must be a page path such as /billing, got %q", page)
	}
	m, ok := routes.New().Resolve(page)
	if !ok || m.Route.Public {
		return fmt.Errorf("--page %q is not a console page (see: vlp help)", page)
	}
	return nil
}

func runTUI(ctx context.Context, con *console, page string) error {
	web := con.cfg.Web
	app := tui.NewApp(tui.Deps{
		Ctx:         ctx,
		Client:      con.client,
		Session:     con.session,
		Memos:       calendar.NewMemos(con.store, con.log),
		Routes:      routes.New(),
		Gate:        auth.NewGate(con.session, con.log),
		DocumentURL: web.DocumentURL,
		Open:        browser.Open,
	}, page)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runLogin(ctx context.Context, con *console, stdin io.Reader, stdout io.Writer) error {
	in := bufio.NewReader(stdin)

	fmt.Fprint(stdout, "Email: ")
	email, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read email: %w", err)
	}
	email = strings.TrimSpace(email)

	fmt.Fprint(stdout, "Password: ")
	password, err := readPassword(stdin, in)
	fmt.Fprintln(stdout)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	if email == "" || password == "" {
		return errors.New("email and password are required")
	}

	res, err := con.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := con.session.Save(res.AccessToken); err != nil {
		return err
	}
	con.log.Info("login", slog.String("role", res.Role))
	fmt.Fprintf(stdout, "Signed in as %s (%s).\n", email, res.Role)
	return nil
}

// readPassword reads without echo when stdin is a terminal.
func readPassword(stdin io.Reader, buffered *bufio.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(f.Fd()) {
		b, err := term.ReadPassword(f.Fd())
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}
	line, err := buffered.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runLogout(con *console, stdout io.Writer) error {
	if !con.session.Present() {
		fmt.Fprintln(stdout, "Already signed out.")
		return nil
	}
	overridden := con.session.Overridden()
	if err := con.session.Clear(); err != nil {
		return err
	}
	con.log.Info("logout")
	fmt.Fprintln(stdout, "Signed out.")
	if overridden {
		fmt.Fprintf(stdout, "%s is set in the environment; unset it to stay signed out.\n", session.EnvToken)
	}
	return nil
}

func runStatus(ctx context.Context, con *console, stdout io.Writer) error {
	fmt.Fprintf(stdout, "API      %s\n", con.client.BaseURL())

	h, err := con.client.Health(ctx)
	if err != nil {
		fmt.Fprintf(stdout, "Health   unreachable: %v\n", err)
	} else {
		fmt.Fprintf(stdout, "Health   %s (database: %s)\n", h.Status, h.Database)
	}

	if !con.session.Present() {
		fmt.Fprintln(stdout, "Session  signed out (run: vlp login)")
		return nil
	}
	me, err := con.client.Me(ctx)
	switch {
	case client.IsUnauthorized(err):
		fmt.Fprintln(stdout, "Session  expired (run: vlp login)")
	case err != nil:
		fmt.Fprintf(stdout, "Session  token stored, user lookup failed: %v\n", err)
	default:
		fmt.Fprintf(stdout, "Session  %s (%s)\n", me.Email, me.Role)
	}
	return nil
}

func printHelp(w io.Writer) {
	fmt.Fprint(w, `vlp - VLP admin console

Usage:
  vlp [--config path] [--page /path]   open the console (default /dashboard)
  vlp login                            sign in and store the session token
  vlp logout                           remove the session token
  vlp status                           show API health and the signed-in user
  vlp version                          show version

Pages: /dashboard /cars /works /billing /reports /licenses /calendar

Environment:
  VLP_API_URL      API base URL including /api/v1
  VLP_WEB_URL      web front end for printable documents
  VLP_DATA_DIR     local storage directory (default ~/.vlp)
  VLP_TOKEN        session token override
  CONFIG_PATH      config file (default ./vlp.yaml)
`)
}
