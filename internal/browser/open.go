// Package browser hands document URLs to the desktop's default browser.
package browser

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// ErrUnsupportedURL is returned for anything other than an absolute
// http or https URL.
var ErrUnsupportedURL = errors.New("browser: only http and https URLs can be opened")

// Command returns the launcher invocation for goos.
func Command(goos, target string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{target}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{target}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}, nil
	default:
		return "", nil, fmt.Errorf("browser: unsupported OS %q", goos)
	}
}

// Validate checks that raw is an absolute http(s) URL with a host.
func Validate(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("browser: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrUnsupportedURL
	}
	return nil
}

// Open opens target in the user's default browser without waiting for it.
func Open(target string) error {
	if err := Validate(target); err != nil {
		return err
	}
	name, args, err := Command(runtime.GOOS, target)
	if err != nil {
		return err
	}
	return exec.Command(name, args...).Start()
}
