package tui

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/vlpworks/vlp/pkg/client"
)

func TestFormatYen(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "¥0"},
		{999, "¥999"},
		{1000, "¥1,000"},
		{1234567, "¥1,234,567"},
		{-55000, "-¥55,000"},
	}
	for _, tt := range tests {
		if got := formatYen(tt.in); got != tt.want {
			t.Errorf("formatYen(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMonthRange(t *testing.T) {
	tests := []struct {
		t        time.Time
		from, to string
	}{
		{time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), "2026-02-01", "2026-02-28"},
		{time.Date(2028, 2, 10, 0, 0, 0, 0, time.UTC), "2028-02-01", "2028-02-29"},
		{time.Date(2026, 12, 31, 23, 0, 0, 0, time.UTC), "2026-12-01", "2026-12-31"},
	}
	for _, tt := range tests {
		r := monthRange(tt.t)
		if r.From != tt.from || r.To != tt.to {
			t.Errorf("monthRange(%s) = %+v, want %s..%s", tt.t, r, tt.from, tt.to)
		}
	}
}

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		cursor, n, height int
		start, end        int
	}{
		{0, 5, 10, 0, 5},
		{0, 50, 10, 0, 10},
		{25, 50, 10, 20, 30},
		{49, 50, 10, 40, 50},
		{3, 50, 0, 0, 50},
	}
	for _, tt := range tests {
		s, e := visibleRange(tt.cursor, tt.n, tt.height)
		if s != tt.start || e != tt.end {
			t.Errorf("visibleRange(%d, %d, %d) = %d,%d want %d,%d", tt.cursor, tt.n, tt.height, s, e, tt.start, tt.end)
		}
	}
}

func TestMoveCursor(t *testing.T) {
	if got := moveCursor(0, 3, "k"); got != 0 {
		t.Errorf("k at top = %d", got)
	}
	if got := moveCursor(2, 3, "j"); got != 2 {
		t.Errorf("j at bottom = %d", got)
	}
	if got := moveCursor(0, 3, "G"); got != 2 {
		t.Errorf("G = %d", got)
	}
	if got := moveCursor(0, 0, "G"); got != 0 {
		t.Errorf("G on empty = %d", got)
	}
}

func TestErrText(t *testing.T) {
	httpErr := fmt.Errorf("client.ListCars: %w", &client.HTTPError{StatusCode: 404, Message: "Car not found"})
	if got := errText(httpErr); got != "Car not found" {
		t.Errorf("errText(http) = %q", got)
	}
	decErr := fmt.Errorf("client.Me: %w", &client.DecodeError{StatusCode: 200, Raw: "<html>"})
	if got := errText(decErr); got != "<html>" {
		t.Errorf("errText(decode) = %q", got)
	}
	if got := errText(errors.New("dial tcp: refused")); got != "dial tcp: refused" {
		t.Errorf("errText(plain) = %q", got)
	}
	if got := errText(nil); got != "" {
		t.Errorf("errText(nil) = %q", got)
	}
}
