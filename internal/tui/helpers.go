package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vlpworks/vlp/pkg/client"
	"github.com/vlpworks/vlp/pkg/domain"
)

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// oneLine collapses newlines and runs of whitespace for list rows.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// formatYen renders an amount as ¥1,234,567.
func formatYen(n int) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := strconv.Itoa(n)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "¥" + b.String()
}

// formatRate renders a 0..1 ratio as a percentage.
func formatRate(r float64) string {
	return fmt.Sprintf("%.1f%%", r*100)
}

// formatDate renders an optional timestamp as YYYY-MM-DD.
func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func intOrDash(p *int) string {
	if p == nil {
		return "-"
	}
	return strconv.Itoa(*p)
}

// monthRange is the inclusive range covering the month of t.
func monthRange(t time.Time) domain.DateRange {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return domain.DateRange{From: first.Format("2006-01-02"), To: last.Format("2006-01-02")}
}

// errText is the inline message for err. API errors show the server's
// message without the operation prefix.
func errText(err error) string {
	if err == nil {
		return ""
	}
	var httpErr *client.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Error()
	}
	var decErr *client.DecodeError
	if errors.As(err, &decErr) {
		return decErr.Error()
	}
	return err.Error()
}

// moveCursor applies j/k style movement to cursor over n rows.
func moveCursor(cursor, n int, key string) int {
	switch key {
	case "j", "down":
		if cursor < n-1 {
			cursor++
		}
	case "k", "up":
		if cursor > 0 {
			cursor--
		}
	case "g", "home":
		cursor = 0
	case "G", "end":
		if n > 0 {
			cursor = n - 1
		}
	}
	return cursor
}

// visibleRange returns the [start, end) window of n rows that keeps cursor
// on screen in height lines.
func visibleRange(cursor, n, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > n {
		start = n - height
	}
	return start, start + height
}
