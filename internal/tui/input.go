package tui

import (
	"strings"
	"unicode/utf8"
)

// pageSize is the number of billing documents fetched per call.
const pageSize = 50

// maxInputLen is the maximum number of runes allowed in form inputs.
const maxInputLen = 2000

// editRune processes a keystroke for inline text editing.
// Handles backspace (rune-aware) and single printable characters.
// Returns the text unchanged for non-printable keys (enter, esc, etc.).
// Input is clamped to maxInputLen runes.
func editRune(text string, key string) string {
	switch key {
	case "backspace":
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	case "space":
		key = " "
	}
	if utf8.RuneCountInString(key) == 1 {
		if utf8.RuneCountInString(text) >= maxInputLen {
			return text
		}
		return text + key
	}
	return text
}

// editMultiline is editRune plus enter for newlines.
func editMultiline(text string, key string) string {
	if key == "enter" {
		if utf8.RuneCountInString(text) >= maxInputLen {
			return text
		}
		return text + "\n"
	}
	return editRune(text, key)
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}

// renderField renders a labeled form input. Masked fields show bullets.
func renderField(label, value string, focused, masked bool) string {
	shown := value
	if masked {
		shown = strings.Repeat("•", utf8.RuneCountInString(value))
	}
	prefix := "  "
	labelStyle := dimStyle
	if focused {
		prefix = inputPromptStyle.Render("> ")
		labelStyle = selectedStyle
	}
	line := prefix + labelStyle.Render(padRight(label, 12))
	if focused {
		return line + normalStyle.Render(shown) + accentStyle.Render("█")
	}
	if value == "" {
		return line + inputPlaceholderStyle.Render("-")
	}
	return line + normalStyle.Render(shown)
}

func padRight(s string, w int) string {
	n := utf8.RuneCountInString(s)
	if n >= w {
		return s
	}
	return s + strings.Repeat(" ", w-n)
}
