package textutil

import (
	"strings"
	"unicode"
)

// Separator is the replacement character for unsafe runes in file names.
const Separator = '_'

// SanitizeComponent makes a string safe for use inside a file name.
// Whitespace, control characters, and the path-unsafe set \ / : * ? " < > |
// become a single separator; runs of separators collapse to one and
// leading/trailing separators are trimmed. An empty or all-unsafe input
// yields the empty string.
func SanitizeComponent(value string) string {
	return sanitize(value, isUnsafeComponentRune)
}

// SanitizeIdentifier reduces an arbitrary identifier (typically a media URI)
// to a conservative file name: every rune outside letters, digits, '.' and
// '-' becomes a single separator, collapsed and trimmed.
func SanitizeIdentifier(value string) string {
	return sanitize(value, func(r rune) bool {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return false
		case r == '.' || r == '-':
			return false
		default:
			return true
		}
	})
}

func sanitize(value string, unsafe func(rune) bool) string {
	var b strings.Builder
	b.Grow(len(value))
	pendingSep := false
	for _, r := range value {
		if unsafe(r) || r == Separator {
			pendingSep = true
			continue
		}
		if pendingSep && b.Len() > 0 {
			b.WriteRune(Separator)
		}
		pendingSep = false
		b.WriteRune(r)
	}
	return b.String()
}

func isUnsafeComponentRune(r rune) bool {
	if unicode.IsSpace(r) || unicode.IsControl(r) {
		return true
	}
	switch r {
	case '\\', '/', ':', '*', '?', '"', '<', '>', '|':
		return true
	}
	return false
}
