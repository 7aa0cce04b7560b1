package internal

import (
	"strings"
	"unicode/utf8"
)

// Truncate shortens s to at most max runes. When text has to be cut the
// last rune is replaced with an ellipsis so the result still fits in max.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}

	runes := []rune(s)
	return strings.TrimRight(string(runes[:max-1]), " \t\n") + "…"
}

// CollapseSpace trims s and folds every run of whitespace into one space.
// Selections copied from a page often carry hard line breaks.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
