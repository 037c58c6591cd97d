package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Preview shortens s to at most n runes for log lines and titles, collapsing
// whitespace and appending "..." when it cuts.
func Preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n])) + "..."
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsBlank reports whether s is empty after trimming the characters a
// browser's String.prototype.trim removes: Unicode space separators, the
// ASCII control whitespace, U+FEFF and the line terminators. U+0085 is
// not among them.
func IsBlank(s string) bool {
	return strings.TrimFunc(s, isTrimSpace) == ""
}

func isTrimSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\ufeff', '\u2028', '\u2029':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}
