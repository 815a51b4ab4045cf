// Package utils provides small string helpers shared across the pipeline.
package utils

import (
	"strings"
	"unicode"
)

// NormalizeKey lowercases and trims a title so the same game matches across
// both datasets.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeWhitespace replaces runs of whitespace with a single space.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Capitalize lowercases the string and upper-cases its first rune.
func Capitalize(s string) string {
	s = strings.ToLower(s)

	for _, r := range s {
		return string(unicode.ToUpper(r)) + s[len(string(r)):]
	}

	return s
}
