package answer

import (
	"regexp"
	"strings"
)

var (
	// Keep word characters, whitespace and basic punctuation; drop the rest.
	specialCharRegex = regexp.MustCompile(`[^\w\s\-.?!]`)
	whitespaceRegex  = regexp.MustCompile(`\s+`)
)

// Normalize lowercases text, strips special characters and collapses
// whitespace runs into single spaces. It is applied identically to the
// question and every corpus field so matching stays case- and
// punctuation-insensitive. Idempotent; empty input yields empty output.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(text)
	text = specialCharRegex.ReplaceAllString(text, "")
	text = whitespaceRegex.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
