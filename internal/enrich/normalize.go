package enrich

import (
	"regexp"
	"strings"
)

var whitespace = regexp.MustCompile(`\s+`)

// Normalize collapses whitespace runs into single spaces and trims the result.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}
