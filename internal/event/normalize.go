package event

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// MaxDescriptionLen caps stored descriptions; longer text is cut and
	// marked with an ellipsis.
	MaxDescriptionLen = 1000

	ellipsis = "..."
)

// NormalizeCategory converts a raw category attribute to title case so the
// same category always stores identically, e.g. "live music" -> "Live Music".
func NormalizeCategory(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	return cases.Title(language.English).String(raw)
}

// TruncateDescription limits a description to MaxDescriptionLen characters,
// appending an ellipsis marker when text was cut. The bound counts
// characters, not bytes.
func TruncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxDescriptionLen {
		return s
	}
	return string(runes[:MaxDescriptionLen]) + ellipsis
}
