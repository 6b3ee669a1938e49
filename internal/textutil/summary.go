package textutil

import "strings"

// Summarize collapses whitespace in s and truncates it to max runes,
// appending an ellipsis when shortened. A non-positive max disables
// truncation.
func Summarize(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
