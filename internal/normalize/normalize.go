// Package normalize prepares extracted article text for the completion
// endpoint: whitespace cleanup plus a word budget that respects model
// input limits. All functions are pure.
package normalize

import "strings"

// DefaultWordBudget bounds the text sent to the completion endpoint.
const DefaultWordBudget = 2900

// Text collapses every run of whitespace, newlines included, into a
// single space and trims the ends.
func Text(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return strings.TrimSpace(b.String())
}

// TruncateWords keeps at most max words. Non-positive max means
// DefaultWordBudget.
func TruncateWords(s string, max int) string {
	if max <= 0 {
		max = DefaultWordBudget
	}
	words := strings.Fields(s)
	if len(words) <= max {
		return s
	}
	return strings.Join(words[:max], " ")
}
