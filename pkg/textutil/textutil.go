package textutil

import (
	"strings"
)

// Normalize prepares a recognized utterance for routing:
// lower-cased, surrounding whitespace trimmed, inner runs collapsed.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// ContainsWord reports whether word occurs in s as a whole word.
// Both arguments are expected to already be normalized.
func ContainsWord(s, word string) bool {
	if word == "" {
		return true
	}
	for _, f := range strings.Fields(s) {
		if f == word {
			return true
		}
	}
	return false
}

// StripWord removes the first whole-word occurrence of word from s
// and renormalizes the remainder.
func StripWord(s, word string) string {
	if word == "" {
		return Normalize(s)
	}
	fields := strings.Fields(s)
	out := fields[:0]
	stripped := false
	for _, f := range fields {
		if !stripped && f == word {
			stripped = true
			continue
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}
