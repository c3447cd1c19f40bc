package match

import (
	"slices"
	"strings"
	"unicode"
)

// Suggestion thresholds.
const (
	// DefaultMinScore is the minimum similarity for a name to be suggested.
	DefaultMinScore = 0.6
	// DefaultMaxSuggestions caps the names listed in a report.
	DefaultMaxSuggestions = 3
)

// Levenshtein computes the edit distance between two strings.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) > len(b) {
		a, b = b, a
	}

	if len(a) == 0 {
		return len(b)
	}

	// Two rows of the matrix, sized by the shorter string.
	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// Similarity is 1 - distance/maxLen over normalized identifiers.
func Similarity(a, b string) float64 {
	a, b = NormalizeIdent(a), NormalizeIdent(b)
	if a == "" && b == "" {
		return 1
	}

	return 1 - float64(Levenshtein(a, b))/float64(max(len(a), len(b)))
}

// NormalizeIdent lowercases an identifier and drops separators, so
// "Greeter_Baz", "greeterBaz" and "greeter-baz" normalize alike.
func NormalizeIdent(s string) string {
	var sb strings.Builder

	sb.Grow(len(s))

	for _, r := range s {
		if r == '_' || r == '-' || r == ' ' {
			continue
		}

		sb.WriteRune(unicode.ToLower(r))
	}

	return sb.String()
}

// Suggest returns up to DefaultMaxSuggestions names similar to name, most
// similar first.
func Suggest(name string, names []string) []string {
	type scored struct {
		name  string
		score float64
	}

	var hits []scored

	for _, n := range names {
		if n == name {
			continue
		}

		if s := Similarity(name, n); s >= DefaultMinScore {
			hits = append(hits, scored{n, s})
		}
	}

	slices.SortStableFunc(hits, func(a, b scored) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		default:
			return strings.Compare(a.name, b.name)
		}
	})

	out := make([]string, 0, min(len(hits), DefaultMaxSuggestions))
	for _, h := range hits[:min(len(hits), DefaultMaxSuggestions)] {
		out = append(out, h.name)
	}

	return out
}
