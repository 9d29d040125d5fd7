// pkg/resolver/score.go - Name similarity scoring

package resolver

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// MatchScore computes a confidence score in [0, 1] between a query name and a
// candidate name. Rules are evaluated in order, first match wins:
//
//	exact match (case-insensitive)      -> 1.0
//	candidate starts with query         -> 0.9
//	query is a substring of candidate   -> 0.7
//	normalized similarity >= 0.8        -> similarity * 0.5
//	otherwise                           -> 0.0
//
// The fuzzy band intentionally scores below the substring band: a near-exact
// edit-distance match lands in 0.4-0.5 while a short substring hit scores
// 0.7. Changing the bands would change which artists clear the confidence
// threshold, so they stay as-is.
func MatchScore(query, candidate string) float64 {
	q := strings.ToLower(query)
	c := strings.ToLower(candidate)

	if q == c {
		return 1.0
	}
	if strings.HasPrefix(c, q) {
		return 0.9
	}
	if strings.Contains(c, q) {
		return 0.7
	}

	maxLen := utf8.RuneCountInString(q)
	if n := utf8.RuneCountInString(c); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}

	distance := levenshtein.ComputeDistance(q, c)
	similarity := 1.0 - float64(distance)/float64(maxLen)

	if similarity >= 0.8 {
		return similarity * 0.5
	}

	return 0.0
}
