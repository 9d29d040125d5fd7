// pkg/resolver/normalize.go - Multi-artist credit normalization

package resolver

import "strings"

// multiArtistDelimiters are checked in priority order, not by position in the
// input. Each is lowercase; matching is case-insensitive.
var multiArtistDelimiters = []string{
	" featuring ",
	" feat. ",
	" ft. ",
	" x ",
	" vs ",
	" vs. ",
	" and ",
	" & ",
	", ",
	" (",
	")",
}

// PrimaryArtist extracts the primary (leftmost) artist from a credit string
// that may name several collaborators, e.g. "Jay-Z & Linkin Park" or
// "Artist (feat. Other)". The first matching delimiter truncates the string
// and scanning continues on the truncated result, so delimiters compound.
// Input with no delimiter is returned trimmed and otherwise unchanged;
// empty or whitespace-only input yields "".
func PrimaryArtist(credit string) string {
	result := strings.TrimSpace(credit)

	for _, delim := range multiArtistDelimiters {
		if idx := strings.Index(strings.ToLower(result), delim); idx >= 0 {
			result = result[:idx]
		}
	}

	// A dangling parenthetical can survive when it opens without a space.
	if idx := strings.Index(result, "("); idx >= 0 {
		result = result[:idx]
	}

	return strings.TrimSpace(result)
}
