// pkg/resolver/resolver.go - Shared types and error taxonomy

package resolver

import (
	"errors"
	"fmt"
)

// ErrRateLimited is returned when an upstream API signals load-shedding (429)
// after retries are exhausted. It is never cached: a rate limit is not
// evidence of absence. Callers match it with errors.Is.
var ErrRateLimited = errors.New("rate limit exceeded")

// APIError carries an upstream failure that is neither a rate limit nor an
// authoritative "not found". Callers match it with errors.As.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error: %s", e.Message)
}

// ResolvedArtist is a canonical artist identity from the metadata database.
// Genres is lowercase, deduplicated and sorted.
type ResolvedArtist struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Genres []string `json:"genres"`
}
