// pkg/resolver/musicbrainz/musicbrainz.go

package musicbrainz

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cerberussg/songmeta/pkg/httpx"
	"github.com/cerberussg/songmeta/pkg/resolver"
)

const (
	defaultBaseURL   = "https://musicbrainz.org/ws/2"
	defaultUserAgent = "songmeta/0.1.0 (https://github.com/cerberussg/songmeta)"

	// searchLimit caps how many candidates one search returns.
	searchLimit = 5

	// DefaultConfidenceThreshold is the minimum match score to accept a
	// candidate when the caller passes no explicit threshold.
	DefaultConfidenceThreshold = 0.8
)

// Config holds construction parameters for a Resolver. Zero values fall back
// to production defaults; tests override BaseURL with an httptest server.
type Config struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Resolver resolves a raw artist credit to a canonical MusicBrainz identity
// with genre tags. Instances are caller-owned; there is no package-level
// singleton. Artist resolution is not cache-backed.
type Resolver struct {
	client    *http.Client
	baseURL   string
	userAgent string
	logger    zerolog.Logger
}

// New creates a MusicBrainz artist resolver.
func New(cfg Config) *Resolver {
	client := cfg.HTTPClient
	if client == nil {
		client = httpx.NewClient(httpx.Config{})
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Resolver{
		client:    client,
		baseURL:   baseURL,
		userAgent: userAgent,
		logger:    cfg.Logger,
	}
}

// Resolve normalizes the credit string, searches MusicBrainz, scores every
// candidate against the normalized query and fetches genre tags for the best
// one. It returns (nil, nil) when no candidate clears threshold - "no match"
// is an absent result, not an error. A threshold <= 0 uses the default.
//
// Upstream rate limiting surfaces as resolver.ErrRateLimited; any other
// upstream failure surfaces as *resolver.APIError.
func (r *Resolver) Resolve(ctx context.Context, credit string, threshold float64) (*resolver.ResolvedArtist, error) {
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}

	primary := resolver.PrimaryArtist(credit)
	if primary == "" {
		return nil, nil
	}

	r.logger.Info().Str("artist", primary).Msg("resolving artist")

	candidates, err := r.searchArtists(ctx, primary, searchLimit)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		r.logger.Warn().Str("artist", primary).Msg("no MusicBrainz match")
		return nil, nil
	}

	// Select the maximum-scoring candidate. Strict greater-than keeps the
	// first-seen candidate on ties, trusting the search's relevance order.
	var best *Artist
	bestScore := 0.0

	for i := range candidates {
		score := resolver.MatchScore(primary, candidates[i].Name)
		r.logger.Debug().
			Str("candidate", candidates[i].Name).
			Float64("score", score).
			Msg("scored candidate")

		if score > bestScore {
			bestScore = score
			best = &candidates[i]
		}
	}

	if best == nil || bestScore < threshold {
		r.logger.Warn().
			Str("artist", primary).
			Float64("best_score", bestScore).
			Float64("threshold", threshold).
			Msg("best match below confidence threshold")
		return nil, nil
	}

	detail, err := r.getArtist(ctx, best.ID)
	if err != nil {
		return nil, err
	}

	name := detail.Name
	if name == "" {
		name = best.Name
	}

	return &resolver.ResolvedArtist{
		ID:     best.ID,
		Name:   name,
		Genres: extractGenres(detail),
	}, nil
}

// searchArtists queries the MusicBrainz artist search endpoint.
func (r *Resolver) searchArtists(ctx context.Context, name string, limit int) ([]Artist, error) {
	params := url.Values{}
	params.Set("query", name)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("fmt", "json")

	searchURL := fmt.Sprintf("%s/artist?%s", r.baseURL, params.Encode())

	body, err := r.get(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	var result ArtistSearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &resolver.APIError{Message: fmt.Sprintf("failed to parse artist search response: %v", err)}
	}

	return result.Artists, nil
}

// getArtist fetches full artist detail including tag data.
func (r *Resolver) getArtist(ctx context.Context, id string) (*ArtistDetail, error) {
	params := url.Values{}
	params.Set("inc", "tags")
	params.Set("fmt", "json")

	lookupURL := fmt.Sprintf("%s/artist/%s?%s", r.baseURL, url.PathEscape(id), params.Encode())

	body, err := r.get(ctx, lookupURL)
	if err != nil {
		return nil, err
	}

	var detail ArtistDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, &resolver.APIError{Message: fmt.Sprintf("failed to parse artist detail response: %v", err)}
	}

	return &detail, nil
}

// get performs one request and classifies the outcome. The retrying
// transport has already absorbed transient failures by the time a response
// comes back here.
func (r *Resolver) get(ctx context.Context, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &resolver.APIError{Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("musicbrainz: %w", resolver.ErrRateLimited)
	}

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, &resolver.APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(msg)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &resolver.APIError{Message: fmt.Sprintf("failed to read response body: %v", err)}
	}

	return body, nil
}

// extractGenres pulls genre strings out of artist detail. The tag list is
// preferred: entries are lower-cased, trimmed and kept only when longer than
// two characters (short jargon tags are noise). When the tag list yields
// nothing, the semicolon-delimited legacy genre field is used instead. The
// result is deduplicated and sorted.
func extractGenres(detail *ArtistDetail) []string {
	seen := make(map[string]bool)
	var genres []string

	for _, tag := range detail.Tags {
		name := strings.ToLower(strings.TrimSpace(tag.Name))
		if len(name) > 2 && !seen[name] {
			seen[name] = true
			genres = append(genres, name)
		}
	}

	if len(genres) == 0 && detail.Genre != "" {
		for _, g := range strings.Split(detail.Genre, ";") {
			name := strings.ToLower(strings.TrimSpace(g))
			if name != "" && !seen[name] {
				seen[name] = true
				genres = append(genres, name)
			}
		}
	}

	sort.Strings(genres)
	return genres
}
