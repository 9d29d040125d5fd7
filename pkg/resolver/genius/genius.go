// pkg/resolver/genius/genius.go

package genius

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cerberussg/songmeta/pkg/cache"
	"github.com/cerberussg/songmeta/pkg/httpx"
	"github.com/cerberussg/songmeta/pkg/resolver"
)

const (
	defaultBaseURL   = "https://api.genius.com"
	defaultUserAgent = "songmeta/0.1.0 (https://github.com/cerberussg/songmeta)"

	// searchPerPage caps how many search hits one query returns.
	searchPerPage = 5
)

// ErrMissingToken is returned by New when no API token is available.
// Tokens come from the GENIUS_API_TOKEN environment variable or config;
// see https://genius.com/api-clients.
var ErrMissingToken = errors.New("genius API token not provided")

// Config holds construction parameters for a Client. Token is required;
// everything else has production defaults. Tests override BaseURL with an
// httptest server. A nil Cache disables caching.
type Config struct {
	Token      string
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
	Cache      *cache.Cache
	Logger     zerolog.Logger
}

// Client fetches song lyrics from the Genius API, caching both positive and
// negative outcomes so repeated queries skip the network.
type Client struct {
	token     string
	baseURL   string
	userAgent string
	client    *http.Client
	cache     *cache.Cache
	logger    zerolog.Logger
}

// SongHit is one search result: the song page URL plus its canonical title
// and primary artist as Genius knows them.
type SongHit struct {
	URL    string
	Title  string
	Artist string
}

// New creates a Genius client. It fails fast when no token is configured,
// since every search request requires bearer authorization.
func New(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, ErrMissingToken
	}

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

	return &Client{
		token:     cfg.Token,
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    client,
		cache:     cfg.Cache,
		logger:    cfg.Logger,
	}, nil
}

// searchResponse mirrors the subset of the Genius search payload we read.
type searchResponse struct {
	Response struct {
		Hits []struct {
			Result struct {
				URL           string `json:"url"`
				Title         string `json:"title"`
				PrimaryArtist struct {
					Name string `json:"name"`
				} `json:"primary_artist"`
			} `json:"result"`
		} `json:"hits"`
	} `json:"response"`
}

// SearchSong searches Genius for a song and returns the first hit, which the
// API orders by relevance and is trusted as authoritative - the lyrics path
// deliberately does no candidate scoring. A nil hit with nil error means the
// song is not on Genius.
func (c *Client) SearchSong(ctx context.Context, title, artistCredit string) (*SongHit, error) {
	primary := resolver.PrimaryArtist(artistCredit)

	params := url.Values{}
	params.Set("q", title+" "+primary)
	params.Set("per_page", strconv.Itoa(searchPerPage))

	searchURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &resolver.APIError{Message: fmt.Sprintf("search request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("genius: %w", resolver.ErrRateLimited)
	}

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, &resolver.APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(msg)),
		}
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &resolver.APIError{Message: fmt.Sprintf("failed to parse search response: %v", err)}
	}

	if len(result.Response.Hits) == 0 {
		return nil, nil
	}

	song := result.Response.Hits[0].Result
	return &SongHit{
		URL:    song.URL,
		Title:  song.Title,
		Artist: song.PrimaryArtist.Name,
	}, nil
}

// FetchLyrics downloads a song page and extracts the lyric text. It returns
// an error when the page cannot be fetched or yields no usable text; callers
// on the resolution path treat both as not-found.
func (c *Client) FetchLyrics(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch lyrics page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("lyrics page returned status %d", resp.StatusCode)
	}

	lyrics, err := extractLyrics(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse lyrics page: %w", err)
	}
	if lyrics == "" {
		return "", fmt.Errorf("no lyrics found on page: %s", pageURL)
	}

	return lyrics, nil
}

// GetLyrics is the main entry point: cache check, search, page fetch, cache
// store. An empty string with nil error means the lyrics do not exist -
// absence is a result, not an error. Rate limiting from the search step
// propagates as resolver.ErrRateLimited and is never cached; other search
// failures propagate as *resolver.APIError. A fetch or extraction failure
// after a successful search is treated as not-found and cached negatively.
func (c *Client) GetLyrics(ctx context.Context, title, artistCredit string) (string, error) {
	key := cache.Fingerprint(title, artistCredit)

	if c.cache != nil {
		if entry, ok := c.cache.Lookup(key); ok {
			if entry.NotFound {
				c.logger.Debug().Str("title", title).Str("artist", artistCredit).Msg("cache hit (not found)")
				return "", nil
			}
			c.logger.Debug().Str("title", title).Str("artist", artistCredit).Msg("cache hit")
			return entry.Lyrics, nil
		}
	}

	hit, err := c.SearchSong(ctx, title, artistCredit)
	if err != nil {
		return "", err
	}

	if hit == nil {
		c.logger.Info().Str("title", title).Str("artist", artistCredit).Msg("song not found on Genius")
		c.storeNegative(key)
		return "", nil
	}

	lyrics, err := c.FetchLyrics(ctx, hit.URL)
	if err != nil {
		c.logger.Warn().Str("url", hit.URL).Err(err).Msg("failed to get lyrics")
		c.storeNegative(key)
		return "", nil
	}

	if c.cache != nil {
		c.cache.Store(key, &cache.Entry{
			Lyrics: lyrics,
			URL:    hit.URL,
			Title:  hit.Title,
			Artist: hit.Artist,
		})
	}

	c.logger.Info().Str("title", title).Str("artist", artistCredit).Msg("fetched lyrics")
	return lyrics, nil
}

func (c *Client) storeNegative(key string) {
	if c.cache != nil {
		c.cache.Store(key, &cache.Entry{NotFound: true})
	}
}
