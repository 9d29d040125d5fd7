// pkg/httpx/transport.go - Retrying HTTP transport with exponential backoff

package httpx

import (
	"context"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultMaxAttempts is the total number of tries per request.
	DefaultMaxAttempts = 3

	// DefaultBackoffFactor is the base unit for exponential backoff:
	// the delay before retry n is factor * 2^n.
	DefaultBackoffFactor = time.Second

	// DefaultTimeout bounds each individual request.
	DefaultTimeout = 30 * time.Second
)

// defaultRetryStatuses is the transient-failure set. A 429 is retried like
// the 5xx statuses; classifying an exhausted 429 as a rate-limit condition
// is the caller's job, not the transport's.
var defaultRetryStatuses = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// Transport is an http.RoundTripper decorator that retries transient
// failures. Only GET and POST are retried (POST is used for idempotent
// search in this domain). The final response is returned as-is so callers
// can classify exhausted-retry statuses themselves.
type Transport struct {
	Base          http.RoundTripper
	MaxAttempts   int
	BackoffFactor time.Duration
	RetryStatuses map[int]bool

	// sleep is swapped out in tests to observe the backoff schedule.
	sleep func(ctx context.Context, d time.Duration) error
}

// Config holds the retry policy for a client.
type Config struct {
	MaxAttempts   int
	BackoffFactor time.Duration
	Timeout       time.Duration
}

// NewClient builds an http.Client whose transport retries transient failures
// per cfg. Zero-valued fields fall back to the defaults above.
func NewClient(cfg Config) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &Transport{
			MaxAttempts:   cfg.MaxAttempts,
			BackoffFactor: cfg.BackoffFactor,
		},
	}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet && req.Method != http.MethodPost {
		return t.base().RoundTrip(req)
	}

	// A body that cannot be replayed cannot be retried.
	if req.Body != nil && req.GetBody == nil {
		return t.base().RoundTrip(req)
	}

	maxAttempts := t.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	var resp *http.Response
	var err error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			if serr := t.wait(req.Context(), attempt-1); serr != nil {
				return nil, serr
			}
			if req.GetBody != nil {
				body, berr := req.GetBody()
				if berr != nil {
					return nil, berr
				}
				req.Body = body
			}
		}

		resp, err = t.base().RoundTrip(req)
		if err != nil {
			// Transient connection failure; retry.
			continue
		}

		if !t.retryable(resp.StatusCode) || attempt == maxAttempts-1 {
			return resp, nil
		}

		// Drain so the connection can be reused.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}

	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *Transport) retryable(status int) bool {
	if t.RetryStatuses != nil {
		return t.RetryStatuses[status]
	}
	return defaultRetryStatuses[status]
}

// wait sleeps for factor * 2^retry, honoring context cancellation.
func (t *Transport) wait(ctx context.Context, retry int) error {
	factor := t.BackoffFactor
	if factor <= 0 {
		factor = DefaultBackoffFactor
	}
	delay := factor * (1 << uint(retry))

	if t.sleep != nil {
		return t.sleep(ctx, delay)
	}

	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
