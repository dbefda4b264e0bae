// Package http provides Atlassian REST API clients implementing
// atlascrape.PageSource (Confluence) and atlascrape.IssueSource (Jira).
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/connexin/atlascrape"
	"golang.org/x/time/rate"
)

// DefaultTimeout is the per-request ceiling. Exceeding it counts as a
// transient failure under the same backoff policy as 5xx responses.
const DefaultTimeout = 30 * time.Second

// DefaultRateLimit is the proactive request rate against a single
// Atlassian instance.
const DefaultRateLimit = 5.0

// DefaultRetryDelays returns the backoff delays for transient failures:
// 1s, 2s, 4s (three retries, four total attempts).
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Config holds the connection settings for one Atlassian instance.
// Credentials are passed explicitly so tests can run against mock
// servers with fake credentials.
type Config struct {
	BaseURL  string
	Username string
	APIKey   string
}

// Validate returns an error if the config is incomplete.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return atlascrape.Errorf(atlascrape.EINVALID, "base URL required")
	}
	if c.Username == "" || c.APIKey == "" {
		return atlascrape.Errorf(atlascrape.EINVALID, "username and API key required")
	}
	return nil
}

// Client is the shared REST base client: HTTP Basic auth, token-bucket
// rate limiting, and retry with exponential backoff on transient
// failures. Each service owns its own Client instance, so concurrent
// fetchers never share connection state.
type Client struct {
	baseURL     string
	username    string
	apiKey      string
	httpClient  *http.Client
	limiter     *rate.Limiter
	retryDelays []time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
// Defaults to DefaultTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetryDelays sets the backoff delays between retry attempts.
// This is useful for testing without waiting for real delays.
func WithRetryDelays(delays []time.Duration) Option {
	return func(c *Client) {
		c.retryDelays = delays
	}
}

// WithRateLimit sets the proactive requests-per-second limit.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewClient creates a new base client for the given instance.
func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		username:    cfg.Username,
		apiKey:      cfg.APIKey,
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		limiter:     rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
		retryDelays: DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured instance URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// get performs a GET against the given path, decoding the JSON response
// into out. Transient failures (429, 5xx, timeouts) are retried with
// exponential backoff; a Retry-After header stretches the wait when it
// exceeds the scheduled delay. Authentication and query errors are
// returned immediately.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	maxAttempts := len(c.retryDelays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		retryAfter, err := c.do(ctx, path, query, out)
		if err == nil {
			return nil
		}
		lastErr = err

		if atlascrape.ErrorCode(err) != atlascrape.EUNAVAILABLE {
			return err
		}
		if attempt >= maxAttempts-1 {
			break
		}

		delay := c.retryDelays[attempt]
		if retryAfter > delay {
			delay = retryAfter
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return lastErr
}

// do performs a single request attempt. The returned duration is the
// server-requested Retry-After, zero when absent.
func (c *Client) do(ctx context.Context, path string, query url.Values, out any) (time.Duration, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, atlascrape.Errorf(atlascrape.EINVALID, "invalid request for %s: %v", path, err)
	}
	req.SetBasicAuth(c.username, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		// Connection failures and client timeouts are retryable.
		return 0, atlascrape.Errorf(atlascrape.EUNAVAILABLE, "request %s: %v", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return 0, atlascrape.Errorf(atlascrape.EINTERNAL, "decode response from %s: %v", path, err)
		}
		return 0, nil

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return 0, atlascrape.Errorf(atlascrape.EUNAUTHORIZED,
			"authentication failed for %s: HTTP %d (check username and API key)", path, resp.StatusCode)

	case resp.StatusCode == http.StatusBadRequest:
		return 0, atlascrape.Errorf(atlascrape.EINVALID,
			"bad request for %s: HTTP 400: %s", path, errorBody(resp.Body))

	case resp.StatusCode == http.StatusNotFound:
		return 0, atlascrape.Errorf(atlascrape.ENOTFOUND, "resource %s not found", path)

	case resp.StatusCode == http.StatusTooManyRequests:
		return parseRetryAfter(resp), atlascrape.Errorf(atlascrape.EUNAVAILABLE,
			"rate limited on %s: HTTP 429", path)

	case resp.StatusCode >= 500:
		return parseRetryAfter(resp), atlascrape.Errorf(atlascrape.EUNAVAILABLE,
			"server error on %s: HTTP %d", path, resp.StatusCode)

	default:
		return 0, atlascrape.Errorf(atlascrape.EINTERNAL,
			"unexpected status for %s: HTTP %d", path, resp.StatusCode)
	}
}

// parseRetryAfter reads a Retry-After header in seconds form.
func parseRetryAfter(resp *http.Response) time.Duration {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// errorBody reads a truncated error payload for diagnostics.
func errorBody(r io.Reader) string {
	const maxErrorBody = 512
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(data) == 0 {
		return "(no body)"
	}
	return strings.TrimSpace(string(data))
}

// pathf builds an escaped API path.
func pathf(format string, args ...any) string {
	escaped := make([]any, len(args))
	for i, a := range args {
		escaped[i] = url.PathEscape(fmt.Sprint(a))
	}
	return fmt.Sprintf(format, escaped...)
}
