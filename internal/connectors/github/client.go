package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/rawdex-labs/rawdex-cli/internal/core/ports/driven"
	"github.com/rawdex-labs/rawdex-cli/internal/logger"
)

const (
	// BackoffMargin is added on top of the advertised reset time before
	// the single rate-limit retry.
	BackoffMargin = 3 * time.Second

	// BackoffFloor is the minimum rate-limit backoff.
	BackoffFloor = 5 * time.Second

	// BackoffFallback is assumed as time-until-reset when the upstream
	// omits the reset timestamp.
	BackoffFallback = time.Minute
)

// retryState tracks the two-step rate-limit policy of one API call:
// an initial attempt followed by at most one retry.
type retryState int

const (
	retryInitial retryState = iota
	retryRetried
)

// Client wraps the go-github client with the retry and pagination
// behaviour the exporter needs. It implements driven.RepositorySource.
type Client struct {
	gh          *gh.Client
	cfg         Config
	rateLimiter *RateLimiter

	// now and sleep are fixed in production and replaced in tests so
	// the backoff can be observed without waiting.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

var _ driven.RepositorySource = (*Client)(nil)

// NewClient creates a GitHub API client from the given config.
// With a token the client authenticates via a static token source;
// without one it performs anonymous requests.
func NewClient(cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()

	httpClient := &http.Client{}
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: cfg.Token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	httpClient.Timeout = cfg.Timeout

	return NewClientWithHTTPClient(cfg, httpClient)
}

// NewClientWithHTTPClient creates a GitHub client with a custom
// http.Client. Useful for tests that point APIBaseURL at a local
// server, and for callers that bring their own transport.
func NewClientWithHTTPClient(cfg Config, httpClient *http.Client) (*Client, error) {
	cfg = cfg.withDefaults()

	ghClient := gh.NewClient(httpClient)
	if cfg.APIBaseURL != DefaultAPIBaseURL {
		base, err := url.Parse(cfg.APIBaseURL)
		if err != nil {
			return nil, fmt.Errorf("parsing API base URL: %w", err)
		}
		ghClient.BaseURL = base
	}

	return &Client{
		gh:          ghClient,
		cfg:         cfg,
		rateLimiter: NewRateLimiter(cfg.Throttle),
		now:         time.Now,
		sleep:       sleepContext,
	}, nil
}

// Quota returns the API quota last advertised by response headers.
func (c *Client) Quota() (remaining, limit int, resetAt time.Time) {
	return c.rateLimiter.Remaining(), c.rateLimiter.Limit(), c.rateLimiter.ResetTime()
}

// call runs one API operation under the rate-limit policy: wait for the
// proactive throttle, issue the request, and on quota exhaustion sleep
// until the advertised reset and retry exactly once. A second exhausted
// response, and every other failure, is returned to the caller.
//
// go-github's own client-side preflight check is bypassed so that every
// attempt reaches the wire and the retry decision stays here.
func (c *Client) call(ctx context.Context, operation string, fn func(ctx context.Context) (*gh.Response, error)) error {
	ctx = context.WithValue(ctx, gh.BypassRateLimitCheck, true)

	state := retryInitial
	for {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}

		resp, err := fn(ctx)
		c.updateRateLimitFromResponse(resp)
		if err == nil {
			return nil
		}

		wrapped := c.wrapError(err, operation)
		var rateErr *RateLimitError
		if !errors.As(wrapped, &rateErr) || state != retryInitial {
			return wrapped
		}

		wait := backoffUntilReset(rateErr.ResetAt, c.now())
		logger.Warn("rate limit exhausted during %s, waiting %s before retry", operation, wait)

		state = retryRetried
		if err := c.sleep(ctx, wait); err != nil {
			return fmt.Errorf("rate limit backoff: %w", err)
		}
	}
}

// backoffUntilReset computes the sleep before the single rate-limit
// retry: time until reset plus BackoffMargin, floored at BackoffFloor.
// A zero reset timestamp is taken as BackoffFallback from now.
func backoffUntilReset(resetAt, now time.Time) time.Duration {
	if resetAt.IsZero() {
		resetAt = now.Add(BackoffFallback)
	}
	wait := resetAt.Sub(now) + BackoffMargin
	if wait < BackoffFloor {
		wait = BackoffFloor
	}
	return wait
}

// sleepContext blocks for d or until the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// updateRateLimitFromResponse updates the rate limiter from GitHub response headers.
func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to our error types. HTTP-level
// failures become typed values the caller inspects; transport failures
// stay ordinary wrapped errors.
func (c *Client) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	// Primary quota exhaustion (403 with X-RateLimit-Remaining: 0).
	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		}
	}

	// Secondary limits carry Retry-After and are not retried here;
	// they surface as plain API errors.
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		status := http.StatusForbidden
		if abuseErr.Response != nil {
			status = abuseErr.Response.StatusCode
		}
		return &APIError{
			StatusCode: status,
			Message:    abuseErr.Message,
			URL:        requestURL(abuseErr.Response),
		}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		return &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
			URL:        requestURL(ghErr.Response),
		}
	}

	return fmt.Errorf("%s: %w", operation, err)
}

// requestURL extracts the request URL from a response, tolerating bare
// responses constructed in tests.
func requestURL(resp *http.Response) string {
	if resp == nil || resp.Request == nil || resp.Request.URL == nil {
		return ""
	}
	return resp.Request.URL.String()
}
