package github

import (
	"strings"
	"time"
)

const (
	// DefaultAPIBaseURL is the public GitHub REST endpoint.
	DefaultAPIBaseURL = "https://api.github.com/"

	// DefaultPageSize is the listing page size.
	DefaultPageSize = 100

	// DefaultTimeout is the default HTTP request timeout, applied per
	// attempt. The rate-limit backoff sleeps between attempts and is
	// not bounded by it.
	DefaultTimeout = 30 * time.Second
)

// Config holds the immutable settings of the GitHub connector.
// Values are fixed at construction; the client never mutates them.
type Config struct {
	// Token authenticates API requests. Empty means anonymous access:
	// public repositories only and a 60 requests per hour quota.
	Token string

	// APIBaseURL overrides the REST endpoint, e.g. for GitHub
	// Enterprise or tests. A missing trailing slash is added.
	// Default: DefaultAPIBaseURL.
	APIBaseURL string

	// PageSize is the number of repositories requested per listing
	// page. Default: DefaultPageSize.
	PageSize int

	// Throttle is the proactive request rate in requests per second.
	// Zero disables proactive throttling; reactive rate-limit handling
	// is always on.
	Throttle float64

	// Timeout bounds each HTTP attempt. Default: DefaultTimeout.
	Timeout time.Duration
}

// withDefaults returns a copy of the config with zero values replaced
// by defaults.
func (c Config) withDefaults() Config {
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	if !strings.HasSuffix(c.APIBaseURL, "/") {
		c.APIBaseURL += "/"
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}
