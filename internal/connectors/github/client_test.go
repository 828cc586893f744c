package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a client at a local test server with an
// injectable clock and recorded sleeps.
func newTestClient(t *testing.T, handler http.Handler, now time.Time) (*Client, *[]time.Duration) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClientWithHTTPClient(Config{APIBaseURL: server.URL + "/"}, server.Client())
	require.NoError(t, err)

	var sleeps []time.Duration
	client.now = func() time.Time { return now }
	client.sleep = func(_ context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		return nil
	}

	return client, &sleeps
}

// writeRateLimited writes a primary rate-limit response: 403 with an
// exhausted quota and the given reset timestamp.
func writeRateLimited(w http.ResponseWriter, reset time.Time) {
	w.Header().Set(HeaderRateLimit, "5000")
	w.Header().Set(HeaderRateRemaining, "0")
	w.Header().Set(HeaderRateReset, strconv.FormatInt(reset.Unix(), 10))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	fmt.Fprint(w, `{"message":"API rate limit exceeded"}`)
}

func TestBackoffUntilReset(t *testing.T) {
	now := time.Unix(1700000000, 0)

	tests := []struct {
		name    string
		resetAt time.Time
		want    time.Duration
	}{
		{
			name:    "reset ahead adds the margin",
			resetAt: now.Add(10 * time.Second),
			want:    13 * time.Second,
		},
		{
			name:    "reset far ahead",
			resetAt: now.Add(30 * time.Minute),
			want:    30*time.Minute + 3*time.Second,
		},
		{
			name:    "reset in the past floors at five seconds",
			resetAt: now.Add(-100 * time.Second),
			want:    5 * time.Second,
		},
		{
			name:    "reset right now floors at five seconds",
			resetAt: now,
			want:    5 * time.Second,
		},
		{
			name:    "missing reset assumes a minute",
			resetAt: time.Time{},
			want:    63 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, backoffUntilReset(tt.resetAt, now))
		})
	}
}

func TestClient_RetriesOnceAfterRateLimit(t *testing.T) {
	now := time.Unix(1700000000, 0)

	var requests atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			writeRateLimited(w, now.Add(10*time.Second))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"name":"tools","default_branch":"main"}]`)
	})

	client, sleeps := newTestClient(t, handler, now)

	repos, err := client.ListRepositories(context.Background(), "acme")

	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, "tools", repos[0].Name)
	assert.Equal(t, int32(2), requests.Load())
	require.Len(t, *sleeps, 1)
	assert.Equal(t, 13*time.Second, (*sleeps)[0])
}

func TestClient_SecondRateLimitPropagates(t *testing.T) {
	now := time.Unix(1700000000, 0)

	var requests atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		writeRateLimited(w, now.Add(10*time.Second))
	})

	client, sleeps := newTestClient(t, handler, now)

	_, err := client.ListRepositories(context.Background(), "acme")

	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
	// Exactly one retry: two requests on the wire, one backoff sleep.
	assert.Equal(t, int32(2), requests.Load())
	assert.Len(t, *sleeps, 1)
}

func TestClient_ForbiddenWithoutExhaustionIsNotRetried(t *testing.T) {
	var requests atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set(HeaderRateRemaining, "42")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"Resource protected"}`)
	})

	client, sleeps := newTestClient(t, handler, time.Unix(1700000000, 0))

	_, err := client.ListRepositories(context.Background(), "acme")

	require.Error(t, err)
	assert.True(t, IsForbidden(err))
	assert.False(t, IsRateLimited(err))
	assert.Equal(t, int32(1), requests.Load())
	assert.Empty(t, *sleeps)
}

func TestClient_SendsVersionedAcceptHeader(t *testing.T) {
	var accept string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[]`)
	})

	client, _ := newTestClient(t, handler, time.Now())

	_, err := client.ListRepositories(context.Background(), "acme")

	require.NoError(t, err)
	assert.Contains(t, accept, "application/vnd.github")
}

func TestClient_UpdatesQuotaFromHeaders(t *testing.T) {
	reset := time.Unix(1700003600, 0)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(HeaderRateLimit, "5000")
		w.Header().Set(HeaderRateRemaining, "4999")
		w.Header().Set(HeaderRateReset, strconv.FormatInt(reset.Unix(), 10))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[]`)
	})

	client, _ := newTestClient(t, handler, time.Now())

	_, err := client.ListRepositories(context.Background(), "acme")
	require.NoError(t, err)

	remaining, limit, resetAt := client.Quota()
	assert.Equal(t, 4999, remaining)
	assert.Equal(t, 5000, limit)
	assert.True(t, resetAt.Equal(reset))
}

func TestClient_TransportErrorIsNotTyped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client, err := NewClientWithHTTPClient(Config{APIBaseURL: server.URL + "/"}, &http.Client{})
	require.NoError(t, err)

	_, err = client.ListRepositories(context.Background(), "acme")

	require.Error(t, err)
	assert.False(t, IsRateLimited(err))
	assert.False(t, IsForbidden(err))
	assert.False(t, IsNotFound(err))
}

func TestSleepContext_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sleepContext(ctx, time.Hour)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestConfig_WithDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   Config
		want Config
	}{
		{
			name: "zero value gets all defaults",
			in:   Config{},
			want: Config{
				APIBaseURL: DefaultAPIBaseURL,
				PageSize:   DefaultPageSize,
				Timeout:    DefaultTimeout,
			},
		},
		{
			name: "missing trailing slash is added",
			in:   Config{APIBaseURL: "https://ghe.example.com/api/v3"},
			want: Config{
				APIBaseURL: "https://ghe.example.com/api/v3/",
				PageSize:   DefaultPageSize,
				Timeout:    DefaultTimeout,
			},
		},
		{
			name: "explicit values survive",
			in:   Config{Token: "tok", PageSize: 30, Throttle: 2, Timeout: time.Second},
			want: Config{
				Token:      "tok",
				APIBaseURL: DefaultAPIBaseURL,
				PageSize:   30,
				Throttle:   2,
				Timeout:    time.Second,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.withDefaults())
		})
	}
}

func TestWrapError_MapsErrorResponse(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	})

	client, _ := newTestClient(t, handler, time.Now())

	_, err := client.ListRepositories(context.Background(), "ghost")

	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Not Found", apiErr.Message)
	assert.Contains(t, apiErr.URL, "/users/ghost/repos")
}

func TestWrapError_RateLimitCarriesResetFromResponse(t *testing.T) {
	now := time.Unix(1700000000, 0)
	reset := now.Add(90 * time.Second)

	var requests atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		writeRateLimited(w, reset)
	})

	client, _ := newTestClient(t, handler, now)

	_, err := client.ListRepositories(context.Background(), "acme")

	require.Error(t, err)
	var rateErr *RateLimitError
	require.ErrorAs(t, err, &rateErr)
	assert.True(t, rateErr.ResetAt.Equal(reset))
	assert.Equal(t, 0, rateErr.Remaining)
	assert.Equal(t, 5000, rateErr.Limit)
}

// marshalJSON is a test helper for handler payloads built from maps.
func marshalJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}
