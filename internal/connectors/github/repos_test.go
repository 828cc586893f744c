package github

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawdex-labs/rawdex-cli/internal/core/domain"
)

// repoPage builds a listing page of n generated repositories.
func repoPage(t *testing.T, prefix string, n int) []byte {
	t.Helper()
	page := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		page = append(page, map[string]any{
			"name":           fmt.Sprintf("%s-%03d", prefix, i),
			"default_branch": "main",
		})
	}
	return marshalJSON(t, page)
}

func TestListRepositories_StopsOnShortPage(t *testing.T) {
	var requests atomic.Int32
	var secondPageQuery string

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch requests.Add(1) {
		case 1:
			w.Write(repoPage(t, "full", DefaultPageSize))
		case 2:
			secondPageQuery = r.URL.RawQuery
			w.Write(repoPage(t, "tail", 30))
		default:
			t.Error("unexpected request past the short page")
		}
	})

	client, _ := newTestClient(t, handler, time.Now())

	repos, err := client.ListRepositories(context.Background(), "acme")

	require.NoError(t, err)
	assert.Len(t, repos, DefaultPageSize+30)
	assert.Equal(t, int32(2), requests.Load())
	assert.Contains(t, secondPageQuery, "page=2")
	// Listing order is preserved across pages.
	assert.Equal(t, "full-000", repos[0].Name)
	assert.Equal(t, "tail-029", repos[len(repos)-1].Name)
}

func TestListRepositories_StopsOnEmptyFirstPage(t *testing.T) {
	var requests atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[]`)
	})

	client, _ := newTestClient(t, handler, time.Now())

	repos, err := client.ListRepositories(context.Background(), "acme")

	require.NoError(t, err)
	assert.Empty(t, repos)
	assert.Equal(t, int32(1), requests.Load())
}

func TestListRepositories_RequestsAllTypesSortedByFullName(t *testing.T) {
	var query string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[]`)
	})

	client, _ := newTestClient(t, handler, time.Now())

	_, err := client.ListRepositories(context.Background(), "acme")

	require.NoError(t, err)
	assert.Contains(t, query, "type=all")
	assert.Contains(t, query, "sort=full_name")
	assert.Contains(t, query, "direction=asc")
	assert.Contains(t, query, "per_page=100")
}

func TestListRepositories_PageFailureIsFatal(t *testing.T) {
	var requests atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if requests.Add(1) == 1 {
			w.Write(repoPage(t, "full", DefaultPageSize))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"message":"boom"}`)
	})

	client, _ := newTestClient(t, handler, time.Now())

	repos, err := client.ListRepositories(context.Background(), "acme")

	require.Error(t, err)
	// No partial results on a failed listing.
	assert.Nil(t, repos)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestListRepositories_MapsRepositoryFields(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"name":"tools","default_branch":"develop","private":true,"fork":true,"archived":true},
			{"name":"bare"}
		]`)
	})

	client, _ := newTestClient(t, handler, time.Now())

	repos, err := client.ListRepositories(context.Background(), "acme")

	require.NoError(t, err)
	require.Len(t, repos, 2)
	assert.Equal(t, domain.Repository{
		Name:          "tools",
		DefaultBranch: "develop",
		Private:       true,
		Fork:          true,
		Archived:      true,
	}, repos[0])
	// A listing that omits the default branch falls back via Branch().
	assert.Equal(t, "bare", repos[1].Name)
	assert.Empty(t, repos[1].DefaultBranch)
	assert.Equal(t, "main", repos[1].Branch())
}

func TestListRepositories_CancelledContext(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[]`)
	})

	client, _ := newTestClient(t, handler, time.Now())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListRepositories(ctx, "acme")

	assert.ErrorIs(t, err, context.Canceled)
}
