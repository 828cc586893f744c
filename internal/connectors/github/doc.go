// Package github implements the repository source for GitHub accounts.
//
// The connector lists every repository of one account and fetches each
// repository's recursive file tree. It is the only production
// implementation of [driven.RepositorySource] and performs no content
// retrieval: the exporter only maps tree entries to raw-content URLs.
//
// # Architecture
//
// The package comprises the following components:
//
//   - Client: handles GitHub API communication with rate limiting
//   - Config: immutable connector settings fixed at construction
//   - RateLimiter: quota tracking plus optional proactive throttling
//   - typed errors: APIError and RateLimitError with Is helpers
//
// # Authentication
//
// A single static token (classic or fine-grained PAT) is supported,
// supplied via Config.Token and injected through an oauth2 static token
// source. Requires 'repo' scope for private repositories. Without a
// token the client runs anonymously: public repositories only and a
// quota of 60 requests per hour instead of 5,000.
//
// # Rate Limiting
//
// Reactive handling is a bounded two-step policy applied to every API
// call. A response of 403 with X-RateLimit-Remaining: 0 triggers one
// sleep until the advertised reset time plus a 3 second margin (never
// less than 5 seconds; 60 seconds assumed when the reset header is
// missing), followed by exactly one retry. A second exhausted response
// is returned to the caller as [RateLimitError]. There is no further
// retrying at this layer.
//
// Proactive throttling is optional: Config.Throttle arms a token
// bucket in front of every request. It is off by default so that an
// export run has no hidden pacing beyond the worker pool bound.
//
// go-github's client-side preflight quota check is bypassed on every
// request; the retry policy above is the single owner of rate-limit
// decisions and requires each attempt to reach the wire.
//
// # Pagination
//
// Repository listing requests pages of Config.PageSize (default 100)
// sorted by full name ascending, and stops at the first empty or short
// page. A failure on any page fails the whole listing with no partial
// results.
//
// # Tree Retrieval
//
// Trees are fetched with the recursive Trees API in one call per
// repository. A not-found response for the plain branch name is
// retried exactly once with the qualified refs/heads form. Trees
// truncated upstream (very large repositories) are returned as-is with
// their Truncated flag set and a warning logged.
//
// # Error Handling
//
// HTTP-level error statuses are data, not panics:
//
//   - quota exhaustion: [RateLimitError], after the single retry
//   - any other non-success status: [APIError]
//   - walk failures of either kind wrap [domain.ErrWalkFailed] so the
//     aggregator folds them into a single error row per repository
//   - transport failures (connection refused, timeout): ordinary
//     wrapped errors, fatal for the call
//
// # Example Usage
//
//	client, err := github.NewClient(github.Config{Token: token})
//	if err != nil {
//	    return err
//	}
//
//	repos, err := client.ListRepositories(ctx, "acme")
//	if err != nil {
//	    return err
//	}
//
//	for _, repo := range repos {
//	    tree, err := client.FetchTree(ctx, "acme", repo.Name, repo.Branch())
//	    // ...
//	}
package github
