// Package github wraps the GitHub REST API calls the gate needs: paginated
// changed-file listing, file content at an exact revision, and issue-comment
// listing/creation/update for the idempotent verdict comment.
//
// All calls go through google/go-github; non-2xx responses surface as its
// structured errors, with 404s additionally normalized to [NotFoundError] so
// callers can distinguish "missing manifest" from transport failures.
package github
