package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	gogithub "github.com/google/go-github/v68/github"
)

const pageSize = 100

// ChangedFile is one changed-file record from a pull request.
type ChangedFile struct {
	Path   string
	Status string
	Patch  string
}

// NotFoundError marks a resource missing at a specific ref.
type NotFoundError struct {
	Path string
	Ref  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found at ref %s", e.Path, e.Ref)
}

// IsNotFound checks if an error is or wraps a NotFoundError or a GitHub 404.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	var ghErr *gogithub.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil &&
		ghErr.Response.StatusCode == http.StatusNotFound
}

// Client wraps the GitHub REST API for one repository.
type Client struct {
	gh    *gogithub.Client
	owner string
	repo  string
}

// NewClient creates a client for owner/repo authenticated with token.
func NewClient(token, owner, repo string) *Client {
	return &Client{
		gh:    gogithub.NewClient(nil).WithAuthToken(token),
		owner: owner,
		repo:  repo,
	}
}

// NewFromGitHub wraps an existing go-github client. Used by tests to point at
// an httptest server.
func NewFromGitHub(gh *gogithub.Client, owner, repo string) *Client {
	return &Client{gh: gh, owner: owner, repo: repo}
}

// ListChangedFiles returns up to max changed-file records for the pull
// request, fetched in fixed-size pages in ascending order. It stops early on
// a short page or when the cap is reached. Any API error aborts with no
// partial result.
func (c *Client) ListChangedFiles(ctx context.Context, prNumber, max int) ([]ChangedFile, error) {
	var changed []ChangedFile
	opts := &gogithub.ListOptions{PerPage: pageSize}

	for {
		files, resp, err := c.gh.PullRequests.ListFiles(ctx, c.owner, c.repo, prNumber, opts)
		if err != nil {
			return nil, fmt.Errorf("listing PR files: %w", err)
		}

		for _, f := range files {
			changed = append(changed, ChangedFile{
				Path:   f.GetFilename(),
				Status: f.GetStatus(),
				Patch:  f.GetPatch(),
			})
			if len(changed) >= max {
				return changed, nil
			}
		}

		if len(files) < pageSize || resp.NextPage == 0 {
			return changed, nil
		}
		opts.Page = resp.NextPage
	}
}

// FileContent fetches the decoded text of a file at ref in owner/repo. The
// repository may differ from the client's own (fork head repositories). A 404
// is returned as a NotFoundError.
func (c *Client) FileContent(ctx context.Context, owner, repo, path, ref string) (string, error) {
	file, _, _, err := c.gh.Repositories.GetContents(ctx, owner, repo, path,
		&gogithub.RepositoryContentGetOptions{Ref: ref})
	if err != nil {
		if IsNotFound(err) {
			return "", &NotFoundError{Path: path, Ref: ref}
		}
		return "", fmt.Errorf("fetching %s at %s: %w", path, ref, err)
	}
	if file == nil {
		return "", fmt.Errorf("%s at %s is not a file", path, ref)
	}

	content, err := file.GetContent()
	if err != nil {
		return "", fmt.Errorf("decoding %s at %s: %w", path, ref, err)
	}
	return content, nil
}

// ListRootDirs returns the top-level directory names of the client's
// repository at ref.
func (c *Client) ListRootDirs(ctx context.Context, ref string) ([]string, error) {
	_, entries, _, err := c.gh.Repositories.GetContents(ctx, c.owner, c.repo, "",
		&gogithub.RepositoryContentGetOptions{Ref: ref})
	if err != nil {
		return nil, fmt.Errorf("listing repository root at %s: %w", ref, err)
	}

	var dirs []string
	for _, e := range entries {
		if e.GetType() == "dir" {
			dirs = append(dirs, e.GetName())
		}
	}
	return dirs, nil
}

// FindMarkedComment scans the pull request's comments for one containing
// marker and returns its ID. Pages until exhausted; any match suffices.
func (c *Client) FindMarkedComment(ctx context.Context, prNumber int, marker string) (int64, bool, error) {
	opts := &gogithub.IssueListCommentsOptions{
		ListOptions: gogithub.ListOptions{PerPage: pageSize},
	}

	for {
		comments, resp, err := c.gh.Issues.ListComments(ctx, c.owner, c.repo, prNumber, opts)
		if err != nil {
			return 0, false, fmt.Errorf("listing PR comments: %w", err)
		}

		for _, cm := range comments {
			if containsMarker(cm.GetBody(), marker) {
				return cm.GetID(), true, nil
			}
		}

		if resp.NextPage == 0 {
			return 0, false, nil
		}
		opts.Page = resp.NextPage
	}
}

// CreateComment posts a new comment on the pull request.
func (c *Client) CreateComment(ctx context.Context, prNumber int, body string) error {
	_, _, err := c.gh.Issues.CreateComment(ctx, c.owner, c.repo, prNumber,
		&gogithub.IssueComment{Body: gogithub.Ptr(body)})
	if err != nil {
		return fmt.Errorf("creating PR comment: %w", err)
	}
	return nil
}

// UpdateComment replaces the body of an existing comment.
func (c *Client) UpdateComment(ctx context.Context, commentID int64, body string) error {
	_, _, err := c.gh.Issues.EditComment(ctx, c.owner, c.repo, commentID,
		&gogithub.IssueComment{Body: gogithub.Ptr(body)})
	if err != nil {
		return fmt.Errorf("updating PR comment %d: %w", commentID, err)
	}
	return nil
}

func containsMarker(body, marker string) bool {
	return marker != "" && strings.Contains(body, marker)
}
