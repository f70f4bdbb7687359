package event

import (
	"encoding/json"
	"fmt"
	"os"

	gogithub "github.com/google/go-github/v68/github"
)

// PullRequest is the immutable context read once from the trigger event.
type PullRequest struct {
	Number    int
	Title     string
	Body      string
	Draft     bool
	Labels    []string
	HeadOwner string
	HeadRepo  string
	HeadSHA   string
	BaseRef   string
}

// Load reads and parses the serialized trigger event at path. A nil
// PullRequest with nil error means the event carries no pull-request object.
func Load(path string) (*PullRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading event payload: %w", err)
	}
	return Parse(data)
}

// Parse extracts the pull-request context from a raw event document.
func Parse(data []byte) (*PullRequest, error) {
	var ev gogithub.PullRequestEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("parsing event payload: %w", err)
	}

	pr := ev.GetPullRequest()
	if pr == nil || pr.Number == nil {
		return nil, nil
	}

	labels := make([]string, 0, len(pr.Labels))
	for _, l := range pr.Labels {
		labels = append(labels, l.GetName())
	}

	return &PullRequest{
		Number:    pr.GetNumber(),
		Title:     pr.GetTitle(),
		Body:      pr.GetBody(),
		Draft:     pr.GetDraft(),
		Labels:    labels,
		HeadOwner: pr.GetHead().GetRepo().GetOwner().GetLogin(),
		HeadRepo:  pr.GetHead().GetRepo().GetName(),
		HeadSHA:   pr.GetHead().GetSHA(),
		BaseRef:   pr.GetBase().GetRef(),
	}, nil
}

// SkipReason returns a human-readable reason to skip the run, or "" when the
// pull request should be checked. Skipping is a successful fast path, not an
// error.
func SkipReason(pr *PullRequest, skipLabels []string) string {
	if pr == nil {
		return "event carries no pull request"
	}
	if pr.Draft {
		return "pull request is a draft"
	}
	for _, skip := range skipLabels {
		for _, l := range pr.Labels {
			if l == skip {
				return fmt.Sprintf("pull request carries skip label %q", l)
			}
		}
	}
	return ""
}
