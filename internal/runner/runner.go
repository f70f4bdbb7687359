package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/skillworks/skillgate/internal/check"
	"github.com/skillworks/skillgate/internal/config"
	"github.com/skillworks/skillgate/internal/event"
	"github.com/skillworks/skillgate/internal/github"
	"github.com/skillworks/skillgate/internal/inventory"
	"github.com/skillworks/skillgate/internal/report"
	"github.com/skillworks/skillgate/internal/reviewer"
	"github.com/skillworks/skillgate/internal/verdict"
)

// GitHubAPI is the slice of the GitHub client the pipeline needs.
type GitHubAPI interface {
	ListChangedFiles(ctx context.Context, prNumber, max int) ([]github.ChangedFile, error)
	FileContent(ctx context.Context, owner, repo, path, ref string) (string, error)
	ListRootDirs(ctx context.Context, ref string) ([]string, error)
	FindMarkedComment(ctx context.Context, prNumber int, marker string) (int64, bool, error)
	CreateComment(ctx context.Context, prNumber int, body string) error
	UpdateComment(ctx context.Context, commentID int64, body string) error
}

// Reviewer produces one coherence judgment for the pull request.
type Reviewer interface {
	Invoke(ctx context.Context, in reviewer.Input) (*verdict.ReviewerResult, verdict.ReviewStatus)
}

// Runner executes the whole gate pipeline for one pull-request event.
type Runner struct {
	API      GitHubAPI
	Reviewer Reviewer // nil when no completion service is configured
	Config   config.Config
	Owner    string
	Repo     string
	Log      *slog.Logger
}

func (r *Runner) logger() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return slog.Default()
}

// Run checks one pull request end to end and returns the final verdict. A
// returned error is fatal: change-set retrieval and comment publishing
// failures, nothing else.
func (r *Runner) Run(ctx context.Context, pr *event.PullRequest) (verdict.Verdict, error) {
	log := r.logger()

	// Guard clauses exit before any outbound call.
	if reason := event.SkipReason(pr, r.Config.SkipLabels); reason != "" {
		log.Info("skipping check", "reason", reason)
		return verdict.Pass, nil
	}

	files, err := r.API.ListChangedFiles(ctx, pr.Number, r.Config.MaxChangedFiles)
	if err != nil {
		return verdict.Fail, fmt.Errorf("retrieving change set: %w", err)
	}
	log.Info("retrieved change set", "pr", pr.Number, "files", len(files))

	structural := check.Run(ctx, check.Params{
		Fetcher:      r.API,
		BaseOwner:    r.Owner,
		BaseRepo:     r.Repo,
		BaseRef:      pr.BaseRef,
		HeadOwner:    pr.HeadOwner,
		HeadRepo:     pr.HeadRepo,
		HeadSHA:      pr.HeadSHA,
		NonSkillDirs: r.Config.NonSkillDirs,
	}, files)
	log.Info("structural checks done", "issues", len(structural.Issues), "warnings", len(structural.Warnings))

	ev := verdict.Evidence{
		Issues:   structural.Issues,
		Warnings: structural.Warnings,
		Status:   verdict.ReviewNotAttempted,
	}

	if r.Reviewer != nil {
		inv := inventory.Collect(ctx, r.API, r.Owner, r.Repo, pr.BaseRef, r.Config.NonSkillDirs)
		ev.Review, ev.Status = r.Reviewer.Invoke(ctx, reviewer.Input{
			Title:           pr.Title,
			Body:            pr.Body,
			Inventory:       inv,
			StructuralNotes: structuralNotes(structural),
			Files:           files,
		})
		log.Info("coherence review done", "errored", ev.Status == verdict.ReviewErrored)
	} else {
		log.Info("coherence review skipped", "reason", "no completion service configured")
	}

	v := verdict.Decide(ev, verdict.Policy{
		RequireReviewer:     r.Config.RequireOpenAI,
		FailOnReviewerError: r.Config.FailOnOpenAIError,
		MinCoherenceScore:   r.Config.MinCoherenceScore,
		MinConsistencyScore: r.Config.MinConsistencyScore,
	})
	log.Info("verdict decided", "verdict", string(v))

	body := report.Render(v, ev)
	if !r.commentEnabled(v) {
		log.Info("comment publishing disabled for verdict", "verdict", string(v))
		log.Info("rendered report", "body", body)
		return v, nil
	}

	if err := r.publish(ctx, pr.Number, body); err != nil {
		return v, fmt.Errorf("publishing comment: %w", err)
	}
	return v, nil
}

// publish upserts the marked comment: edit the first existing one, else create.
func (r *Runner) publish(ctx context.Context, prNumber int, body string) error {
	id, found, err := r.API.FindMarkedComment(ctx, prNumber, report.Marker)
	if err != nil {
		return err
	}
	if found {
		r.logger().Info("updating existing comment", "id", id)
		return r.API.UpdateComment(ctx, id, body)
	}
	r.logger().Info("creating comment", "pr", prNumber)
	return r.API.CreateComment(ctx, prNumber, body)
}

func (r *Runner) commentEnabled(v verdict.Verdict) bool {
	switch v {
	case verdict.Pass:
		return r.Config.Comment.OnPass
	case verdict.Warn:
		return r.Config.Comment.OnWarn
	case verdict.Fail:
		return r.Config.Comment.OnFail
	default:
		return true
	}
}

// structuralNotes flattens the structural findings into plain lines for the
// reviewer prompt.
func structuralNotes(res check.Result) []string {
	var notes []string
	for _, issue := range res.Issues {
		notes = append(notes, issue.Message)
	}
	for _, w := range res.Warnings {
		notes = append(notes, fmt.Sprintf("%s: %s", w.Path, w.Message))
	}
	return notes
}
