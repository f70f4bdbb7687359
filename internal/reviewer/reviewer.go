package reviewer

import (
	"context"
	"fmt"

	"github.com/skillworks/skillgate/internal/verdict"
)

// standardFix is suggested whenever the invocation itself failed.
const standardFix = "Re-run the check once the completion service is reachable, or review the change manually against the rubric."

// Invoker runs one reviewer invocation per pull request.
type Invoker struct {
	Completer    Completer
	Rubric       string
	MaxDiffChars int
}

// Invoke builds the prompt, issues a single completion request, and parses
// the result. Invocation failures never abort the run: they return a
// synthesized warn-level result tagged ReviewErrored so policy can decide
// what it means.
func (iv *Invoker) Invoke(ctx context.Context, in Input) (*verdict.ReviewerResult, verdict.ReviewStatus) {
	content, err := iv.Completer.Complete(ctx, systemPrompt(iv.Rubric), buildUserPrompt(in, iv.MaxDiffChars))
	if err != nil {
		return erroredResult(err), verdict.ReviewErrored
	}

	result, err := parseResult(content)
	if err != nil {
		return erroredResult(err), verdict.ReviewErrored
	}
	return result, verdict.ReviewSucceeded
}

func erroredResult(err error) *verdict.ReviewerResult {
	return &verdict.ReviewerResult{
		VerdictHint:    verdict.Warn,
		Summary:        fmt.Sprintf("Reviewer invocation failed: %v", err),
		SuggestedFixes: []string{standardFix},
	}
}
