package reviewer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/skillworks/skillgate/internal/verdict"
)

type fakeCompleter struct {
	content string
	err     error
	system  string
	user    string
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string) (string, error) {
	f.system = system
	f.user = user
	return f.content, f.err
}

func TestInvokeSucceeded(t *testing.T) {
	fake := &fakeCompleter{content: `{"verdict": "pass", "coherence_score": 95, "consistency_score": 90, "summary": "Fits well."}`}
	iv := &Invoker{Completer: fake, Rubric: "stay on theme", MaxDiffChars: 1000}

	result, status := iv.Invoke(context.Background(), Input{Title: "add skill"})
	if status != verdict.ReviewSucceeded {
		t.Fatalf("status = %v, want succeeded", status)
	}
	if result.VerdictHint != verdict.Pass || result.CoherenceScore != 95 {
		t.Errorf("result = %+v", result)
	}
	if !strings.Contains(fake.system, "stay on theme") {
		t.Error("rubric not passed through to the system prompt")
	}
	if !strings.Contains(fake.user, "add skill") {
		t.Error("PR title not in the user prompt")
	}
}

func TestInvokeCompletionError(t *testing.T) {
	iv := &Invoker{Completer: &fakeCompleter{err: errors.New("connection refused")}}

	result, status := iv.Invoke(context.Background(), Input{})
	if status != verdict.ReviewErrored {
		t.Fatalf("status = %v, want errored", status)
	}
	if result.VerdictHint != verdict.Warn {
		t.Errorf("VerdictHint = %q, want warn", result.VerdictHint)
	}
	if !strings.Contains(result.Summary, "connection refused") {
		t.Errorf("Summary = %q, want the underlying error", result.Summary)
	}
	if len(result.SuggestedFixes) != 1 {
		t.Errorf("SuggestedFixes = %+v", result.SuggestedFixes)
	}
}

func TestInvokeUnparseableOutput(t *testing.T) {
	iv := &Invoker{Completer: &fakeCompleter{content: "I refuse to answer in JSON."}}

	result, status := iv.Invoke(context.Background(), Input{})
	if status != verdict.ReviewErrored {
		t.Fatalf("status = %v, want errored", status)
	}
	if result.VerdictHint != verdict.Warn {
		t.Errorf("VerdictHint = %q, want warn", result.VerdictHint)
	}
}
