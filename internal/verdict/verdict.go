package verdict

// Verdict is the three-state outcome driving both the PR comment and the
// process exit code.
type Verdict string

const (
	Pass Verdict = "pass"
	Warn Verdict = "warn"
	Fail Verdict = "fail"
)

// Rank returns a numeric rank for aggregation (higher = more severe).
func Rank(v Verdict) int {
	switch v {
	case Fail:
		return 2
	case Warn:
		return 1
	case Pass:
		return 0
	default:
		return 0
	}
}

// Normalize maps unrecognized verdict strings to Pass.
func Normalize(v Verdict) Verdict {
	switch v {
	case Pass, Warn, Fail:
		return v
	default:
		return Pass
	}
}

// StructuralIssue describes one broken structural invariant. Issues keep
// discovery order and are never deduplicated.
type StructuralIssue struct {
	Message string
}

// FrontmatterWarning is a lower-severity structural finding: a valid manifest
// whose declared name does not match its folder. Warnings can downgrade a
// pass to warn but never cause fail.
type FrontmatterWarning struct {
	Path    string
	Message string
}

// ThemeViolation names a file the reviewer flagged as off-theme.
type ThemeViolation struct {
	File    string
	Details string
}

// ConsistencyIssue groups a reviewer-reported inconsistency across files.
type ConsistencyIssue struct {
	Category string
	Details  string
	Files    []string
}

// ReviewerResult is the coerced output of the LLM reviewer. It is untrusted
// external input: every field may be its zero value.
type ReviewerResult struct {
	VerdictHint       Verdict
	CoherenceScore    float64
	ConsistencyScore  float64
	Summary           string
	Reasons           []string
	ThemeViolations   []ThemeViolation
	ConsistencyIssues []ConsistencyIssue
	SuggestedFixes    []string
}

// ReviewStatus distinguishes how the reviewer invocation ended.
type ReviewStatus int

const (
	ReviewNotAttempted ReviewStatus = iota
	ReviewSucceeded
	ReviewErrored
)

// Evidence is the full signal bundle the decision is reduced from.
type Evidence struct {
	Issues   []StructuralIssue
	Warnings []FrontmatterWarning
	Review   *ReviewerResult
	Status   ReviewStatus
}

// Policy holds the configuration knobs that influence the decision.
type Policy struct {
	RequireReviewer     bool
	FailOnReviewerError bool
	MinCoherenceScore   float64
	MinConsistencyScore float64
}

// Decide reduces the evidence bundle to a single Verdict. It is a pure
// function: same evidence and policy always yield the same verdict, and once
// any rule escalates to Fail no later signal downgrades it.
func Decide(ev Evidence, pol Policy) Verdict {
	v := Pass
	if len(ev.Issues) > 0 {
		v = Fail
	}

	switch ev.Status {
	case ReviewSucceeded:
		if v != Fail {
			v = Normalize(ev.Review.VerdictHint)
		}
		if ev.Review.CoherenceScore < pol.MinCoherenceScore ||
			ev.Review.ConsistencyScore < pol.MinConsistencyScore {
			v = Fail
		}
	case ReviewNotAttempted:
		// A skipped reviewer only matters when policy demands one.
		if v != Fail && pol.RequireReviewer {
			v = Fail
		}
	case ReviewErrored:
		if v != Fail {
			if pol.FailOnReviewerError {
				v = Fail
			} else {
				v = Warn
			}
		}
	}

	if v == Pass && len(ev.Warnings) > 0 {
		v = Warn
	}
	return v
}
