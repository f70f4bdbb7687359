package report

import (
	"fmt"
	"strings"

	"github.com/skillworks/skillgate/internal/verdict"
)

// Marker is the hidden HTML comment that identifies the gate's PR comment so
// reruns update it instead of stacking new ones.
const Marker = "<!-- skillgate:verdict -->"

// Render produces the full markdown comment body for one check run. The
// marker is always the first line; every other section appears only when it
// has content.
func Render(v verdict.Verdict, ev verdict.Evidence) string {
	var b strings.Builder

	b.WriteString(Marker)
	b.WriteString("\n")
	fmt.Fprintf(&b, "## Skill Gate: %s %s\n\n", verdictIcon(v), strings.ToUpper(string(v)))

	if len(ev.Issues) > 0 {
		fmt.Fprintf(&b, "### Structural issues (%d)\n\n", len(ev.Issues))
		for _, issue := range ev.Issues {
			fmt.Fprintf(&b, "- :red_circle: %s\n", issue.Message)
		}
		b.WriteString("\n")
	}

	if len(ev.Warnings) > 0 {
		fmt.Fprintf(&b, "### Frontmatter warnings (%d)\n\n", len(ev.Warnings))
		for _, w := range ev.Warnings {
			fmt.Fprintf(&b, "- :yellow_circle: `%s`: %s\n", w.Path, w.Message)
		}
		b.WriteString("\n")
	}

	switch ev.Status {
	case verdict.ReviewSucceeded:
		writeReview(&b, ev.Review)
	case verdict.ReviewErrored:
		b.WriteString("### Coherence review\n\n")
		if ev.Review != nil && ev.Review.Summary != "" {
			fmt.Fprintf(&b, ":warning: %s\n\n", ev.Review.Summary)
		} else {
			b.WriteString(":warning: The reviewer could not be reached.\n\n")
		}
		writeList(&b, "Suggested fixes", suggestedFixes(ev.Review))
	case verdict.ReviewNotAttempted:
		b.WriteString("_Coherence review skipped (no reviewer configured)._\n\n")
	}

	b.WriteString("---\n")
	b.WriteString("*Posted automatically by skillgate. Rerun the check after pushing fixes.*\n")

	return b.String()
}

func writeReview(b *strings.Builder, r *verdict.ReviewerResult) {
	b.WriteString("### Coherence review\n\n")

	b.WriteString("| Dimension | Score |\n")
	b.WriteString("|-----------|-------|\n")
	fmt.Fprintf(b, "| Coherence | %.0f |\n", r.CoherenceScore)
	fmt.Fprintf(b, "| Consistency | %.0f |\n\n", r.ConsistencyScore)

	if r.Summary != "" {
		fmt.Fprintf(b, "%s\n\n", r.Summary)
	}

	writeList(b, "Reasons", r.Reasons)

	if len(r.ThemeViolations) > 0 {
		fmt.Fprintf(b, "**Theme violations:**\n\n")
		for _, tv := range r.ThemeViolations {
			fmt.Fprintf(b, "- `%s`: %s\n", tv.File, tv.Details)
		}
		b.WriteString("\n")
	}

	if len(r.ConsistencyIssues) > 0 {
		fmt.Fprintf(b, "**Consistency issues:**\n\n")
		for _, ci := range r.ConsistencyIssues {
			fmt.Fprintf(b, "- **%s**: %s", ci.Category, ci.Details)
			if len(ci.Files) > 0 {
				fmt.Fprintf(b, " (`%s`)", strings.Join(ci.Files, "`, `"))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	writeList(b, "Suggested fixes", r.SuggestedFixes)
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "**%s:**\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}

func suggestedFixes(r *verdict.ReviewerResult) []string {
	if r == nil {
		return nil
	}
	return r.SuggestedFixes
}

func verdictIcon(v verdict.Verdict) string {
	switch v {
	case verdict.Pass:
		return ":white_check_mark:"
	case verdict.Warn:
		return ":warning:"
	case verdict.Fail:
		return ":x:"
	default:
		return ":white_circle:"
	}
}
