package reviewer

import (
	"fmt"
	"strings"

	"github.com/skillworks/skillgate/internal/github"
	"github.com/skillworks/skillgate/internal/inventory"
	"github.com/skillworks/skillgate/internal/redact"
)

const roleText = `You are a meticulous librarian for a curated skill library. Your job is to judge whether a pull request keeps the library thematically coherent and internally consistent.

Score two dimensions from 0 to 100:
1. coherence: do the changed skills fit the library's theme and each other?
2. consistency: do naming, structure, and tone match the existing skills?

You MUST respond with ONLY a JSON object. No markdown fences, no prose outside the JSON. The object has this exact structure:
{
  "verdict": "pass|warn|fail",
  "coherence_score": 0-100,
  "consistency_score": 0-100,
  "summary": "One-paragraph judgment",
  "reasons": ["short reason", "..."],
  "theme_violations": [{"file": "path", "details": "why it is off-theme"}],
  "consistency_issues": [{"category": "naming|structure|tone", "details": "what disagrees", "files": ["path"]}],
  "suggested_fixes": ["concrete fix", "..."]
}

Empty arrays are fine. Do not invent files that are not in the diff.`

const truncationNotice = "\n\n[diff truncated at the configured character limit]"

// systemPrompt combines the fixed role description with the externally
// supplied rubric text, which is opaque to this component.
func systemPrompt(rubric string) string {
	if strings.TrimSpace(rubric) == "" {
		return roleText
	}
	return roleText + "\n\n## Review rubric\n\n" + rubric
}

// Input is everything the reviewer sees about the pull request.
type Input struct {
	Title           string
	Body            string
	Inventory       []inventory.Entry
	StructuralNotes []string
	Files           []github.ChangedFile
}

// buildUserPrompt assembles the user instruction: PR metadata, the existing
// skill inventory, the structural findings so far as plain notes, and one
// concatenated diff bounded by maxDiffChars.
func buildUserPrompt(in Input, maxDiffChars int) string {
	var b strings.Builder

	b.WriteString("## Pull request\n\n")
	fmt.Fprintf(&b, "Title: %s\n", in.Title)
	if strings.TrimSpace(in.Body) != "" {
		fmt.Fprintf(&b, "\n%s\n", in.Body)
	}

	b.WriteString("\n## Existing skills on the base branch\n\n")
	if len(in.Inventory) == 0 {
		b.WriteString("(none)\n")
	}
	for _, e := range in.Inventory {
		fmt.Fprintf(&b, "- %s: %s\n", e.Name, e.Description)
	}

	b.WriteString("\n## Structural check notes\n\n")
	if len(in.StructuralNotes) == 0 {
		b.WriteString("(no structural findings)\n")
	}
	for _, note := range in.StructuralNotes {
		fmt.Fprintf(&b, "- %s\n", note)
	}

	b.WriteString("\n## Diff\n\n")
	b.WriteString(assembleDiff(in.Files, maxDiffChars))

	return b.String()
}

// assembleDiff interleaves per-file headers with patch text, redacts secrets,
// and truncates to maxDiffChars with a trailing notice.
func assembleDiff(files []github.ChangedFile, maxDiffChars int) string {
	var b strings.Builder
	for _, f := range files {
		fmt.Fprintf(&b, "=== %s (%s) ===\n", f.Path, f.Status)
		if f.Patch == "" {
			b.WriteString("(patch unavailable)\n")
		} else {
			b.WriteString(f.Patch)
			b.WriteString("\n")
		}
	}

	diff := redact.Secrets(b.String())
	if maxDiffChars > 0 && len(diff) > maxDiffChars {
		diff = diff[:maxDiffChars] + truncationNotice
	}
	return diff
}
