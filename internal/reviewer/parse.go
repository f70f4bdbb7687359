package reviewer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/skillworks/skillgate/internal/verdict"
)

// extractObject parses model output into raw JSON fields: strict parse first,
// then the substring between the first '{' and the last '}'.
func extractObject(content string) (map[string]json.RawMessage, error) {
	content = strings.TrimSpace(content)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &raw); err == nil {
		return raw, nil
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in reviewer output")
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("reviewer output is not valid JSON: %w", err)
	}
	return raw, nil
}

// parseResult coerces untrusted model output into a ReviewerResult. Every
// field degrades independently to its zero value; only a missing JSON object
// is an error.
func parseResult(content string) (*verdict.ReviewerResult, error) {
	raw, err := extractObject(content)
	if err != nil {
		return nil, err
	}

	return &verdict.ReviewerResult{
		VerdictHint:       verdict.Verdict(strings.ToLower(asString(raw["verdict"]))),
		CoherenceScore:    asNumber(raw["coherence_score"]),
		ConsistencyScore:  asNumber(raw["consistency_score"]),
		Summary:           asString(raw["summary"]),
		Reasons:           asStrings(raw["reasons"]),
		ThemeViolations:   asThemeViolations(raw["theme_violations"]),
		ConsistencyIssues: asConsistencyIssues(raw["consistency_issues"]),
		SuggestedFixes:    asStrings(raw["suggested_fixes"]),
	}, nil
}

func asString(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}

func asNumber(raw json.RawMessage) float64 {
	if raw == nil {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	// Models occasionally quote their numbers.
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return n
		}
	}
	return 0
}

func asStrings(raw json.RawMessage) []string {
	if raw == nil {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	var out []string
	for _, item := range items {
		if s := asString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func asThemeViolations(raw json.RawMessage) []verdict.ThemeViolation {
	if raw == nil {
		return nil
	}
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	var out []verdict.ThemeViolation
	for _, item := range items {
		v := verdict.ThemeViolation{
			File:    asString(item["file"]),
			Details: asString(item["details"]),
		}
		if v.File != "" || v.Details != "" {
			out = append(out, v)
		}
	}
	return out
}

func asConsistencyIssues(raw json.RawMessage) []verdict.ConsistencyIssue {
	if raw == nil {
		return nil
	}
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	var out []verdict.ConsistencyIssue
	for _, item := range items {
		issue := verdict.ConsistencyIssue{
			Category: asString(item["category"]),
			Details:  asString(item["details"]),
			Files:    asStrings(item["files"]),
		}
		if issue.Category != "" || issue.Details != "" || len(issue.Files) > 0 {
			out = append(out, issue)
		}
	}
	return out
}
