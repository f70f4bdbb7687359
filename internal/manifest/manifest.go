package manifest

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Filename is the required per-directory manifest document.
const Filename = "SKILL.md"

const (
	maxNameLength        = 64
	maxDescriptionLength = 1024
)

var namePattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Frontmatter holds the declared fields of a manifest header block.
type Frontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// ParseResult is the outcome of parsing a manifest file. Either Frontmatter
// is populated (Valid() true) or Reason explains what was broken.
type ParseResult struct {
	Frontmatter Frontmatter
	Reason      string
}

// Valid reports whether the manifest parsed cleanly.
func (r ParseResult) Valid() bool { return r.Reason == "" }

func invalid(format string, args ...any) ParseResult {
	return ParseResult{Reason: fmt.Sprintf(format, args...)}
}

// Parse validates the frontmatter of a manifest file. The file must open with
// a line containing exactly "---", followed by a block closed by another
// "---" line, and the block must declare non-empty name and description
// values. Parse is a pure function of the file text.
func Parse(content string) ParseResult {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != "---" {
		return invalid("manifest must start with a '---' frontmatter delimiter")
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r") == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return invalid("frontmatter block is not terminated by a closing '---' line")
	}

	block := strings.Join(lines[1:end], "\n")

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return invalid("frontmatter is not valid YAML: %v", err)
	}

	fm.Name = strings.TrimSpace(fm.Name)
	fm.Description = strings.TrimSpace(fm.Description)

	if fm.Name == "" {
		return invalid("frontmatter 'name' is missing or empty")
	}
	if fm.Description == "" {
		return invalid("frontmatter 'description' is missing or empty")
	}

	return ParseResult{Frontmatter: fm}
}

// StrictIssues applies the repository-wide naming rules on top of a valid
// Frontmatter: the declared name must match the folder, be hyphen-case, and
// both fields must respect length limits. Returns one message per violation.
func StrictIssues(fm Frontmatter, dir string) []string {
	var issues []string

	if fm.Name != dir {
		issues = append(issues, fmt.Sprintf("name %q must match skill folder name %q", fm.Name, dir))
	}
	if !namePattern.MatchString(fm.Name) {
		issues = append(issues, fmt.Sprintf("name %q should be hyphen-case (lowercase letters, digits, and hyphens only)", fm.Name))
	} else if strings.HasPrefix(fm.Name, "-") || strings.HasSuffix(fm.Name, "-") || strings.Contains(fm.Name, "--") {
		issues = append(issues, fmt.Sprintf("name %q cannot start/end with a hyphen or contain consecutive hyphens", fm.Name))
	}
	if len(fm.Name) > maxNameLength {
		issues = append(issues, fmt.Sprintf("name is too long (%d characters, maximum %d)", len(fm.Name), maxNameLength))
	}
	if strings.ContainsAny(fm.Description, "<>") {
		issues = append(issues, "description cannot contain angle brackets (< or >)")
	}
	if len(fm.Description) > maxDescriptionLength {
		issues = append(issues, fmt.Sprintf("description is too long (%d characters, maximum %d)", len(fm.Description), maxDescriptionLength))
	}

	return issues
}
