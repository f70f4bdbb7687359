// Package manifest parses and validates SKILL.md manifest files.
//
// A manifest opens with a frontmatter block delimited by lines containing
// exactly "---". The block must declare non-empty name and description
// values; any deviation is reported as a human-readable parse failure rather
// than an error. [StrictIssues] layers the repository naming conventions
// (folder match, hyphen-case, length limits) on top for local linting.
package manifest
