// Package check enforces the deterministic structural invariants of a change
// set: every touched top-level skill directory must contain a SKILL.md
// manifest with valid frontmatter, and every touched manifest must parse.
//
// Findings are accumulated in discovery order and never deduplicated. A
// manifest whose declared name merely disagrees with its folder produces a
// lower-severity warning instead of an issue.
package check
