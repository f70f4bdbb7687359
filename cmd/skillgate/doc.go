// Skillgate is a CI merge gate for curated skill libraries on GitHub.
//
// It enforces per-folder SKILL.md manifest invariants on every pull request,
// optionally asks an OpenAI-compatible completion service whether the change
// keeps the library coherent, and posts a single pass/warn/fail comment that
// is updated in place on reruns.
//
// Usage:
//
//	skillgate check --policy .github/skillgate.json --rubric RUBRIC.md
//	skillgate lint [dir]     # validate manifests in a local checkout
//	skillgate version
//
// check expects GITHUB_TOKEN, GITHUB_REPOSITORY, and GITHUB_EVENT_PATH in the
// environment; OPENAI_API_KEY enables the coherence review.
package main
