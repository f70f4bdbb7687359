// Package reviewer invokes the LLM completion service to judge a pull
// request's thematic coherence and consistency against a supplied rubric.
//
// The prompt bundles the PR metadata, the base-branch skill inventory, the
// structural findings so far, and one bounded concatenated diff with secrets
// redacted. The model's response is untrusted: JSON is extracted strictly
// first, then by brace-substring fallback, and every field is coerced
// independently to a safe default. An invocation that fails outright is
// downgraded to a synthesized warn-level result, never a crash.
package reviewer
