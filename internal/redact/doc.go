// Package redact strips secrets from diff text before it is sent to the
// completion service. Detection is regex-heuristic: API keys, JWTs, private
// key blocks, bearer tokens, and provider-specific token formats.
package redact
