package redact

import "regexp"

const placeholder = "[REDACTED]"

// secretPatterns are regex heuristics for secret shapes that commonly leak
// into content diffs.
var secretPatterns = []*regexp.Regexp{
	// Key/secret/token/password assignments
	regexp.MustCompile(`(?i)(api[_-]?key|secret|token|password|passwd|credential)\s*[:=]\s*["']?([A-Za-z0-9/+=_-]{16,})["']?`),
	// AWS access key IDs
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	// Bearer tokens
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`),
	// JWTs
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),
	// Private key blocks
	regexp.MustCompile(`-----BEGIN\s+(RSA\s+|EC\s+)?PRIVATE KEY-----`),
	// GitHub tokens
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`),
	// OpenAI-style keys
	regexp.MustCompile(`sk-[A-Za-z0-9_-]{20,}`),
	// Slack tokens
	regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`),
}

// Secrets replaces detected secrets in text with [REDACTED] before the text
// leaves the process.
func Secrets(text string) string {
	result := text
	for _, pat := range secretPatterns {
		result = pat.ReplaceAllString(result, placeholder)
	}
	return result
}
