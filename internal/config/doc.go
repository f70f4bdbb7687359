// Package config loads and merges the skillgate policy configuration.
//
// Precedence (highest to lowest):
//  1. Environment variables (SKILLGATE_MODEL, SKILLGATE_MAX_CHANGED_FILES,
//     SKILLGATE_MAX_DIFF_CHARS)
//  2. The JSON policy file supplied to the check command
//  3. Built-in defaults
//
// Every policy field is optional; [Default] documents the effective values
// when nothing is configured.
package config
