// Package cli wires together the Cobra command tree for the skillgate binary.
//
// It defines the root command and the check, lint, and version subcommands,
// reads the CI environment and policy configuration, invokes the gate
// pipeline, and returns deterministic exit codes for CI gating.
package cli
