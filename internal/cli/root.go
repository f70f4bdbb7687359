package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes
const (
	ExitSuccess    = 0
	ExitFailure    = 1
	ExitUsageError = 2
)

var rootCmd = &cobra.Command{
	Use:   "skillgate",
	Short: "Merge gate for skill library pull requests",
	Long:  "Skillgate enforces per-folder manifest invariants and an LLM coherence review on skill library pull requests, posting a single verdict comment and exiting nonzero on fail.",
}

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print skillgate version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "skillgate version %s\n", version)
	},
}
