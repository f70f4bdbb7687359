package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skillworks/skillgate/internal/manifest"
)

var lintCmd = &cobra.Command{
	Use:   "lint [dir]",
	Short: "Validate skill manifests in a local working tree",
	Long:  "Lint walks the top-level skill folders of a local checkout and validates every SKILL.md against the manifest and naming rules, with no network access.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		runLint(root)
		return nil
	},
}

func runLint(root string) {
	problems, checked, err := lintTree(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitFailure
		return
	}

	for _, p := range problems {
		fmt.Fprintf(os.Stdout, "%s\n", p)
	}
	fmt.Fprintf(os.Stdout, "checked %d skill folder(s), %d problem(s)\n", checked, len(problems))

	if len(problems) > 0 {
		exitCode = ExitFailure
	}
}

// lintTree validates every top-level skill folder under root. ReadDir returns
// entries sorted by name, so output order is stable.
func lintTree(root string) (problems []string, checked int, err error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", root, err)
	}

	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		checked++

		manifestPath := filepath.Join(root, e.Name(), manifest.Filename)
		data, err := os.ReadFile(manifestPath)
		if err != nil {
			if os.IsNotExist(err) {
				problems = append(problems, fmt.Sprintf("%s: missing %s", e.Name(), manifest.Filename))
			} else {
				problems = append(problems, fmt.Sprintf("%s: %v", e.Name(), err))
			}
			continue
		}

		parsed := manifest.Parse(string(data))
		if !parsed.Valid() {
			problems = append(problems, fmt.Sprintf("%s: %s", e.Name(), parsed.Reason))
			continue
		}

		for _, issue := range manifest.StrictIssues(parsed.Frontmatter, e.Name()) {
			problems = append(problems, fmt.Sprintf("%s: %s", e.Name(), issue))
		}
	}

	return problems, checked, nil
}
