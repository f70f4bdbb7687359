package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skillworks/skillgate/internal/config"
	"github.com/skillworks/skillgate/internal/event"
	"github.com/skillworks/skillgate/internal/github"
	"github.com/skillworks/skillgate/internal/reviewer"
	"github.com/skillworks/skillgate/internal/runner"
	"github.com/skillworks/skillgate/internal/verdict"
)

var (
	flagPolicy string
	flagRubric string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the pull request from the CI trigger event",
	Long:  "Check reads the pull-request event from GITHUB_EVENT_PATH, runs the structural and coherence checks, upserts the verdict comment, and exits 1 on fail.",
	RunE: func(cmd *cobra.Command, args []string) error {
		runCheck()
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVar(&flagPolicy, "policy", "", "Policy config file (JSON)")
	checkCmd.Flags().StringVar(&flagRubric, "rubric", "", "Review rubric file (plain text)")
}

// checkEnv is the required CI environment, gathered before any side effect.
type checkEnv struct {
	token     string
	owner     string
	repo      string
	eventPath string
}

func readCheckEnv() (checkEnv, error) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return checkEnv{}, fmt.Errorf("GITHUB_TOKEN is not set")
	}

	slug := os.Getenv("GITHUB_REPOSITORY")
	owner, repo, found := strings.Cut(slug, "/")
	if !found || owner == "" || repo == "" {
		return checkEnv{}, fmt.Errorf("GITHUB_REPOSITORY must be owner/repo, got %q", slug)
	}

	eventPath := os.Getenv("GITHUB_EVENT_PATH")
	if eventPath == "" {
		return checkEnv{}, fmt.Errorf("GITHUB_EVENT_PATH is not set")
	}

	return checkEnv{token: token, owner: owner, repo: repo, eventPath: eventPath}, nil
}

func runCheck() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	env, err := readCheckEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitFailure
		return
	}

	cfg, err := config.Load(flagPolicy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitFailure
		return
	}

	rubric := ""
	if flagRubric != "" {
		data, err := os.ReadFile(flagRubric)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: reading rubric: %v\n", err)
			exitCode = ExitFailure
			return
		}
		rubric = string(data)
	}

	pr, err := event.Load(env.eventPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitFailure
		return
	}

	r := &runner.Runner{
		API:      github.NewClient(env.token, env.owner, env.repo),
		Reviewer: buildReviewer(cfg, rubric),
		Config:   cfg,
		Owner:    env.owner,
		Repo:     env.repo,
		Log:      log,
	}

	v, err := r.Run(context.Background(), pr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitFailure
		return
	}

	fmt.Fprintf(os.Stdout, "verdict: %s\n", v)
	if v == verdict.Fail {
		exitCode = ExitFailure
	}
}

// buildReviewer returns nil when no completion service is configured; the
// verdict policy decides whether that is acceptable.
func buildReviewer(cfg config.Config, rubric string) runner.Reviewer {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil
	}
	return &reviewer.Invoker{
		Completer:    reviewer.NewOpenAI(apiKey, cfg.OpenAI.Model, cfg.OpenAI.Temperature, os.Getenv("OPENAI_BASE_URL")),
		Rubric:       rubric,
		MaxDiffChars: cfg.MaxDiffChars,
	}
}
