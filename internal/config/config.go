package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Config is the merge-gate policy configuration.
type Config struct {
	RequireOpenAI       bool
	FailOnOpenAIError   bool
	SkipLabels          []string
	MaxChangedFiles     int
	MaxDiffChars        int
	NonSkillDirs        []string
	MinCoherenceScore   float64
	MinConsistencyScore float64
	Comment             CommentConfig
	OpenAI              OpenAIConfig
}

// CommentConfig switches comment publishing per final verdict.
type CommentConfig struct {
	OnPass bool
	OnWarn bool
	OnFail bool
}

// OpenAIConfig selects the completion model and sampling temperature.
type OpenAIConfig struct {
	Model       string
	Temperature float64
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		MaxChangedFiles:     150,
		MaxDiffChars:        120000,
		MinCoherenceScore:   70,
		MinConsistencyScore: 70,
		Comment: CommentConfig{
			OnPass: true,
			OnWarn: true,
			OnFail: true,
		},
		OpenAI: OpenAIConfig{
			Model:       "gpt-4o",
			Temperature: 0,
		},
	}
}

// fileConfig mirrors the JSON policy file. Pointer fields distinguish
// "explicitly false/zero" from "absent" so merging never clobbers defaults.
type fileConfig struct {
	RequireOpenAI       *bool    `json:"requireOpenAI"`
	FailOnOpenAIError   *bool    `json:"failOnOpenAIError"`
	SkipLabels          []string `json:"skipLabels"`
	MaxChangedFiles     *int     `json:"maxChangedFiles"`
	MaxDiffChars        *int     `json:"maxDiffChars"`
	NonSkillDirs        []string `json:"nonSkillDirs"`
	MinCoherenceScore   *float64 `json:"minCoherenceScore"`
	MinConsistencyScore *float64 `json:"minConsistencyScore"`
	Comment             *struct {
		OnPass *bool `json:"onPass"`
		OnWarn *bool `json:"onWarn"`
		OnFail *bool `json:"onFail"`
	} `json:"comment"`
	OpenAI *struct {
		Model       *string  `json:"model"`
		Temperature *float64 `json:"temperature"`
	} `json:"openai"`
}

// Load builds the effective config: defaults <- policy file <- environment.
// A missing file at path is not an error; a file that exists but does not
// parse is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err != nil && !os.IsNotExist(err):
			return Config{}, fmt.Errorf("reading policy file: %w", err)
		case err == nil:
			var fc fileConfig
			if err := json.Unmarshal(data, &fc); err != nil {
				return Config{}, fmt.Errorf("parsing policy file %s: %w", path, err)
			}
			mergeFile(&cfg, fc)
		}
	}

	mergeEnv(&cfg)
	return cfg, nil
}

func mergeFile(dst *Config, src fileConfig) {
	if src.RequireOpenAI != nil {
		dst.RequireOpenAI = *src.RequireOpenAI
	}
	if src.FailOnOpenAIError != nil {
		dst.FailOnOpenAIError = *src.FailOnOpenAIError
	}
	if len(src.SkipLabels) > 0 {
		dst.SkipLabels = src.SkipLabels
	}
	if src.MaxChangedFiles != nil && *src.MaxChangedFiles > 0 {
		dst.MaxChangedFiles = *src.MaxChangedFiles
	}
	if src.MaxDiffChars != nil && *src.MaxDiffChars > 0 {
		dst.MaxDiffChars = *src.MaxDiffChars
	}
	if len(src.NonSkillDirs) > 0 {
		dst.NonSkillDirs = src.NonSkillDirs
	}
	if src.MinCoherenceScore != nil {
		dst.MinCoherenceScore = *src.MinCoherenceScore
	}
	if src.MinConsistencyScore != nil {
		dst.MinConsistencyScore = *src.MinConsistencyScore
	}
	if src.Comment != nil {
		if src.Comment.OnPass != nil {
			dst.Comment.OnPass = *src.Comment.OnPass
		}
		if src.Comment.OnWarn != nil {
			dst.Comment.OnWarn = *src.Comment.OnWarn
		}
		if src.Comment.OnFail != nil {
			dst.Comment.OnFail = *src.Comment.OnFail
		}
	}
	if src.OpenAI != nil {
		if src.OpenAI.Model != nil && *src.OpenAI.Model != "" {
			dst.OpenAI.Model = *src.OpenAI.Model
		}
		if src.OpenAI.Temperature != nil {
			dst.OpenAI.Temperature = *src.OpenAI.Temperature
		}
	}
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("SKILLGATE_MODEL"); v != "" {
		cfg.OpenAI.Model = v
	}
	if v := os.Getenv("SKILLGATE_MAX_CHANGED_FILES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxChangedFiles = n
		}
	}
	if v := os.Getenv("SKILLGATE_MAX_DIFF_CHARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxDiffChars = n
		}
	}
}
