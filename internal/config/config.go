// Package config holds all wordnerd configuration. Values load from an
// optional yaml file, with a few environment overrides for the knobs
// that differ between deployments. The loaded Config is treated as an
// immutable value: commands copy what they need into session
// construction and never write back.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Solver    SolverConfig    `yaml:"solver"`
	Evaluator EvaluatorConfig `yaml:"evaluator"`
	Vocab     VocabConfig     `yaml:"vocab"`
	Store     StoreConfig     `yaml:"store"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SolverConfig configures the guessing strategy and backend.
type SolverConfig struct {
	// WordLength is the slot count of the game.
	WordLength int `yaml:"word_length"`
	// AttemptBudget bounds total guesses per session.
	AttemptBudget int `yaml:"attempt_budget"`
	// Opening is the fixed list of guesses made before the backend
	// takes over.
	Opening []string `yaml:"opening"`
	// Backend selects the solving engine: lexicon or sat.
	Backend string `yaml:"backend"`
	// PreferNoDuplicates softly prefers candidates with distinct letters.
	PreferNoDuplicates bool `yaml:"prefer_no_duplicates"`
	// PreferMaxTwoOfAKind softly caps any letter at two occurrences.
	PreferMaxTwoOfAKind bool `yaml:"prefer_max_two_of_a_kind"`
	// ExplicitDomain additionally asserts the per-slot letter domain in
	// the sat backend, beyond the vocabulary disjunction.
	ExplicitDomain bool `yaml:"explicit_domain"`
}

// EvaluatorConfig configures the remote judge client. Durations are Go
// duration strings ("10s", "500ms").
type EvaluatorConfig struct {
	BaseURL    string `yaml:"base_url"`
	Timeout    string `yaml:"timeout"`
	MaxRetries int    `yaml:"max_retries"`
	Backoff    string `yaml:"backoff"`
}

// TimeoutDuration returns the parsed request timeout. Load validates
// the string, so this never fails on a loaded config.
func (e EvaluatorConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(e.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// BackoffDuration returns the parsed initial retry backoff.
func (e EvaluatorConfig) BackoffDuration() time.Duration {
	d, err := time.ParseDuration(e.Backoff)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// VocabConfig points at the word lists.
type VocabConfig struct {
	AnswersPath string `yaml:"answers_path"`
	AllowedPath string `yaml:"allowed_path"`
}

// StoreConfig configures session history persistence.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json"`
}

// Default returns the production defaults: a coverage-first opening book,
// a ten-guess budget and the public daily judge.
func Default() Config {
	return Config{
		Solver: SolverConfig{
			WordLength:          5,
			AttemptBudget:       10,
			Opening:             []string{"handy", "swift", "glove", "crump"},
			Backend:             "lexicon",
			PreferNoDuplicates:  true,
			PreferMaxTwoOfAKind: true,
		},
		Evaluator: EvaluatorConfig{
			BaseURL:    "https://wordle.votee.dev:8000/daily",
			Timeout:    "10s",
			MaxRetries: 2,
			Backoff:    "500ms",
		},
		Vocab: VocabConfig{
			AnswersPath: "words/answers.txt",
			AllowedPath: "words/allowed.txt",
		},
		Store: StoreConfig{
			Path: "wordnerd.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from path, layered over Default. An empty
// path or a missing file yields the defaults; a malformed file is an
// error. Environment overrides apply last.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("config: read %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("WORDNERD_BASE_URL"); v != "" {
		cfg.Evaluator.BaseURL = v
	}
	if v := os.Getenv("WORDNERD_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("WORDNERD_BACKEND"); v != "" {
		cfg.Solver.Backend = v
	}
	if v := os.Getenv("WORDNERD_ATTEMPT_BUDGET"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Solver.AttemptBudget = n
		}
	}
}

func (c Config) validate() error {
	if c.Solver.WordLength <= 0 {
		return fmt.Errorf("config: word_length %d", c.Solver.WordLength)
	}
	if c.Solver.AttemptBudget <= 0 {
		return fmt.Errorf("config: attempt_budget %d", c.Solver.AttemptBudget)
	}
	switch c.Solver.Backend {
	case "lexicon", "sat":
	default:
		return fmt.Errorf("config: unknown backend %q", c.Solver.Backend)
	}
	if c.Evaluator.MaxRetries < 0 {
		return fmt.Errorf("config: max_retries %d", c.Evaluator.MaxRetries)
	}
	if _, err := time.ParseDuration(c.Evaluator.Timeout); err != nil {
		return fmt.Errorf("config: timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.Evaluator.Backoff); err != nil {
		return fmt.Errorf("config: backoff: %w", err)
	}
	return nil
}
