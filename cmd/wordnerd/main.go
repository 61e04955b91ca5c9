// Package main provides the wordnerd CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"wordnerd/internal/config"
	"wordnerd/internal/solver"
	"wordnerd/internal/solver/lexicon"
	"wordnerd/internal/solver/sat"
)

var version = "dev"

var (
	// Global flags
	cfgPath string
	verbose bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "wordnerd",
	Short: "wordnerd - constraint-driven word game solver",
	Long: `wordnerd plays a fixed-length word-guessing game against a remote
judge. Feedback from every guess is translated into constraints over
the letter slots and handed to a solving backend, which proposes the
next guess from what remains of the vocabulary.

The opening book goes out first; after that the backend drives.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if !viewJSONLogs() {
			zcfg.Encoding = "console"
			zcfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
		}
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else {
			zcfg.Level = zap.NewAtomicLevelAt(levelFromConfig())
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the wordnerd version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wordnerd %s\n", version)
	},
}

// loadOnce caches the config for helpers that run before RunE.
var loadedCfg *config.Config

func loadConfig() (config.Config, error) {
	if loadedCfg != nil {
		return *loadedCfg, nil
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return cfg, err
	}
	loadedCfg = &cfg
	return cfg, nil
}

func levelFromConfig() zapcore.Level {
	cfg, err := loadConfig()
	if err != nil {
		return zapcore.InfoLevel
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(cfg.Logging.Level)); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

func viewJSONLogs() bool {
	cfg, err := loadConfig()
	return err == nil && cfg.Logging.JSON
}

// buildBackend constructs a fresh solving backend per session.
func buildBackend(cfg config.Config) solver.Backend {
	switch cfg.Solver.Backend {
	case "sat":
		return sat.New(sat.Options{ExplicitDomain: cfg.Solver.ExplicitDomain})
	default:
		return lexicon.New()
	}
}

func sessionConfig(cfg config.Config) solver.SessionConfig {
	return solver.SessionConfig{
		WordLength:    cfg.Solver.WordLength,
		AttemptBudget: cfg.Solver.AttemptBudget,
		Opening:       cfg.Solver.Opening,
		Preferences: solver.Preferences{
			NoDuplicates:  cfg.Solver.PreferNoDuplicates,
			MaxTwoOfAKind: cfg.Solver.PreferMaxTwoOfAKind,
		},
	}
}

// signalContext cancels on Ctrl+C or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "wordnerd.yaml", "path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(assistCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
