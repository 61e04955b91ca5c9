package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wordnerd/internal/evaluator"
	"wordnerd/internal/solver"
	"wordnerd/internal/store"
	"wordnerd/internal/vocab"
)

var (
	solveBaseURL string
	solveBackend string
	solveBudget  int
	solveRecord  bool
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve today's puzzle against the remote judge",
	Long: `Solve plays one session against the configured HTTP judge. The
opening book goes out first, then the solving backend proposes guesses
until the puzzle is won or the attempt budget runs out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if solveBaseURL != "" {
			cfg.Evaluator.BaseURL = solveBaseURL
		}
		if solveBackend != "" {
			cfg.Solver.Backend = solveBackend
		}
		if solveBudget > 0 {
			cfg.Solver.AttemptBudget = solveBudget
		}

		words, err := vocab.Load(cfg.Vocab.AnswersPath, cfg.Vocab.AllowedPath, cfg.Solver.WordLength)
		if err != nil {
			return err
		}
		logger.Info("vocabulary loaded",
			zap.Int("answers", len(words.Answers)),
			zap.Int("allowed", len(words.Allowed)),
			zap.Int("skipped", words.Skipped))

		eval, err := evaluator.NewClient(evaluator.ClientConfig{
			BaseURL:    cfg.Evaluator.BaseURL,
			Timeout:    cfg.Evaluator.TimeoutDuration(),
			MaxRetries: cfg.Evaluator.MaxRetries,
			Backoff:    cfg.Evaluator.BackoffDuration(),
		}, logger)
		if err != nil {
			return err
		}

		sess, err := solver.NewSession(sessionConfig(cfg), eval, buildBackend(cfg), words, logger)
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		res, runErr := sess.Run(ctx)
		printResult(cmd, res)

		if solveRecord && res != nil {
			if err := recordResult(cfg.Store.Path, res, "solve", ""); err != nil {
				logger.Warn("failed to record session", zap.Error(err))
			}
		}
		return runErr
	},
}

func init() {
	solveCmd.Flags().StringVar(&solveBaseURL, "base-url", "", "override the judge endpoint")
	solveCmd.Flags().StringVar(&solveBackend, "backend", "", "solving backend: lexicon or sat")
	solveCmd.Flags().IntVar(&solveBudget, "budget", 0, "override the attempt budget")
	solveCmd.Flags().BoolVar(&solveRecord, "record", true, "record the session in the history store")
}

// printResult renders a finished session's guess trace and outcome.
func printResult(cmd *cobra.Command, res *solver.Result) {
	if res == nil {
		return
	}
	for i, g := range res.Guesses {
		cmd.Printf("%2d  %s  %s\n", i+1, g.Word, renderFeedback(g.Feedback))
	}
	switch res.Outcome {
	case solver.Won:
		cmd.Printf("Solved in %d guesses: %s (%s)\n", len(res.Guesses), res.Answer(), res.Elapsed.Round(timeRound))
	case solver.Exhausted:
		cmd.Printf("Out of guesses after %d attempts (%s)\n", len(res.Guesses), res.Elapsed.Round(timeRound))
	case solver.Unsolvable:
		cmd.Println("No word satisfies the accumulated feedback; the judge looks inconsistent with the vocabulary.")
	case solver.Aborted:
		cmd.Printf("Session aborted after %d guesses.\n", len(res.Guesses))
	}
}

// recordResult persists a finished session, opening the store just for
// the write.
func recordResult(path string, res *solver.Result, mode, secret string) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()
	return st.RecordSession(res, mode, secret)
}
