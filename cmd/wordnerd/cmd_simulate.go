package main

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"wordnerd/internal/config"
	"wordnerd/internal/evaluator"
	"wordnerd/internal/solver"
	"wordnerd/internal/store"
	"wordnerd/internal/vocab"
)

var (
	simulateAll     bool
	simulateWorkers int
	simulateBackend string
	simulateRecord  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [secret]",
	Short: "Play against a local judge with a known secret",
	Long: `Simulate runs the solver against an in-process judge instead of the
remote API. With a secret argument it plays one session and prints the
guess trace. With --all it plays every answer-list word and reports the
guess distribution.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if simulateBackend != "" {
			cfg.Solver.Backend = simulateBackend
		}

		words, err := vocab.Load(cfg.Vocab.AnswersPath, cfg.Vocab.AllowedPath, cfg.Solver.WordLength)
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		if simulateAll {
			return simulateEvery(ctx, cmd, cfg, words)
		}
		if len(args) != 1 {
			return fmt.Errorf("simulate needs a secret word or --all")
		}
		secret := args[0]
		if !vocab.Usable(secret, cfg.Solver.WordLength) {
			return fmt.Errorf("secret %q is not a usable %d-letter word", secret, cfg.Solver.WordLength)
		}

		sess, err := solver.NewSession(sessionConfig(cfg), &evaluator.Local{Secret: secret}, buildBackend(cfg), words, logger)
		if err != nil {
			return err
		}
		res, runErr := sess.Run(ctx)
		printResult(cmd, res)
		if simulateRecord && res != nil {
			if err := recordResult(cfg.Store.Path, res, "simulate", secret); err != nil {
				logger.Warn("failed to record session", zap.Error(err))
			}
		}
		return runErr
	},
}

func init() {
	simulateCmd.Flags().BoolVar(&simulateAll, "all", false, "simulate every word in the answer list")
	simulateCmd.Flags().IntVar(&simulateWorkers, "workers", 4, "concurrent sessions for --all")
	simulateCmd.Flags().StringVar(&simulateBackend, "backend", "", "solving backend: lexicon or sat")
	simulateCmd.Flags().BoolVar(&simulateRecord, "record", false, "record sessions in the history store")
}

// simulateEvery plays one session per answer word with a bounded worker
// pool and prints the aggregate guess distribution.
func simulateEvery(ctx context.Context, cmd *cobra.Command, cfg config.Config, words *vocab.List) error {
	type outcome struct {
		secret string
		result *solver.Result
	}

	var (
		mu       sync.Mutex
		outcomes []outcome
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(simulateWorkers)

	start := time.Now()
	for _, secret := range words.Answers {
		g.Go(func() error {
			sess, err := solver.NewSession(sessionConfig(cfg), &evaluator.Local{Secret: secret}, buildBackend(cfg), words, logger)
			if err != nil {
				return err
			}
			res, err := sess.Run(ctx)
			if err != nil {
				return fmt.Errorf("secret %q: %w", secret, err)
			}
			mu.Lock()
			outcomes = append(outcomes, outcome{secret: secret, result: res})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if simulateRecord {
		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close()
		for _, o := range outcomes {
			if err := st.RecordSession(o.result, "simulate", o.secret); err != nil {
				logger.Warn("failed to record session",
					zap.String("secret", o.secret), zap.Error(err))
			}
		}
	}

	dist := make(map[int]int)
	var won, lost int
	for _, o := range outcomes {
		if o.result.Outcome == solver.Won {
			won++
			dist[len(o.result.Guesses)]++
		} else {
			lost++
			cmd.Printf("missed %q (%s after %d guesses)\n", o.secret, o.result.Outcome, len(o.result.Guesses))
		}
	}

	cmd.Printf("Simulated %d secrets in %s: %d won, %d lost\n",
		len(outcomes), time.Since(start).Round(timeRound), won, lost)

	attempts := make([]int, 0, len(dist))
	for n := range dist {
		attempts = append(attempts, n)
	}
	sort.Ints(attempts)
	for _, n := range attempts {
		cmd.Printf("%2d guesses: %d\n", n, dist[n])
	}
	return nil
}
