package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wordnerd/internal/evaluator"
	"wordnerd/internal/feedback"
	"wordnerd/internal/vocab"
)

// SessionConfig is the immutable configuration of one solve session.
type SessionConfig struct {
	// WordLength is the slot count.
	WordLength int
	// AttemptBudget bounds the total number of guesses, opening phase
	// included.
	AttemptBudget int
	// Opening is the fixed list of guesses submitted before the backend
	// takes over, consumed in order.
	Opening []string
	// Preferences configures soft constraints on capable backends.
	Preferences Preferences
}

// Session runs one complete attempt to identify the secret word. It
// owns its accumulator and strategy state exclusively; a Session is
// single-use and not safe for concurrent reuse.
type Session struct {
	cfg  SessionConfig
	eval evaluator.Evaluator
	acc  *Accumulator
	log  *zap.Logger
	id   string

	guesses []GuessRecord
	opened  bool // opening phase complete
	done    bool
}

// NewSession builds a session over a fresh backend. The vocabulary
// union seeds the backend's legality disjunction; opening guesses are
// validated against the word length up front.
func NewSession(cfg SessionConfig, eval evaluator.Evaluator, backend Backend, words *vocab.List, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.AttemptBudget <= 0 {
		return nil, fmt.Errorf("solver: attempt budget %d", cfg.AttemptBudget)
	}
	for _, w := range cfg.Opening {
		if !vocab.Usable(w, cfg.WordLength) {
			return nil, fmt.Errorf("solver: opening guess %q is not a %d-letter word", w, cfg.WordLength)
		}
	}

	acc, err := NewAccumulator(backend, cfg.WordLength, words.Union(), cfg.Preferences, log)
	if err != nil {
		return nil, err
	}

	return &Session{
		cfg:  cfg,
		eval: eval,
		acc:  acc,
		log:  log,
		id:   uuid.NewString(),
	}, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Run plays the session to a terminal outcome: the fixed opening
// guesses first, then backend candidates until a win, an unsatisfiable
// constraint state, or budget exhaustion. The returned Result is always
// populated with the guesses made; the error is non-nil only when the
// evaluator failed and the session aborted.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	if s.done {
		return nil, errors.New("solver: session already ran")
	}
	s.done = true
	start := time.Now()

	finish := func(o Outcome) *Result {
		res := &Result{
			SessionID: s.id,
			Outcome:   o,
			Guesses:   s.guesses,
			Elapsed:   time.Since(start),
		}
		s.log.Info("session finished",
			zap.String("session", s.id),
			zap.String("outcome", string(o)),
			zap.Int("guesses", len(s.guesses)),
			zap.Duration("elapsed", res.Elapsed))
		return res
	}

	// Opening phase: the supplied list, in order, budget permitting.
	for _, word := range s.cfg.Opening {
		if len(s.guesses) >= s.cfg.AttemptBudget {
			return finish(Exhausted), nil
		}
		won, err := s.attempt(ctx, word)
		if err != nil {
			return finish(Aborted), err
		}
		if won {
			return finish(Won), nil
		}
	}
	s.opened = true

	// Adaptive phase: the backend proposes, the evaluator disposes.
	for len(s.guesses) < s.cfg.AttemptBudget {
		word, err := s.acc.NextCandidate(ctx)
		if errors.Is(err, ErrUnsatisfiable) {
			s.log.Warn("constraints unsatisfiable", zap.String("session", s.id))
			return finish(Unsolvable), nil
		}
		if err != nil {
			return finish(Aborted), err
		}
		won, err := s.attempt(ctx, word)
		if err != nil {
			return finish(Aborted), err
		}
		if won {
			return finish(Won), nil
		}
	}
	return finish(Exhausted), nil
}

// attempt submits one word, appends it to the history and merges the
// derived constraints. Returns whether the feedback was a full win.
func (s *Session) attempt(ctx context.Context, word string) (bool, error) {
	phase := "opening"
	if s.opened {
		phase = "adaptive"
	}
	s.log.Info("submitting guess",
		zap.String("session", s.id),
		zap.String("phase", phase),
		zap.Int("attempt", len(s.guesses)+1),
		zap.String("word", word))

	recs, err := s.eval.Guess(ctx, word)
	if err != nil {
		return false, err
	}
	s.guesses = append(s.guesses, GuessRecord{Word: word, Feedback: recs})

	if feedback.Won(recs) {
		return true, nil
	}

	cs, err := feedback.Interpret(word, recs)
	if err != nil {
		// A payload that decodes but contradicts the guess is just as
		// fatal as one that does not decode.
		return false, &evaluator.TransportError{Op: "interpret " + word, Err: err}
	}
	if err := s.acc.Merge(cs); err != nil {
		return false, err
	}
	return false, nil
}
