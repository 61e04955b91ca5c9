package solver

import (
	"fmt"
	"strings"
	"time"

	"wordnerd/internal/feedback"
)

// Outcome is the terminal state of a solve session.
type Outcome string

const (
	// Won means a guess came back fully correct.
	Won Outcome = "won"
	// Exhausted means the attempt budget ran out. Not an error.
	Exhausted Outcome = "exhausted"
	// Unsolvable means the accumulated constraints admit no legal word,
	// which points at an inconsistent evaluator or a translation bug.
	Unsolvable Outcome = "unsolvable"
	// Aborted means the evaluator failed mid-session; the guess history
	// up to the failure is still reported.
	Aborted Outcome = "aborted"
)

// GuessRecord pairs one submitted word with the feedback it earned.
// The session's guess history is append-only.
type GuessRecord struct {
	Word     string
	Feedback []feedback.Record
}

// Result packages one session's guess history, terminal outcome and
// elapsed wall-clock time. Every outcome carries the guesses made up to
// the point of termination.
type Result struct {
	SessionID string
	Outcome   Outcome
	Guesses   []GuessRecord
	Elapsed   time.Duration
}

// Answer returns the winning word, or "" for non-won outcomes.
func (r *Result) Answer() string {
	if r.Outcome != Won || len(r.Guesses) == 0 {
		return ""
	}
	return r.Guesses[len(r.Guesses)-1].Word
}

// Words lists the guessed words in submission order.
func (r *Result) Words() []string {
	words := make([]string, len(r.Guesses))
	for i, g := range r.Guesses {
		words[i] = g.Word
	}
	return words
}

func (r *Result) String() string {
	return fmt.Sprintf("%s in %d guesses (%s) [%s]",
		r.Outcome, len(r.Guesses), r.Elapsed.Round(time.Millisecond), strings.Join(r.Words(), ", "))
}
