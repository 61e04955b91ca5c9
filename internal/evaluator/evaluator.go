// Package evaluator talks to the judge that scores guesses. The remote
// judge is an HTTP endpoint returning per-slot feedback as JSON; a local
// in-process judge backs simulation and tests. Either way a session sees
// the same interface: one guess in, one feedback record per slot out.
package evaluator

import (
	"context"
	"fmt"

	"wordnerd/internal/feedback"
)

// Evaluator submits one guess and returns its per-slot feedback, in
// slot order. A transport or payload failure surfaces as an error; the
// session treats it as a hard stop.
type Evaluator interface {
	Guess(ctx context.Context, word string) ([]feedback.Record, error)
}

// TransportError wraps any failure to reach the judge or to make sense
// of its reply. Sessions end with a partial guess history when one of
// these escapes the configured retries.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("evaluator: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Local scores guesses against a secret it holds in memory. Used by the
// simulate command and as a test double.
type Local struct {
	Secret string
}

// Guess implements Evaluator.
func (l *Local) Guess(_ context.Context, word string) ([]feedback.Record, error) {
	if len(word) != len(l.Secret) {
		return nil, &TransportError{
			Op:  "judge",
			Err: fmt.Errorf("guess %q does not match secret length %d", word, len(l.Secret)),
		}
	}
	return feedback.Judge(word, l.Secret), nil
}
