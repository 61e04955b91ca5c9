package solver

import "context"

// Backend is the capability surface the accumulator needs from a
// constraint engine: hard assertions, satisfiability checks and model
// extraction. Implementations are single-session and not safe for
// concurrent use; every solve session constructs a fresh one.
type Backend interface {
	// Init creates one position variable per slot and asserts that the
	// full assignment matches one word from vocabulary. Called exactly
	// once, before any Assert.
	Init(wordLength int, vocabulary []string) error

	// Assert adds a hard constraint. Constraints are only ever added,
	// never retracted, so the satisfying set shrinks monotonically.
	Assert(c Clause) error

	// Check decides whether the accumulated constraints still admit a
	// word. It may block for as long as the engine needs.
	Check(ctx context.Context) (Verdict, error)

	// Model renders the satisfying assignment found by the last Check
	// as a word. Only valid after a Check that returned Sat.
	Model() (string, error)
}

// SoftBackend is implemented by backends that support weighted,
// non-binding preferences. A soft clause biases which satisfying
// assignment Check settles on; it never excludes a valid one.
type SoftBackend interface {
	Backend
	AssertSoft(c Clause, weight int) error
}
