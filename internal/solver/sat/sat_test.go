package sat

import (
	"context"
	"testing"

	"wordnerd/internal/evaluator"
	"wordnerd/internal/solver"
	"wordnerd/internal/vocab"
)

var ctx = context.Background()

func initBackend(t *testing.T, words ...string) *Backend {
	t.Helper()
	b := New(Options{})
	if err := b.Init(5, words); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return b
}

func mustSat(t *testing.T, b *Backend) string {
	t.Helper()
	v, err := b.Check(ctx)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if v != solver.Sat {
		t.Fatalf("Check = %s, want sat", v)
	}
	w, err := b.Model()
	if err != nil {
		t.Fatalf("Model: %v", err)
	}
	return w
}

func TestLegalityDisjunction(t *testing.T) {
	b := initBackend(t, "allot", "crump")
	if got := mustSat(t, b); got != "allot" && got != "crump" {
		t.Errorf("model %q outside the vocabulary", got)
	}
}

func TestHardConstraintsNarrowModel(t *testing.T) {
	b := initBackend(t, "allot", "lolly", "sheer", "crump")

	for _, c := range []solver.Clause{
		solver.Eq{Slot: 2, Char: 'l'},
		solver.Neq{Slot: 0, Char: 'l'},
		solver.AnyOf{Char: 'o', Slots: []int{0, 2, 3, 4}},
	} {
		if err := b.Assert(c); err != nil {
			t.Fatalf("Assert %T: %v", c, err)
		}
	}
	if got := mustSat(t, b); got != "allot" {
		t.Errorf("model = %q, want allot", got)
	}
}

func TestCardinalityUnsat(t *testing.T) {
	b := initBackend(t, "lolly", "allot", "level")
	if err := b.Assert(solver.AtMostK{Char: 'l', K: 1}); err != nil {
		t.Fatalf("Assert: %v", err)
	}
	v, err := b.Check(ctx)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if v != solver.Unsat {
		t.Errorf("Check = %s, want unsat", v)
	}
	if _, err := b.Model(); err == nil {
		t.Error("Model succeeded after unsat")
	}
}

func TestSoftPreferencesRelax(t *testing.T) {
	// Only repeated-letter words exist, so the distinct preference must
	// relax rather than turn the problem unsatisfiable.
	b := initBackend(t, "lolly", "mamma")
	if err := b.AssertSoft(solver.AllDistinct{}, 100); err != nil {
		t.Fatalf("AssertSoft: %v", err)
	}
	if got := mustSat(t, b); got != "lolly" && got != "mamma" {
		t.Errorf("model %q outside the vocabulary", got)
	}

	// With a distinct word available the preference should pick it.
	b = initBackend(t, "lolly", "crump")
	if err := b.AssertSoft(solver.AllDistinct{}, 100); err != nil {
		t.Fatalf("AssertSoft: %v", err)
	}
	if got := mustSat(t, b); got != "crump" {
		t.Errorf("model = %q, want the all-distinct crump", got)
	}
}

func TestExplicitDomainOption(t *testing.T) {
	b := New(Options{ExplicitDomain: true})
	if err := b.Init(5, []string{"allot", "crump"}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if got := mustSat(t, b); got != "allot" && got != "crump" {
		t.Errorf("model %q outside the vocabulary", got)
	}
}

// The SAT backend must drive a full session exactly like the lexicon
// backend does.
func TestSessionOnSATBackend(t *testing.T) {
	words := &vocab.List{Answers: []string{"handy", "swift", "allot", "lolly", "crump"}}
	cfg := solver.SessionConfig{
		WordLength:    5,
		AttemptBudget: 8,
		Opening:       []string{"handy"},
		Preferences:   solver.Preferences{NoDuplicates: true, MaxTwoOfAKind: true},
	}
	s, err := solver.NewSession(cfg, &evaluator.Local{Secret: "lolly"}, New(Options{}), words, nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	res, runErr := s.Run(ctx)
	if runErr != nil {
		t.Fatalf("Run: %v", runErr)
	}
	if res.Outcome != solver.Won {
		t.Fatalf("outcome = %s, want won (guesses: %v)", res.Outcome, res.Words())
	}
	if res.Answer() != "lolly" {
		t.Errorf("answer = %q, want lolly", res.Answer())
	}
	if len(res.Guesses) > cfg.AttemptBudget {
		t.Errorf("budget exceeded: %d guesses", len(res.Guesses))
	}
}
