package lexicon

import (
	"context"
	"testing"

	"wordnerd/internal/solver"
)

var ctx = context.Background()

func initBackend(t *testing.T, words ...string) *Backend {
	t.Helper()
	b := New()
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

func TestPropagationNarrowsToWord(t *testing.T) {
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
	if b.Remaining() != 1 {
		t.Errorf("remaining = %d, want 1", b.Remaining())
	}
}

func TestMonotonicShrinkage(t *testing.T) {
	b := initBackend(t, "allot", "lolly", "sheer", "crump", "handy")

	sizes := []int{b.Remaining()}
	for _, c := range []solver.Clause{
		solver.Neq{Slot: 0, Char: 'h'},
		solver.AtMostK{Char: 'l', K: 1},
		solver.AnyOf{Char: 'r', Slots: []int{1, 2, 3, 4}},
	} {
		if err := b.Assert(c); err != nil {
			t.Fatalf("Assert: %v", err)
		}
		sizes = append(sizes, b.Remaining())
	}
	for i := 1; i < len(sizes); i++ {
		if sizes[i] > sizes[i-1] {
			t.Fatalf("candidate set grew: %v", sizes)
		}
	}
}

func TestCardinalityBound(t *testing.T) {
	b := initBackend(t, "lolly", "allot", "level")

	// At most one l: lolly (3) and allot (2) drop, level (2) drops too.
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
		t.Error("Model succeeded with no satisfying candidate")
	}
}

func TestSoftPreferencesBiasModel(t *testing.T) {
	// lolly repeats letters, crump does not; with the distinct-letters
	// preference the later word must win despite list order.
	b := initBackend(t, "lolly", "crump")
	if err := b.AssertSoft(solver.AllDistinct{}, 100); err != nil {
		t.Fatalf("AssertSoft: %v", err)
	}
	if got := mustSat(t, b); got != "crump" {
		t.Errorf("model = %q, want crump", got)
	}

	// Preferences are non-binding: remove the distinct candidate and
	// the repeated-letter word must still be offered.
	if err := b.Assert(solver.Neq{Slot: 0, Char: 'c'}); err != nil {
		t.Fatalf("Assert: %v", err)
	}
	if got := mustSat(t, b); got != "lolly" {
		t.Errorf("model = %q, want lolly", got)
	}
}

func TestVocabularyIsFiltered(t *testing.T) {
	b := New()
	if err := b.Init(5, []string{"allot", "cat", "toolong", "UPPER"}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if b.Remaining() != 1 {
		t.Errorf("remaining = %d, want 1", b.Remaining())
	}

	empty := New()
	if err := empty.Init(5, []string{"cat"}); err == nil {
		t.Error("Init accepted a vocabulary with no usable words")
	}
}

func TestAssertRejectsBadClauses(t *testing.T) {
	b := initBackend(t, "allot")
	bad := []solver.Clause{
		solver.Eq{Slot: 9, Char: 'a'},
		solver.Neq{Slot: 0, Char: '!'},
		solver.AnyOf{Char: 'a', Slots: nil},
		solver.AtMostK{Char: 'a', K: -1},
	}
	for _, c := range bad {
		if err := b.Assert(c); err == nil {
			t.Errorf("Assert(%#v) accepted", c)
		}
	}
}
