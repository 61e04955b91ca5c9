package feedback

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestInterpretKnownCase(t *testing.T) {
	// secret "allot", guess "lolly": one correct l, one misplaced l, a
	// misplaced o, a capped third l and a fully excluded y.
	recs := Judge("lolly", "allot")
	want := []Record{
		{Slot: 0, Char: 'l', Outcome: Present},
		{Slot: 1, Char: 'o', Outcome: Present},
		{Slot: 2, Char: 'l', Outcome: Correct},
		{Slot: 3, Char: 'l', Outcome: Absent},
		{Slot: 4, Char: 'y', Outcome: Absent},
	}
	if diff := cmp.Diff(want, recs); diff != "" {
		t.Fatalf("Judge mismatch (-want +got):\n%s", diff)
	}

	cs, err := Interpret("lolly", recs)
	require.NoError(t, err)

	wantCS := ConstraintSet{
		Fixed:     []SlotChar{{Slot: 2, Char: 'l'}},
		Misplaced: []SlotChar{{Slot: 0, Char: 'l'}, {Slot: 1, Char: 'o'}},
		Excluded:  []byte{'y'},
		Bounds:    []CountBound{{Char: 'l', Max: 2, Slots: []int{3}}},
	}
	if diff := cmp.Diff(wantCS, cs); diff != "" {
		t.Fatalf("Interpret mismatch (-want +got):\n%s", diff)
	}
}

func TestInterpretDuplicateLetterBoundary(t *testing.T) {
	// Guessing three e's against a secret with two must cap e at two
	// occurrences rather than excluding it everywhere.
	cs, err := Interpret("eerie", Judge("eerie", "sheer"))
	require.NoError(t, err)

	for _, c := range cs.Excluded {
		if c == 'e' {
			t.Fatal("e excluded everywhere despite two proven occurrences")
		}
	}
	require.Len(t, cs.Bounds, 1)
	require.Equal(t, byte('e'), cs.Bounds[0].Char)
	require.Equal(t, 2, cs.Bounds[0].Max)

	// The reverse orientation proves fewer e's than the secret holds, so
	// no absent e appears and no cap or exclusion may be derived for it.
	cs, err = Interpret("sheer", Judge("sheer", "eerie"))
	require.NoError(t, err)
	require.Empty(t, cs.Bounds)
	for _, c := range cs.Excluded {
		if c == 'e' {
			t.Fatal("e excluded everywhere despite being present")
		}
	}
}

// satisfiedBy reports whether word meets every constraint in cs. Used to
// check interpreter soundness: the secret itself must always satisfy the
// constraints derived from any guess against it.
func satisfiedBy(cs ConstraintSet, word string) bool {
	for _, f := range cs.Fixed {
		if word[f.Slot] != f.Char {
			return false
		}
	}
	for _, m := range cs.Misplaced {
		if word[m.Slot] == m.Char {
			return false
		}
		if !strings.ContainsRune(word, rune(m.Char)) {
			return false
		}
	}
	for _, c := range cs.Excluded {
		if strings.ContainsRune(word, rune(c)) {
			return false
		}
	}
	for _, b := range cs.Bounds {
		for _, slot := range b.Slots {
			if word[slot] == b.Char {
				return false
			}
		}
		if strings.Count(word, string(b.Char)) > b.Max {
			return false
		}
	}
	return true
}

func TestInterpretSoundness(t *testing.T) {
	secrets := []string{"allot", "sheer", "eerie", "crump", "swift", "mamma", "lolly"}
	guesses := []string{"lolly", "eerie", "sheer", "handy", "glove", "mummy", "allot", "crump"}

	for _, secret := range secrets {
		for _, guess := range guesses {
			cs, err := Interpret(guess, Judge(guess, secret))
			if err != nil {
				t.Fatalf("Interpret(%q vs %q): %v", guess, secret, err)
			}
			if !satisfiedBy(cs, secret) {
				t.Errorf("constraints from guess %q exclude the secret %q: %+v", guess, secret, cs)
			}
		}
	}
}

func TestInterpretIdempotent(t *testing.T) {
	recs := Judge("mummy", "mamma")
	first, err := Interpret("mummy", recs)
	require.NoError(t, err)
	second, err := Interpret("mummy", recs)
	require.NoError(t, err)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("re-derivation differs (-first +second):\n%s", diff)
	}
}

func TestInterpretRejectsMalformedInput(t *testing.T) {
	recs := Judge("lolly", "allot")

	if _, err := Interpret("loll", recs); err == nil {
		t.Error("length mismatch accepted")
	}

	bad := append([]Record(nil), recs...)
	bad[2].Slot = 4
	if _, err := Interpret("lolly", bad); err == nil {
		t.Error("out-of-order slot accepted")
	}

	bad = append([]Record(nil), recs...)
	bad[1].Char = 'x'
	if _, err := Interpret("lolly", bad); err == nil {
		t.Error("echoed character mismatch accepted")
	}

	bad = append([]Record(nil), recs...)
	bad[0].Outcome = Outcome("maybe")
	if _, err := Interpret("lolly", bad); err == nil {
		t.Error("unknown outcome accepted")
	}

	if _, err := Interpret("LOLLY", recs); err == nil {
		t.Error("uppercase guess accepted")
	}
}

func TestWon(t *testing.T) {
	if !Won(Judge("allot", "allot")) {
		t.Error("identical guess not reported as a win")
	}
	if Won(Judge("lolly", "allot")) {
		t.Error("partial match reported as a win")
	}
	if Won(nil) {
		t.Error("empty feedback reported as a win")
	}
}
