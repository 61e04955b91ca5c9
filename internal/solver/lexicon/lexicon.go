// Package lexicon implements the solving backend as constraint
// propagation over the word list itself. Instead of a symbolic encoding
// it keeps the set of still-viable candidates and filters it on every
// hard assertion; satisfiability is simply whether any candidate
// survives. Soft preferences bias which surviving candidate is offered
// as the model, never whether one is offered.
package lexicon

import (
	"context"
	"errors"
	"fmt"

	"wordnerd/internal/solver"
	"wordnerd/internal/vocab"
)

type softPref struct {
	clause solver.Clause
	weight int
}

// Backend is a propagation engine restricted to the supplied
// vocabulary. Single-session; construct a fresh one per solve.
type Backend struct {
	n          int
	candidates []string
	soft       []softPref

	model     string
	haveModel bool
}

// New returns an empty backend; Init supplies the vocabulary.
func New() *Backend {
	return &Backend{}
}

// Init implements solver.Backend. The vocabulary is the legality
// constraint: candidates start as every usable word and only shrink.
func (b *Backend) Init(wordLength int, vocabulary []string) error {
	if b.n != 0 {
		return errors.New("lexicon: already initialized")
	}
	b.n = wordLength
	b.candidates = make([]string, 0, len(vocabulary))
	for _, w := range vocabulary {
		if vocab.Usable(w, wordLength) {
			b.candidates = append(b.candidates, w)
		}
	}
	if len(b.candidates) == 0 {
		return fmt.Errorf("lexicon: no %d-letter words in vocabulary", wordLength)
	}
	return nil
}

// Assert implements solver.Backend by filtering the candidate set in
// place, the way a watched-literal solver would propagate a unit fact.
func (b *Backend) Assert(c solver.Clause) error {
	if b.n == 0 {
		return errors.New("lexicon: not initialized")
	}
	if err := checkClause(c, b.n); err != nil {
		return err
	}
	b.haveModel = false
	kept := b.candidates[:0]
	for _, w := range b.candidates {
		if satisfies(c, w) {
			kept = append(kept, w)
		}
	}
	b.candidates = kept
	return nil
}

// AssertSoft implements solver.SoftBackend. Preferences rank models;
// they never remove candidates.
func (b *Backend) AssertSoft(c solver.Clause, weight int) error {
	if err := checkClause(c, b.n); err != nil {
		return err
	}
	if weight <= 0 {
		return fmt.Errorf("lexicon: soft weight %d", weight)
	}
	b.soft = append(b.soft, softPref{clause: c, weight: weight})
	return nil
}

// Check implements solver.Backend. It also commits the model: the
// surviving candidate with the highest soft-preference score, earliest
// wins ties so the word list's own ordering is the final tie-break.
func (b *Backend) Check(ctx context.Context) (solver.Verdict, error) {
	if err := ctx.Err(); err != nil {
		return solver.Unknown, err
	}
	if len(b.candidates) == 0 {
		return solver.Unsat, nil
	}

	best, bestScore := b.candidates[0], b.score(b.candidates[0])
	for _, w := range b.candidates[1:] {
		if s := b.score(w); s > bestScore {
			best, bestScore = w, s
		}
	}
	b.model = best
	b.haveModel = true
	return solver.Sat, nil
}

// Model implements solver.Backend.
func (b *Backend) Model() (string, error) {
	if !b.haveModel {
		return "", errors.New("lexicon: no model; Check must return sat first")
	}
	return b.model, nil
}

// Remaining reports the current candidate count. The assist mode uses
// it to show how far the space has shrunk.
func (b *Backend) Remaining() int {
	return len(b.candidates)
}

// Candidates returns up to limit surviving candidates in preference
// order starting with the model choice.
func (b *Backend) Candidates(limit int) []string {
	out := make([]string, 0, limit)
	if b.haveModel {
		out = append(out, b.model)
	}
	for _, w := range b.candidates {
		if len(out) >= limit {
			break
		}
		if b.haveModel && w == b.model {
			continue
		}
		out = append(out, w)
	}
	return out
}

func (b *Backend) score(w string) int {
	s := 0
	for _, p := range b.soft {
		if satisfies(p.clause, w) {
			s += p.weight
		}
	}
	return s
}

func checkClause(c solver.Clause, n int) error {
	switch c := c.(type) {
	case solver.Eq:
		return checkSlotChar(c.Slot, c.Char, n)
	case solver.Neq:
		return checkSlotChar(c.Slot, c.Char, n)
	case solver.AnyOf:
		if c.Char < 'a' || c.Char > 'z' || len(c.Slots) == 0 {
			return fmt.Errorf("lexicon: bad disjunction for %q over %v", c.Char, c.Slots)
		}
		for _, s := range c.Slots {
			if s < 0 || s >= n {
				return fmt.Errorf("lexicon: slot %d out of range", s)
			}
		}
		return nil
	case solver.AtMostK:
		if c.Char < 'a' || c.Char > 'z' || c.K < 0 || c.K > n {
			return fmt.Errorf("lexicon: bad cardinality %d for %q", c.K, c.Char)
		}
		return nil
	case solver.AllDistinct:
		return nil
	default:
		return fmt.Errorf("lexicon: unsupported clause %T", c)
	}
}

func checkSlotChar(slot int, ch byte, n int) error {
	if slot < 0 || slot >= n {
		return fmt.Errorf("lexicon: slot %d out of range", slot)
	}
	if ch < 'a' || ch > 'z' {
		return fmt.Errorf("lexicon: character %q out of range", ch)
	}
	return nil
}

func satisfies(c solver.Clause, w string) bool {
	switch c := c.(type) {
	case solver.Eq:
		return w[c.Slot] == c.Char
	case solver.Neq:
		return w[c.Slot] != c.Char
	case solver.AnyOf:
		for _, s := range c.Slots {
			if w[s] == c.Char {
				return true
			}
		}
		return false
	case solver.AtMostK:
		count := 0
		for i := 0; i < len(w); i++ {
			if w[i] == c.Char {
				count++
			}
		}
		return count <= c.K
	case solver.AllDistinct:
		var seen [26]bool
		for i := 0; i < len(w); i++ {
			if seen[w[i]-'a'] {
				return false
			}
			seen[w[i]-'a'] = true
		}
		return true
	default:
		return false
	}
}
