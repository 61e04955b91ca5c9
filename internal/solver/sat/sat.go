// Package sat implements the solving backend on the gini SAT engine.
// Each (slot, letter) pair gets an input literal in a logic circuit;
// the vocabulary legality disjunction is a selector literal per word,
// and cardinality bounds go through sorting networks. Hard assertions
// accumulate as root literals that every check assumes; soft
// preferences form an assumption ladder that is relaxed, strongest tier
// last, before unsatisfiability is ever reported.
package sat

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"wordnerd/internal/solver"
	"wordnerd/internal/vocab"
)

// Options tunes the encoding.
type Options struct {
	// ExplicitDomain additionally asserts that every slot holds at
	// least one letter. The legality disjunction already implies it;
	// this mirrors the optional redundant range assertion some engines
	// benefit from.
	ExplicitDomain bool
}

type softGroup struct {
	weight int
	lits   []z.Lit
}

// Backend encodes the game into CNF via a gini logic circuit.
// Single-session; construct a fresh one per solve.
type Backend struct {
	opts Options

	c     *logic.C
	n     int
	words []string
	pos   [][26]z.Lit // pos[slot][letter]
	sel   []z.Lit     // selector per vocabulary word

	hard  []z.Lit
	soft  []softGroup // sorted by descending weight
	cards map[byte]*logic.CardSort

	lastSat *gini.Gini
}

// New returns an empty backend; Init supplies the vocabulary.
func New(opts Options) *Backend {
	return &Backend{opts: opts}
}

// Init implements solver.Backend. It builds the position literals, the
// per-slot exactly-one encoding the model extraction relies on, and the
// word legality disjunction.
func (b *Backend) Init(wordLength int, vocabulary []string) error {
	if b.c != nil {
		return errors.New("sat: already initialized")
	}
	if wordLength <= 0 {
		return fmt.Errorf("sat: word length %d", wordLength)
	}

	b.c = logic.NewC()
	b.n = wordLength
	b.cards = make(map[byte]*logic.CardSort)

	b.pos = make([][26]z.Lit, wordLength)
	for i := 0; i < wordLength; i++ {
		for l := 0; l < 26; l++ {
			b.pos[i][l] = b.c.Lit()
		}
	}

	// A slot holds at most one letter; without this, a floating
	// position literal could satisfy a present-elsewhere disjunction
	// that no actual word supports.
	for i := 0; i < wordLength; i++ {
		slot := make([]z.Lit, 26)
		for l := 0; l < 26; l++ {
			slot[l] = b.pos[i][l]
		}
		b.hard = append(b.hard, b.c.CardSort(slot).Leq(1))
		if b.opts.ExplicitDomain {
			b.hard = append(b.hard, b.c.Ors(slot...))
		}
	}

	for _, w := range vocabulary {
		if !vocab.Usable(w, wordLength) {
			continue
		}
		conj := make([]z.Lit, wordLength)
		for i := 0; i < wordLength; i++ {
			conj[i] = b.pos[i][w[i]-'a']
		}
		b.words = append(b.words, w)
		b.sel = append(b.sel, b.c.Ands(conj...))
	}
	if len(b.words) == 0 {
		return fmt.Errorf("sat: no %d-letter words in vocabulary", wordLength)
	}
	b.hard = append(b.hard, b.c.Ors(b.sel...))
	return nil
}

// Assert implements solver.Backend.
func (b *Backend) Assert(c solver.Clause) error {
	lit, err := b.translate(c)
	if err != nil {
		return err
	}
	b.hard = append(b.hard, lit)
	b.lastSat = nil
	return nil
}

// AssertSoft implements solver.SoftBackend.
func (b *Backend) AssertSoft(c solver.Clause, weight int) error {
	if weight <= 0 {
		return fmt.Errorf("sat: soft weight %d", weight)
	}
	lit, err := b.translate(c)
	if err != nil {
		return err
	}
	for i := range b.soft {
		if b.soft[i].weight == weight {
			b.soft[i].lits = append(b.soft[i].lits, lit)
			return nil
		}
	}
	b.soft = append(b.soft, softGroup{weight: weight, lits: []z.Lit{lit}})
	sort.Slice(b.soft, func(i, j int) bool { return b.soft[i].weight > b.soft[j].weight })
	b.lastSat = nil
	return nil
}

func (b *Backend) translate(c solver.Clause) (z.Lit, error) {
	if b.c == nil {
		return z.LitNull, errors.New("sat: not initialized")
	}
	switch c := c.(type) {
	case solver.Eq:
		if err := b.checkSlotChar(c.Slot, c.Char); err != nil {
			return z.LitNull, err
		}
		return b.pos[c.Slot][c.Char-'a'], nil
	case solver.Neq:
		if err := b.checkSlotChar(c.Slot, c.Char); err != nil {
			return z.LitNull, err
		}
		return b.pos[c.Slot][c.Char-'a'].Not(), nil
	case solver.AnyOf:
		if c.Char < 'a' || c.Char > 'z' || len(c.Slots) == 0 {
			return z.LitNull, fmt.Errorf("sat: bad disjunction for %q over %v", c.Char, c.Slots)
		}
		ors := make([]z.Lit, len(c.Slots))
		for i, s := range c.Slots {
			if s < 0 || s >= b.n {
				return z.LitNull, fmt.Errorf("sat: slot %d out of range", s)
			}
			ors[i] = b.pos[s][c.Char-'a']
		}
		return b.c.Ors(ors...), nil
	case solver.AtMostK:
		if c.Char < 'a' || c.Char > 'z' || c.K < 0 || c.K > b.n {
			return z.LitNull, fmt.Errorf("sat: bad cardinality %d for %q", c.K, c.Char)
		}
		return b.cardFor(c.Char).Leq(c.K), nil
	case solver.AllDistinct:
		leqs := make([]z.Lit, 0, 26)
		for ch := byte('a'); ch <= 'z'; ch++ {
			leqs = append(leqs, b.cardFor(ch).Leq(1))
		}
		return b.c.Ands(leqs...), nil
	default:
		return z.LitNull, fmt.Errorf("sat: unsupported clause %T", c)
	}
}

// cardFor returns the cached sorting network counting a letter's
// occurrences across all slots.
func (b *Backend) cardFor(ch byte) *logic.CardSort {
	if cs, ok := b.cards[ch]; ok {
		return cs
	}
	lits := make([]z.Lit, b.n)
	for i := 0; i < b.n; i++ {
		lits[i] = b.pos[i][ch-'a']
	}
	cs := b.c.CardSort(lits)
	b.cards[ch] = cs
	return cs
}

func (b *Backend) checkSlotChar(slot int, ch byte) error {
	if slot < 0 || slot >= b.n {
		return fmt.Errorf("sat: slot %d out of range", slot)
	}
	if ch < 'a' || ch > 'z' {
		return fmt.Errorf("sat: character %q out of range", ch)
	}
	return nil
}

// Check implements solver.Backend. The solve runs once per rung of the
// preference ladder: all soft tiers assumed first, then successively
// fewer, so a fully relaxed solve always happens before Unsat.
func (b *Backend) Check(ctx context.Context) (solver.Verdict, error) {
	if b.c == nil {
		return solver.Unknown, errors.New("sat: not initialized")
	}
	if err := ctx.Err(); err != nil {
		return solver.Unknown, err
	}
	b.lastSat = nil

	for tiers := len(b.soft); tiers >= 0; tiers-- {
		g := gini.New()
		roots := make([]z.Lit, 0, len(b.hard)+len(b.soft))
		roots = append(roots, b.hard...)
		for _, grp := range b.soft[:tiers] {
			roots = append(roots, grp.lits...)
		}
		b.c.ToCnfFrom(g, roots...)
		g.Assume(roots...)

		switch g.Solve() {
		case 1:
			b.lastSat = g
			return solver.Sat, nil
		case -1:
			continue
		default:
			return solver.Unknown, nil
		}
	}
	return solver.Unsat, nil
}

// Model implements solver.Backend by reading back which word selector
// the satisfying assignment committed to.
func (b *Backend) Model() (string, error) {
	if b.lastSat == nil {
		return "", errors.New("sat: no model; Check must return sat first")
	}
	for j, sel := range b.sel {
		if b.lastSat.Value(sel) {
			return b.words[j], nil
		}
	}
	return "", errors.New("sat: satisfying assignment selects no vocabulary word")
}
