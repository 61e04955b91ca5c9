package solver

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"wordnerd/internal/feedback"
)

// ErrUnsatisfiable is returned by NextCandidate when the accumulated
// constraints admit no legal word. It means either the evaluator
// contradicted itself or a constraint was translated wrongly; the
// session treats it as fatal.
var ErrUnsatisfiable = errors.New("solver: constraints admit no legal word")

// Preferences configures the non-binding soft constraints added when
// the backend supports them.
type Preferences struct {
	// NoDuplicates prefers assignments using five distinct letters.
	NoDuplicates bool
	// MaxTwoOfAKind prefers, more weakly, assignments where no letter
	// appears more than twice.
	MaxTwoOfAKind bool
}

const (
	weightNoDuplicates  = 100
	weightMaxTwoOfAKind = 50
)

// Accumulator owns the growing constraint state of one solve session
// and translates interpreted feedback into backend primitives. Position
// variables live inside the backend and are never mutated after a model
// is committed; each NextCandidate is a fresh query.
type Accumulator struct {
	backend    Backend
	wordLength int
	log        *zap.Logger

	// capped tracks the tightest cardinality bound asserted per letter,
	// so re-observed bounds do not pile up redundant assertions.
	capped map[byte]int
}

// NewAccumulator wraps backend for words of the given length and
// asserts the vocabulary legality disjunction. When prefs enables soft
// preferences and the backend supports them, they are installed here,
// before any feedback arrives.
func NewAccumulator(backend Backend, wordLength int, vocabulary []string, prefs Preferences, log *zap.Logger) (*Accumulator, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if wordLength <= 0 {
		return nil, fmt.Errorf("solver: word length %d", wordLength)
	}
	if err := backend.Init(wordLength, vocabulary); err != nil {
		return nil, fmt.Errorf("solver: backend init: %w", err)
	}

	a := &Accumulator{
		backend:    backend,
		wordLength: wordLength,
		log:        log,
		capped:     make(map[byte]int),
	}

	soft, ok := backend.(SoftBackend)
	if !ok {
		return a, nil
	}
	if prefs.NoDuplicates {
		if err := soft.AssertSoft(AllDistinct{}, weightNoDuplicates); err != nil {
			return nil, fmt.Errorf("solver: soft distinct: %w", err)
		}
	}
	if prefs.MaxTwoOfAKind {
		for c := byte('a'); c <= 'z'; c++ {
			if err := soft.AssertSoft(AtMostK{Char: c, K: 2}, weightMaxTwoOfAKind); err != nil {
				return nil, fmt.Errorf("solver: soft at-most-two %q: %w", c, err)
			}
		}
	}
	return a, nil
}

// Merge translates one derived constraint set into hard assertions.
// Constraints are additive; merging can only shrink the candidate space.
func (a *Accumulator) Merge(cs feedback.ConstraintSet) error {
	for _, f := range cs.Fixed {
		if err := a.assert(Eq{Slot: f.Slot, Char: f.Char}); err != nil {
			return err
		}
	}

	for _, m := range cs.Misplaced {
		if err := a.assert(Neq{Slot: m.Slot, Char: m.Char}); err != nil {
			return err
		}
		others := make([]int, 0, a.wordLength-1)
		for i := 0; i < a.wordLength; i++ {
			if i != m.Slot {
				others = append(others, i)
			}
		}
		if err := a.assert(AnyOf{Char: m.Char, Slots: others}); err != nil {
			return err
		}
	}

	for _, c := range cs.Excluded {
		for i := 0; i < a.wordLength; i++ {
			if err := a.assert(Neq{Slot: i, Char: c}); err != nil {
				return err
			}
		}
	}

	for _, b := range cs.Bounds {
		for _, slot := range b.Slots {
			if err := a.assert(Neq{Slot: slot, Char: b.Char}); err != nil {
				return err
			}
		}
		// One cardinality assertion per letter, and only when it
		// tightens what the backend already knows.
		if prev, ok := a.capped[b.Char]; ok && prev <= b.Max {
			continue
		}
		if err := a.assert(AtMostK{Char: b.Char, K: b.Max}); err != nil {
			return err
		}
		a.capped[b.Char] = b.Max
	}
	return nil
}

func (a *Accumulator) assert(c Clause) error {
	if err := a.backend.Assert(c); err != nil {
		return fmt.Errorf("solver: assert %T: %w", c, err)
	}
	return nil
}

// NextCandidate asks the backend for a word satisfying everything
// merged so far. Returns ErrUnsatisfiable when no legal word remains.
func (a *Accumulator) NextCandidate(ctx context.Context) (string, error) {
	verdict, err := a.backend.Check(ctx)
	if err != nil {
		return "", fmt.Errorf("solver: check: %w", err)
	}
	switch verdict {
	case Sat:
		word, err := a.backend.Model()
		if err != nil {
			return "", fmt.Errorf("solver: model: %w", err)
		}
		a.log.Debug("backend produced candidate", zap.String("word", word))
		return word, nil
	case Unsat:
		return "", ErrUnsatisfiable
	default:
		return "", fmt.Errorf("solver: backend returned %s", verdict)
	}
}

// WordLength returns the slot count this accumulator was built for.
func (a *Accumulator) WordLength() int {
	return a.wordLength
}
