// Package feedback translates per-slot evaluator feedback into solver
// constraints. The interpreter is a pure function: one guess plus its
// feedback records in, a normalized constraint set out. Duplicate letters
// are the whole difficulty here — the evaluator marks only the excess
// occurrences of a letter absent, so an absent outcome excludes a letter
// everywhere only when no slot proved it correct or present.
package feedback

import (
	"fmt"
	"sort"
)

// Outcome is the evaluator's per-slot classification of a guessed letter.
type Outcome string

const (
	// Correct means right letter, right slot.
	Correct Outcome = "correct"
	// Present means the letter occurs in the secret, but not at this slot.
	Present Outcome = "present"
	// Absent means the letter does not occur at this slot, and any
	// occurrences beyond those already proven do not exist at all.
	Absent Outcome = "absent"
)

// Valid reports whether o is one of the three known outcomes.
func (o Outcome) Valid() bool {
	return o == Correct || o == Present || o == Absent
}

// Record is one slot's worth of evaluator feedback.
type Record struct {
	Slot    int
	Char    byte
	Outcome Outcome
}

// SlotChar binds a character to a slot.
type SlotChar struct {
	Slot int
	Char byte
}

// CountBound caps a character's total occurrences in the secret. Slots
// lists every slot the character was additionally proven absent from;
// there is exactly one CountBound per character in a ConstraintSet.
type CountBound struct {
	Char  byte
	Max   int
	Slots []int
}

// ConstraintSet is the normalized output of interpreting one guess.
//
// Fixed and Misplaced entries for the same character are mutually
// exclusive per slot: a slot is either proven correct or proven wrong,
// never both. Excluded holds characters proven absent from the secret
// entirely. Bounds holds per-character occurrence caps, emitted only
// when the guess used a character more times than were proven.
type ConstraintSet struct {
	Fixed     []SlotChar
	Misplaced []SlotChar
	Excluded  []byte
	Bounds    []CountBound
}

// Empty reports whether the set carries no constraints at all.
func (cs ConstraintSet) Empty() bool {
	return len(cs.Fixed) == 0 && len(cs.Misplaced) == 0 &&
		len(cs.Excluded) == 0 && len(cs.Bounds) == 0
}

// Interpret derives the constraint set for one guess and its feedback.
//
// The derivation is deterministic: Fixed and Misplaced follow slot order,
// Excluded and Bounds are sorted by character, and bound slots ascend.
// Interpreting the same inputs twice yields identical sets.
func Interpret(guess string, recs []Record) (ConstraintSet, error) {
	if len(recs) != len(guess) {
		return ConstraintSet{}, fmt.Errorf("feedback: %d records for %d-letter guess %q", len(recs), len(guess), guess)
	}

	var guessCount [26]int
	for i := 0; i < len(guess); i++ {
		c := guess[i]
		if c < 'a' || c > 'z' {
			return ConstraintSet{}, fmt.Errorf("feedback: guess %q contains non-lowercase letter at slot %d", guess, i)
		}
		guessCount[c-'a']++
	}

	// provenCount[c] is how many occurrences of c the evaluator confirmed
	// in this guess, counting both correct and present slots.
	var provenCount [26]int
	for i, r := range recs {
		if r.Slot != i {
			return ConstraintSet{}, fmt.Errorf("feedback: record %d carries slot %d", i, r.Slot)
		}
		if r.Char != guess[i] {
			return ConstraintSet{}, fmt.Errorf("feedback: record %d echoes %q, guess has %q", i, r.Char, guess[i])
		}
		if !r.Outcome.Valid() {
			return ConstraintSet{}, fmt.Errorf("feedback: record %d has unknown outcome %q", i, r.Outcome)
		}
		if r.Outcome == Correct || r.Outcome == Present {
			provenCount[r.Char-'a']++
		}
	}

	var cs ConstraintSet
	excluded := make(map[byte]bool)
	bounds := make(map[byte]*CountBound)

	for i, r := range recs {
		c := r.Char
		switch r.Outcome {
		case Correct:
			cs.Fixed = append(cs.Fixed, SlotChar{Slot: i, Char: c})
		case Present:
			cs.Misplaced = append(cs.Misplaced, SlotChar{Slot: i, Char: c})
		case Absent:
			proven := provenCount[c-'a']
			if proven == 0 {
				excluded[c] = true
				continue
			}
			// The letter exists, just not this many times. The absent
			// slot itself is still ruled out, and the cap carries new
			// information only when the guess overshot the proven count.
			if guessCount[c-'a'] > proven {
				b, ok := bounds[c]
				if !ok {
					b = &CountBound{Char: c, Max: proven}
					bounds[c] = b
				}
				b.Slots = append(b.Slots, i)
			}
		}
	}

	for c := range excluded {
		cs.Excluded = append(cs.Excluded, c)
	}
	sort.Slice(cs.Excluded, func(i, j int) bool { return cs.Excluded[i] < cs.Excluded[j] })

	for _, b := range bounds {
		sort.Ints(b.Slots)
		cs.Bounds = append(cs.Bounds, *b)
	}
	sort.Slice(cs.Bounds, func(i, j int) bool { return cs.Bounds[i].Char < cs.Bounds[j].Char })

	return cs, nil
}

// Won reports whether every record in recs is a correct outcome.
func Won(recs []Record) bool {
	if len(recs) == 0 {
		return false
	}
	for _, r := range recs {
		if r.Outcome != Correct {
			return false
		}
	}
	return true
}
