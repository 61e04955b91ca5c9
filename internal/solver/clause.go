// Package solver contains the constraint accumulator and the guessing
// session that drive a word-game solve. The actual satisfiability engine
// sits behind the Backend capability interface; this package only
// translates interpreted feedback into backend primitives and runs the
// bounded attempt loop.
package solver

// Clause is a constraint primitive understood by every backend. The
// vocabulary legality disjunction is not a Clause; backends receive it
// once through Init.
type Clause interface {
	isClause()
}

// Eq requires the letter at Slot to be Char.
type Eq struct {
	Slot int
	Char byte
}

// Neq forbids Char at Slot.
type Neq struct {
	Slot int
	Char byte
}

// AnyOf requires Char to appear at one of Slots.
type AnyOf struct {
	Char  byte
	Slots []int
}

// AtMostK caps the number of slots holding Char at K.
type AtMostK struct {
	Char byte
	K    int
}

// AllDistinct prefers or requires every slot to hold a different letter.
// Only ever asserted soft here.
type AllDistinct struct{}

func (Eq) isClause()          {}
func (Neq) isClause()         {}
func (AnyOf) isClause()       {}
func (AtMostK) isClause()     {}
func (AllDistinct) isClause() {}

// Verdict is the outcome of a backend satisfiability check.
type Verdict int

const (
	Unknown Verdict = iota
	Sat
	Unsat
)

func (v Verdict) String() string {
	switch v {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	default:
		return "unknown"
	}
}
