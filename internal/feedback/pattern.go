package feedback

import (
	"fmt"
	"strings"
)

// Pattern renders feedback as one letter per slot: g for correct,
// y for present, b for absent. The compact form is what the store
// persists and what the assist mode asks the user to type.
func Pattern(recs []Record) string {
	var b strings.Builder
	for _, r := range recs {
		switch r.Outcome {
		case Correct:
			b.WriteByte('g')
		case Present:
			b.WriteByte('y')
		default:
			b.WriteByte('b')
		}
	}
	return b.String()
}

// ParsePattern rebuilds feedback records from a guess and its compact
// pattern.
func ParsePattern(guess, pattern string) ([]Record, error) {
	if len(pattern) != len(guess) {
		return nil, fmt.Errorf("feedback: pattern %q does not cover guess %q", pattern, guess)
	}
	recs := make([]Record, len(guess))
	for i := 0; i < len(pattern); i++ {
		var o Outcome
		switch pattern[i] {
		case 'g':
			o = Correct
		case 'y':
			o = Present
		case 'b':
			o = Absent
		default:
			return nil, fmt.Errorf("feedback: pattern %q has unknown mark %q at slot %d", pattern, pattern[i], i)
		}
		recs[i] = Record{Slot: i, Char: guess[i], Outcome: o}
	}
	return recs, nil
}
