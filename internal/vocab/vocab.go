// Package vocab loads and validates the word lists the solver draws on:
// a smaller answer-eligible list and a larger list of allowed guesses.
// Files carry one word per line; anything of the wrong length or with
// characters outside a-z is skipped rather than fatal, because the lists
// in the wild are scraped and messy.
package vocab

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// List holds the two word sets for one game configuration.
type List struct {
	// Answers are the words the secret can be drawn from.
	Answers []string
	// Allowed are additional legal guesses that are never answers.
	Allowed []string

	// Skipped counts lines rejected during loading across both files.
	Skipped int
}

// Load reads answer and allowed-guess lists for words of length n.
// allowedPath may be empty, in which case only the answer list is used.
func Load(answersPath, allowedPath string, n int) (*List, error) {
	l := &List{}

	answers, skipped, err := loadFile(answersPath, n)
	if err != nil {
		return nil, fmt.Errorf("vocab: answers: %w", err)
	}
	l.Answers = answers
	l.Skipped += skipped

	if allowedPath != "" {
		allowed, skipped, err := loadFile(allowedPath, n)
		if err != nil {
			return nil, fmt.Errorf("vocab: allowed guesses: %w", err)
		}
		l.Allowed = allowed
		l.Skipped += skipped
	}

	if len(l.Answers) == 0 {
		return nil, fmt.Errorf("vocab: no usable %d-letter words in %s", n, answersPath)
	}
	return l, nil
}

// Union returns answers followed by allowed guesses, deduplicated with
// order preserved. This is the word set behind the legality disjunction:
// any word here is a legal assignment for the position variables.
func (l *List) Union() []string {
	seen := make(map[string]bool, len(l.Answers)+len(l.Allowed))
	union := make([]string, 0, len(l.Answers)+len(l.Allowed))
	for _, group := range [][]string{l.Answers, l.Allowed} {
		for _, w := range group {
			if !seen[w] {
				seen[w] = true
				union = append(union, w)
			}
		}
	}
	return union
}

// Contains reports whether w appears in either list.
func (l *List) Contains(w string) bool {
	for _, group := range [][]string{l.Answers, l.Allowed} {
		for _, have := range group {
			if have == w {
				return true
			}
		}
	}
	return false
}

func loadFile(path string, n int) (words []string, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	seen := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		w := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		if !Usable(w, n) || seen[w] {
			skipped++
			continue
		}
		seen[w] = true
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}
	return words, skipped, nil
}

// Usable reports whether w is a length-n word over a-z.
func Usable(w string, n int) bool {
	if len(w) != n {
		return false
	}
	return strings.IndexFunc(w, func(r rune) bool {
		return r < 'a' || r > 'z'
	}) < 0
}
