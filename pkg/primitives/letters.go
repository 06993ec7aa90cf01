package primitives

import (
	"fmt"
	"strings"
)

// Apostrophe is the only non-letter a word may carry.
const Apostrophe = '\''

const alphabetLen = 26

// Letters is a multiset of the letters A to Z.
//
// It is a value type: assigning or passing a Letters copies it, so a
// recursion branch that takes letters away never affects its siblings.
type Letters [alphabetLen]int

// LettersOf counts the letters of s. Every rune of s must be in A to Z.
func LettersOf(s string) (Letters, error) {
	var l Letters
	for _, r := range s {
		if err := l.Add(r); err != nil {
			return Letters{}, err
		}
	}
	return l, nil
}

// Add adds a single letter to the multiset.
func (l *Letters) Add(r rune) error {
	if r < 'A' || r > 'Z' {
		return fmt.Errorf("character %c is out of range", r)
	}
	l[r-'A']++
	return nil
}

// Take removes the letters of word from a copy of l.
//
// Apostrophes are ignored when skipApostrophe is set. It reports false when
// word needs a letter more often than l holds it, or contains anything else
// outside A to Z; l itself is never modified.
func (l Letters) Take(word string, skipApostrophe bool) (Letters, bool) {
	rest := l
	for i := 0; i < len(word); i++ {
		c := word[i]
		if c == Apostrophe && skipApostrophe {
			continue
		}
		if c < 'A' || c > 'Z' || rest[c-'A'] == 0 {
			return l, false
		}
		rest[c-'A']--
	}
	return rest, true
}

// Count returns how many times r occurs.
func (l Letters) Count(r rune) int {
	if r < 'A' || r > 'Z' {
		return 0
	}
	return l[r-'A']
}

// Total returns the size of the multiset.
func (l Letters) Total() int {
	total := 0
	for _, n := range l {
		total += n
	}
	return total
}

// Empty reports whether no letters remain.
func (l Letters) Empty() bool {
	return l == Letters{}
}

// String returns the letters in alphabetical order, e.g. "ACT".
func (l Letters) String() string {
	var sb strings.Builder
	for i, n := range l {
		for range n {
			sb.WriteByte(byte('A' + i))
		}
	}
	return sb.String()
}

// LetterCount returns the number of letters in word, not counting
// apostrophes when skipApostrophe is set.
func LetterCount(word string, skipApostrophe bool) int {
	if !skipApostrophe {
		return len(word)
	}
	return len(word) - strings.Count(word, string(Apostrophe))
}
