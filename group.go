package anagram

import (
	"fmt"
	"strings"
)

// Group is a set of dictionary words found by the generator.
//
// It is 'Full' when its letters use up the whole target, and partial
// otherwise.
type Group struct {
	Words []string
	Full  bool
}

// Repr returns the words joined by single spaces.
func (g Group) Repr() string {
	return strings.Join(g.Words, " ")
}

// Line formats the group as an output line. With showPartial, full groups
// are marked with "* " and partial ones indented by two spaces so the two
// line up.
func (g Group) Line(showPartial bool) string {
	if !showPartial {
		return g.Repr()
	}
	if g.Full {
		return "* " + g.Repr()
	}
	return "  " + g.Repr()
}

func (g Group) DebugString() string {
	return fmt.Sprintf("Group{full: %v, words: %q}", g.Full, g.Words)
}
