package anagram

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"crosswarped.com/anagram/pkg/primitives"
)

// ErrIllegalCharacter matches every *IllegalCharacterError.
var ErrIllegalCharacter = errors.New("illegal character in input")

// IllegalCharacterError reports a target character outside A to Z.
type IllegalCharacterError struct {
	Char rune
}

func (e *IllegalCharacterError) Error() string {
	return fmt.Sprintf("Illegal character in input: %c", e.Char)
}

func (e *IllegalCharacterError) Is(target error) bool {
	return target == ErrIllegalCharacter
}

// Target is the normalized text to find anagrams of.
type Target struct {
	Text    string
	Letters primitives.Letters
}

// Len returns the number of letters a full anagram must use.
func (t Target) Len() int {
	return len(t.Text)
}

// ParseTarget joins the parts of text into a Target.
//
// Whitespace is dropped and letters are upper-cased. Apostrophes are
// stripped when allowApostrophe is set; any other character outside A to Z
// is an *IllegalCharacterError.
func ParseTarget(text []string, allowApostrophe bool) (Target, error) {
	joined := strings.ToUpper(strings.Join(text, ""))

	var sb strings.Builder
	var letters primitives.Letters
	for _, r := range joined {
		if unicode.IsSpace(r) {
			continue
		}
		if r == primitives.Apostrophe && allowApostrophe {
			continue
		}
		if err := letters.Add(r); err != nil {
			return Target{}, &IllegalCharacterError{Char: r}
		}
		sb.WriteRune(r)
	}

	return Target{Text: sb.String(), Letters: letters}, nil
}
