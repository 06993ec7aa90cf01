package internal

import (
	"context"
	"slices"
	"strings"

	"crosswarped.com/anagram/pkg/primitives"
)

// legalSmallWords are the only words of two letters or fewer kept in
// small-words mode.
var legalSmallWords = map[string]bool{
	"A": true, "I": true,
	"AH": true, "AM": true, "AN": true, "AS": true, "AT": true, "BE": true,
	"BY": true, "DC": true, "DO": true, "DR": true, "EX": true, "GO": true,
	"HA": true, "HE": true, "HI": true, "HO": true, "IF": true, "II": true,
	"IN": true, "IS": true, "IT": true, "LA": true, "LO": true, "MA": true,
	"ME": true, "MR": true, "MS": true, "MY": true, "NO": true, "OF": true,
	"OH": true, "OK": true, "ON": true, "OR": true, "OW": true, "OX": true,
	"PA": true, "PI": true, "SO": true, "ST": true, "TO": true, "UP": true,
	"US": true, "WE": true,
}

type DictionaryParams struct {
	Words         []string
	ExcludedWords []string
	NoApostrophe  bool
	SmallWords    bool
	MinWordLength *int
	MaxWordLength *int
}

type params struct {
	words           []string
	excludedWords   []string
	allowApostrophe bool
	smallWords      bool
	minWordLength   int
	maxWordLength   int
}

func asParams(p DictionaryParams) params {
	pp := params{
		words:           p.Words,
		excludedWords:   p.ExcludedWords,
		allowApostrophe: !p.NoApostrophe,
		smallWords:      p.SmallWords,
	}

	if p.MinWordLength == nil {
		pp.minWordLength = 1
	} else {
		pp.minWordLength = *p.MinWordLength
	}

	// Zero means unbounded.
	if p.MaxWordLength != nil {
		pp.maxWordLength = *p.MaxWordLength
	}

	return pp
}

// normalize trims and upper-cases a raw dictionary line.
func normalize(word string) string {
	return strings.ToUpper(strings.TrimSpace(word))
}

func (p params) legal(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if r == primitives.Apostrophe && p.allowApostrophe {
			continue
		}
		if r < 'A' || r > 'Z' {
			return false
		}
	}

	if p.smallWords && len(word) <= 2 && !legalSmallWords[word] {
		return false
	}

	n := primitives.LetterCount(word, p.allowApostrophe)
	if n < p.minWordLength {
		return false
	}
	if p.maxWordLength > 0 && n > p.maxWordLength {
		return false
	}
	return true
}

// BuildDictionary returns the sorted, deduplicated set of candidate words.
//
// Words are trimmed and upper-cased first. Anything that is not a legal word
// under the given parameters is dropped silently.
func BuildDictionary(ctx context.Context, p DictionaryParams) ([]string, error) {
	params := asParams(p)

	excluded := make(map[string]bool, len(params.excludedWords))
	for _, word := range params.excludedWords {
		excluded[normalize(word)] = true
	}

	seen := make(map[string]bool, len(params.words))
	dictionary := make([]string, 0, len(params.words))
	for i, raw := range params.words {
		if i%4096 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}

		word := normalize(raw)
		if seen[word] || excluded[word] {
			continue
		}
		if !params.legal(word) {
			continue
		}
		seen[word] = true
		dictionary = append(dictionary, word)
	}

	slices.Sort(dictionary)
	return dictionary, ctx.Err()
}
