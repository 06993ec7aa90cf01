package anagram

import (
	"context"
	"iter"
	"slices"
	"strings"

	"go.uber.org/zap"

	"crosswarped.com/anagram/internal"
	"crosswarped.com/anagram/pkg/primitives"
)

// Mode selects whether word order within a group matters.
type Mode int

const (
	// ModeCombination emits each multiset of words once, sorted.
	ModeCombination Mode = iota
	// ModePermutation emits every ordering. Much slower, but keeps no
	// record of the groups already emitted.
	ModePermutation
)

func (m Mode) String() string {
	if m == ModePermutation {
		return "permutation"
	}
	return "combination"
}

type Generator struct {
	Target        Target
	Words         []string
	ExcludedWords []string
	MinWordLength *int
	MaxWordLength *int

	mode         Mode
	showPartial  bool
	noApostrophe bool
	smallWords   bool

	logger *zap.Logger

	// Do not access this field directly, use the Dictionary method instead.
	lazyDictionary []string
}

type GeneratorParams struct {
	Mode         Mode
	ShowPartial  bool
	NoApostrophe bool
	SmallWords   bool

	MinWordLength int
	MaxWordLength int

	Logger *zap.Logger
}

func CreateGenerator(target Target, words, excludedWords []string, params GeneratorParams) *Generator {
	var minWordLength, maxWordLength *int
	if params.MinWordLength > 0 {
		minWordLength = &params.MinWordLength
	}
	if params.MaxWordLength > 0 {
		maxWordLength = &params.MaxWordLength
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		Target:        target,
		Words:         words,
		ExcludedWords: excludedWords,
		MinWordLength: minWordLength,
		MaxWordLength: maxWordLength,
		mode:          params.Mode,
		showPartial:   params.ShowPartial,
		noApostrophe:  params.NoApostrophe,
		smallWords:    params.SmallWords,
		logger:        logger,
	}
}

// Dictionary returns the filtered candidate words the search runs over,
// building them on first use.
func (g *Generator) Dictionary(ctx context.Context) ([]string, error) {
	if g.lazyDictionary != nil {
		return g.lazyDictionary, nil
	}
	dictionary, err := internal.BuildDictionary(ctx, internal.DictionaryParams{
		Words:         g.Words,
		ExcludedWords: g.ExcludedWords,
		NoApostrophe:  g.noApostrophe,
		SmallWords:    g.smallWords,
		MinWordLength: g.MinWordLength,
		MaxWordLength: g.MaxWordLength,
	})
	if err != nil {
		return nil, err
	}
	g.lazyDictionary = dictionary
	return dictionary, nil
}

// searchState is shared by every level of one search.
type searchState struct {
	targetLen       int
	permutations    bool
	showPartial     bool
	allowApostrophe bool

	// seenGroups holds the key of every accepted group. It is nil in
	// permutation mode.
	seenGroups map[string]struct{}

	visited int
	scanned int
	emitted int
}

// child is an accepted word waiting to be recursed into.
type child struct {
	letters primitives.Letters
	prefix  []string
}

func (s *searchState) letterCount(words []string) int {
	n := 0
	for _, w := range words {
		n += primitives.LetterCount(w, s.allowApostrophe)
	}
	return n
}

// search extends prefix with every candidate that fits in letters, then
// recurses into each accepted extension with only the candidates accepted at
// this level. It returns false once the consumer stops or ctx is done.
func (s *searchState) search(ctx context.Context, letters primitives.Letters, candidates []string, prefix []string, yield func(Group) bool) bool {
	if letters.Empty() {
		return true
	}
	if ctx.Err() != nil {
		return false
	}
	s.visited++
	s.scanned += len(candidates)

	var accepted []string
	var children []child

	for _, word := range candidates {
		remaining, ok := letters.Take(word, s.allowApostrophe)
		if !ok {
			continue
		}

		group := make([]string, len(prefix)+1)
		copy(group, prefix)
		group[len(prefix)] = word
		if !s.permutations {
			slices.Sort(group)
		}

		var key string
		if s.seenGroups != nil {
			key = strings.Join(group, " ")
			if _, seen := s.seenGroups[key]; seen {
				continue
			}
		}

		full := s.letterCount(group) == s.targetLen
		if full || s.showPartial {
			s.emitted++
			if !yield(Group{Words: slices.Clone(group), Full: full}) {
				return false
			}
		}

		if s.seenGroups != nil {
			s.seenGroups[key] = struct{}{}
		}
		accepted = append(accepted, word)
		children = append(children, child{letters: remaining, prefix: group})
	}

	for _, c := range children {
		if !s.search(ctx, c.letters, accepted, c.prefix, yield) {
			return false
		}
	}
	return true
}

// Anagrams returns a sequence of the groups of dictionary words that can be
// formed from the target's letters.
//
// Full groups are always yielded; partial groups only when the generator
// shows partials. Each call starts a fresh search with its own record of
// seen groups.
func (g *Generator) Anagrams(ctx context.Context) iter.Seq[Group] {
	return func(yield func(Group) bool) {
		dictionary, err := g.Dictionary(ctx)
		if err != nil {
			g.logger.Warn("building dictionary", zap.Error(err))
			return
		}

		s := &searchState{
			targetLen:       g.Target.Len(),
			permutations:    g.mode == ModePermutation,
			showPartial:     g.showPartial,
			allowApostrophe: !g.noApostrophe,
		}
		if !s.permutations {
			s.seenGroups = make(map[string]struct{})
		}

		g.logger.Debug("starting search",
			zap.String("target", g.Target.Text),
			zap.Int("dictionary_words", len(dictionary)),
			zap.Stringer("mode", g.mode),
			zap.Bool("show_partial", g.showPartial))

		completed := s.search(ctx, g.Target.Letters, dictionary, nil, yield)

		g.logger.Debug("search finished",
			zap.Bool("completed", completed),
			zap.Int("visited", s.visited),
			zap.Int("scanned", s.scanned),
			zap.Int("emitted", s.emitted),
			zap.Int("seen_groups", len(s.seenGroups)))
	}
}
