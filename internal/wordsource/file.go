// Package wordsource reads raw word lists for the anagram generator.
package wordsource

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrDictionaryUnreadable is wrapped by every failure to open or read a word
// list.
var ErrDictionaryUnreadable = errors.New("dictionary unreadable")

// LoadFile reads one word per line from path.
func LoadFile(ctx context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDictionaryUnreadable, err)
	}
	defer f.Close()

	words, err := LoadReader(ctx, f)
	if err != nil && !errors.Is(err, ctx.Err()) {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrDictionaryUnreadable, path, err)
	}
	return words, err
}

// LoadReader reads one word per line from r. Lines are returned as read;
// normalization happens when the dictionary is built.
func LoadReader(ctx context.Context, r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
