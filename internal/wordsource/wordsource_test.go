package wordsource

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words")
	require.NoError(t, os.WriteFile(path, []byte("cat\nAct\n\ncan't\n"), 0o644))

	words, err := LoadFile(t.Context(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "Act", "", "can't"}, words)
}

func TestLoadFile_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing")

	_, err := LoadFile(t.Context(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDictionaryUnreadable)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), path)
}

func TestLoadReader_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := LoadReader(ctx, strings.NewReader("cat\n"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBigQuery_Query(t *testing.T) {
	b := BigQuery{Project: "xword-x", Table: "xword-x.FirestoreQuery.all_words", Location: "US"}
	assert.Equal(t, "SELECT word_key FROM `xword-x.FirestoreQuery.all_words` WHERE scope = @scope", b.Query())
}
