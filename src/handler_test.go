package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crosswarped.com/anagram/internal/config"
)

type fakeScopes map[string][]string

func (f fakeScopes) Words(_ context.Context, scope string) ([]string, error) {
	words, ok := f[scope]
	if !ok {
		return nil, errors.New("no such scope")
	}
	return words, nil
}

func newTestServer() *server {
	cfg := &config.Config{
		Server: config.ServerConfig{MaxResults: 10, Timeout: time.Minute},
	}
	return newServer(cfg, zap.NewNop(), fakeScopes{"animals": {"cat", "dog", "god"}})
}

func post(t *testing.T, s *server, body string) (int, GenerateAnagramsResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/generate-anagrams", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.generateAnagrams(rec, req)

	var resp GenerateAnagramsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec.Code, resp
}

func TestGenerateAnagrams(t *testing.T) {
	s := newTestServer()

	for _, tc := range []struct {
		name       string
		body       string
		wantStatus int
		want       GenerateAnagramsResponse
	}{
		{
			name:       "words in request",
			body:       `{"text": "cat", "words": ["cat", "act", "a", "c", "t"], "maxResults": 10}`,
			wantStatus: http.StatusOK,
			want:       GenerateAnagramsResponse{Success: true, Anagrams: []string{"ACT", "CAT", "A C T"}},
		},
		{
			name:       "partial and permutations",
			body:       `{"text": "at", "words": ["a", "t"], "showPartial": true, "permutations": true, "maxResults": 10}`,
			wantStatus: http.StatusOK,
			want:       GenerateAnagramsResponse{Success: true, Anagrams: []string{"  A", "  T", "* A T", "* T A"}},
		},
		{
			name:       "word scope",
			body:       `{"text": "odg", "wordScope": "animals", "maxResults": 10}`,
			wantStatus: http.StatusOK,
			want:       GenerateAnagramsResponse{Success: true, Anagrams: []string{"DOG", "GOD"}},
		},
		{
			name:       "max results",
			body:       `{"text": "odg", "wordScope": "animals", "maxResults": 1}`,
			wantStatus: http.StatusOK,
			want:       GenerateAnagramsResponse{Success: true, Anagrams: []string{"DOG"}},
		},
		{
			name:       "no anagrams",
			body:       `{"text": "xyz", "words": ["cat"], "maxResults": 10}`,
			wantStatus: http.StatusOK,
			want:       GenerateAnagramsResponse{Success: true, Anagrams: []string{}, Error: "No anagrams could be generated with the given parameters"},
		},
		{
			name:       "illegal character",
			body:       `{"text": "cat!", "words": ["cat"], "maxResults": 10}`,
			wantStatus: http.StatusBadRequest,
			want:       GenerateAnagramsResponse{Error: "Illegal character in input: !"},
		},
		{
			name:       "max results too large",
			body:       `{"text": "cat", "words": ["cat"], "maxResults": 11}`,
			wantStatus: http.StatusBadRequest,
			want:       GenerateAnagramsResponse{Error: "maxResults must be at most 10"},
		},
		{
			name:       "no words",
			body:       `{"text": "cat", "maxResults": 10}`,
			wantStatus: http.StatusBadRequest,
			want:       GenerateAnagramsResponse{Error: "words must not be empty"},
		},
		{
			name:       "empty text",
			body:       `{"text": " ", "words": ["cat"], "maxResults": 10}`,
			wantStatus: http.StatusBadRequest,
			want:       GenerateAnagramsResponse{Error: "text must not be empty"},
		},
		{
			name:       "unknown scope",
			body:       `{"text": "cat", "wordScope": "plants", "maxResults": 10}`,
			wantStatus: http.StatusOK,
			want:       GenerateAnagramsResponse{Error: `loading scope "plants": no such scope`},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			status, resp := post(t, s, tc.body)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.want, resp)
		})
	}
}

func TestGenerateAnagrams_InvalidJSON(t *testing.T) {
	status, resp := post(t, newTestServer(), `{"text": `)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, resp.Success)
	assert.True(t, strings.HasPrefix(resp.Error, "Invalid JSON"), resp.Error)
}

func TestGenerateAnagrams_Methods(t *testing.T) {
	s := newTestServer()

	rec := httptest.NewRecorder()
	s.generateAnagrams(rec, httptest.NewRequest(http.MethodOptions, "/generate-anagrams", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	s.generateAnagrams(rec, httptest.NewRequest(http.MethodGet, "/generate-anagrams", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), "Method GET not allowed")
}

func TestSearchTimeout(t *testing.T) {
	assert.Equal(t, time.Minute, searchTimeout(t.Context(), time.Minute))

	ctx, cancel := context.WithTimeout(t.Context(), time.Minute)
	defer cancel()
	got := searchTimeout(ctx, time.Hour)
	assert.Greater(t, got, 50*time.Second)
	assert.LessOrEqual(t, got, 55*time.Second)

	// Closer than the margin: the deadline is used without the margin.
	ctx, cancel = context.WithTimeout(t.Context(), 2*time.Second)
	defer cancel()
	got = searchTimeout(ctx, time.Hour)
	assert.Positive(t, got)
	assert.LessOrEqual(t, got, 2*time.Second)
}

func TestGenerateAnagrams_ShortDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(t.Context(), 3*time.Second)
	defer cancel()
	req := httptest.NewRequestWithContext(ctx, http.MethodPost, "/generate-anagrams",
		strings.NewReader(`{"text": "odg", "wordScope": "animals", "maxResults": 10}`))
	rec := httptest.NewRecorder()
	newTestServer().generateAnagrams(rec, req)

	var resp GenerateAnagramsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, GenerateAnagramsResponse{Success: true, Anagrams: []string{"DOG", "GOD"}}, resp)
}
