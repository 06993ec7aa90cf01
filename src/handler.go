package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"crosswarped.com/anagram"
	"crosswarped.com/anagram/internal/config"
)

type GenerateAnagramsRequest struct {
	Text          string   `json:"text"`
	ShowPartial   bool     `json:"showPartial"`
	Permutations  bool     `json:"permutations"`
	NoApostrophe  bool     `json:"noApostrophe"`
	SmallWords    bool     `json:"smallWords"`
	Words         []string `json:"words"`
	WordScope     string   `json:"wordScope"`
	ExcludedWords []string `json:"excludedWords"`
	MaxResults    int      `json:"maxResults"`
}

type GenerateAnagramsResponse struct {
	Success  bool     `json:"success"`
	Anagrams []string `json:"anagrams"`
	Error    string   `json:"error,omitempty"`
}

// scopeWords loads the words of a named scope.
type scopeWords interface {
	Words(ctx context.Context, scope string) ([]string, error)
}

var errBadRequest = errors.New("bad request")

type server struct {
	cfg    *config.Config
	logger *zap.Logger
	scopes scopeWords
}

func newServer(cfg *config.Config, logger *zap.Logger, scopes scopeWords) *server {
	return &server{cfg: cfg, logger: logger, scopes: scopes}
}

func (s *server) execute(ctx context.Context, logger *zap.Logger, req GenerateAnagramsRequest) ([]string, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("%w: text must not be empty", errBadRequest)
	}
	if req.MaxResults <= 0 {
		return nil, fmt.Errorf("%w: maxResults must be at least 1", errBadRequest)
	}
	if req.MaxResults > s.cfg.Server.MaxResults {
		return nil, fmt.Errorf("%w: maxResults must be at most %d", errBadRequest, s.cfg.Server.MaxResults)
	}

	target, err := anagram.ParseTarget([]string{req.Text}, !req.NoApostrophe)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errBadRequest, err)
	}

	words := req.Words
	if req.WordScope != "" {
		scoped, err := s.scopes.Words(ctx, req.WordScope)
		if err != nil {
			return nil, fmt.Errorf("loading scope %q: %w", req.WordScope, err)
		}
		logger.Info("loaded scope", zap.String("scope", req.WordScope), zap.Int("words", len(scoped)))
		words = append(words, scoped...)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: words must not be empty", errBadRequest)
	}

	mode := anagram.ModeCombination
	if req.Permutations {
		mode = anagram.ModePermutation
	}
	gen := anagram.CreateGenerator(target, words, req.ExcludedWords, anagram.GeneratorParams{
		Mode:         mode,
		ShowPartial:  req.ShowPartial,
		NoApostrophe: req.NoApostrophe,
		SmallWords:   req.SmallWords,
		Logger:       logger,
	})

	timeout := searchTimeout(ctx, s.cfg.Server.Timeout)
	logger.Debug("searching", zap.Duration("timeout", timeout))

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	anagrams := []string{}
	for group := range gen.Anagrams(ctx) {
		anagrams = append(anagrams, group.Line(req.ShowPartial))
		if len(anagrams) >= req.MaxResults {
			break
		}
	}

	return anagrams, ctx.Err()
}

// deadlineMargin is kept back from a request deadline so there is time
// left to write the response.
const deadlineMargin = 5 * time.Second

// searchTimeout returns how long a search may run. Without a request
// deadline it is fallback. A deadline closer than deadlineMargin is used
// as is.
func searchTimeout(ctx context.Context, fallback time.Duration) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return fallback
	}
	remaining := time.Until(deadline)
	if remaining > deadlineMargin {
		return remaining - deadlineMargin
	}
	return remaining
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func writeResponse(w http.ResponseWriter, logger *zap.Logger, status int, response GenerateAnagramsResponse) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("encoding response", zap.Error(err))
	}
}

func (s *server) generateAnagrams(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	// CORS preflight.
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	logger := s.logger.With(zap.String("request_id", uuid.NewString()))

	if r.Method != http.MethodPost {
		writeResponse(w, logger, http.StatusMethodNotAllowed, GenerateAnagramsResponse{
			Error: fmt.Sprintf("Method %s not allowed", r.Method),
		})
		return
	}

	var req GenerateAnagramsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Info("invalid JSON body", zap.Error(err))
		writeResponse(w, logger, http.StatusBadRequest, GenerateAnagramsResponse{
			Error: fmt.Sprintf("Invalid JSON: %v", err),
		})
		return
	}

	start := time.Now()
	anagrams, err := s.execute(r.Context(), logger, req)
	logger.Info("generated anagrams",
		zap.String("text", req.Text),
		zap.Int("anagrams", len(anagrams)),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(err))

	response := GenerateAnagramsResponse{
		Success:  err == nil,
		Anagrams: anagrams,
	}

	status := http.StatusOK
	switch {
	case errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
		response.Error = strings.TrimPrefix(err.Error(), errBadRequest.Error()+": ")
	case err != nil:
		response.Error = err.Error()
	case len(anagrams) == 0:
		response.Error = "No anagrams could be generated with the given parameters"
	}

	writeResponse(w, logger, status, response)
}
