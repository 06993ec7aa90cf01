package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"crosswarped.com/anagram"
	"crosswarped.com/anagram/internal/config"
	"crosswarped.com/anagram/internal/wordsource"
)

type options struct {
	showPartial  bool
	permutations bool
	noApostrophe bool
	smallWords   bool

	dictionary  string
	excludeFile string
	minLength   int
	maxLength   int
	maxResults  int
	timeout     time.Duration

	configPath string
	verbose    bool

	profile           bool
	profileFile       string
	memoryProfileFile string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "anagram [flags] TEXT...",
		Short: "Anagram generator",
		Long: `Generates anagrams of TEXT from the words of a dictionary.

Each line of output is one group of words whose letters, taken together,
are exactly the letters of TEXT. Word order within a group does not matter
unless --permutations is given.

All arguments are joined into one TEXT. Spaces inside an argument are
ignored, so "dirty room" and dirty room give the same anagrams.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&opts.showPartial, "show-partial", "p", false, "Show partial anagrams. Full anagrams will be preceded by an '*'")
	f.BoolVarP(&opts.permutations, "permutations", "r", false, "Generate each permutation instead of each combination. Much slower, but uses much less memory")
	f.BoolVarP(&opts.noApostrophe, "no-apostrophe", "n", false, "Don't generate words with apostrophes")
	f.BoolVarP(&opts.smallWords, "small-words", "s", false, "Restrict small (<= 2 letters) words to a predefined set")
	f.StringVarP(&opts.dictionary, "dictionary", "d", "/usr/share/dict/words", "Dictionary file")
	f.StringVarP(&opts.excludeFile, "exclude", "x", "", "File of words to leave out of the dictionary")
	f.IntVar(&opts.minLength, "min-length", 0, "The minimum word length")
	f.IntVar(&opts.maxLength, "max-length", 0, "The maximum word length (0 for no limit)")
	f.IntVar(&opts.maxResults, "max", 0, "Stop after this many lines (0 for no limit)")
	f.DurationVar(&opts.timeout, "timeout", 0, "The timeout for the search (0 for no limit)")
	f.StringVar(&opts.configPath, "config", "", "YAML config file")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	f.BoolVar(&opts.profile, "profile", false, "Profile the search")
	f.StringVar(&opts.profileFile, "profile-file", "cpu.pprof", "The file to write the CPU profile to")
	f.StringVar(&opts.memoryProfileFile, "memory-profile-file", "mem.pprof", "The file to write the memory profile to")

	return cmd
}

func newLogger(cfg *config.Config, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(cfg.Level())
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	// The target is checked before anything is loaded.
	target, err := anagram.ParseTarget(args, !opts.noApostrophe)
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, opts.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	dictionaryPath := cfg.Dictionary
	if cmd.Flags().Changed("dictionary") {
		dictionaryPath = opts.dictionary
	}
	timeout := cfg.Timeout
	if cmd.Flags().Changed("timeout") {
		timeout = opts.timeout
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	words, err := wordsource.LoadFile(ctx, dictionaryPath)
	if err != nil {
		return err
	}
	var excludedWords []string
	if opts.excludeFile != "" {
		if excludedWords, err = wordsource.LoadFile(ctx, opts.excludeFile); err != nil {
			return err
		}
	}
	logger.Info("loaded words",
		zap.String("dictionary", dictionaryPath),
		zap.Int("words", len(words)),
		zap.Int("excluded", len(excludedWords)))

	if opts.profile {
		stop, err := startProfile(opts, logger)
		if err != nil {
			return err
		}
		defer stop()
	}

	mode := anagram.ModeCombination
	if opts.permutations {
		mode = anagram.ModePermutation
	}
	gen := anagram.CreateGenerator(target, words, excludedWords, anagram.GeneratorParams{
		Mode:          mode,
		ShowPartial:   opts.showPartial,
		NoApostrophe:  opts.noApostrophe,
		SmallWords:    opts.smallWords,
		MinWordLength: opts.minLength,
		MaxWordLength: opts.maxLength,
		Logger:        logger,
	})

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()

	count := 0
	for group := range gen.Anagrams(ctx) {
		if _, err := fmt.Fprintln(out, group.Line(opts.showPartial)); err != nil {
			return err
		}
		count++
		if opts.maxResults > 0 && count >= opts.maxResults {
			break
		}
	}

	if err := ctx.Err(); err != nil {
		logger.Warn("search stopped early", zap.Int("lines", count), zap.Error(err))
		return fmt.Errorf("search stopped after %d lines: %w", count, err)
	}
	return out.Flush()
}

// startProfile starts CPU profiling. The returned func stops it and writes a
// heap profile.
func startProfile(opts *options, logger *zap.Logger) (func(), error) {
	f, err := os.Create(opts.profileFile)
	if err != nil {
		return nil, fmt.Errorf("creating profile file: %w", err)
	}
	mf, err := os.Create(opts.memoryProfileFile)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating memory profile file: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		mf.Close()
		return nil, fmt.Errorf("starting CPU profile: %w", err)
	}

	return func() {
		pprof.StopCPUProfile()
		f.Close()
		if err := pprof.WriteHeapProfile(mf); err != nil {
			logger.Warn("writing heap profile", zap.Error(err))
		}
		mf.Close()
	}, nil
}
