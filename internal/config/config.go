package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap/zapcore"
)

// Config holds settings shared by the CLI and the HTTP function.
type Config struct {
	Dictionary string `yaml:"dictionary" env:"ANAGRAM_DICTIONARY" env-default:"/usr/share/dict/words"`
	LogLevel   string `yaml:"log_level"  env:"ANAGRAM_LOG_LEVEL"  env-default:"warn"`

	// Timeout bounds a CLI search. Zero means no limit.
	Timeout time.Duration `yaml:"timeout" env:"ANAGRAM_TIMEOUT" env-default:"0s"`

	BigQuery BigQueryConfig `yaml:"bigquery"`
	Server   ServerConfig   `yaml:"server"`
}

type BigQueryConfig struct {
	Project  string `yaml:"project"  env:"ANAGRAM_BQ_PROJECT"  env-default:"xword-x"`
	Table    string `yaml:"table"    env:"ANAGRAM_BQ_TABLE"    env-default:"xword-x.FirestoreQuery.all_words"`
	Location string `yaml:"location" env:"ANAGRAM_BQ_LOCATION" env-default:"US"`
}

type ServerConfig struct {
	Port       string `yaml:"port"        env:"PORT"                env-default:"8080"`
	LocalOnly  bool   `yaml:"local_only"  env:"LOCAL_ONLY"`
	MaxResults int    `yaml:"max_results" env:"ANAGRAM_MAX_RESULTS" env-default:"100"`

	// Timeout bounds a request's search when the request carries no
	// deadline of its own.
	Timeout time.Duration `yaml:"timeout" env:"ANAGRAM_SERVER_TIMEOUT" env-default:"1m"`
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// With an empty path, configuration comes from ENV + defaults only.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Validate checks values the tags cannot express.
func (c Config) Validate() error {
	var errs []error
	if c.Dictionary == "" {
		errs = append(errs, errors.New("dictionary must not be empty"))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %v", c.Timeout))
	}
	if c.Server.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("server.timeout must be positive, got %v", c.Server.Timeout))
	}
	if c.Server.MaxResults < 1 {
		errs = append(errs, fmt.Errorf("server.max_results must be at least 1, got %d", c.Server.MaxResults))
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level. Call after Validate.
func (c Config) Level() zapcore.Level {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.WarnLevel
	}
	return level
}
