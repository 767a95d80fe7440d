// Package config loads the agentcycle command configuration from the
// environment and command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// UI modes supported by the command.
const (
	UILine = "line"
	UITUI  = "tui"
)

// Config describes how a run is presented and paced.
type Config struct {
	InitialDelay time.Duration `env:"AGENTCYCLE_INITIAL_DELAY" envDefault:"0s"`
	UI           string        `env:"AGENTCYCLE_UI"            envDefault:"line"`
	LogLevel     string        `env:"AGENTCYCLE_LOG_LEVEL"     envDefault:"warn"`
	HistoryLimit int           `env:"AGENTCYCLE_HISTORY_LIMIT" envDefault:"0"`
	Audio        bool          `env:"AGENTCYCLE_AUDIO"         envDefault:"false"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads environment defaults into a Config, then lets args override them.
func Load(fs *flag.FlagSet, args []string) (Config, error) {
	if fs == nil {
		return Config{}, errors.New("flag parser is required")
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.DurationVar(&cfg.InitialDelay, "delay", cfg.InitialDelay, "Delay applied before the first tick")
	fs.StringVar(&cfg.UI, "ui", cfg.UI, "Presentation: line or tui")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.IntVar(&cfg.HistoryLimit, "history-limit", cfg.HistoryLimit, "Keep only the newest N history entries (0 = unbounded)")
	fs.BoolVar(&cfg.Audio, "audio", cfg.Audio, "Play audio cues on transitions")

	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the command cannot act on.
func (c Config) Validate() error {
	var errs []error
	if c.InitialDelay < 0 {
		errs = append(errs, fmt.Errorf("initial delay must not be negative, got %s", c.InitialDelay))
	}
	if c.HistoryLimit < 0 {
		errs = append(errs, fmt.Errorf("history limit must not be negative, got %d", c.HistoryLimit))
	}
	switch c.UI {
	case UILine, UITUI:
	default:
		errs = append(errs, fmt.Errorf("unknown ui %q", c.UI))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level converts LogLevel to a slog level.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}
