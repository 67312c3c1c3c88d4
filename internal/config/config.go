// Package config loads xtab settings from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/chriserin/xtab/internal/parser"
)

type Config struct {
	Store   StoreConfig
	Parse   ParseConfig
	Logging LoggingConfig
}

type StoreConfig struct {
	// Path of the SQLite database holding imported documents.
	Path string `env:"XTAB_DB_PATH" default:".xtab/xtab.db"`
}

type ParseConfig struct {
	// MaxDepth bounds element nesting (default: 64)
	MaxDepth int `env:"XTAB_MAX_DEPTH" default:"64"`

	// SkipUnknown ignores elements outside the grammar instead of failing.
	SkipUnknown bool `env:"XTAB_SKIP_UNKNOWN" default:"false"`

	// NormalizeText applies Unicode NFC to labels, titles and control values.
	NormalizeText bool `env:"XTAB_NORMALIZE_TEXT" default:"false"`
}

type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" default:"info"`
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Store.Path) == "" {
		errs = append(errs, "XTAB_DB_PATH must not be empty")
	}
	if c.Parse.MaxDepth <= 0 {
		errs = append(errs, fmt.Sprintf("XTAB_MAX_DEPTH (%d) must be positive", c.Parse.MaxDepth))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{Store: {Path: %q}, Parse: {MaxDepth: %d, SkipUnknown: %v, NormalizeText: %v}, Logging: {Level: %q, Format: %q}}",
		c.Store.Path, c.Parse.MaxDepth, c.Parse.SkipUnknown, c.Parse.NormalizeText,
		c.Logging.Level, c.Logging.Format)
}

// ParseOptions converts the parse settings into parser options. logger may
// be nil.
func (c *Config) ParseOptions(logger *slog.Logger) []parser.Option {
	opts := []parser.Option{parser.WithMaxDepth(c.Parse.MaxDepth)}
	if c.Parse.SkipUnknown {
		opts = append(opts, parser.WithSkipUnknown())
	}
	if c.Parse.NormalizeText {
		opts = append(opts, parser.WithNormalizedText())
	}
	if logger != nil {
		opts = append(opts, parser.WithLogger(logger))
	}
	return opts
}
