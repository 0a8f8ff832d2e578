// Package config loads runtime settings from LIBRARY_* environment variables.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Store backends.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Config holds file locations and logging settings. Command-line flags
// override whatever the environment sets.
type Config struct {
	CatalogFile  string `env:"LIBRARY_CATALOG_FILE"  envDefault:"catalog.txt"`
	CheckoutFile string `env:"LIBRARY_CHECKOUT_FILE" envDefault:"myCheckouts.txt"`
	Store        string `env:"LIBRARY_STORE"         envDefault:"file"`
	DBFile       string `env:"LIBRARY_DB_FILE"       envDefault:"library.db"`
	LogLevel     string `env:"LIBRARY_LOG_LEVEL"     envDefault:"warn"`
}

// Load parses the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects unknown store backends and log levels.
func (c Config) Validate() error {
	switch c.Store {
	case StoreFile, StoreSQLite:
	default:
		return fmt.Errorf("unknown store %q (want %q or %q)", c.Store, StoreFile, StoreSQLite)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level maps LogLevel onto a slog level.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// NewLogger builds a text logger writing to w at the configured level.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	lvl, err := c.Level()
	if err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
