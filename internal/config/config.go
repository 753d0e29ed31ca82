// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// ErrUnknownBackend is returned for a backend name that is not supported.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Config holds the settings shared by every command.
type Config struct {
	// DB is the SQLite database path. Empty selects the XDG data directory.
	DB string `env:"KONNEKTOREN_DB"`
	// Backend selects where game state is persisted.
	Backend string `env:"KONNEKTOREN_BACKEND" envDefault:"sqlite"`
	// StateFile is the JSON file used by the file backend.
	StateFile string `env:"KONNEKTOREN_STATE_FILE" envDefault:"konnektoren-state.json"`
	// Content is an optional game dataset overriding the built-in one.
	Content string `env:"KONNEKTOREN_CONTENT"`
	// Achievements is an optional achievement definition file.
	Achievements string `env:"KONNEKTOREN_ACHIEVEMENTS"`

	LogLevel  string `env:"KONNEKTOREN_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"KONNEKTOREN_LOG_FORMAT" envDefault:"auto"`

	HTTPAddr string `env:"KONNEKTOREN_HTTP_ADDR" envDefault:":8080"`
}

// Load reads an optional .env file from the working directory and parses the
// environment into a Config.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse reads the process environment into a Config.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that env parsing cannot.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendFile, BackendMemory:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
}
