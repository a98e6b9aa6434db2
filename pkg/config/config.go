// Package config holds the server configuration
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the server configuration. Debug and Port come from flags, the rest
// from the environment.
type Config struct {
	Debug bool
	Port  string

	APIKeys        []string
	FrontendOrigin string        // Allowed websocket Origin, any origin when empty
	TickInterval   time.Duration // How often running clocks publish updates
	PresetsFile    string        // Optional YAML file with extra presets
}

const DefaultTickInterval = 100 * time.Millisecond

var ErrInvalidTickInterval = errors.New("tick interval must be positive")

// LoadDotEnv loads variables from the given .env files, or .env when none are
// given, without overriding variables already set.
func LoadDotEnv(files ...string) error {
	return godotenv.Load(files...)
}

// FromEnv fills the environment sourced fields of cfg using getenv.
func FromEnv(cfg Config, getenv func(string) string) (Config, error) {
	if keys := getenv("API_KEYS"); keys != "" {
		cfg.APIKeys = nil
		for _, key := range strings.Split(keys, ",") {
			if key = strings.TrimSpace(key); key != "" {
				cfg.APIKeys = append(cfg.APIKeys, key)
			}
		}
	}

	cfg.FrontendOrigin = getenv("FRONTEND_ORIGIN")
	if cfg.FrontendOrigin == "" {
		cfg.FrontendOrigin = getenv("FRONTEND_PATH")
	}

	cfg.TickInterval = DefaultTickInterval
	if raw := getenv("TICK_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return cfg, fmt.Errorf("TICK_INTERVAL: %w", err)
		}
		if d <= 0 {
			return cfg, fmt.Errorf("TICK_INTERVAL %s: %w", raw, ErrInvalidTickInterval)
		}
		cfg.TickInterval = d
	}

	if file := getenv("PRESETS_FILE"); file != "" {
		cfg.PresetsFile = file
	}

	return cfg, nil
}
