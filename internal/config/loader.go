package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variable naming. CHALK_CONFIG names an optional YAML
// file; every other CHALK_* variable overrides the matching key.
const (
	envPrefix     = "CHALK_"
	envConfigFile = "CHALK_CONFIG"
)

// Load resolves the configuration in three layers of increasing
// precedence: built-in defaults, the YAML file named by CHALK_CONFIG,
// then CHALK_* environment variables.
func Load(_ context.Context) (*Config, error) {
	cfg := New()
	k := koanf.New(".")

	if path := os.Getenv(envConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", ErrLoadConfig, path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("%w: environment: %w", ErrLoadConfig, err)
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.AppearanceCap < 1 {
		return fmt.Errorf("%w: appearance_cap must be at least 1, got %d", ErrInvalidConfig, c.AppearanceCap)
	}
	if c.MaxLeaderboardLimit < 1 {
		return fmt.Errorf("%w: max_leaderboard_limit must be at least 1, got %d", ErrInvalidConfig, c.MaxLeaderboardLimit)
	}
	if c.WatchDebounceMS < 0 {
		return fmt.Errorf("%w: watch_debounce_ms must not be negative, got %d", ErrInvalidConfig, c.WatchDebounceMS)
	}
	if len(c.DivisionOrder) == 0 {
		return fmt.Errorf("%w: division_order must not be empty", ErrInvalidConfig)
	}
	if _, err := c.Divisions(); err != nil {
		return err
	}
	return nil
}
