// Package config loads server settings from an optional TOML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all server configuration.
type Config struct {
	Server      ServerConfig      `toml:"server"`
	AI          AIConfig          `toml:"ai"`
	Database    DatabaseConfig    `toml:"database"`
	Leaderboard LeaderboardConfig `toml:"leaderboard"`
	RateLimit   RateLimitConfig   `toml:"rate_limit"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port         string        `toml:"port"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
}

// AIConfig selects the parse path: "mock" uses only the rule-based
// parser, "live" tries the remote model first. The API key is never read
// from the file, only from OPENAI_API_KEY.
type AIConfig struct {
	Mode           string        `toml:"mode"`
	APIKey         string        `toml:"-"`
	BaseURL        string        `toml:"base_url,omitempty"`
	RequestTimeout time.Duration `toml:"request_timeout"`
}

// DatabaseConfig holds the sqlite path.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// LeaderboardConfig points at the remote leaderboard service; empty URL
// disables syncing.
type LeaderboardConfig struct {
	URL string `toml:"url"`
}

// RateLimitConfig bounds parse/submit requests per client.
type RateLimitConfig struct {
	Requests int           `toml:"requests"`
	Window   time.Duration `toml:"window"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		AI: AIConfig{
			Mode:           "mock",
			RequestTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Path: "./island.db",
		},
		RateLimit: RateLimitConfig{
			Requests: 20,
			Window:   time.Minute,
		},
	}
}

// Load reads the config file at path (missing file is fine), then
// applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
		if err == nil {
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	applyEnv(&cfg)

	if cfg.AI.Mode != "mock" && cfg.AI.Mode != "live" {
		return cfg, fmt.Errorf("invalid ai mode %q", cfg.AI.Mode)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("AI_MODE"); v != "" {
		cfg.AI.Mode = v
	}
	cfg.AI.APIKey = os.Getenv("OPENAI_API_KEY")
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("LEADERBOARD_URL"); v != "" {
		cfg.Leaderboard.URL = v
	}
	if v := os.Getenv("RATE_LIMIT_REQUESTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RateLimit.Requests = n
		}
	}
}

// Live reports whether the remote parser should be attempted first.
func (c Config) Live() bool {
	return c.AI.Mode == "live"
}
