// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - Loading layers defaults, an optional YAML file, then environment variables.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// Season is the pool season year used when no snapshot exists.
	Season int `koanf:"season"`

	// CurrentWeek is the starting contest week for a fresh pool.
	CurrentWeek int `koanf:"current_week"`

	// SportKey selects the odds feed sport, e.g. "americanfootball_nfl".
	SportKey string `koanf:"sport_key"`

	// OddsAPIKey authenticates against the odds feed. Empty disables
	// fetching and the fallback schedule is used directly.
	OddsAPIKey string `koanf:"odds_api_key"`

	// OddsBaseURL overrides the odds feed endpoint (tests, proxies).
	OddsBaseURL string `koanf:"odds_base_url"`

	// FetchTimeoutMS bounds a single odds feed request.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// SnapshotPath is the SQLite file holding the pool snapshot.
	// Empty keeps state in memory only.
	SnapshotPath string `koanf:"snapshot_path"`

	// MaxStandingsLimit caps GET /standings?limit.
	MaxStandingsLimit int `koanf:"max_standings_limit"`
}

// New creates a Config with defaults. Context is accepted first to
// satisfy the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":8090",
		Season:            2025,
		CurrentWeek:       1,
		SportKey:          "americanfootball_nfl",
		OddsBaseURL:       "https://api.the-odds-api.com",
		FetchTimeoutMS:    10_000,
		SnapshotPath:      "underdog.db",
		MaxStandingsLimit: 100,
	}
}
