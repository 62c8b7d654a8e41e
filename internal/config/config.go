// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - Load layers defaults, optional YAML file, and environment variables.
// - External errors must be wrapped via this package's error helpers.
package config

import "context"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataDir holds the season manifest, metadata manifest, and season files.
	DataDir string `koanf:"data_dir"`

	// ManifestName names the season manifest file inside DataDir.
	ManifestName string `koanf:"manifest"`

	// PlayersName names the competitor metadata file inside DataDir.
	PlayersName string `koanf:"players_file"`

	// RemoteBaseURL, when set, substitutes an online source for recent
	// seasons; any failure falls back to the local copy.
	RemoteBaseURL string `koanf:"remote_base_url"`

	// RemoteFromYear is the first season year fetched remotely.
	RemoteFromYear int `koanf:"remote_from_year"`

	// FetchRatePerSec throttles remote season requests.
	FetchRatePerSec float64 `koanf:"fetch_rate_per_sec"`

	// MaxSearchResults caps GET /competitors?limit.
	MaxSearchResults int `koanf:"max_search_results"`

	// MinRateMatches is the eligibility threshold for rate-based records.
	MinRateMatches int `koanf:"min_rate_matches"`

	// TopChampions caps the champion list in event detail views.
	TopChampions int `koanf:"top_champions"`

	// RecentFinalsLimit caps the recent finals list in event detail views.
	RecentFinalsLimit int `koanf:"recent_finals_limit"`

	// AllowedOrigins configures CORS for the browser explorer.
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// New creates a Config with defaults. Context is accepted first to
// satisfy the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9090",
		DataDir:           "data",
		ManifestName:      "seasons.json",
		PlayersName:       "players.json",
		FetchRatePerSec:   2,
		MaxSearchResults:  25,
		MinRateMatches:    50,
		TopChampions:      10,
		RecentFinalsLimit: 10,
		AllowedOrigins:    []string{"*"},
	}
}
