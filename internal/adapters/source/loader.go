// Package source resolves the season manifest and streams raw rows from
// per-season tabular files. The engine consumes whatever this loader
// yields per file, in manifest order; retrieval details (remote
// substitution, local fallback) stay inside this package.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"github.com/courtstats/courtstats/internal/domain/normalize"
	"github.com/courtstats/courtstats/pkg/logger"
)

// Default loader configuration constants.
const (
	defaultRemoteTimeout = 30 * time.Second
	defaultRateLimit     = 2.0 // remote requests per second
	defaultRateBurst     = 1
	defaultManifestName  = "seasons.json"
	defaultPlayersName   = "players.json"
)

// Season is one manifest entry describing a per-season source file.
type Season struct {
	Year int    `json:"year"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithDataDir sets the directory holding manifest and season files.
func WithDataDir(dir string) Option {
	return func(l *Loader) {
		if dir != "" {
			l.dataDir = dir
		}
	}
}

// WithManifestName overrides the season manifest file name.
func WithManifestName(name string) Option {
	return func(l *Loader) {
		if name != "" {
			l.manifestName = name
		}
	}
}

// WithPlayersName overrides the competitor metadata file name.
func WithPlayersName(name string) Option {
	return func(l *Loader) {
		if name != "" {
			l.playersName = name
		}
	}
}

// WithRemoteBaseURL enables remote retrieval for recent seasons. Season
// paths are resolved relative to this URL; any failure falls back to the
// local copy.
func WithRemoteBaseURL(base string) Option {
	return func(l *Loader) {
		l.remoteBase = base
	}
}

// WithRemoteFromYear sets the first season year eligible for remote
// retrieval; earlier seasons always read the local copy.
func WithRemoteFromYear(year int) Option {
	return func(l *Loader) {
		l.remoteFromYear = year
	}
}

// WithHTTPClient sets a custom HTTP client for remote retrieval.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		if client != nil {
			l.client = client
		}
	}
}

// WithRateLimit sets custom rate limiting for remote retrieval.
func WithRateLimit(rps float64, burst int) Option {
	return func(l *Loader) {
		if rps > 0 && burst > 0 {
			l.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// WithLogger sets a custom logger for the loader.
func WithLogger(log logger.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.logger = log
		}
	}
}

// Loader reads the manifests and streams season rows.
type Loader struct {
	dataDir        string
	manifestName   string
	playersName    string
	remoteBase     string
	remoteFromYear int
	client         *http.Client
	limiter        *rate.Limiter
	logger         logger.Logger
}

// NewLoader creates a Loader with configuration options.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		dataDir:      "data",
		manifestName: defaultManifestName,
		playersName:  defaultPlayersName,
		client:       &http.Client{Timeout: defaultRemoteTimeout},
		limiter:      rate.NewLimiter(rate.Limit(defaultRateLimit), defaultRateBurst),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = logger.Get().Named("source")
	}
	return l
}

// Manifest reads the season manifest. Manifest order is load order.
func (l *Loader) Manifest(_ context.Context) ([]Season, error) {
	path := filepath.Join(l.dataDir, l.manifestName)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrManifestRead, path, err)
	}
	var seasons []Season
	if err := json.Unmarshal(raw, &seasons); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrManifestRead, path, err)
	}
	return seasons, nil
}

// Profiles reads the competitor metadata manifest. A missing file is not
// an error: backfill is optional and the engine degrades to row data.
func (l *Loader) Profiles(ctx context.Context) ([]normalize.Profile, error) {
	path := filepath.Join(l.dataDir, l.playersName)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Warn(ctx, "competitor metadata missing; skipping backfill", logger.String("path", path))
			return nil, nil
		}
		return nil, fmt.Errorf("read players manifest %s: %w", path, err)
	}
	var profiles []normalize.Profile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, fmt.Errorf("parse players manifest %s: %w", path, err)
	}
	return profiles, nil
}

// Rows streams one season's raw rows. Recent seasons may be substituted
// by the remote source; any remote failure falls back to the local copy.
// A season unavailable from both is reported via ErrSeasonUnavailable —
// the caller continues with the remaining seasons.
func (l *Loader) Rows(ctx context.Context, season Season) ([]normalize.RawRow, error) {
	if l.remoteEligible(season) {
		rows, err := l.fetchRemote(ctx, season)
		if err == nil {
			return rows, nil
		}
		l.logger.Warn(ctx, "remote season fetch failed; falling back to local copy",
			logger.Int("year", season.Year),
			logger.Error(err),
		)
	}
	return l.readLocal(season)
}

func (l *Loader) remoteEligible(season Season) bool {
	return l.remoteBase != "" && l.remoteFromYear > 0 && season.Year >= l.remoteFromYear
}

func (l *Loader) fetchRemote(ctx context.Context, season Season) ([]normalize.RawRow, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	url := l.remoteBase + "/" + season.Path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	rows, err := readRows(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return rows, nil
}

func (l *Loader) readLocal(season Season) ([]normalize.RawRow, error) {
	path := filepath.Join(l.dataDir, season.Path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSeasonUnavailable, path, err)
	}
	defer f.Close()
	rows, err := readRows(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSeasonUnavailable, path, err)
	}
	return rows, nil
}
