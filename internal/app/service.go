// Package app provides the engine service that owns the aggregate store
// lifecycle (new -> Load -> query*, reload resets) and implements the
// dependencies required by the HTTP API.
package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/courtstats/courtstats/internal/adapters/progress"
	"github.com/courtstats/courtstats/internal/adapters/repository"
	"github.com/courtstats/courtstats/internal/adapters/source"
	"github.com/courtstats/courtstats/internal/domain/dedupe"
	"github.com/courtstats/courtstats/internal/domain/normalize"
	"github.com/courtstats/courtstats/internal/domain/query"
	"github.com/courtstats/courtstats/pkg/logger"
	"github.com/courtstats/courtstats/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultMaxSearchResults  = 25
	defaultMinRateMatches    = 50
	defaultTopChampions      = 10
	defaultRecentFinalsLimit = 10
)

// Source yields the manifests and per-season row streams one load consumes.
type Source interface {
	Manifest(ctx context.Context) ([]source.Season, error)
	Profiles(ctx context.Context) ([]normalize.Profile, error)
	Rows(ctx context.Context, season source.Season) ([]normalize.RawRow, error)
}

// Status describes the outcome of the most recent completed load.
type Status struct {
	Loaded         bool     `json:"loaded"`
	LoadedAt       string   `json:"loaded_at,omitempty"`
	SeasonsLoaded  int      `json:"seasons_loaded"`
	SeasonsMissing []string `json:"seasons_missing,omitempty"`
	RowsAccepted   int      `json:"rows_accepted"`
	RowsSkipped    int      `json:"rows_skipped"`
	RowsDuplicate  int      `json:"rows_duplicate"`
	Matches        int      `json:"matches"`
	Competitors    int      `json:"competitors"`
	Events         int      `json:"events"`
}

// Service is the engine instance a caller constructs, loads, and queries.
type Service struct {
	mu sync.RWMutex

	store  *repository.Store
	status Status
	loaded bool

	// loading guards against interleaved loads; queries keep serving the
	// prior snapshot while a new one is built off to the side.
	loading atomic.Bool

	src      Source
	notifier progress.Notifier

	maxSearchResults  int
	minRateMatches    int
	topChampions      int
	recentFinalsLimit int

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets the season/metadata source for loads.
func WithSource(src Source) Option {
	return func(s *Service) {
		if src != nil {
			s.src = src
		}
	}
}

// WithProgressNotifier sets the notifier that receives load progress.
func WithProgressNotifier(n progress.Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithMaxSearchResults caps competitor search results.
func WithMaxSearchResults(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSearchResults = n
		}
	}
}

// WithMinRateMatches sets the eligibility threshold for rate-based records.
func WithMinRateMatches(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.minRateMatches = n
		}
	}
}

// WithTopChampions caps the champion list in event detail views.
func WithTopChampions(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topChampions = n
		}
	}
}

// WithRecentFinalsLimit caps the recent finals list in event detail views.
func WithRecentFinalsLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.recentFinalsLimit = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		notifier:          progress.NopNotifier{},
		maxSearchResults:  defaultMaxSearchResults,
		minRateMatches:    defaultMinRateMatches,
		topChampions:      defaultTopChampions,
		recentFinalsLimit: defaultRecentFinalsLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("engine")
	}
	return s
}

// Load ingests every season the manifest names and swaps the finalized
// store in as the queryable snapshot. A second Load while one is in
// flight fails with ErrLoadInProgress; the prior snapshot stays
// queryable throughout. A missing season is reported via progress and
// skipped, never fatal.
func (s *Service) Load(ctx context.Context) error {
	if s.src == nil {
		return ErrNoSource
	}
	if !s.loading.CompareAndSwap(false, true) {
		metrics.RecordLoadRejected()
		return ErrLoadInProgress
	}
	defer s.loading.Store(false)

	start := time.Now()
	s.logger.Info(ctx, "starting dataset load")

	seasons, err := s.src.Manifest(ctx)
	if err != nil {
		return err
	}
	profiles, err := s.src.Profiles(ctx)
	if err != nil {
		return err
	}

	norm := normalize.New(normalize.WithProfiles(profiles))
	store := repository.New(ctx)
	seen := dedupe.NewInMemorySeenSet()
	status := Status{}

	for _, season := range seasons {
		rows, err := s.src.Rows(ctx, season)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Warn(ctx, "season unavailable; continuing without it",
				logger.Int("year", season.Year),
				logger.String("season", season.Name),
				logger.Error(err),
			)
			status.SeasonsMissing = append(status.SeasonsMissing, season.Name)
			metrics.RecordSeasonMissing()
			s.notifier.Publish(ctx, progress.Event{
				Kind:   progress.KindSeasonMissing,
				Year:   season.Year,
				Season: season.Name,
				Detail: err.Error(),
			})
			continue
		}

		accepted := 0
		for _, row := range rows {
			m, ok := norm.Normalize(row)
			if !ok {
				status.RowsSkipped++
				metrics.RecordRowSkipped()
				continue
			}
			if seen.SeenAndRecord(ctx, m.ID) {
				status.RowsDuplicate++
				metrics.RecordRowDuplicate()
				continue
			}
			store.Add(m)
			accepted++
			metrics.RecordRowAccepted()
		}
		status.RowsAccepted += accepted
		status.SeasonsLoaded++
		metrics.RecordSeasonLoaded()
		s.notifier.Publish(ctx, progress.Event{
			Kind:   progress.KindSeasonLoaded,
			Year:   season.Year,
			Season: season.Name,
			Rows:   accepted,
		})
	}

	store.Finalize()

	// Backfill presentation fields the rows themselves cannot carry.
	for _, c := range store.Competitors() {
		if p, ok := norm.Profile(c.Key); ok {
			c.ImageURL = p.Image
			c.ProfileURL = p.URL
			if c.Country == "" {
				c.Country = p.Country
			}
		}
	}

	status.Loaded = true
	status.LoadedAt = time.Now().UTC().Format(time.RFC3339)
	status.Matches, status.Competitors, status.Events = store.Counts()

	s.mu.Lock()
	s.store = store
	s.status = status
	s.loaded = true
	s.mu.Unlock()

	durationMs := float64(time.Since(start).Milliseconds())
	metrics.RecordLoadCompleted(durationMs)
	s.notifier.Publish(ctx, progress.Event{Kind: progress.KindLoadDone, Rows: status.RowsAccepted})
	s.logger.Info(ctx, "dataset load complete",
		logger.Int("seasons", status.SeasonsLoaded),
		logger.Int("missing", len(status.SeasonsMissing)),
		logger.Int("accepted", status.RowsAccepted),
		logger.Int("skipped", status.RowsSkipped),
		logger.Int("duplicates", status.RowsDuplicate),
		logger.Float64("duration_ms", durationMs),
	)
	return nil
}

// snapshot returns the current queryable store, or ErrNotLoaded before
// the first load completes.
func (s *Service) snapshot() (*repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	return s.store, nil
}

// Loading reports whether a load is currently in flight.
func (s *Service) Loading() bool { return s.loading.Load() }

// Status returns the outcome of the most recent completed load.
func (s *Service) Status(_ context.Context) Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// SearchCompetitors implements the competitor search/autocomplete family.
func (s *Service) SearchCompetitors(_ context.Context, q string, limit int) ([]query.CompetitorSummary, error) {
	store, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	// limit <= 0 means the whole ordered set; only explicit limits are capped.
	if limit > s.maxSearchResults {
		limit = s.maxSearchResults
	}
	defer observe("search")()
	return query.SearchCompetitors(store, q, limit), nil
}

// MatchHistory implements the filtered match history family.
func (s *Service) MatchHistory(_ context.Context, key string, f query.HistoryFilter) ([]query.MatchView, error) {
	store, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	defer observe("history")()
	return query.MatchHistory(store, key, f)
}

// Rivalries implements the rivalry summary family.
func (s *Service) Rivalries(_ context.Context, key string, limit int) ([]query.Rivalry, error) {
	store, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	defer observe("rivalries")()
	return query.Rivalries(store, key, limit)
}

// RankingTimeline implements the ranking timeline family.
func (s *Service) RankingTimeline(_ context.Context, key string) (query.Timeline, error) {
	store, err := s.snapshot()
	if err != nil {
		return query.Timeline{}, err
	}
	defer observe("timeline")()
	return query.RankingTimeline(store, key)
}

// ListEvents implements the event listing family.
func (s *Service) ListEvents(_ context.Context, f query.EventFilter) ([]query.EventSummary, error) {
	store, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	defer observe("events")()
	return query.ListEvents(store, f)
}

// EventDetail implements the event detail family.
func (s *Service) EventDetail(_ context.Context, key string) (query.EventDetail, error) {
	store, err := s.snapshot()
	if err != nil {
		return query.EventDetail{}, err
	}
	defer observe("event_detail")()
	return query.Event(store, key, s.topChampions, s.recentFinalsLimit)
}

// Records implements the all-time records/leaderboards family.
func (s *Service) Records(_ context.Context) ([]query.Record, error) {
	store, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	defer observe("records")()
	return query.Records(store, s.minRateMatches), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"loaded":  s.loaded,
		"loading": s.loading.Load(),
	}
	if s.loaded {
		stats["seasonsLoaded"] = s.status.SeasonsLoaded
		stats["seasonsMissing"] = len(s.status.SeasonsMissing)
		stats["rowsAccepted"] = s.status.RowsAccepted
		stats["rowsSkipped"] = s.status.RowsSkipped
		stats["matches"] = s.status.Matches
		stats["competitors"] = s.status.Competitors
		stats["events"] = s.status.Events
	}
	return stats
}

// IsNotFound reports whether an error is one of the not-found kinds the
// API translates to 404.
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrCompetitorNotFound) || errors.Is(err, repository.ErrEventNotFound)
}

// observe times one query-layer operation.
func observe(operation string) func() {
	start := time.Now()
	return func() {
		metrics.RecordQueryLatency(operation, float64(time.Since(start).Milliseconds()))
	}
}
