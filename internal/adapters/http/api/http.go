// Package api declares HTTP contracts and route registration helpers for
// the query-layer surface consumed by the explorer UI.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/courtstats/courtstats/internal/app"
	"github.com/courtstats/courtstats/internal/domain/query"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the engine implementation.
type Dependencies interface {
	Load(ctx context.Context) error
	Status(ctx context.Context) app.Status

	SearchCompetitors(ctx context.Context, q string, limit int) ([]query.CompetitorSummary, error)
	MatchHistory(ctx context.Context, key string, f query.HistoryFilter) ([]query.MatchView, error)
	Rivalries(ctx context.Context, key string, limit int) ([]query.Rivalry, error)
	RankingTimeline(ctx context.Context, key string) (query.Timeline, error)
	ListEvents(ctx context.Context, f query.EventFilter) ([]query.EventSummary, error)
	EventDetail(ctx context.Context, key string) (query.EventDetail, error)
	Records(ctx context.Context) ([]query.Record, error)
}

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// defaultSearchLimit bounds /competitors responses for callers that send
// no limit parameter of their own.
const defaultSearchLimit = 25

// Option configures the API server.
type Option func(*Server)

// WithSearchLimit sets the result cap applied to /competitors requests
// that carry no explicit limit parameter.
func WithSearchLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.searchHandler.limit = n
		}
	}
}

// Server wires HTTP routes for the query API.
type Server struct {
	searchHandler   *SearchHandler
	historyHandler  *HistoryHandler
	rivalryHandler  *RivalryHandler
	timelineHandler *TimelineHandler
	eventsHandler   *EventsHandler
	recordsHandler  *RecordsHandler
	statusHandler   *StatusHandler
	reloadHandler   *ReloadHandler
	healthHandler   *HealthHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		searchHandler:   NewSearchHandler(deps),
		historyHandler:  NewHistoryHandler(deps),
		rivalryHandler:  NewRivalryHandler(deps),
		timelineHandler: NewTimelineHandler(deps),
		eventsHandler:   NewEventsHandler(deps),
		recordsHandler:  NewRecordsHandler(deps),
		statusHandler:   NewStatusHandler(deps, statsProvider),
		reloadHandler:   NewReloadHandler(deps),
		healthHandler:   NewHealthHandler(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to the router.
func (s *Server) Register(_ context.Context, r *mux.Router) {
	r.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz")).Methods(http.MethodGet)
	r.HandleFunc("/status", MetricsMiddleware(s.statusHandler.HandleStatus, "status")).Methods(http.MethodGet)
	r.HandleFunc("/reload", MetricsMiddleware(s.reloadHandler.HandleReload, "reload")).Methods(http.MethodPost)

	r.HandleFunc("/competitors", MetricsMiddleware(s.searchHandler.HandleSearch, "search")).Methods(http.MethodGet)
	r.HandleFunc("/competitors/{key}/matches", MetricsMiddleware(s.historyHandler.HandleHistory, "history")).Methods(http.MethodGet)
	r.HandleFunc("/competitors/{key}/rivalries", MetricsMiddleware(s.rivalryHandler.HandleRivalries, "rivalries")).Methods(http.MethodGet)
	r.HandleFunc("/competitors/{key}/ranking", MetricsMiddleware(s.timelineHandler.HandleTimeline, "timeline")).Methods(http.MethodGet)

	r.HandleFunc("/events", MetricsMiddleware(s.eventsHandler.HandleList, "events")).Methods(http.MethodGet)
	r.HandleFunc("/events/{key}", MetricsMiddleware(s.eventsHandler.HandleDetail, "event_detail")).Methods(http.MethodGet)

	r.HandleFunc("/records", MetricsMiddleware(s.recordsHandler.HandleRecords, "records")).Methods(http.MethodGet)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeQueryError translates engine errors to HTTP statuses.
func writeQueryError(w http.ResponseWriter, err error) {
	switch {
	case app.IsNotFound(err):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, query.ErrBadFilter):
		writeError(w, http.StatusBadRequest, "bad_filter", err)
	case errors.Is(err, app.ErrNotLoaded):
		writeError(w, http.StatusServiceUnavailable, "not_loaded", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
