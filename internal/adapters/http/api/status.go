package api

import (
	"errors"
	"net/http"

	"github.com/courtstats/courtstats/internal/app"
	"github.com/courtstats/courtstats/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatusHandler handles load-status requests.
type StatusHandler struct {
	deps          Dependencies
	statsProvider StatsProvider
}

// NewStatusHandler creates a new status handler.
func NewStatusHandler(deps Dependencies, statsProvider StatsProvider) *StatusHandler {
	return &StatusHandler{deps: deps, statsProvider: statsProvider}
}

// HandleStatus handles GET /status requests.
func (h *StatusHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": h.deps.Status(r.Context()),
		"stats":  h.statsProvider.GetStats(),
	})
}

// ReloadHandler handles reload requests.
type ReloadHandler struct {
	deps Dependencies
}

// NewReloadHandler creates a new reload handler.
func NewReloadHandler(deps Dependencies) *ReloadHandler {
	return &ReloadHandler{deps: deps}
}

// HandleReload handles POST /reload requests. A reload while a load is in
// flight is rejected with 409; the prior snapshot stays queryable.
func (h *ReloadHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Load(r.Context()); err != nil {
		if errors.Is(err, app.ErrLoadInProgress) {
			writeError(w, http.StatusConflict, "load_in_progress", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Status(r.Context()))
}

// HealthHandler handles health check requests.
type HealthHandler struct{}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// HandleHealth handles GET /healthz requests by serving Prometheus
// exposition from the custom registry.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}).ServeHTTP(w, r)
}
