package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/courtstats/courtstats/internal/domain/query"
)

// SearchHandler handles competitor search requests.
type SearchHandler struct {
	deps  Dependencies
	limit int
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(deps Dependencies) *SearchHandler {
	return &SearchHandler{deps: deps, limit: defaultSearchLimit}
}

// HandleSearch handles GET /competitors?q=&limit= requests. A request
// without a limit of its own gets the configured default.
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	limit := queryInt(r, "limit", h.limit)
	out, err := h.deps.SearchCompetitors(r.Context(), q, limit)
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HistoryHandler handles filtered match history requests.
type HistoryHandler struct {
	deps Dependencies
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(deps Dependencies) *HistoryHandler {
	return &HistoryHandler{deps: deps}
}

// HandleHistory handles GET /competitors/{key}/matches requests. Filter
// params default to "all"; year=0 means every year.
func (h *HistoryHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	f := query.HistoryFilter{
		Year:     queryInt(r, "year", 0),
		Surface:  r.URL.Query().Get("surface"),
		Category: r.URL.Query().Get("category"),
		Result:   r.URL.Query().Get("result"),
		Text:     r.URL.Query().Get("q"),
	}
	out, err := h.deps.MatchHistory(r.Context(), key, f)
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// RivalryHandler handles rivalry summary requests.
type RivalryHandler struct {
	deps Dependencies
}

// NewRivalryHandler creates a new rivalry handler.
func NewRivalryHandler(deps Dependencies) *RivalryHandler {
	return &RivalryHandler{deps: deps}
}

// HandleRivalries handles GET /competitors/{key}/rivalries?limit= requests.
func (h *RivalryHandler) HandleRivalries(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	limit := queryInt(r, "limit", 0)
	out, err := h.deps.Rivalries(r.Context(), key, limit)
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// TimelineHandler handles ranking timeline requests.
type TimelineHandler struct {
	deps Dependencies
}

// NewTimelineHandler creates a new timeline handler.
func NewTimelineHandler(deps Dependencies) *TimelineHandler {
	return &TimelineHandler{deps: deps}
}

// HandleTimeline handles GET /competitors/{key}/ranking requests.
func (h *TimelineHandler) HandleTimeline(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	out, err := h.deps.RankingTimeline(r.Context(), key)
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// queryInt parses an integer query parameter, returning def when absent
// or unparsable.
func queryInt(r *http.Request, name string, def int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
