package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/courtstats/courtstats/internal/domain/query"
)

// EventsHandler handles event listing and detail requests.
type EventsHandler struct {
	deps Dependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps Dependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// HandleList handles GET /events?category=&surface=&year=&q= requests.
func (h *EventsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	f := query.EventFilter{
		Category: r.URL.Query().Get("category"),
		Surface:  r.URL.Query().Get("surface"),
		Year:     queryInt(r, "year", 0),
		Name:     r.URL.Query().Get("q"),
	}
	out, err := h.deps.ListEvents(r.Context(), f)
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleDetail handles GET /events/{key} requests.
func (h *EventsHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	out, err := h.deps.EventDetail(r.Context(), key)
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
