package api

import "net/http"

// RecordsHandler handles all-time records requests.
type RecordsHandler struct {
	deps Dependencies
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(deps Dependencies) *RecordsHandler {
	return &RecordsHandler{deps: deps}
}

// HandleRecords handles GET /records requests.
func (h *RecordsHandler) HandleRecords(w http.ResponseWriter, r *http.Request) {
	out, err := h.deps.Records(r.Context())
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
