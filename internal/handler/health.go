package handler

import (
	"encoding/json"
	"net/http"
)

// Health handles GET /health and GET /api/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]bool{"ok": false})
			return
		}
	}

	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
