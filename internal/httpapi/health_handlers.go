package httpapi

import (
	"net/http"

	"jobscreen-engine/internal/analyze"
	"jobscreen-engine/internal/events"
)

type HealthHandler struct {
	Analyzer *analyze.Analyzer
	Hub      *events.Hub
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	b := h.Analyzer.Bundle()
	writeJSON(w, map[string]any{
		"ok":          true,
		"model":       b.Version,
		"degraded":    !b.HasForest(),
		"subscribers": h.Hub.Subscribers(),
	})
}
