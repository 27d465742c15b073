package httpapi

import (
	"net/http"

	"jobscreen-engine/internal/analyze"
	"jobscreen-engine/internal/domain"
	"jobscreen-engine/internal/events"
	"jobscreen-engine/internal/model"
)

type ModelHandler struct {
	Analyzer   *analyze.Analyzer
	Hub        *events.Hub
	LoadBundle func() (*model.Bundle, error)
}

type modelInfo struct {
	Version    string `json:"version"`
	CreatedAt  string `json:"created_at"`
	Vocabulary int    `json:"vocabulary"`
	Dim        int    `json:"dim"`
	Degraded   bool   `json:"degraded"`
}

func infoFor(b *model.Bundle) modelInfo {
	return modelInfo{
		Version:    b.Version,
		CreatedAt:  b.CreatedAt,
		Vocabulary: b.Vectorizer.Dim(),
		Dim:        b.Dim(),
		Degraded:   !b.HasForest(),
	}
}

func (h ModelHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, infoFor(h.Analyzer.Bundle()))
}

// Reload loads a fresh bundle from disk and swaps it in atomically.
// A bundle that fails validation leaves the current generation serving.
func (h ModelHandler) Reload(w http.ResponseWriter, r *http.Request) {
	b, err := h.LoadBundle()
	if err != nil {
		if domain.IsConfigError(err) {
			WriteError(w, r, http.StatusUnprocessableEntity, "bad_bundle", err.Error())
			return
		}
		WriteError(w, r, http.StatusInternalServerError, "reload_failed", err.Error())
		return
	}
	h.Analyzer.SwapBundle(b)

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeModelReloaded, 1, infoFor(b)))
	writeJSON(w, infoFor(b))
}
