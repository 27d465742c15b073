package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Analysis
	ah := AnalyzeHandler{Analyzer: d.Analyzer, Hub: d.Hub, Finder: d.Finder, CfgVal: d.CfgVal}
	mux.HandleFunc("/api/analyze", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.Analyze,
	}))
	mux.HandleFunc("/api/analyze/batch", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.Batch,
	}))

	// Model
	mh := ModelHandler{Analyzer: d.Analyzer, Hub: d.Hub, LoadBundle: d.LoadBundle}
	mux.HandleFunc("/api/model", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: mh.Get,
	}))
	mux.HandleFunc("/api/model/reload", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: requireToken(d.AdminToken, mh.Reload),
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		Hub:         d.Hub,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: requireToken(d.AdminToken, ch.Put),
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Company-domain cache
	dh := DomainsHandler{DB: d.DB}
	mux.HandleFunc("/api/domains/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: dh.GetByPath,
		http.MethodPut: dh.PutByPath,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Health
	hh := HealthHandler{Analyzer: d.Analyzer, Hub: d.Hub}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
