package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"jobscreen-engine/internal/analyze"
	"jobscreen-engine/internal/config"
	"jobscreen-engine/internal/discover"
	"jobscreen-engine/internal/domain"
	"jobscreen-engine/internal/events"
)

const defaultBatchLimit = 50

// AnalyzeRequest carries either raw pasted input or an already
// structured posting. Structured fields win when both are present.
type AnalyzeRequest struct {
	Input     string `json:"input,omitempty"`
	InputType string `json:"input_type,omitempty"`

	domain.JobPosting
}

type BatchRequest struct {
	Postings []AnalyzeRequest `json:"postings"`
}

type BatchItem struct {
	Result *domain.AnalysisResult `json:"result,omitempty"`
	Error  string                 `json:"error,omitempty"`
}

type AnalyzeHandler struct {
	Analyzer *analyze.Analyzer
	Hub      *events.Hub
	Finder   *discover.Finder
	CfgVal   *atomic.Value
}

func (h AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)

	var req AnalyzeRequest
	if err := dec.Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_json", "invalid JSON: "+err.Error())
		return
	}

	p, errCode, errMsg := h.toPosting(req)
	if errCode != "" {
		WriteError(w, r, http.StatusUnprocessableEntity, errCode, errMsg)
		return
	}

	h.enrich(r, &p)

	res, err := h.Analyzer.Analyze(r.Context(), p)
	if err != nil {
		writeAnalyzeErr(w, r, err)
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeAnalysisCompleted, 1, map[string]any{
		"company":    res.Company,
		"is_fake":    res.IsFake,
		"confidence": res.CombinedConfidence,
	}))
	WriteJSON(w, http.StatusOK, res)
}

func (h AnalyzeHandler) Batch(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)

	var req BatchRequest
	if err := dec.Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_json", "invalid JSON: "+err.Error())
		return
	}
	if len(req.Postings) == 0 {
		WriteError(w, r, http.StatusUnprocessableEntity, "empty_batch", "postings is empty")
		return
	}

	limit := defaultBatchLimit
	if cfg, ok := h.CfgVal.Load().(config.Config); ok && cfg.Analysis.BatchLimit > 0 {
		limit = cfg.Analysis.BatchLimit
	}
	if len(req.Postings) > limit {
		WriteError(w, r, http.StatusUnprocessableEntity, "batch_too_large",
			"batch exceeds the configured limit")
		return
	}

	items := make([]BatchItem, len(req.Postings))

	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(4)
	for i, in := range req.Postings {
		g.Go(func() error {
			p, code, msg := h.toPosting(in)
			if code != "" {
				items[i].Error = msg
				return nil
			}
			h.enrich(r, &p)
			res, err := h.Analyzer.Analyze(ctx, p)
			if err != nil {
				items[i].Error = err.Error()
				return nil
			}
			items[i].Result = &res
			return nil
		})
	}
	_ = g.Wait()

	WriteJSON(w, http.StatusOK, map[string]any{"results": items})
}

// toPosting resolves a request to a concrete posting. Returns an error
// code and message instead of a posting when the input is unusable.
func (h AnalyzeHandler) toPosting(req AnalyzeRequest) (domain.JobPosting, string, string) {
	if strings.TrimSpace(req.Input) == "" {
		if req.JobPosting.Empty() {
			return domain.JobPosting{}, "empty_posting", "no input text and no posting fields"
		}
		return req.JobPosting, "", ""
	}

	typ := domain.InputType(req.InputType)
	if typ != domain.InputURL && typ != domain.InputText {
		typ = analyze.DetectInputType(req.Input)
	}
	if typ == domain.InputURL {
		return domain.JobPosting{}, "url_input",
			"fetching a posting from a URL is not supported; paste the posting text"
	}
	if err := analyze.ValidateText(req.Input); err != nil {
		return domain.JobPosting{}, "input_too_short",
			"input text is too short to analyze"
	}

	p := analyze.ParseText(req.Input)
	// Explicit fields override anything parsed out of the text.
	overlayPosting(&p, req.JobPosting)
	return p, "", ""
}

// enrich fills a missing company domain from the discovery cache.
// Best effort; lookup failures leave the field empty.
func (h AnalyzeHandler) enrich(r *http.Request, p *domain.JobPosting) {
	if h.Finder == nil || p.CompanyDomain != "" || strings.TrimSpace(p.Company) == "" {
		return
	}
	if d, err := h.Finder.GetOrFind(r.Context(), p.Company); err == nil && d != "" {
		p.CompanyDomain = d
	}
}

func overlayPosting(dst *domain.JobPosting, src domain.JobPosting) {
	set := func(d *string, s string) {
		if strings.TrimSpace(s) != "" {
			*d = s
		}
	}
	set(&dst.Title, src.Title)
	set(&dst.Company, src.Company)
	set(&dst.CompanyDomain, src.CompanyDomain)
	set(&dst.ContactEmail, src.ContactEmail)
	set(&dst.Location, src.Location)
	set(&dst.Description, src.Description)
	set(&dst.Requirements, src.Requirements)
	set(&dst.Salary, src.Salary)
	set(&dst.JobType, src.JobType)
	set(&dst.Experience, src.Experience)
	set(&dst.Portal, src.Portal)
	set(&dst.URL, src.URL)
}

func writeAnalyzeErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyPosting):
		WriteError(w, r, http.StatusUnprocessableEntity, "empty_posting", err.Error())
	case errors.Is(err, domain.ErrInputTooShort):
		WriteError(w, r, http.StatusUnprocessableEntity, "input_too_short", err.Error())
	default:
		WriteError(w, r, http.StatusInternalServerError, "analyze_failed", err.Error())
	}
}
