// Package analyze sequences the full pipeline for one posting:
// normalize, detect red flags, score the domain, extract features, run
// the ensemble, blend, classify quality, assemble the result. One call,
// no shared mutable state, no I/O.
package analyze

import (
	"context"
	"strings"
	"sync/atomic"

	"jobscreen-engine/internal/domain"
	"jobscreen-engine/internal/feature"
	"jobscreen-engine/internal/flags"
	"jobscreen-engine/internal/model"
	"jobscreen-engine/internal/predict"
	"jobscreen-engine/internal/quality"
	"jobscreen-engine/internal/textnorm"
	"jobscreen-engine/internal/verify"
)

// Analyzer holds the process-wide read-only artifacts. The bundle lives
// in an atomic.Value so a hot reload swaps a complete validated
// generation as one unit; concurrent calls need no locks because no
// stage mutates shared state.
type Analyzer struct {
	bundle   atomic.Value // *model.Bundle
	Detector flags.Detector
	Weights  predict.Weights
}

func New(b *model.Bundle, det flags.Detector, w predict.Weights) *Analyzer {
	a := &Analyzer{Detector: det, Weights: w}
	a.bundle.Store(b)
	return a
}

// Bundle returns the current model generation.
func (a *Analyzer) Bundle() *model.Bundle {
	return a.bundle.Load().(*model.Bundle)
}

// SwapBundle atomically replaces the model generation. The caller must
// pass a fully loaded and validated bundle; vectorizer and classifiers
// are never swapped independently.
func (a *Analyzer) SwapBundle(b *model.Bundle) {
	a.bundle.Store(b)
}

// Analyze runs the pipeline over one posting. Missing optional fields
// degrade to neutral defaults and are recorded as warnings; only a
// posting with neither title nor description is rejected.
func (a *Analyzer) Analyze(ctx context.Context, p domain.JobPosting) (domain.AnalysisResult, error) {
	if p.Empty() {
		return domain.AnalysisResult{}, domain.ErrEmptyPosting
	}

	var warnings []string
	if strings.TrimSpace(p.Description) == "" {
		warnings = append(warnings, "no description; analysis based on title only")
	}
	if strings.TrimSpace(p.CompanyDomain) == "" && strings.TrimSpace(p.ContactEmail) == "" {
		warnings = append(warnings, "no company domain or contact email; domain score is the absence default")
	}

	normText := textnorm.Normalize(strings.Join([]string{p.Title, p.Description, p.Requirements}, " "))

	redFlags := a.Detector.Detect(normText, p)
	severity := a.Detector.Aggregate(redFlags)
	domScore := verify.Score(p.Company, p.ContactEmail, p.CompanyDomain)

	bundle := a.Bundle()
	vec, err := feature.Extractor{Bundle: bundle}.Extract(normText, p, len(redFlags), domScore)
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	ens := predict.Ensemble{Bundle: bundle, Weights: a.Weights}
	pred, err := ens.Predict(ctx, vec)
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	if pred.Degraded {
		warnings = append(warnings, "tree classifier unavailable; confidence from network alone")
	}

	combined := ens.Blend(pred)

	res := domain.AnalysisResult{
		IsFake:             predict.IsFake(combined),
		AIConfidence:       pred.PDNN * 100,
		TreeConfidence:     pred.PTree * 100,
		CombinedConfidence: combined,
		RedFlags:           redFlags,
		RedFlagCount:       len(redFlags),
		RedFlagSeverity:    severity,
		JobQuality:         quality.Classify(combined, severity, len(redFlags)).String(),
		DomainScore:        domScore,
		Company:            fallback(p.Company, "Unknown"),
		JobTitle:           fallback(p.Title, "Unknown"),
		Location:           fallback(p.Location, "Not Specified"),
		Portal:             fallback(p.Portal, "Unknown"),
		Warnings:           warnings,
		Degraded:           len(warnings) > 0,
	}
	return res, nil
}

func fallback(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
