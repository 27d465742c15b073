// Package feature turns a normalized posting into the fixed-shape
// numeric vector the classifiers were trained on: the vectorizer's
// weighted-term sub-vector followed by 14 engineered scalars, scaled by
// the persisted standardization transform.
package feature

import (
	"fmt"
	"strings"

	"jobscreen-engine/internal/domain"
	"jobscreen-engine/internal/flags"
	"jobscreen-engine/internal/model"
)

// Engineered scalar layout, appended after the V-dimensional term
// sub-vector in exactly this order. The classifiers index columns by
// position; reordering these is a training-time change, never a
// runtime one.
const (
	idxTextLength = iota
	idxWordCount
	idxAvgWordLength
	idxUniqueWordRatio
	idxUppercaseRatio
	idxDigitRatio
	idxPunctuationRatio
	idxMisspellings
	idxHasSalary
	idxSalaryRealism
	idxRedFlagCount
	idxDomainScore
	idxHasRequirements
	idxKnownPortal
)

var knownPortals = map[string]bool{
	"naukri.com": true, "linkedin.com": true, "indeed.com": true,
	"internshala.com": true, "glassdoor.com": true,
}

type Extractor struct {
	Bundle *model.Bundle
}

// Extract builds and scales the full feature vector. The dimension is
// always V + 14 and must match what the classifiers expect; the bundle
// guarantees that at load time, and Extract re-checks as a final guard
// because a silent mismatch would mean confidently wrong predictions.
func (e Extractor) Extract(normText string, p domain.JobPosting, redFlagCount int, domainScore float64) ([]float64, error) {
	terms := e.Bundle.Vectorizer.Transform(normText)

	vec := make([]float64, 0, len(terms)+model.EngineeredFeatures)
	vec = append(vec, terms...)
	vec = append(vec, engineered(normText, p, redFlagCount, domainScore)...)

	if len(vec) != e.Bundle.Dim() {
		return nil, &domain.ConfigError{
			Artifact: "feature vector",
			Reason:   fmt.Sprintf("built %d columns, classifiers expect %d", len(vec), e.Bundle.Dim()),
		}
	}

	e.Bundle.Scaler.Apply(vec)
	return vec, nil
}

func engineered(normText string, p domain.JobPosting, redFlagCount int, domainScore float64) []float64 {
	s := make([]float64, model.EngineeredFeatures)

	words := strings.Fields(normText)
	s[idxTextLength] = float64(len(normText))
	s[idxWordCount] = float64(len(words))
	s[idxAvgWordLength] = avgWordLength(words)
	s[idxUniqueWordRatio] = uniqueRatio(words)
	s[idxUppercaseRatio] = charRatio(p.Description, func(r rune) bool { return r >= 'A' && r <= 'Z' })
	s[idxDigitRatio] = charRatio(normText, func(r rune) bool { return r >= '0' && r <= '9' })
	s[idxPunctuationRatio] = charRatio(p.Description, func(r rune) bool { return r == '!' || r == '?' })
	s[idxMisspellings] = float64(flags.CountMisspellings(normText))

	present, realism := SalaryRealism(p.Salary, normText)
	if present {
		s[idxHasSalary] = 1
	}
	s[idxSalaryRealism] = realism

	s[idxRedFlagCount] = float64(redFlagCount)
	s[idxDomainScore] = domainScore
	if flags.HasRequirementsSection(normText, p) {
		s[idxHasRequirements] = 1
	}
	if knownPortals[strings.ToLower(strings.TrimSpace(p.Portal))] {
		s[idxKnownPortal] = 1
	}
	return s
}

func avgWordLength(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	total := 0
	for _, w := range words {
		total += len(w)
	}
	return float64(total) / float64(len(words))
}

func uniqueRatio(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		seen[w] = struct{}{}
	}
	return float64(len(seen)) / float64(len(words))
}

func charRatio(s string, match func(rune) bool) float64 {
	if s == "" {
		return 0
	}
	runes := []rune(s)
	n := 0
	for _, r := range runes {
		if match(r) {
			n++
		}
	}
	return float64(n) / float64(len(runes))
}
