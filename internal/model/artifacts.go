package model

import (
	"strings"
	"unicode"
)

// EngineeredFeatures is the fixed count of engineered scalars appended
// to the weighted-term sub-vector. The classifiers were trained on
// V + EngineeredFeatures columns; every artifact must agree on it.
const EngineeredFeatures = 14

// Vectorizer is the persisted text-to-weighted-terms transform: a fixed
// vocabulary mapping each term (unigram or bigram) to a column, and the
// per-term inverse-document-frequency weights learned offline.
type Vectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
	NgramMax   int            `json:"ngram_max"`
}

// Dim is the vocabulary size V.
func (v *Vectorizer) Dim() int { return len(v.IDF) }

// Transform encodes normalized text as a dense tf·idf vector with L2
// row normalization, matching how the training pipeline vectorized.
// Terms outside the vocabulary contribute zero weight; they are never
// an error.
func (v *Vectorizer) Transform(text string) []float64 {
	out := make([]float64, v.Dim())
	words := tokenize(text)

	addTerm := func(term string) {
		if col, ok := v.Vocabulary[term]; ok && col >= 0 && col < len(out) {
			out[col] += v.IDF[col]
		}
	}

	for i, w := range words {
		addTerm(w)
		if v.NgramMax >= 2 && i+1 < len(words) {
			addTerm(w + " " + words[i+1])
		}
	}

	// L2 normalize.
	var sumSq float64
	for _, x := range out {
		sumSq += x * x
	}
	if sumSq > 0 {
		norm := sqrt(sumSq)
		for i := range out {
			out[i] /= norm
		}
	}
	return out
}

func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Scaler is the persisted per-dimension standardization: subtract mean,
// divide by scale, frozen from the training run.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Dim is the number of columns the scaler was fitted on.
func (s *Scaler) Dim() int { return len(s.Mean) }

// Apply standardizes the vector in place. A zero scale (a column that
// was constant in training) is treated as identity; dividing by it
// would poison the vector with NaNs.
func (s *Scaler) Apply(x []float64) {
	for i := range x {
		x[i] -= s.Mean[i]
		if s.Scale[i] != 0 {
			x[i] /= s.Scale[i]
		}
	}
}
