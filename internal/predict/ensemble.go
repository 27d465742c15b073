// Package predict runs the two trained classifiers over one scaled
// feature vector and blends their probabilities into the combined
// confidence score.
package predict

import (
	"context"

	"golang.org/x/sync/errgroup"

	"jobscreen-engine/internal/model"
)

// Weights controls the blend. The network is primary (it was trained on
// the richer term representation); the forest corroborates and guards
// against network overconfidence on out-of-distribution text.
type Weights struct {
	DNN  float64 `yaml:"dnn" json:"dnn"`
	Tree float64 `yaml:"tree" json:"tree"`
}

// DefaultWeights is the 0.6/0.4 network-favoring blend.
func DefaultWeights() Weights { return Weights{DNN: 0.6, Tree: 0.4} }

// Prediction holds both submodel probabilities so each is independently
// observable.
type Prediction struct {
	PDNN  float64
	PTree float64
	// Degraded is set when the forest was unavailable and the blend was
	// renormalized to the network alone.
	Degraded bool
}

type Ensemble struct {
	Bundle  *model.Bundle
	Weights Weights
}

// Predict invokes both classifiers on the same scaled vector. They are
// independent, so they run concurrently; neither mutates the vector or
// the bundle.
func (e Ensemble) Predict(ctx context.Context, vec []float64) (Prediction, error) {
	var p Prediction

	if !e.Bundle.HasForest() {
		p.PDNN = e.Bundle.Network.Predict(vec)
		p.Degraded = true
		return p, ctx.Err()
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		p.PDNN = e.Bundle.Network.Predict(vec)
		return nil
	})
	g.Go(func() error {
		p.PTree = e.Bundle.Forest.Predict(vec)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Prediction{}, err
	}
	return p, ctx.Err()
}

// Blend combines the submodel probabilities into the 0–100 confidence.
// With the forest unavailable the weight renormalizes to 100% network —
// an explicit degraded mode, not a silent fallback.
func (e Ensemble) Blend(p Prediction) float64 {
	w := e.Weights
	if w.DNN <= 0 && w.Tree <= 0 {
		w = DefaultWeights()
	}
	var combined float64
	if p.Degraded {
		combined = p.PDNN
	} else {
		combined = (w.DNN*p.PDNN + w.Tree*p.PTree) / (w.DNN + w.Tree)
	}
	return clamp(combined*100, 0, 100)
}

// IsFake applies the decision threshold to a combined confidence.
func IsFake(combined float64) bool { return combined > 50 }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
