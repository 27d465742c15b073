package model

import "math"

// Layer is one dense layer of the feed-forward classifier: Weights is
// [out][in], Bias is [out]. Batch-norm parameters are folded into the
// weights at export time, so inference is plain affine + activation.
type Layer struct {
	Weights    [][]float64 `json:"weights"`
	Bias       []float64   `json:"bias"`
	Activation string      `json:"activation"` // relu | sigmoid | tanh | linear
}

// Network is the trained multi-layer feed-forward classifier. The final
// layer has a single sigmoid unit whose output is the fraud probability.
type Network struct {
	Layers []Layer `json:"layers"`
}

// InputDim is the feature dimension the network was trained on.
func (n *Network) InputDim() int {
	if len(n.Layers) == 0 || len(n.Layers[0].Weights) == 0 {
		return 0
	}
	return len(n.Layers[0].Weights[0])
}

// Predict runs a forward pass and returns the fraud probability in [0,1].
func (n *Network) Predict(x []float64) float64 {
	cur := x
	for li := range n.Layers {
		l := &n.Layers[li]
		next := make([]float64, len(l.Weights))
		for j, row := range l.Weights {
			sum := l.Bias[j]
			for i, w := range row {
				sum += w * cur[i]
			}
			next[j] = activate(l.Activation, sum)
		}
		cur = next
	}
	if len(cur) == 0 {
		return 0
	}
	return cur[0]
}

func activate(kind string, v float64) float64 {
	switch kind {
	case "relu":
		if v < 0 {
			return 0
		}
		return v
	case "sigmoid":
		return 1 / (1 + math.Exp(-v))
	case "tanh":
		return math.Tanh(v)
	default: // linear
		return v
	}
}

func sqrt(v float64) float64 { return math.Sqrt(v) }
