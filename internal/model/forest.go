package model

// TreeNode is one node of a decision tree in flat-array form. Feature < 0
// marks a leaf, in which case Value is the leaf's fraud probability.
// Internal nodes route left when x[Feature] <= Threshold.
type TreeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

// Forest is the trained decision-tree ensemble. It votes by averaging
// leaf probabilities across trees. It was trained on the same scaled
// feature matrix as the network; a dense term sub-vector is fine for the
// fixed small vocabulary it saw.
type Forest struct {
	Trees       []Tree `json:"trees"`
	NumFeatures int    `json:"num_features"`
}

// Predict returns the forest's fraud probability in [0,1].
func (f *Forest) Predict(x []float64) float64 {
	if len(f.Trees) == 0 {
		return 0
	}
	var sum float64
	for ti := range f.Trees {
		sum += f.Trees[ti].predict(x)
	}
	return sum / float64(len(f.Trees))
}

func (t *Tree) predict(x []float64) float64 {
	i := 0
	// A well-formed tree visits each node at most once; more steps than
	// nodes means a cyclic export, and the walk must still terminate.
	for steps := 0; steps < len(t.Nodes); steps++ {
		if i < 0 || i >= len(t.Nodes) {
			return 0
		}
		n := &t.Nodes[i]
		if n.Feature < 0 {
			return n.Value
		}
		if n.Feature < len(x) && x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
	return 0
}
