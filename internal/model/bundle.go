package model

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"jobscreen-engine/internal/domain"
)

// Bundle is one generation of model artifacts: vectorizer, scaler,
// network, and (optionally) forest, all exported by the same training
// run. It is loaded once, validated as a unit, and shared read-only by
// every concurrent analysis call; a new generation replaces the whole
// bundle atomically, never one artifact at a time.
type Bundle struct {
	Version    string
	CreatedAt  string
	Vectorizer *Vectorizer
	Scaler     *Scaler
	Network    *Network
	Forest     *Forest // nil = degraded mode, network only
}

// Dim is the full feature dimension V + EngineeredFeatures.
func (b *Bundle) Dim() int { return b.Vectorizer.Dim() + EngineeredFeatures }

// HasForest reports whether the tree ensemble is available.
func (b *Bundle) HasForest() bool { return b.Forest != nil && len(b.Forest.Trees) > 0 }

type manifest struct {
	Version   string `json:"version"`
	CreatedAt string `json:"created_at"`
}

// Load reads a bundle directory (bundle.json, vectorizer.json,
// scaler.json, network.json and optionally forest.json) and validates
// dimension agreement. Any missing required artifact or any
// disagreement is a *domain.ConfigError: the caller must refuse to
// serve rather than run with a silently wrong feature shape.
func Load(dir string) (*Bundle, error) {
	var m manifest
	if err := readArtifact(dir, "bundle.json", &m); err != nil {
		return nil, err
	}

	var vec Vectorizer
	if err := readArtifact(dir, "vectorizer.json", &vec); err != nil {
		return nil, err
	}
	var sc Scaler
	if err := readArtifact(dir, "scaler.json", &sc); err != nil {
		return nil, err
	}
	var net Network
	if err := readArtifact(dir, "network.json", &net); err != nil {
		return nil, err
	}

	var forest *Forest
	forestPath := filepath.Join(dir, "forest.json")
	if _, err := os.Stat(forestPath); err == nil {
		forest = &Forest{}
		if err := readArtifact(dir, "forest.json", forest); err != nil {
			return nil, err
		}
	} else {
		log.Printf("model: no forest.json in %s, serving degraded (network only)", dir)
	}

	return New(m.Version, m.CreatedAt, &vec, &sc, &net, forest)
}

// New assembles and validates a bundle from already-decoded artifacts.
func New(version, createdAt string, vec *Vectorizer, sc *Scaler, net *Network, forest *Forest) (*Bundle, error) {
	b := &Bundle{
		Version:    version,
		CreatedAt:  createdAt,
		Vectorizer: vec,
		Scaler:     sc,
		Network:    net,
		Forest:     forest,
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bundle) validate() error {
	if b.Vectorizer == nil || b.Vectorizer.Dim() == 0 {
		return &domain.ConfigError{Artifact: "vectorizer", Reason: "empty vocabulary"}
	}
	if len(b.Vectorizer.Vocabulary) > b.Vectorizer.Dim() {
		return &domain.ConfigError{
			Artifact: "vectorizer",
			Reason: fmt.Sprintf("vocabulary has %d terms but only %d idf weights",
				len(b.Vectorizer.Vocabulary), b.Vectorizer.Dim()),
		}
	}
	dim := b.Dim()
	if b.Scaler == nil || b.Scaler.Dim() != dim {
		got := 0
		if b.Scaler != nil {
			got = b.Scaler.Dim()
		}
		return &domain.ConfigError{
			Artifact: "scaler",
			Reason:   fmt.Sprintf("fitted on %d columns, bundle dimension is %d", got, dim),
		}
	}
	if len(b.Scaler.Scale) != len(b.Scaler.Mean) {
		return &domain.ConfigError{Artifact: "scaler", Reason: "mean/scale length mismatch"}
	}
	if b.Network == nil || b.Network.InputDim() != dim {
		got := 0
		if b.Network != nil {
			got = b.Network.InputDim()
		}
		return &domain.ConfigError{
			Artifact: "network",
			Reason:   fmt.Sprintf("input dimension %d, bundle dimension is %d", got, dim),
		}
	}
	in := dim
	for i, l := range b.Network.Layers {
		if len(l.Bias) != len(l.Weights) {
			return &domain.ConfigError{
				Artifact: "network",
				Reason:   fmt.Sprintf("layer %d: %d bias terms for %d units", i, len(l.Bias), len(l.Weights)),
			}
		}
		for j, row := range l.Weights {
			if len(row) != in {
				return &domain.ConfigError{
					Artifact: "network",
					Reason:   fmt.Sprintf("layer %d unit %d: %d weights for %d inputs", i, j, len(row), in),
				}
			}
		}
		in = len(l.Weights)
	}
	if b.Forest != nil && b.Forest.NumFeatures != dim {
		return &domain.ConfigError{
			Artifact: "forest",
			Reason:   fmt.Sprintf("trained on %d features, bundle dimension is %d", b.Forest.NumFeatures, dim),
		}
	}
	return nil
}

func readArtifact(dir, name string, v any) error {
	path := filepath.Join(dir, name)
	raw, err := os.ReadFile(path)
	if err != nil {
		return &domain.ConfigError{Artifact: name, Reason: err.Error()}
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &domain.ConfigError{Artifact: name, Reason: "decode: " + err.Error()}
	}
	log.Printf("model: loaded %s (%s)", name, humanize.Bytes(uint64(len(raw))))
	return nil
}
