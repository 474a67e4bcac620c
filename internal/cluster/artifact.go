package cluster

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/segmenta/segmenta/pkg/models"
)

// Artifact is a pretrained k-means model: the fitted centroids plus the
// scaler state they were fit with. Loaded once at startup and treated as
// read-only from then on, so it is safe for concurrent use.
type Artifact struct {
	FeaturePair models.FeaturePair `json:"feature_pair"`
	K           int                `json:"k"`
	Centroids   [][]float64        `json:"centroids"`
	Scaler      *Scaler            `json:"scaler"`
}

// ArtifactFileName is the conventional file name for a pair's model inside
// the model directory.
func ArtifactFileName(pair models.FeaturePair) string {
	return fmt.Sprintf("kmeans_%s.json", pair)
}

// LoadArtifact reads and validates a single model artifact.
func LoadArtifact(path string) (*Artifact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("decode model artifact %s: %w", path, err)
	}
	if err := a.validate(); err != nil {
		return nil, fmt.Errorf("invalid model artifact %s: %w", path, err)
	}
	return &a, nil
}

// LoadArtifacts loads the artifacts for both feature pairs from dir.
func LoadArtifacts(dir string) (map[models.FeaturePair]*Artifact, error) {
	artifacts := make(map[models.FeaturePair]*Artifact, 2)
	for _, pair := range []models.FeaturePair{models.IncomeSpending, models.AgeSpending} {
		a, err := LoadArtifact(filepath.Join(dir, ArtifactFileName(pair)))
		if err != nil {
			return nil, err
		}
		if a.FeaturePair != pair {
			return nil, fmt.Errorf("model artifact %s declares feature pair %q, want %q",
				ArtifactFileName(pair), a.FeaturePair, pair)
		}
		artifacts[pair] = a
	}
	return artifacts, nil
}

// Save writes the artifact as JSON. Used by offline training tooling and
// tests; the server itself only reads artifacts.
func (a *Artifact) Save(path string) error {
	raw, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("encode model artifact: %w", err)
	}
	return os.WriteFile(path, raw, 0o644)
}

func (a *Artifact) validate() error {
	if a.K < 2 {
		return fmt.Errorf("k must be >= 2, got %d", a.K)
	}
	if len(a.Centroids) != a.K {
		return fmt.Errorf("expected %d centroids, got %d", a.K, len(a.Centroids))
	}
	for i, c := range a.Centroids {
		if len(c) != 2 {
			return fmt.Errorf("centroid %d has %d dimensions, want 2", i, len(c))
		}
	}
	if a.Scaler == nil || len(a.Scaler.Mean) != 2 || len(a.Scaler.Std) != 2 {
		return fmt.Errorf("scaler state must cover both feature dimensions")
	}
	return nil
}
