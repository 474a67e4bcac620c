// Package cluster assigns customers to behavioral segments with k-means.
//
// Two deployment modes implement the same Clusterer interface: "fit" runs
// k-means from scratch on every request, "pretrained" loads fitted centroids
// and their scaler from disk and only assigns. The mode is fixed per
// deployment so a fresh fit is never silently mixed with a pretrained scaler.
package cluster

import (
	"context"
	"fmt"

	"github.com/segmenta/segmenta/internal/config"
	"github.com/segmenta/segmenta/pkg/models"
)

// Clusterer assigns every customer a cluster id in [0, K). Implementations
// must be deterministic and safe for concurrent use.
type Clusterer interface {
	Assign(ctx context.Context, customers []models.Customer, pair models.FeaturePair) ([]int, error)
	Mode() string
}

// New constructs the clusterer selected by config. Called once at startup.
func New(cfg config.ClusterConfig) (Clusterer, error) {
	switch cfg.Mode {
	case config.ModeFit:
		return NewFitClusterer(cfg.K, cfg.Seed, cfg.Restarts), nil
	case config.ModePretrained:
		artifacts, err := LoadArtifacts(cfg.ModelDir)
		if err != nil {
			return nil, err
		}
		return NewPretrainedClusterer(artifacts), nil
	default:
		return nil, fmt.Errorf("unknown cluster mode %q: must be %q or %q",
			cfg.Mode, config.ModeFit, config.ModePretrained)
	}
}
