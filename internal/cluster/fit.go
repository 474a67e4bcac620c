package cluster

import (
	"context"
	"fmt"

	"github.com/segmenta/segmenta/pkg/models"
)

const (
	defaultK        = 5
	defaultSeed     = 42
	defaultRestarts = 10
)

// FitClusterer fits k-means from scratch on every request, on raw
// (unstandardized) features. It owns no scaler and no cross-request state.
type FitClusterer struct {
	k        int
	seed     int64
	restarts int
}

// NewFitClusterer creates a fit-fresh clusterer. Non-positive arguments fall
// back to the defaults (K=5, seed=42, 10 restarts).
func NewFitClusterer(k int, seed int64, restarts int) *FitClusterer {
	if k <= 0 {
		k = defaultK
	}
	if seed == 0 {
		seed = defaultSeed
	}
	if restarts <= 0 {
		restarts = defaultRestarts
	}
	return &FitClusterer{k: k, seed: seed, restarts: restarts}
}

func (c *FitClusterer) Mode() string { return "fit" }

// Assign fits k-means on the given customers and returns one cluster id per
// row. The same customers, K and seed always produce identical assignments.
func (c *FitClusterer) Assign(ctx context.Context, customers []models.Customer, pair models.FeaturePair) ([]int, error) {
	points, err := featureMatrix(customers, pair)
	if err != nil {
		return nil, err
	}
	if distinct := distinctPoints(points); distinct < c.k {
		return nil, fmt.Errorf("%w: %d distinct points, need %d", ErrTooFewPoints, distinct, c.k)
	}

	assign, _, err := runKMeans(ctx, points, c.k, c.seed, c.restarts)
	if err != nil {
		return nil, err
	}
	return assign, nil
}
