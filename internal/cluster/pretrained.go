package cluster

import (
	"context"
	"fmt"

	"github.com/segmenta/segmenta/pkg/models"
)

// PretrainedClusterer assigns customers to the nearest pretrained centroid,
// standardizing features with the scaler state the model was fit with. It
// never refits anything, so the shared artifacts stay read-only.
type PretrainedClusterer struct {
	artifacts map[models.FeaturePair]*Artifact
}

func NewPretrainedClusterer(artifacts map[models.FeaturePair]*Artifact) *PretrainedClusterer {
	return &PretrainedClusterer{artifacts: artifacts}
}

func (c *PretrainedClusterer) Mode() string { return "pretrained" }

func (c *PretrainedClusterer) Assign(ctx context.Context, customers []models.Customer, pair models.FeaturePair) ([]int, error) {
	art, ok := c.artifacts[pair]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoModel, pair)
	}

	points, err := featureMatrix(customers, pair)
	if err != nil {
		return nil, err
	}
	if distinct := distinctPoints(points); distinct < art.K {
		return nil, fmt.Errorf("%w: %d distinct points, need %d", ErrTooFewPoints, distinct, art.K)
	}

	scaled := art.Scaler.Transform(points)
	assign := make([]int, len(scaled))
	for i, p := range scaled {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		assign[i] = nearestCenter(p, art.Centroids)
	}
	return assign, nil
}
