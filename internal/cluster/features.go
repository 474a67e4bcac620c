package cluster

import (
	"fmt"
	"math"

	"github.com/segmenta/segmenta/pkg/models"
)

// featureMatrix extracts the 2D feature vectors for the pair and rejects
// degenerate columns (fewer than 2 finite values).
func featureMatrix(customers []models.Customer, pair models.FeaturePair) ([][]float64, error) {
	points := make([][]float64, len(customers))
	usable := [2]int{}
	for i, c := range customers {
		v := pair.Values(c)
		for d := 0; d < 2; d++ {
			if !math.IsNaN(v[d]) && !math.IsInf(v[d], 0) {
				usable[d]++
			}
		}
		points[i] = v
	}
	for d := 0; d < 2; d++ {
		if usable[d] < 2 {
			return nil, fmt.Errorf("%w: %s", ErrDegenerateFeature, axisName(pair, d))
		}
	}
	return points, nil
}

func axisName(pair models.FeaturePair, dim int) string {
	x, y := pair.Axes()
	if dim == 0 {
		return x
	}
	return y
}

// distinctPoints counts unique feature vectors.
func distinctPoints(points [][]float64) int {
	seen := make(map[[2]float64]struct{}, len(points))
	for _, p := range points {
		seen[[2]float64{p[0], p[1]}] = struct{}{}
	}
	return len(seen)
}
