package cluster

import (
	"gonum.org/v1/gonum/stat"
)

// Scaler standardizes features to zero mean and unit variance. The state is
// serialized inside model artifacts so pretrained centroids are always fed
// features scaled exactly as they were at fit time.
type Scaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// FitScaler computes per-dimension mean and population standard deviation.
func FitScaler(points [][]float64) *Scaler {
	if len(points) == 0 {
		return &Scaler{}
	}
	dims := len(points[0])
	s := &Scaler{
		Mean: make([]float64, dims),
		Std:  make([]float64, dims),
	}
	col := make([]float64, len(points))
	for d := 0; d < dims; d++ {
		for i, p := range points {
			col[i] = p[d]
		}
		s.Mean[d] = stat.Mean(col, nil)
		s.Std[d] = stat.PopStdDev(col, nil)
	}
	return s
}

// Transform returns standardized copies of the points. A zero-variance
// dimension maps to zero rather than dividing by zero.
func (s *Scaler) Transform(points [][]float64) [][]float64 {
	out := make([][]float64, len(points))
	for i, p := range points {
		scaled := make([]float64, len(p))
		for d := range p {
			if s.Std[d] == 0 {
				scaled[d] = 0
				continue
			}
			scaled[d] = (p[d] - s.Mean[d]) / s.Std[d]
		}
		out[i] = scaled
	}
	return out
}
