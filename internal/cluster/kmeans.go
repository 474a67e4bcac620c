package cluster

import (
	"context"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

const maxIterations = 300

// runKMeans partitions points into k clusters using k-means++ seeding and
// Lloyd iterations, restarted `restarts` times with derived seeds; the run
// with the lowest inertia wins. All randomness comes from the seed, so the
// same points, k and seed always produce the same assignments.
func runKMeans(ctx context.Context, points [][]float64, k int, seed int64, restarts int) ([]int, [][]float64, error) {
	var (
		bestAssign  []int
		bestCenters [][]float64
		bestInertia = math.Inf(1)
	)

	for run := 0; run < restarts; run++ {
		rng := rand.New(rand.NewSource(seed + int64(run)))
		assign, centers, inertia, err := kmeansOnce(ctx, points, k, rng)
		if err != nil {
			return nil, nil, err
		}
		if inertia < bestInertia {
			bestInertia = inertia
			bestAssign = assign
			bestCenters = centers
		}
	}

	return bestAssign, bestCenters, nil
}

func kmeansOnce(ctx context.Context, points [][]float64, k int, rng *rand.Rand) ([]int, [][]float64, float64, error) {
	centers := seedPlusPlus(points, k, rng)
	assign := make([]int, len(points))
	for i := range assign {
		assign[i] = -1
	}

	for iter := 0; iter < maxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, 0, err
		}

		changed := false
		for i, p := range points {
			c := nearestCenter(p, centers)
			if c != assign[i] {
				assign[i] = c
				changed = true
			}
		}
		if !changed {
			break
		}

		recomputeCenters(points, assign, centers)
	}

	return assign, centers, inertia(points, assign, centers), nil
}

// seedPlusPlus picks k initial centers: the first uniformly, each next with
// probability proportional to its squared distance from the nearest chosen
// center.
func seedPlusPlus(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centers := make([][]float64, 0, k)
	first := points[rng.Intn(len(points))]
	centers = append(centers, append([]float64(nil), first...))

	d2 := make([]float64, len(points))
	for len(centers) < k {
		total := 0.0
		for i, p := range points {
			d := floats.Distance(p, centers[0], 2)
			min := d * d
			for _, c := range centers[1:] {
				d = floats.Distance(p, c, 2)
				if dd := d * d; dd < min {
					min = dd
				}
			}
			d2[i] = min
			total += min
		}

		var next []float64
		if total == 0 {
			// All points coincide with a chosen center.
			next = points[rng.Intn(len(points))]
		} else {
			target := rng.Float64() * total
			cum := 0.0
			next = points[len(points)-1]
			for i, w := range d2 {
				cum += w
				if cum >= target {
					next = points[i]
					break
				}
			}
		}
		centers = append(centers, append([]float64(nil), next...))
	}

	return centers
}

// nearestCenter returns the index of the closest center; ties go to the
// lowest index so results stay deterministic.
func nearestCenter(p []float64, centers [][]float64) int {
	best := 0
	bestDist := floats.Distance(p, centers[0], 2)
	for c := 1; c < len(centers); c++ {
		if d := floats.Distance(p, centers[c], 2); d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

// recomputeCenters moves each center to the mean of its members. A center
// that lost all members is re-seeded to the point farthest from its own
// assigned center (lowest index wins ties).
func recomputeCenters(points [][]float64, assign []int, centers [][]float64) {
	k := len(centers)
	counts := make([]int, k)
	sums := make([][2]float64, k)
	for i, p := range points {
		c := assign[i]
		counts[c]++
		sums[c][0] += p[0]
		sums[c][1] += p[1]
	}

	for c := 0; c < k; c++ {
		if counts[c] == 0 {
			centers[c] = append([]float64(nil), farthestPoint(points, assign, centers)...)
			continue
		}
		centers[c][0] = sums[c][0] / float64(counts[c])
		centers[c][1] = sums[c][1] / float64(counts[c])
	}
}

func farthestPoint(points [][]float64, assign []int, centers [][]float64) []float64 {
	best := points[0]
	bestDist := -1.0
	for i, p := range points {
		if d := floats.Distance(p, centers[assign[i]], 2); d > bestDist {
			bestDist = d
			best = p
		}
	}
	return best
}

func inertia(points [][]float64, assign []int, centers [][]float64) float64 {
	total := 0.0
	for i, p := range points {
		d := floats.Distance(p, centers[assign[i]], 2)
		total += d * d
	}
	return total
}
