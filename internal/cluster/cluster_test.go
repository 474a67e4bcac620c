package cluster

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/segmenta/segmenta/pkg/models"
)

// wellSeparated builds tight groups of customers around the given
// (income, score) centers, `per` customers each.
func wellSeparated(centers [][2]float64, per int) []models.Customer {
	var customers []models.Customer
	for _, c := range centers {
		for i := 0; i < per; i++ {
			customers = append(customers, models.Customer{
				Gender:        models.GenderFemale,
				Age:           30 + i,
				AnnualIncome:  c[0] + float64(i),
				SpendingScore: int(c[1]) + i,
			})
		}
	}
	return customers
}

// --- fit-fresh clusterer ---

func TestFitClusterer_WellSeparatedGroups(t *testing.T) {
	centers := [][2]float64{{10, 10}, {10, 90}, {50, 50}, {90, 10}, {90, 90}}
	customers := wellSeparated(centers, 4)

	c := NewFitClusterer(5, 42, 10)
	assign, err := c.Assign(context.Background(), customers, models.IncomeSpending)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(assign) != len(customers) {
		t.Fatalf("expected %d assignments, got %d", len(customers), len(assign))
	}

	// Exactly 5 distinct cluster ids in [0, 5).
	seen := map[int]bool{}
	for _, a := range assign {
		if a < 0 || a >= 5 {
			t.Fatalf("cluster id %d out of range", a)
		}
		seen[a] = true
	}
	if len(seen) != 5 {
		t.Errorf("expected 5 distinct clusters, got %d", len(seen))
	}

	// Members of the same synthetic group land in the same cluster.
	for g := 0; g < len(centers); g++ {
		first := assign[g*4]
		for i := 1; i < 4; i++ {
			if assign[g*4+i] != first {
				t.Errorf("group %d split across clusters %d and %d", g, first, assign[g*4+i])
			}
		}
	}
}

func TestFitClusterer_Deterministic(t *testing.T) {
	centers := [][2]float64{{15, 20}, {40, 60}, {80, 85}}
	customers := wellSeparated(centers, 7)

	c := NewFitClusterer(3, 42, 10)
	first, err := c.Assign(context.Background(), customers, models.IncomeSpending)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := c.Assign(context.Background(), customers, models.IncomeSpending)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same data, K and seed must give identical assignments:\n%v\n%v", first, second)
	}
}

func TestFitClusterer_TooFewDistinctPoints(t *testing.T) {
	// 6 rows but only 2 distinct (income, score) points.
	customers := []models.Customer{
		{Age: 20, AnnualIncome: 10, SpendingScore: 10},
		{Age: 21, AnnualIncome: 10, SpendingScore: 10},
		{Age: 22, AnnualIncome: 90, SpendingScore: 90},
		{Age: 23, AnnualIncome: 90, SpendingScore: 90},
		{Age: 24, AnnualIncome: 10, SpendingScore: 10},
		{Age: 25, AnnualIncome: 90, SpendingScore: 90},
	}
	c := NewFitClusterer(5, 42, 10)
	_, err := c.Assign(context.Background(), customers, models.IncomeSpending)
	if !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("expected ErrTooFewPoints, got %v", err)
	}
	if !IsDataError(err) {
		t.Errorf("ErrTooFewPoints should be a data error")
	}
}

func TestFitClusterer_DegenerateFeature(t *testing.T) {
	customers := []models.Customer{
		{Age: 20, AnnualIncome: 10, SpendingScore: 10},
	}
	c := NewFitClusterer(5, 42, 10)
	_, err := c.Assign(context.Background(), customers, models.IncomeSpending)
	if !errors.Is(err, ErrDegenerateFeature) {
		t.Errorf("expected ErrDegenerateFeature, got %v", err)
	}
}

func TestFitClusterer_ContextCancelled(t *testing.T) {
	customers := wellSeparated([][2]float64{{10, 10}, {90, 90}}, 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewFitClusterer(2, 42, 10)
	_, err := c.Assign(ctx, customers, models.IncomeSpending)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestFitClusterer_AgeSpendingPair(t *testing.T) {
	customers := []models.Customer{
		{Age: 18, AnnualIncome: 50, SpendingScore: 90},
		{Age: 19, AnnualIncome: 50, SpendingScore: 88},
		{Age: 60, AnnualIncome: 50, SpendingScore: 20},
		{Age: 62, AnnualIncome: 50, SpendingScore: 22},
	}
	c := NewFitClusterer(2, 42, 10)
	assign, err := c.Assign(context.Background(), customers, models.AgeSpending)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assign[0] != assign[1] || assign[2] != assign[3] || assign[0] == assign[2] {
		t.Errorf("age-based groups not separated: %v", assign)
	}
}

// --- scaler ---

func TestScaler_Standardizes(t *testing.T) {
	points := [][]float64{{10, 100}, {20, 200}, {30, 300}}
	s := FitScaler(points)
	out := s.Transform(points)

	if out[1][0] != 0 || out[1][1] != 0 {
		t.Errorf("mean point should map to zero, got %v", out[1])
	}
	if out[0][0] >= 0 || out[2][0] <= 0 {
		t.Errorf("points should be centered around zero: %v", out)
	}
	// Symmetric input: unit variance means the extremes land at ±sqrt(3/2).
	if out[0][0] != -out[2][0] {
		t.Errorf("symmetric input should scale symmetrically: %v", out)
	}
}

func TestScaler_ZeroVariance(t *testing.T) {
	points := [][]float64{{5, 1}, {5, 2}, {5, 3}}
	s := FitScaler(points)
	out := s.Transform(points)
	for i := range out {
		if out[i][0] != 0 {
			t.Errorf("zero-variance dimension should map to 0, got %v", out[i][0])
		}
	}
}

// --- artifacts and pretrained clusterer ---

func testArtifact(pair models.FeaturePair) *Artifact {
	return &Artifact{
		FeaturePair: pair,
		K:           2,
		Centroids:   [][]float64{{-1, -1}, {1, 1}},
		Scaler: &Scaler{
			Mean: []float64{50, 50},
			Std:  []float64{25, 25},
		},
	}
}

func TestArtifact_SaveLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ArtifactFileName(models.IncomeSpending))

	a := testArtifact(models.IncomeSpending)
	if err := a.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadArtifact(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(a, loaded) {
		t.Errorf("roundtrip mismatch:\nsaved:  %+v\nloaded: %+v", a, loaded)
	}
}

func TestLoadArtifact_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")

	a := testArtifact(models.IncomeSpending)
	a.Centroids = a.Centroids[:1] // fewer centroids than K
	if err := a.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := LoadArtifact(path); err == nil {
		t.Error("expected validation error for centroid/K mismatch")
	}
}

func TestPretrainedClusterer_AssignsNearestCentroid(t *testing.T) {
	c := NewPretrainedClusterer(map[models.FeaturePair]*Artifact{
		models.IncomeSpending: testArtifact(models.IncomeSpending),
	})

	// After scaling: (10,10) -> (-1.6,-1.6), (95,95) -> (1.8,1.8).
	customers := []models.Customer{
		{Age: 30, AnnualIncome: 10, SpendingScore: 10},
		{Age: 30, AnnualIncome: 95, SpendingScore: 95},
		{Age: 30, AnnualIncome: 20, SpendingScore: 15},
	}
	assign, err := c.Assign(context.Background(), customers, models.IncomeSpending)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{0, 1, 0}
	if !reflect.DeepEqual(assign, want) {
		t.Errorf("expected %v, got %v", want, assign)
	}
}

func TestPretrainedClusterer_MissingModel(t *testing.T) {
	c := NewPretrainedClusterer(map[models.FeaturePair]*Artifact{
		models.IncomeSpending: testArtifact(models.IncomeSpending),
	})
	customers := wellSeparated([][2]float64{{10, 10}, {90, 90}}, 3)
	_, err := c.Assign(context.Background(), customers, models.AgeSpending)
	if !errors.Is(err, ErrNoModel) {
		t.Errorf("expected ErrNoModel, got %v", err)
	}
}
