package segment_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/segmenta/segmenta/internal/cluster"
	"github.com/segmenta/segmenta/internal/dataset"
	"github.com/segmenta/segmenta/internal/report"
	"github.com/segmenta/segmenta/internal/segment"
	"github.com/segmenta/segmenta/pkg/models"
)

func parseCSV(t *testing.T, csv string) *dataset.Table {
	t.Helper()
	table, err := dataset.Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return table
}

// blockingClusterer waits out the context deadline.
type blockingClusterer struct{}

func (blockingClusterer) Mode() string { return "fit" }
func (blockingClusterer) Assign(ctx context.Context, _ []models.Customer, _ models.FeaturePair) ([]int, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestAnalyze_YoungVIPCluster(t *testing.T) {
	// One tight cluster: young, wealthy, high-spending, mostly female.
	csv := `Gender,Age,Annual Income (k$),Spending Score (1-100)
Female,26,78,83
Female,28,80,85
Female,30,82,87
Male,27,79,84
Male,29,81,86
`
	svc := segment.NewService(cluster.NewFitClusterer(1, 42, 10), nil, 30*time.Second)

	result, err := svc.Analyze(context.Background(), parseCSV(t, csv), segment.Params{
		Pair: models.IncomeSpending,
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if len(result.Insights) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(result.Insights))
	}
	ins := result.Insights[0]
	if ins.Label != "VIP / Big Spenders" {
		t.Errorf("expected VIP label, got %q", ins.Label)
	}
	if !strings.Contains(ins.Description, "Young") {
		t.Errorf("mean age 28 should select the young VIP variant, got %q", ins.Description)
	}
	if ins.GenderProfile != models.FemaleDominated {
		t.Errorf("60%% female should be female dominated, got %q", ins.GenderProfile)
	}
	if ins.Size != 5 {
		t.Errorf("expected size 5, got %d", ins.Size)
	}
	if ins.AvgIncome != 80.0 {
		t.Errorf("expected avg income 80.0, got %v", ins.AvgIncome)
	}
	if result.KPIs.TotalCustomers != 5 {
		t.Errorf("expected 5 total customers, got %d", result.KPIs.TotalCustomers)
	}
	if result.CSVPath != "" {
		t.Errorf("non-persisting analysis should not set a csv path, got %q", result.CSVPath)
	}
	if len(result.Assignments) != 5 {
		t.Errorf("expected 5 assignments, got %d", len(result.Assignments))
	}
}

func TestAnalyze_SeparatesDistinctGroups(t *testing.T) {
	// Two well-separated groups: rich savers and young trendsetters.
	var b strings.Builder
	b.WriteString("Gender,Age,Annual Income (k$),Spending Score (1-100)\n")
	rows := []string{
		"Male,48,90,15", "Female,52,92,18", "Male,45,88,12", "Male,50,95,20",
		"Female,21,18,80", "Female,23,20,85", "Male,19,15,78", "Female,22,22,82",
	}
	b.WriteString(strings.Join(rows, "\n"))
	b.WriteString("\n")

	svc := segment.NewService(cluster.NewFitClusterer(2, 42, 10), nil, 30*time.Second)

	result, err := svc.Analyze(context.Background(), parseCSV(t, b.String()), segment.Params{
		Pair: models.IncomeSpending,
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if len(result.Insights) != 2 {
		t.Fatalf("expected 2 insights, got %d", len(result.Insights))
	}
	labels := map[string]bool{}
	for _, ins := range result.Insights {
		labels[ins.Label] = true
	}
	if !labels["Wealthy Savers"] || !labels["Young Trendsetters"] {
		t.Errorf("expected Wealthy Savers and Young Trendsetters, got %v", labels)
	}
}

func TestAnalyze_PersistsClusteredCSV(t *testing.T) {
	csv := `Gender,Age,Annual Income (k$),Spending Score (1-100)
Female,26,78,83
Male,48,20,15
`
	dir := t.TempDir()
	svc := segment.NewService(cluster.NewFitClusterer(2, 42, 10), report.NewCSVWriter(dir), 30*time.Second)

	result, err := svc.Analyze(context.Background(), parseCSV(t, csv), segment.Params{
		Pair:     models.IncomeSpending,
		Filename: "mall.csv",
		Persist:  true,
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	want := filepath.Join(dir, "income_clustered_mall.csv")
	if result.CSVPath != want {
		t.Errorf("expected csv path %q, got %q", want, result.CSVPath)
	}
	raw, err := os.ReadFile(result.CSVPath)
	if err != nil {
		t.Fatalf("read persisted csv: %v", err)
	}
	if !strings.Contains(string(raw), "Cluster") {
		t.Error("persisted csv missing Cluster column")
	}
}

func TestAnalyze_TooFewPointsSurfacesDataError(t *testing.T) {
	csv := `Gender,Age,Annual Income (k$),Spending Score (1-100)
Female,26,78,83
Male,48,20,15
`
	svc := segment.NewService(cluster.NewFitClusterer(5, 42, 10), nil, 30*time.Second)

	_, err := svc.Analyze(context.Background(), parseCSV(t, csv), segment.Params{
		Pair: models.IncomeSpending,
	})
	if err == nil {
		t.Fatal("expected error for 2 distinct points with K=5")
	}
	if !cluster.IsDataError(err) {
		t.Errorf("expected a data error, got %v", err)
	}
}

func TestAnalyze_Timeout(t *testing.T) {
	csv := `Gender,Age,Annual Income (k$),Spending Score (1-100)
Female,26,78,83
`
	svc := segment.NewService(blockingClusterer{}, nil, 10*time.Millisecond)

	_, err := svc.Analyze(context.Background(), parseCSV(t, csv), segment.Params{
		Pair: models.IncomeSpending,
	})
	if err != segment.ErrClusteringTimeout {
		t.Errorf("expected ErrClusteringTimeout, got %v", err)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	var b strings.Builder
	b.WriteString("Gender,Age,Annual Income (k$),Spending Score (1-100)\n")
	rows := []string{
		"Male,48,90,15", "Female,52,92,18", "Male,45,88,12",
		"Female,21,18,80", "Female,23,20,85", "Male,19,15,78",
	}
	b.WriteString(strings.Join(rows, "\n"))
	b.WriteString("\n")

	svc := segment.NewService(cluster.NewFitClusterer(2, 42, 10), nil, 30*time.Second)

	first, err := svc.Analyze(context.Background(), parseCSV(t, b.String()), segment.Params{Pair: models.IncomeSpending})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	second, err := svc.Analyze(context.Background(), parseCSV(t, b.String()), segment.Params{Pair: models.IncomeSpending})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	for i := range first.Assignments {
		if first.Assignments[i] != second.Assignments[i] {
			t.Fatalf("assignments differ at row %d: %d vs %d", i, first.Assignments[i], second.Assignments[i])
		}
	}
}
