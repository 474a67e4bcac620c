// Package segment orchestrates one analysis request: cluster the parsed
// dataset, aggregate per-cluster statistics, classify insights and compute
// KPIs. Each request is independent; no state survives it.
package segment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmenta/segmenta/internal/cluster"
	"github.com/segmenta/segmenta/internal/dataset"
	"github.com/segmenta/segmenta/internal/insight"
	"github.com/segmenta/segmenta/internal/report"
	"github.com/segmenta/segmenta/pkg/models"
)

// Params holds validated parameters for one analysis.
type Params struct {
	Pair models.FeaturePair
	// Filename is the original upload name, used to name the persisted
	// output file when Persist is set.
	Filename string
	Persist  bool
}

// Result is the output of one analysis.
type Result struct {
	Insights    []models.Insight `json:"insights"`
	KPIs        models.KPIs      `json:"kpis"`
	CSVPath     string           `json:"csv_url,omitempty"`
	Assignments []int            `json:"-"`
}

// Service runs the segmentation pipeline with a timeout-bounded clusterer.
type Service struct {
	clusterer cluster.Clusterer
	writer    *report.CSVWriter
	timeout   time.Duration
}

func NewService(c cluster.Clusterer, w *report.CSVWriter, timeout time.Duration) *Service {
	return &Service{clusterer: c, writer: w, timeout: timeout}
}

// Mode reports the configured clusterer mode, for the health endpoint.
func (s *Service) Mode() string {
	return s.clusterer.Mode()
}

// Analyze clusters the table, derives one insight per non-empty cluster
// (ascending cluster id) and the dataset KPIs, and optionally persists the
// clustered CSV. On any error no partial result is returned.
func (s *Service) Analyze(ctx context.Context, table *dataset.Table, p Params) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	assignments, err := s.clusterer.Assign(ctx, table.Records, p.Pair)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrClusteringTimeout
		}
		return nil, err
	}

	summaries := insight.Summarize(table.Records, assignments)
	insights := make([]models.Insight, len(summaries))
	for i, sum := range summaries {
		insights[i] = insight.Classify(sum)
	}

	result := &Result{
		Insights:    insights,
		KPIs:        insight.KPIs(table.Records),
		Assignments: assignments,
	}

	if p.Persist {
		path, err := s.writer.WriteClustered(table, assignments, p.Pair, p.Filename)
		if err != nil {
			return nil, fmt.Errorf("persist clustered csv: %w", err)
		}
		result.CSVPath = path
	}

	slog.Info("analysis complete",
		"mode", s.clusterer.Mode(),
		"features", p.Pair,
		"rows", len(table.Records),
		"clusters", len(insights),
	)

	return result, nil
}
