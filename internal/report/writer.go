// Package report renders analysis results: the clustered CSV file, the
// scatter chart and the HTML pages.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/series"
	"github.com/segmenta/segmenta/internal/dataset"
	"github.com/segmenta/segmenta/pkg/models"
)

// CSVWriter persists clustered datasets under an output directory.
type CSVWriter struct {
	outDir string
}

func NewCSVWriter(outDir string) *CSVWriter {
	return &CSVWriter{outDir: outDir}
}

// modeTag returns the filename prefix marking which feature pair produced
// the clustering.
func modeTag(pair models.FeaturePair) string {
	if pair == models.AgeSpending {
		return "age_clustered_"
	}
	return "income_clustered_"
}

// WriteClustered writes the original columns plus an appended Cluster column
// to the output directory, named by prefixing the original filename with the
// mode tag. Returns the path of the written file.
func (w *CSVWriter) WriteClustered(t *dataset.Table, assignments []int, pair models.FeaturePair, originalName string) (string, error) {
	df := t.DataFrame().Mutate(series.New(assignments, series.Int, "Cluster"))
	if df.Error() != nil {
		return "", fmt.Errorf("append cluster column: %w", df.Error())
	}

	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(w.outDir, modeTag(pair)+filepath.Base(originalName))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	if err := df.WriteCSV(f); err != nil {
		return "", fmt.Errorf("write clustered csv: %w", err)
	}
	return path, nil
}
