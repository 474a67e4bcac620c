package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/segmenta/segmenta/internal/dataset"
	"github.com/segmenta/segmenta/pkg/models"
)

const sampleCSV = `Gender,Age,Annual Income (k$),Spending Score (1-100)
Female,28,80,85
Male,45,30,20
Female,19,15,77
`

func parseSample(t *testing.T) *dataset.Table {
	t.Helper()
	table, err := dataset.Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parse sample: %v", err)
	}
	return table
}

func TestWriteClustered(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir)

	path, err := w.WriteClustered(parseSample(t), []int{2, 0, 1}, models.IncomeSpending, "mall_customers.csv")
	if err != nil {
		t.Fatalf("write clustered: %v", err)
	}

	if filepath.Base(path) != "income_clustered_mall_customers.csv" {
		t.Errorf("unexpected output name: %s", filepath.Base(path))
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if !strings.Contains(lines[0], "Cluster") {
		t.Errorf("header missing Cluster column: %s", lines[0])
	}
	if !strings.HasSuffix(lines[1], ",2") {
		t.Errorf("first row should end with its cluster id: %s", lines[1])
	}
}

func TestWriteClustered_AgeTag(t *testing.T) {
	w := NewCSVWriter(t.TempDir())

	path, err := w.WriteClustered(parseSample(t), []int{0, 0, 0}, models.AgeSpending, "customers.csv")
	if err != nil {
		t.Fatalf("write clustered: %v", err)
	}
	if filepath.Base(path) != "age_clustered_customers.csv" {
		t.Errorf("unexpected output name: %s", filepath.Base(path))
	}
}

func TestWriteClustered_StripsDirectoryFromName(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir)

	path, err := w.WriteClustered(parseSample(t), []int{0, 1, 2}, models.IncomeSpending, "../../etc/upload.csv")
	if err != nil {
		t.Fatalf("write clustered: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("output escaped the output dir: %s", path)
	}
	if filepath.Base(path) != "income_clustered_upload.csv" {
		t.Errorf("unexpected output name: %s", filepath.Base(path))
	}
}
