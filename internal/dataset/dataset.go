// Package dataset parses uploaded customer CSVs and validates their schema.
package dataset

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/segmenta/segmenta/pkg/models"
)

// Column names required in the uploaded CSV, after header trimming.
const (
	ColGender = "Gender"
	ColAge    = "Age"
	ColIncome = "Annual Income (k$)"
	ColScore  = "Spending Score (1-100)"
)

// RequiredColumns is the full set of columns an upload must contain.
var RequiredColumns = []string{ColGender, ColAge, ColIncome, ColScore}

// SchemaError reports required columns missing from an upload. Its message
// always names the full required set so the caller can correct the file.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("csv missing columns: %s (required: %s)",
		strings.Join(e.Missing, ", "), strings.Join(RequiredColumns, ", "))
}

// Table is a parsed upload: the typed customer records plus the underlying
// dataframe, kept so the clustered CSV can be written back out with the
// original columns intact.
type Table struct {
	df      dataframe.DataFrame
	Records []models.Customer
}

// DataFrame returns the parsed dataframe with trimmed headers.
func (t *Table) DataFrame() dataframe.DataFrame {
	return t.df
}

// Parse reads a CSV, trims whitespace from all column headers, verifies the
// required columns are present and extracts typed records. A missing column
// yields a *SchemaError; anything else is a parse failure.
func Parse(r io.Reader) (*Table, error) {
	df := dataframe.ReadCSV(r, dataframe.HasHeader(true))
	if df.Error() != nil {
		return nil, fmt.Errorf("read csv: %w", df.Error())
	}

	names := df.Names()
	trimmed := make([]string, len(names))
	for i, n := range names {
		trimmed[i] = strings.TrimSpace(n)
	}
	if err := df.SetNames(trimmed...); err != nil {
		return nil, fmt.Errorf("normalize headers: %w", err)
	}

	present := make(map[string]bool, len(trimmed))
	for _, n := range trimmed {
		present[n] = true
	}
	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	records, err := extractRecords(df)
	if err != nil {
		return nil, err
	}

	return &Table{df: df, Records: records}, nil
}

func extractRecords(df dataframe.DataFrame) ([]models.Customer, error) {
	genders := df.Col(ColGender).Records()
	ages := df.Col(ColAge).Float()
	incomes := df.Col(ColIncome).Float()
	scores := df.Col(ColScore).Float()

	records := make([]models.Customer, df.Nrow())
	for i := range records {
		if math.IsNaN(ages[i]) {
			return nil, fmt.Errorf("row %d: %q is not numeric", i+1, ColAge)
		}
		if math.IsNaN(incomes[i]) {
			return nil, fmt.Errorf("row %d: %q is not numeric", i+1, ColIncome)
		}
		if math.IsNaN(scores[i]) {
			return nil, fmt.Errorf("row %d: %q is not numeric", i+1, ColScore)
		}
		records[i] = models.Customer{
			Gender:        models.Gender(strings.TrimSpace(genders[i])),
			Age:           int(ages[i]),
			AnnualIncome:  incomes[i],
			SpendingScore: int(scores[i]),
		}
	}
	return records, nil
}
