package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/segmenta/segmenta/internal/api/response"
	"github.com/segmenta/segmenta/internal/cluster"
	"github.com/segmenta/segmenta/internal/dataset"
	"github.com/segmenta/segmenta/internal/segment"
	"github.com/segmenta/segmenta/pkg/models"
)

// Segmenter defines the interface the handlers depend on.
type Segmenter interface {
	Analyze(ctx context.Context, table *dataset.Table, p segment.Params) (*segment.Result, error)
}

// featurePair maps the "features" form value to a feature pair. Empty
// selects the default income pair.
func featurePair(value string) (models.FeaturePair, bool) {
	switch value {
	case "", "income":
		return models.IncomeSpending, true
	case "age":
		return models.AgeSpending, true
	default:
		return "", false
	}
}

// NewAnalyzeHandler returns the handler for POST /api/v1/analyze: multipart
// CSV in, insights and KPIs out, nothing persisted.
func NewAnalyzeHandler(svc Segmenter, uploadDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, header, err := csvUpload(r)
		if err != nil {
			writeInputError(w, err)
			return
		}
		defer file.Close()

		pair, ok := featurePair(r.FormValue("features"))
		if !ok {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				`features must be "income" or "age"`, nil)
			return
		}

		saveUpload(uploadDir, file, header.Filename)

		table, err := dataset.Parse(file)
		if err != nil {
			writeParseError(w, err)
			return
		}

		result, err := svc.Analyze(r.Context(), table, segment.Params{
			Pair:     pair,
			Filename: header.Filename,
		})
		if err != nil {
			writeAnalysisError(w, err)
			return
		}

		response.JSON(w, result)
	}
}

func writeParseError(w http.ResponseWriter, err error) {
	var schemaErr *dataset.SchemaError
	if errors.As(err, &schemaErr) {
		response.Error(w, http.StatusUnprocessableEntity, "SCHEMA_ERROR",
			schemaErr.Error(), map[string]any{
				"missing":  schemaErr.Missing,
				"required": dataset.RequiredColumns,
			})
		return
	}
	response.Error(w, http.StatusBadRequest, "INVALID_CSV",
		"The file could not be parsed as a customer CSV", nil)
}

func writeAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case cluster.IsDataError(err):
		response.Error(w, http.StatusUnprocessableEntity, "CLUSTERING_ERROR",
			err.Error(), nil)
	case errors.Is(err, segment.ErrClusteringTimeout):
		response.Error(w, http.StatusGatewayTimeout, "CLUSTERING_TIMEOUT",
			"Clustering took too long and was cancelled", nil)
	default:
		slog.Error("analysis failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"An unexpected error occurred", nil)
	}
}
