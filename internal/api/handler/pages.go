package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/segmenta/segmenta/internal/cluster"
	"github.com/segmenta/segmenta/internal/dataset"
	"github.com/segmenta/segmenta/internal/report"
	"github.com/segmenta/segmenta/internal/segment"
)

// NewIndexHandler serves the upload form. A flash message carried in the
// query string (set by redirects from the analyze page) is shown inline.
func NewIndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := report.RenderIndex(w, report.IndexPage{
			Flash: r.URL.Query().Get("error"),
		}); err != nil {
			slog.Error("render index failed", "error", err)
		}
	}
}

// NewAnalyzePageHandler serves POST /analyze: the HTML results page with the
// scatter chart, KPI cards and insight cards. User errors redirect back to
// the form with a flash message.
func NewAnalyzePageHandler(svc Segmenter, uploadDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, header, err := csvUpload(r)
		if err != nil {
			redirectWithFlash(w, r, err.Error())
			return
		}
		defer file.Close()

		pair, ok := featurePair(r.FormValue("features"))
		if !ok {
			redirectWithFlash(w, r, `features must be "income" or "age"`)
			return
		}

		saveUpload(uploadDir, file, header.Filename)

		table, err := dataset.Parse(file)
		if err != nil {
			var schemaErr *dataset.SchemaError
			if errors.As(err, &schemaErr) {
				redirectWithFlash(w, r, schemaErr.Error())
				return
			}
			redirectWithFlash(w, r, "The file could not be parsed as a customer CSV")
			return
		}

		result, err := svc.Analyze(r.Context(), table, segment.Params{
			Pair:     pair,
			Filename: header.Filename,
		})
		if err != nil {
			switch {
			case cluster.IsDataError(err):
				redirectWithFlash(w, r, err.Error())
			case errors.Is(err, segment.ErrClusteringTimeout):
				redirectWithFlash(w, r, "Clustering took too long and was cancelled")
			default:
				slog.Error("analysis failed", "error", err)
				redirectWithFlash(w, r, "Error processing file")
			}
			return
		}

		chart, err := report.Scatter(table.Records, result.Assignments, result.Insights, pair)
		if err != nil {
			slog.Error("chart render failed", "error", err)
			redirectWithFlash(w, r, "Error processing file")
			return
		}

		if err := report.RenderResults(w, report.ResultsPage{
			Chart:    chart,
			Insights: result.Insights,
			KPIs:     result.KPIs,
		}); err != nil {
			slog.Error("render results failed", "error", err)
		}
	}
}

func redirectWithFlash(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/?error="+url.QueryEscape(msg), http.StatusSeeOther)
}
