package handler

import (
	"net/http"

	"github.com/segmenta/segmenta/internal/api/response"
	"github.com/segmenta/segmenta/internal/dataset"
	"github.com/segmenta/segmenta/internal/segment"
	"github.com/segmenta/segmenta/pkg/models"
)

// NewSegmentHandler returns the handler for the persisted-output endpoints
// POST /api/v1/segment/{income,age}: the clustered CSV is written to the
// output directory and its path returned alongside insights and KPIs.
func NewSegmentHandler(svc Segmenter, uploadDir string, pair models.FeaturePair) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, header, err := csvUpload(r)
		if err != nil {
			writeInputError(w, err)
			return
		}
		defer file.Close()

		saveUpload(uploadDir, file, header.Filename)

		table, err := dataset.Parse(file)
		if err != nil {
			writeParseError(w, err)
			return
		}

		result, err := svc.Analyze(r.Context(), table, segment.Params{
			Pair:     pair,
			Filename: header.Filename,
			Persist:  true,
		})
		if err != nil {
			writeAnalysisError(w, err)
			return
		}

		response.JSON(w, result)
	}
}
