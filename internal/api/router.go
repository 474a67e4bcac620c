package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	mw "github.com/segmenta/segmenta/internal/api/middleware"
	"github.com/segmenta/segmenta/internal/api/response"
)

// Dependencies holds all handler and middleware dependencies for the router.
type Dependencies struct {
	// RateLimit is optional; nil disables rate limiting.
	RateLimit *mw.RateLimit

	HealthHandler http.HandlerFunc

	AnalyzeHandler       http.HandlerFunc
	SegmentIncomeHandler http.HandlerFunc
	SegmentAgeHandler    http.HandlerFunc

	IndexHandler       http.HandlerFunc
	AnalyzePageHandler http.HandlerFunc
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.Logger)
	r.Use(mw.Recovery)

	r.Get("/api/v1/health", orNotImplemented(deps.HealthHandler))

	// Upload endpoints, rate limited when Redis is configured
	r.Group(func(r chi.Router) {
		if deps.RateLimit != nil {
			r.Use(deps.RateLimit.Limit)
		}

		r.Post("/api/v1/analyze", orNotImplemented(deps.AnalyzeHandler))
		r.Post("/api/v1/segment/income", orNotImplemented(deps.SegmentIncomeHandler))
		r.Post("/api/v1/segment/age", orNotImplemented(deps.SegmentAgeHandler))

		r.Post("/analyze", orNotImplemented(deps.AnalyzePageHandler))
	})

	r.Get("/", orNotImplemented(deps.IndexHandler))

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
