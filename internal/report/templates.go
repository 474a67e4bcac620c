package report

import (
	"embed"
	"html/template"
	"io"

	"github.com/segmenta/segmenta/pkg/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// IndexPage is the data for the upload form page.
type IndexPage struct {
	Flash string
}

// ResultsPage is the data for the rendered analysis page.
type ResultsPage struct {
	Chart    template.HTML
	Insights []models.Insight
	KPIs     models.KPIs
}

func RenderIndex(w io.Writer, page IndexPage) error {
	return pageTemplates.ExecuteTemplate(w, "index.html", page)
}

func RenderResults(w io.Writer, page ResultsPage) error {
	return pageTemplates.ExecuteTemplate(w, "results.html", page)
}
