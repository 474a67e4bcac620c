package report

import (
	"fmt"
	"html/template"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/segmenta/segmenta/pkg/models"
)

// Scatter renders the customer scatter chart, one series per segment, as an
// HTML snippet (element + script). The results page must include the ECharts
// runtime script itself.
func Scatter(customers []models.Customer, assignments []int, insights []models.Insight, pair models.FeaturePair) (template.HTML, error) {
	if len(customers) != len(assignments) {
		return "", fmt.Errorf("chart: %d customers but %d assignments", len(customers), len(assignments))
	}

	xName, yName := pair.Axes()

	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Customer Segments"}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName, Type: "value"}),
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "500px"}),
	)

	labels := make(map[int]string, len(insights))
	for _, in := range insights {
		labels[in.Cluster] = in.Label
	}

	byCluster := make(map[int][]opts.ScatterData)
	for i, c := range customers {
		v := pair.Values(c)
		byCluster[assignments[i]] = append(byCluster[assignments[i]], opts.ScatterData{
			Value:      []interface{}{v[0], v[1]},
			SymbolSize: 10,
		})
	}

	ids := make([]int, 0, len(byCluster))
	for id := range byCluster {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		name := labels[id]
		if name == "" {
			name = fmt.Sprintf("Cluster %d", id)
		}
		sc.AddSeries(name, byCluster[id])
	}

	snippet := sc.RenderSnippet()
	return template.HTML(fmt.Sprintf("%s\n%s", snippet.Element, snippet.Script)), nil
}
