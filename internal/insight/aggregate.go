// Package insight derives per-cluster statistics and marketing insights
// from clustered customer data. Everything here is a pure function.
package insight

import (
	"math"
	"sort"

	"github.com/segmenta/segmenta/pkg/models"
	"gonum.org/v1/gonum/stat"
)

// Summarize computes one ClusterSummary per cluster id that actually occurs
// in assignments, in ascending id order. A cluster with zero members simply
// produces no summary.
//
// Gender percentages are rounded to the nearest integer independently of
// each other, so they may not sum to 100. That mirrors the upstream behavior
// and is intentionally not corrected.
func Summarize(customers []models.Customer, assignments []int) []models.ClusterSummary {
	groups := make(map[int][]int)
	for i, c := range assignments {
		groups[c] = append(groups[c], i)
	}

	ids := make([]int, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	summaries := make([]models.ClusterSummary, 0, len(ids))
	for _, id := range ids {
		members := groups[id]
		n := len(members)

		ages := make([]float64, n)
		incomes := make([]float64, n)
		scores := make([]float64, n)
		females := 0
		males := 0
		for j, idx := range members {
			c := customers[idx]
			ages[j] = float64(c.Age)
			incomes[j] = c.AnnualIncome
			scores[j] = float64(c.SpendingScore)
			switch c.Gender {
			case models.GenderFemale:
				females++
			case models.GenderMale:
				males++
			}
		}

		summaries = append(summaries, models.ClusterSummary{
			ClusterID:  id,
			Size:       n,
			MeanAge:    stat.Mean(ages, nil),
			MeanIncome: stat.Mean(incomes, nil),
			MeanScore:  stat.Mean(scores, nil),
			FemalePct:  int(math.Round(100 * float64(females) / float64(n))),
			MalePct:    int(math.Round(100 * float64(males) / float64(n))),
		})
	}

	return summaries
}

// KPIs computes the dataset-level aggregates: total row count plus mean
// income and mean spending score, each rounded to 2 decimals.
func KPIs(customers []models.Customer) models.KPIs {
	if len(customers) == 0 {
		return models.KPIs{}
	}
	incomes := make([]float64, len(customers))
	scores := make([]float64, len(customers))
	for i, c := range customers {
		incomes[i] = c.AnnualIncome
		scores[i] = float64(c.SpendingScore)
	}
	return models.KPIs{
		TotalCustomers: len(customers),
		AvgIncome:      roundTo(stat.Mean(incomes, nil), 2),
		AvgScore:       roundTo(stat.Mean(scores, nil), 2),
	}
}

// roundTo rounds half away from zero at the given number of decimals.
func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
