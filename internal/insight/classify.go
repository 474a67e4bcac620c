package insight

import "github.com/segmenta/segmenta/pkg/models"

// youngVIPAgeCutoff splits the VIP segment into the young-VIP and
// established-wealth messaging variants.
const youngVIPAgeCutoff = 35

type outcome struct {
	label       string
	color       string
	description string
	action      string
}

// segmentRule is one row of the labeling decision table: a predicate over
// the cluster's mean income and mean spending score, and the outcome it
// produces. Rules are evaluated top to bottom, first match wins.
type segmentRule struct {
	matches func(income, score float64) bool
	outcome func(s models.ClusterSummary) outcome
}

// segmentRules is the ordered decision table. All comparisons are strict:
// a cluster sitting exactly on a threshold (income 70, score 40/60/70) falls
// through to the catch-all rule.
var segmentRules = []segmentRule{
	{
		matches: func(income, score float64) bool { return income > 70 && score > 70 },
		outcome: func(s models.ClusterSummary) outcome {
			if s.MeanAge < youngVIPAgeCutoff {
				return outcome{
					label:       "VIP / Big Spenders",
					color:       "success",
					description: "Young, wealthy, and loves to spend. Target for luxury fashion and trending tech.",
					action:      "Campaign: Instagram/TikTok Influencers promoting exclusive 'Drops'.",
				}
			}
			return outcome{
				label:       "VIP / Big Spenders",
				color:       "success",
				description: "Established wealth with high consumption habits.",
				action:      "Campaign: Exclusive VIP Club membership & Concierge services.",
			}
		},
	},
	{
		matches: func(income, score float64) bool { return income > 70 && score < 40 },
		outcome: func(models.ClusterSummary) outcome {
			return outcome{
				label:       "Wealthy Savers",
				color:       "warning",
				description: "High earning potential but careful with money.",
				action:      "Campaign: Focus on 'Value for Money', Investment products, or 'Buy It For Life' quality.",
			}
		},
	},
	{
		matches: func(income, score float64) bool { return income < 40 && score > 60 },
		outcome: func(models.ClusterSummary) outcome {
			return outcome{
				label:       "Young Trendsetters",
				color:       "info",
				description: "Likely students or young professionals spending on trends.",
				action:      "Campaign: Flash Sales, 'Buy Now Pay Later' offers, and discount coupons.",
			}
		},
	},
	{
		matches: func(income, score float64) bool { return income < 40 && score < 40 },
		outcome: func(models.ClusterSummary) outcome {
			return outcome{
				label:       "Budget Conscious",
				color:       "secondary",
				description: "Strict budget constraints. Only buys essentials.",
				action:      "Campaign: Clearance sales, bulk discounts, and loyalty points.",
			}
		},
	},
	{
		matches: func(income, score float64) bool { return true },
		outcome: func(models.ClusterSummary) outcome {
			return outcome{
				label:       "Average Customer",
				color:       "primary",
				description: "Steady income and average spending habits.",
				action:      "Campaign: Standard newsletter, seasonal promotions, and retention offers.",
			}
		},
	},
}

// Classify maps a cluster's aggregate statistics to exactly one Insight.
// Pure function: the same summary always yields the same insight.
func Classify(s models.ClusterSummary) models.Insight {
	var o outcome
	for _, rule := range segmentRules {
		if rule.matches(s.MeanIncome, s.MeanScore) {
			o = rule.outcome(s)
			break
		}
	}

	profile, icon := genderProfile(s)

	return models.Insight{
		Cluster:       s.ClusterID,
		Label:         o.label,
		Color:         o.color,
		Size:          s.Size,
		AvgIncome:     roundTo(s.MeanIncome, 1),
		AvgScore:      roundTo(s.MeanScore, 1),
		AvgAge:        roundTo(s.MeanAge, 0),
		GenderProfile: profile,
		GenderIcon:    icon,
		FemalePct:     s.FemalePct,
		MalePct:       s.MalePct,
		Description:   o.description,
		Action:        o.action,
	}
}

// genderProfile tags gender dominance. Strictly greater than 55: a cluster
// at exactly 55% is Balanced.
func genderProfile(s models.ClusterSummary) (models.GenderProfile, string) {
	switch {
	case s.FemalePct > 55:
		return models.FemaleDominated, "bi-gender-female"
	case s.MalePct > 55:
		return models.MaleDominated, "bi-gender-male"
	default:
		return models.GenderBalanced, "bi-gender-ambiguous"
	}
}
