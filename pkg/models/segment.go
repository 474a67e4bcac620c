package models

// ClusterSummary holds the aggregate statistics of one cluster.
//
// FemalePct and MalePct are each rounded to the nearest integer
// independently, so they need not sum to exactly 100. That matches the
// upstream behavior and is deliberately left uncorrected.
type ClusterSummary struct {
	ClusterID  int     `json:"cluster_id"`
	Size       int     `json:"size"`
	MeanAge    float64 `json:"mean_age"`
	MeanIncome float64 `json:"mean_income"`
	MeanScore  float64 `json:"mean_score"`
	FemalePct  int     `json:"female_pct"`
	MalePct    int     `json:"male_pct"`
}

// GenderProfile tags which gender dominates a cluster, if any.
type GenderProfile string

const (
	FemaleDominated GenderProfile = "Female Dominated"
	MaleDominated   GenderProfile = "Male Dominated"
	GenderBalanced  GenderProfile = "Balanced"
)

// Insight is the marketing-facing view of one cluster: a business label,
// a bootstrap color tag, a description and a recommended campaign action.
type Insight struct {
	Cluster       int           `json:"cluster"`
	Label         string        `json:"label"`
	Color         string        `json:"color"`
	Size          int           `json:"size"`
	AvgIncome     float64       `json:"avg_income"`
	AvgScore      float64       `json:"avg_score"`
	AvgAge        float64       `json:"avg_age"`
	GenderProfile GenderProfile `json:"gender_profile"`
	GenderIcon    string        `json:"gender_icon"`
	FemalePct     int           `json:"female_pct"`
	MalePct       int           `json:"male_pct"`
	Description   string        `json:"desc"`
	Action        string        `json:"action"`
}

// KPIs are dataset-level aggregates reported alongside the insights.
type KPIs struct {
	TotalCustomers int     `json:"total_customers"`
	AvgIncome      float64 `json:"avg_income"`
	AvgScore       float64 `json:"avg_score"`
}
