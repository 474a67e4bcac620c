package models

// Gender is the customer gender value as it appears in the source CSV.
type Gender string

const (
	GenderFemale Gender = "Female"
	GenderMale   Gender = "Male"
)

// Customer is one row of the uploaded dataset. Identity is positional:
// a customer is referenced by its row index, there is no persistent ID.
type Customer struct {
	Gender        Gender  `json:"gender"`
	Age           int     `json:"age"`
	AnnualIncome  float64 `json:"annual_income"`
	SpendingScore int     `json:"spending_score"`
}

// FeaturePair selects which two numeric features the clusterer runs on.
type FeaturePair string

const (
	IncomeSpending FeaturePair = "income_spending"
	AgeSpending    FeaturePair = "age_spending"
)

// Axes returns the human-readable axis labels for the pair, matching the
// source CSV column names.
func (p FeaturePair) Axes() (x, y string) {
	switch p {
	case AgeSpending:
		return "Age", "Spending Score (1-100)"
	default:
		return "Annual Income (k$)", "Spending Score (1-100)"
	}
}

// Values returns the feature vector of a customer for the pair.
func (p FeaturePair) Values(c Customer) []float64 {
	switch p {
	case AgeSpending:
		return []float64{float64(c.Age), float64(c.SpendingScore)}
	default:
		return []float64{c.AnnualIncome, float64(c.SpendingScore)}
	}
}
