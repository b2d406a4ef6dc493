package valueobject

import (
	"github.com/shopspring/decimal"
)

// VarianceRecord compares one expense budget category against actual spend over a
// period range. Actual uses the positive-spend convention; Variance is positive on
// overspend and negative on underspend.
type VarianceRecord struct {
	Category        string
	Budgeted        decimal.Decimal
	Actual          decimal.Decimal
	Variance        decimal.Decimal
	VariancePercent decimal.Decimal
}

// SummaryRecord holds budgeted and actual totals over a period range.
// TotalActualExpenses keeps the export's sign convention and is negative for spend.
type SummaryRecord struct {
	TotalBudgetedIncome   decimal.Decimal
	TotalBudgetedExpenses decimal.Decimal
	BudgetedNet           decimal.Decimal
	TotalActualIncome     decimal.Decimal
	TotalActualExpenses   decimal.Decimal
	ActualNet             decimal.Decimal
	PeriodCount           int
}

// SavingsOpportunity is an underspent expense category.
type SavingsOpportunity struct {
	Category         string
	PotentialSavings decimal.Decimal
	CurrentSpending  decimal.Decimal
}

// ReconciledCategory is the total actual amount mapped onto one budget category.
type ReconciledCategory struct {
	Category string
	Type     string
	Total    decimal.Decimal
	RowNames []string
}

// UnmatchedRow is an actual-spending row that no budget category claims.
type UnmatchedRow struct {
	Name  string
	Depth int
	Total decimal.Decimal
}

// ReconciliationReport shows how the actual-spending rows were mapped over a range.
type ReconciliationReport struct {
	Range      PeriodRange
	Categories []ReconciledCategory
	Unmatched  []UnmatchedRow
}

// CategoryTrend is the per-period spend of one budget category.
type CategoryTrend struct {
	Category string
	Periods  []string
	Values   []decimal.Decimal
	Mean     decimal.Decimal
	StdDev   decimal.Decimal
}

// Recommendation is one piece of advice derived from a variance analysis.
type Recommendation struct {
	Kind     string
	Category string
	Message  string
}

const (
	RecommendationOverspent   = "overspent"
	RecommendationUnderBudget = "under_budget"
	RecommendationOverall     = "overall"
	RecommendationOnTrack     = "on_track"
)

// BudgetReport is the complete analysis consumed by report documents.
type BudgetReport struct {
	PeriodLabel     string
	Summary         SummaryRecord
	Variances       []VarianceRecord
	NetVariance     decimal.Decimal
	Recommendations []Recommendation
}
