// Package analysis reconciles actual spending against a budget and derives
// variance, summary, trend and report figures from it.
package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/budget-dashboard/backend/internal/domain/entity"
	domainerror "github.com/budget-dashboard/backend/internal/domain/error"
	"github.com/budget-dashboard/backend/internal/domain/valueobject"
)

var hundred = decimal.NewFromInt(100)

// Analyzer compares one budget with one actual-spending table over a selected
// inclusive period range. All results are pure functions of its current state.
type Analyzer struct {
	budget   *entity.Budget
	actuals  *entity.SpendingTable
	settings valueobject.AnalysisSettings
}

// NewAnalyzer creates an analyzer with default settings and no actual data.
func NewAnalyzer(budget *entity.Budget) *Analyzer {
	return &Analyzer{
		budget:   budget,
		settings: valueobject.DefaultAnalysisSettings(),
	}
}

// SetActualData sets the spending table. The period range is left as is.
func (a *Analyzer) SetActualData(table *entity.SpendingTable) {
	a.actuals = table
}

// SetSettings replaces range, threshold and filter at once.
func (a *Analyzer) SetSettings(settings valueobject.AnalysisSettings) {
	a.settings = settings
}

// SetPeriodRange selects the inclusive column range. Start <= End is the caller's
// responsibility.
func (a *Analyzer) SetPeriodRange(r valueobject.PeriodRange) {
	a.settings.Range = r
}

// SetOverspendThreshold sets the percentage used by the only-overspend filter.
func (a *Analyzer) SetOverspendThreshold(threshold decimal.Decimal) {
	a.settings.OverspendThreshold = threshold
}

// SetOnlyOverspend toggles dropping variance rows at or below the threshold.
func (a *Analyzer) SetOnlyOverspend(only bool) {
	a.settings.OnlyOverspend = only
}

// Settings returns the current analysis settings.
func (a *Analyzer) Settings() valueobject.AnalysisSettings {
	return a.settings
}

// HasActualData reports whether a spending table was set.
func (a *Analyzer) HasActualData() bool {
	return a.actuals != nil
}

// PeriodCount is the number of periods in range, or 1 without actual data.
func (a *Analyzer) PeriodCount() int {
	if a.actuals == nil {
		return 1
	}
	return a.settings.Range.Count()
}

// SummarizeTotalsByCategory sums each row over the selected range and groups the
// row totals by the budget category each row name resolves to. Rows without a
// matching budget category are left out.
func (a *Analyzer) SummarizeTotalsByCategory() (map[string]decimal.Decimal, error) {
	if a.actuals == nil {
		return nil, domainerror.NewUnsetDataError("summarizing totals")
	}
	totals, _ := a.reconcile()
	return totals, nil
}

// reconcile returns the grouped totals and the rows that matched nothing.
func (a *Analyzer) reconcile() (map[string]decimal.Decimal, []valueobject.UnmatchedRow) {
	totals := make(map[string]decimal.Decimal)
	var unmatched []valueobject.UnmatchedRow

	r := a.settings.Range
	for _, row := range a.actuals.Rows {
		total := row.RowTotal(r.Start, r.End)
		category, ok := a.budget.LookupBudgetCategory(row.Name)
		if !ok {
			unmatched = append(unmatched, valueobject.UnmatchedRow{Name: row.Name, Depth: row.Depth, Total: total})
			continue
		}
		totals[category.Name] = totals[category.Name].Add(total)
	}
	return totals, unmatched
}

// CalculateVariances returns one record per expense budget category in budget
// order. Categories without actual rows get a zero actual.
func (a *Analyzer) CalculateVariances() ([]valueobject.VarianceRecord, error) {
	if a.actuals == nil {
		return nil, domainerror.NewUnsetDataError("calculating variances")
	}

	totals, _ := a.reconcile()
	periods := decimal.NewFromInt(int64(a.PeriodCount()))

	records := make([]valueobject.VarianceRecord, 0)
	for _, category := range a.budget.GetExpenseCategories() {
		budgeted := category.Amount.Mul(periods)
		actualRaw := totals[category.Name]
		varianceRaw := budgeted.Add(actualRaw)

		percent := decimal.Zero
		if !budgeted.IsZero() {
			percent = varianceRaw.Div(budgeted).Mul(hundred).Neg()
		}

		if a.settings.OnlyOverspend && percent.LessThanOrEqual(a.settings.OverspendThreshold) {
			continue
		}

		records = append(records, valueobject.VarianceRecord{
			Category:        category.Name,
			Budgeted:        budgeted,
			Actual:          actualRaw.Neg(),
			Variance:        varianceRaw.Neg(),
			VariancePercent: percent,
		})
	}
	return records, nil
}

// GenerateSummaryStats returns budgeted totals scaled by the period count and the
// reconciled actual totals. Without actual data the actuals are zero and the
// period count is 1.
func (a *Analyzer) GenerateSummaryStats() valueobject.SummaryRecord {
	periodCount := a.PeriodCount()
	periods := decimal.NewFromInt(int64(periodCount))

	summary := valueobject.SummaryRecord{
		TotalBudgetedIncome:   a.budget.TotalIncome().Mul(periods),
		TotalBudgetedExpenses: a.budget.TotalExpenses().Mul(periods),
		BudgetedNet:           a.budget.NetBudget().Mul(periods),
		TotalActualIncome:     decimal.Zero,
		TotalActualExpenses:   decimal.Zero,
		ActualNet:             decimal.Zero,
		PeriodCount:           periodCount,
	}
	if a.actuals == nil {
		return summary
	}

	totals, _ := a.reconcile()
	for _, category := range a.budget.GetIncomeCategories() {
		summary.TotalActualIncome = summary.TotalActualIncome.Add(totals[category.Name])
	}
	for _, category := range a.budget.GetExpenseCategories() {
		summary.TotalActualExpenses = summary.TotalActualExpenses.Add(totals[category.Name])
	}
	summary.ActualNet = summary.TotalActualIncome.Add(summary.TotalActualExpenses)
	return summary
}

// IdentifyOverspending returns the categories whose variance percentage exceeds threshold.
func (a *Analyzer) IdentifyOverspending(threshold decimal.Decimal) ([]string, error) {
	variances, err := a.CalculateVariances()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0)
	for _, record := range variances {
		if record.VariancePercent.GreaterThan(threshold) {
			names = append(names, record.Category)
		}
	}
	return names, nil
}

// GetSavingsOpportunities lists underspent categories with the unspent amount.
func (a *Analyzer) GetSavingsOpportunities() ([]valueobject.SavingsOpportunity, error) {
	variances, err := a.CalculateVariances()
	if err != nil {
		return nil, err
	}

	opportunities := make([]valueobject.SavingsOpportunity, 0)
	for _, record := range variances {
		if record.Variance.IsNegative() {
			opportunities = append(opportunities, valueobject.SavingsOpportunity{
				Category:         record.Category,
				PotentialSavings: record.Variance.Abs(),
				CurrentSpending:  record.Actual,
			})
		}
	}
	return opportunities, nil
}

// ReconciliationReport shows which rows fed each budget category and which rows
// were dropped because no budget category claims them.
func (a *Analyzer) ReconciliationReport() (valueobject.ReconciliationReport, error) {
	if a.actuals == nil {
		return valueobject.ReconciliationReport{}, domainerror.NewUnsetDataError("reconciliation")
	}

	totals, unmatched := a.reconcile()

	rowNames := make(map[string][]string)
	for _, row := range a.actuals.Rows {
		if category, ok := a.budget.LookupBudgetCategory(row.Name); ok {
			rowNames[category.Name] = append(rowNames[category.Name], row.Name)
		}
	}

	report := valueobject.ReconciliationReport{
		Range:      a.settings.Range,
		Categories: make([]valueobject.ReconciledCategory, 0),
		Unmatched:  unmatched,
	}
	add := func(categories []*entity.Category, kind entity.CategoryType) {
		for _, category := range categories {
			names := rowNames[category.Name]
			sort.Strings(names)
			report.Categories = append(report.Categories, valueobject.ReconciledCategory{
				Category: category.Name,
				Type:     string(kind),
				Total:    totals[category.Name],
				RowNames: names,
			})
		}
	}
	add(a.budget.GetIncomeCategories(), entity.CategoryTypeIncome)
	add(a.budget.GetExpenseCategories(), entity.CategoryTypeExpense)

	if report.Unmatched == nil {
		report.Unmatched = make([]valueobject.UnmatchedRow, 0)
	}
	return report, nil
}
