package analysis

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"github.com/budget-dashboard/backend/internal/domain/entity"
	domainerror "github.com/budget-dashboard/backend/internal/domain/error"
	"github.com/budget-dashboard/backend/internal/domain/valueobject"
)

// GetSpendingTrends returns the per-period reconciled amount of every expense
// budget category, or of the single named budget category. Expense values use the
// positive-spend convention; income values keep their sign.
func (a *Analyzer) GetSpendingTrends(categoryName string) ([]valueobject.CategoryTrend, error) {
	if a.actuals == nil {
		return nil, domainerror.NewUnsetDataError("spending trends")
	}

	type target struct {
		category *entity.Category
		flip     bool
	}
	var targets []target
	if categoryName == "" {
		for _, category := range a.budget.GetExpenseCategories() {
			targets = append(targets, target{category: category, flip: true})
		}
	} else {
		category, ok := a.budget.GetCategory(categoryName)
		if !ok || !category.HasAmount() {
			return nil, domainerror.NewAnalysisError(
				domainerror.ErrCodeTrendNotFound,
				fmt.Sprintf("budget category %q not found", categoryName),
				domainerror.ErrTrendCategoryNotFound,
			)
		}
		kind, _ := a.budget.TypeOf(categoryName)
		targets = append(targets, target{category: category, flip: kind == entity.CategoryTypeExpense})
	}

	r := a.settings.Range
	if !r.IsWithin(a.actuals.PeriodCount()) {
		return nil, domainerror.NewAnalysisError(
			domainerror.ErrCodeInvalidPeriodRange,
			fmt.Sprintf("period range %d-%d is outside the %d available periods", r.Start, r.End, a.actuals.PeriodCount()),
			domainerror.ErrInvalidPeriodRange,
		)
	}
	periods := a.actuals.Periods[r.Start : r.End+1]

	// per category, per period in range
	series := make(map[string][]decimal.Decimal, len(targets))
	for _, t := range targets {
		series[t.category.Name] = make([]decimal.Decimal, len(periods))
	}
	for _, row := range a.actuals.Rows {
		category, ok := a.budget.LookupBudgetCategory(row.Name)
		if !ok {
			continue
		}
		values, tracked := series[category.Name]
		if !tracked {
			continue
		}
		for i := range periods {
			values[i] = values[i].Add(row.Values[r.Start+i])
		}
	}

	trends := make([]valueobject.CategoryTrend, 0, len(targets))
	for _, t := range targets {
		values := series[t.category.Name]
		floats := make([]float64, len(values))
		for i, v := range values {
			if t.flip {
				v = v.Neg()
				values[i] = v
			}
			floats[i] = v.InexactFloat64()
		}

		trend := valueobject.CategoryTrend{
			Category: t.category.Name,
			Periods:  append([]string(nil), periods...),
			Values:   values,
			Mean:     decimal.Zero,
			StdDev:   decimal.Zero,
		}
		if len(floats) > 0 {
			trend.Mean = decimal.NewFromFloat(stat.Mean(floats, nil)).Round(2)
		}
		if len(floats) > 1 {
			trend.StdDev = decimal.NewFromFloat(stat.StdDev(floats, nil)).Round(2)
		}
		trends = append(trends, trend)
	}
	return trends, nil
}
