package analysis

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budget-dashboard/backend/internal/domain/entity"
	domainerror "github.com/budget-dashboard/backend/internal/domain/error"
	"github.com/budget-dashboard/backend/internal/domain/valueobject"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func values(vs ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(vs))
	for i, v := range vs {
		out[i] = d(v)
	}
	return out
}

// householdBudget: Salary 6000; Housing 1500 with an inherited Renter's Insurance;
// Groceries 400; Gifts 0.
func householdBudget() *entity.Budget {
	return entity.NewBudget(
		[]*entity.Category{entity.NewCategory("Salary", d("6000"))},
		[]*entity.Category{
			entity.NewCategory("Housing", d("1500"), entity.NewInheritedCategory("Renter's Insurance")),
			entity.NewCategory("Groceries", d("400")),
			entity.NewCategory("Gifts", decimal.Zero),
		},
	)
}

func householdActuals() *entity.SpendingTable {
	return entity.NewSpendingTable([]string{"Jan", "Feb", "Mar"}, []entity.SpendingRow{
		{Name: "Salary", Depth: 1, Values: values("6000", "6000", "6100")},
		{Name: "Housing", Depth: 1, Values: values("-1500", "-1500", "-1500")},
		{Name: "Renter's Insurance", Depth: 2, Values: values("-100", "-20", "-20")},
		{Name: "Groceries", Depth: 1, Values: values("-549.73", "-380", "-410")},
		{Name: "Coffee Shops", Depth: 2, Values: values("-12", "-9", "-30")},
	})
}

func householdAnalyzer(r valueobject.PeriodRange) *Analyzer {
	a := NewAnalyzer(householdBudget())
	a.SetActualData(householdActuals())
	a.SetPeriodRange(r)
	return a
}

func findVariance(t *testing.T, records []valueobject.VarianceRecord, name string) valueobject.VarianceRecord {
	t.Helper()
	for _, r := range records {
		if r.Category == name {
			return r
		}
	}
	t.Fatalf("no variance record for %s", name)
	return valueobject.VarianceRecord{}
}

func TestAnalyzer_RequiresActualData(t *testing.T) {
	a := NewAnalyzer(householdBudget())

	_, err := a.CalculateVariances()
	assert.True(t, domainerror.IsUnsetDataError(err))

	_, err = a.SummarizeTotalsByCategory()
	assert.True(t, domainerror.IsUnsetDataError(err))

	_, err = a.IdentifyOverspending(decimal.NewFromInt(10))
	assert.True(t, domainerror.IsUnsetDataError(err))

	_, err = a.GetSavingsOpportunities()
	assert.True(t, domainerror.IsUnsetDataError(err))

	_, err = a.ReconciliationReport()
	assert.True(t, domainerror.IsUnsetDataError(err))

	_, err = a.GetSpendingTrends("")
	assert.True(t, domainerror.IsUnsetDataError(err))

	var analysisErr *domainerror.AnalysisError
	require.ErrorAs(t, err, &analysisErr)
	assert.Equal(t, domainerror.ErrCodeUnsetData, analysisErr.Code)
}

func TestAnalyzer_SummarizeTotalsByCategory(t *testing.T) {
	totals, err := householdAnalyzer(valueobject.PeriodRange{Start: 0, End: 0}).SummarizeTotalsByCategory()
	require.NoError(t, err)

	assert.True(t, totals["Housing"].Equal(d("-1600")), "inherited child rolls up into Housing")
	assert.True(t, totals["Groceries"].Equal(d("-549.73")))
	assert.True(t, totals["Salary"].Equal(d("6000")))
	_, ok := totals["Coffee Shops"]
	assert.False(t, ok, "unmatched rows are dropped")
	assert.Len(t, totals, 3)
}

func TestAnalyzer_CalculateVariances_SinglePeriod(t *testing.T) {
	records, err := householdAnalyzer(valueobject.PeriodRange{Start: 0, End: 0}).CalculateVariances()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Housing", "Groceries", "Gifts"},
		[]string{records[0].Category, records[1].Category, records[2].Category})

	housing := findVariance(t, records, "Housing")
	assert.True(t, housing.Budgeted.Equal(d("1500")))
	assert.True(t, housing.Actual.Equal(d("1600")))
	assert.True(t, housing.Variance.Equal(d("100")), "overspend is positive")
	assert.InDelta(t, 6.6667, housing.VariancePercent.InexactFloat64(), 0.001)

	groceries := findVariance(t, records, "Groceries")
	assert.True(t, groceries.Budgeted.Equal(d("400")))
	assert.True(t, groceries.Actual.Equal(d("549.73")))
	assert.True(t, groceries.Variance.Equal(d("149.73")))
	assert.InDelta(t, 37.4325, groceries.VariancePercent.InexactFloat64(), 0.0001)
}

func TestAnalyzer_ZeroBudgetHasZeroPercent(t *testing.T) {
	records, err := householdAnalyzer(valueobject.PeriodRange{Start: 0, End: 2}).CalculateVariances()
	require.NoError(t, err)

	gifts := findVariance(t, records, "Gifts")
	assert.True(t, gifts.Budgeted.IsZero())
	assert.True(t, gifts.Actual.IsZero(), "categories absent from actuals get an explicit zero")
	assert.True(t, gifts.VariancePercent.IsZero())
}

func TestAnalyzer_BudgetedScalesWithPeriodCount(t *testing.T) {
	one, err := householdAnalyzer(valueobject.PeriodRange{Start: 0, End: 0}).CalculateVariances()
	require.NoError(t, err)
	three, err := householdAnalyzer(valueobject.PeriodRange{Start: 0, End: 2}).CalculateVariances()
	require.NoError(t, err)

	require.Len(t, three, len(one))
	for i := range one {
		assert.True(t, three[i].Budgeted.Equal(one[i].Budgeted.Mul(decimal.NewFromInt(3))), one[i].Category)
	}

	housing := findVariance(t, three, "Housing")
	assert.True(t, housing.Actual.Equal(d("4640")))
}

func TestAnalyzer_OnlyOverspendFilter(t *testing.T) {
	a := householdAnalyzer(valueobject.PeriodRange{Start: 0, End: 0})
	a.SetOnlyOverspend(true)

	records, err := a.CalculateVariances()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Groceries", records[0].Category)

	a.SetOverspendThreshold(decimal.NewFromInt(5))
	records, err = a.CalculateVariances()
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestAnalyzer_IdentifyOverspending(t *testing.T) {
	a := householdAnalyzer(valueobject.PeriodRange{Start: 0, End: 0})

	names, err := a.IdentifyOverspending(decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.Equal(t, []string{"Groceries"}, names)

	names, err = a.IdentifyOverspending(decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.Equal(t, []string{"Housing", "Groceries"}, names)
}

func TestAnalyzer_IdentifyOverspendingOnEmptyVariances(t *testing.T) {
	a := NewAnalyzer(entity.NewBudget(nil, nil))
	a.SetActualData(householdActuals())

	names, err := a.IdentifyOverspending(decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestAnalyzer_GetSavingsOpportunities(t *testing.T) {
	// Feb: Housing 1520 vs 1500 (over), Groceries 380 vs 400 (under).
	opportunities, err := householdAnalyzer(valueobject.PeriodRange{Start: 1, End: 1}).GetSavingsOpportunities()
	require.NoError(t, err)
	require.Len(t, opportunities, 1)

	assert.Equal(t, "Groceries", opportunities[0].Category)
	assert.True(t, opportunities[0].PotentialSavings.Equal(d("20")))
	assert.True(t, opportunities[0].CurrentSpending.Equal(d("380")))
}

func TestAnalyzer_GenerateSummaryStats(t *testing.T) {
	t.Run("without actual data", func(t *testing.T) {
		a := NewAnalyzer(householdBudget())
		a.SetPeriodRange(valueobject.PeriodRange{Start: 0, End: 5})

		summary := a.GenerateSummaryStats()
		assert.Equal(t, 1, summary.PeriodCount)
		assert.True(t, summary.TotalBudgetedIncome.Equal(d("6000")))
		assert.True(t, summary.TotalBudgetedExpenses.Equal(d("1900")))
		assert.True(t, summary.BudgetedNet.Equal(d("4100")))
		assert.True(t, summary.TotalActualIncome.IsZero())
		assert.True(t, summary.TotalActualExpenses.IsZero())
		assert.True(t, summary.ActualNet.IsZero())
	})

	t.Run("with actual data over two periods", func(t *testing.T) {
		summary := householdAnalyzer(valueobject.PeriodRange{Start: 1, End: 2}).GenerateSummaryStats()
		assert.Equal(t, 2, summary.PeriodCount)
		assert.True(t, summary.TotalBudgetedIncome.Equal(d("12000")))
		assert.True(t, summary.TotalBudgetedExpenses.Equal(d("3800")))
		assert.True(t, summary.BudgetedNet.Equal(d("8200")))
		assert.True(t, summary.TotalActualIncome.Equal(d("12100")))
		assert.True(t, summary.TotalActualExpenses.Equal(d("-3830")), "expenses keep the spend sign")
		assert.True(t, summary.ActualNet.Equal(d("8270")))
	})
}

func TestAnalyzer_ReconciliationReport(t *testing.T) {
	report, err := householdAnalyzer(valueobject.PeriodRange{Start: 0, End: 2}).ReconciliationReport()
	require.NoError(t, err)

	require.Len(t, report.Unmatched, 1)
	assert.Equal(t, "Coffee Shops", report.Unmatched[0].Name)
	assert.True(t, report.Unmatched[0].Total.Equal(d("-51")))

	require.Len(t, report.Categories, 4)
	assert.Equal(t, "Salary", report.Categories[0].Category)
	assert.Equal(t, "income", report.Categories[0].Type)
	housing := report.Categories[1]
	assert.Equal(t, []string{"Housing", "Renter's Insurance"}, housing.RowNames)
	assert.True(t, housing.Total.Equal(d("-4640")))
}
