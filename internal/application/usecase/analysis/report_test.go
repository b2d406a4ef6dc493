package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/budget-dashboard/backend/internal/domain/error"
	"github.com/budget-dashboard/backend/internal/domain/valueobject"
)

func TestAnalyzer_GetSpendingTrends(t *testing.T) {
	a := householdAnalyzer(valueobject.PeriodRange{Start: 0, End: 2})

	trends, err := a.GetSpendingTrends("")
	require.NoError(t, err)
	require.Len(t, trends, 3)

	housing := trends[0]
	assert.Equal(t, "Housing", housing.Category)
	assert.Equal(t, []string{"Jan", "Feb", "Mar"}, housing.Periods)
	assert.True(t, housing.Values[0].Equal(d("1600")))
	assert.True(t, housing.Values[1].Equal(d("1520")))
	assert.True(t, housing.Mean.Equal(d("1546.67")))
	assert.True(t, housing.StdDev.Equal(d("46.19")))

	salary, err := a.GetSpendingTrends("Salary")
	require.NoError(t, err)
	require.Len(t, salary, 1)
	assert.True(t, salary[0].Values[2].Equal(d("6100")), "income keeps its sign")
}

func TestAnalyzer_GetSpendingTrendsErrors(t *testing.T) {
	a := householdAnalyzer(valueobject.PeriodRange{Start: 0, End: 0})

	_, err := a.GetSpendingTrends("Renter's Insurance")
	assert.ErrorIs(t, err, domainerror.ErrTrendCategoryNotFound)

	_, err = a.GetSpendingTrends("Nope")
	assert.ErrorIs(t, err, domainerror.ErrTrendCategoryNotFound)

	a.SetPeriodRange(valueobject.PeriodRange{Start: 1, End: 7})
	_, err = a.GetSpendingTrends("")
	assert.ErrorIs(t, err, domainerror.ErrInvalidPeriodRange)
}

func TestAnalyzer_GenerateReport(t *testing.T) {
	report, err := householdAnalyzer(valueobject.PeriodRange{Start: 0, End: 0}).GenerateReport("Jan")
	require.NoError(t, err)

	assert.Equal(t, "Jan", report.PeriodLabel)
	assert.Len(t, report.Variances, 3)
	assert.True(t, report.NetVariance.Equal(report.Summary.ActualNet.Sub(report.Summary.BudgetedNet)))

	require.NotEmpty(t, report.Recommendations)
	assert.Equal(t, valueobject.RecommendationOverspent, report.Recommendations[0].Kind)
	assert.Equal(t, "Groceries", report.Recommendations[0].Category)
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name      string
		variances []valueobject.VarianceRecord
		summary   valueobject.SummaryRecord
		kinds     []string
	}{
		{
			name:  "on track",
			kinds: []string{valueobject.RecommendationOnTrack},
		},
		{
			name: "under budget and overall overspend",
			variances: []valueobject.VarianceRecord{
				{Category: "Dining", VariancePercent: d("-25")},
				{Category: "Fuel", VariancePercent: d("-20")},
			},
			summary: valueobject.SummaryRecord{BudgetedNet: d("100"), ActualNet: d("50")},
			kinds:   []string{valueobject.RecommendationUnderBudget, valueobject.RecommendationOverall},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var kinds []string
			for _, rec := range recommend(tt.variances, tt.summary) {
				kinds = append(kinds, rec.Kind)
			}
			assert.Equal(t, tt.kinds, kinds)
		})
	}
}
