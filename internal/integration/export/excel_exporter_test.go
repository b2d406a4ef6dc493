package export

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/budget-dashboard/backend/internal/domain/entity"
	"github.com/budget-dashboard/backend/internal/domain/valueobject"
)

func sampleReport() valueobject.BudgetReport {
	return valueobject.BudgetReport{
		PeriodLabel: "Jan 2024",
		Summary: valueobject.SummaryRecord{
			TotalBudgetedIncome:   decimal.NewFromInt(6000),
			TotalBudgetedExpenses: decimal.NewFromInt(1900),
			BudgetedNet:           decimal.NewFromInt(4100),
			TotalActualIncome:     decimal.NewFromInt(6000),
			TotalActualExpenses:   decimal.RequireFromString("-2149.73"),
			ActualNet:             decimal.RequireFromString("3850.27"),
			PeriodCount:           1,
		},
		Variances: []valueobject.VarianceRecord{
			{
				Category:        "Groceries",
				Budgeted:        decimal.NewFromInt(400),
				Actual:          decimal.RequireFromString("549.73"),
				Variance:        decimal.RequireFromString("149.73"),
				VariancePercent: decimal.RequireFromString("37.4325"),
			},
		},
		NetVariance: decimal.RequireFromString("-249.73"),
		Recommendations: []valueobject.Recommendation{
			{Kind: valueobject.RecommendationOverspent, Category: "Groceries", Message: "Review spending in Groceries - significantly over budget"},
		},
	}
}

func TestExcelExporter_ExportWorkbook(t *testing.T) {
	table := entity.NewSpendingTable(
		[]string{"Jan 2024", "Feb 2024"},
		[]entity.SpendingRow{
			{Name: "Groceries", Depth: 1, Values: []decimal.Decimal{decimal.RequireFromString("-549.73"), decimal.NewFromInt(-400)}},
		},
	)

	data, err := NewExcelExporter().ExportWorkbook(sampleReport(), table)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{varianceSheet, rawDataSheet}, f.GetSheetList())

	rows, err := f.GetRows(varianceSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Period", "Jan 2024"}, rows[0])
	assert.Equal(t, []string{"Category", "Budgeted", "Actual", "Variance", "Variance %"}, rows[2])
	assert.Equal(t, []string{"Groceries", "400", "549.73", "149.73", "37.43"}, rows[3])

	var sawRecommendation bool
	for _, row := range rows {
		if len(row) > 0 && row[0] == "Review spending in Groceries - significantly over budget" {
			sawRecommendation = true
		}
	}
	assert.True(t, sawRecommendation)

	raw, err := f.GetRows(rawDataSheet)
	require.NoError(t, err)
	require.Len(t, raw, 2)
	assert.Equal(t, []string{"Category", "Depth", "Jan 2024", "Feb 2024"}, raw[0])
	assert.Equal(t, []string{"Groceries", "1", "-549.73", "-400"}, raw[1])
}

func TestExcelExporter_WithoutTable(t *testing.T) {
	data, err := NewExcelExporter().ExportWorkbook(sampleReport(), nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	raw, err := f.GetRows(rawDataSheet)
	require.NoError(t, err)
	assert.Empty(t, raw)
}
