// Package export renders analysis results as downloadable documents.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/budget-dashboard/backend/internal/application/adapter"
	"github.com/budget-dashboard/backend/internal/domain/entity"
	"github.com/budget-dashboard/backend/internal/domain/valueobject"
)

const (
	varianceSheet = "Variance Analysis"
	rawDataSheet  = "Raw Data"
)

var varianceHeader = []interface{}{"Category", "Budgeted", "Actual", "Variance", "Variance %"}

// excelExporter implements adapter.ReportExporter with excelize.
type excelExporter struct{}

// NewExcelExporter creates a new Excel report exporter.
func NewExcelExporter() adapter.ReportExporter {
	return &excelExporter{}
}

// ExportWorkbook writes the variance table with the summary, followed by a
// sheet holding the raw spending table when one is given.
func (e *excelExporter) ExportWorkbook(report valueobject.BudgetReport, table *entity.SpendingTable) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", varianceSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := writeVariances(f, report); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(rawDataSheet); err != nil {
		return nil, fmt.Errorf("failed to add sheet: %w", err)
	}
	if table != nil {
		if err := writeRawData(f, table); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeVariances(f *excelize.File, report valueobject.BudgetReport) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	row := 1
	if report.PeriodLabel != "" {
		if err := setRow(f, varianceSheet, row, []interface{}{"Period", report.PeriodLabel}); err != nil {
			return err
		}
		row += 2
	}

	if err := setRow(f, varianceSheet, row, varianceHeader); err != nil {
		return err
	}
	if err := f.SetRowStyle(varianceSheet, row, row, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	row++

	for _, v := range report.Variances {
		values := []interface{}{
			v.Category,
			v.Budgeted.InexactFloat64(),
			v.Actual.InexactFloat64(),
			v.Variance.InexactFloat64(),
			v.VariancePercent.Round(2).InexactFloat64(),
		}
		if err := setRow(f, varianceSheet, row, values); err != nil {
			return err
		}
		row++
	}

	row++
	s := report.Summary
	summary := [][]interface{}{
		{"Budgeted income", s.TotalBudgetedIncome.InexactFloat64()},
		{"Budgeted expenses", s.TotalBudgetedExpenses.InexactFloat64()},
		{"Budgeted net", s.BudgetedNet.InexactFloat64()},
		{"Actual income", s.TotalActualIncome.InexactFloat64()},
		{"Actual expenses", s.TotalActualExpenses.InexactFloat64()},
		{"Actual net", s.ActualNet.InexactFloat64()},
		{"Net variance", report.NetVariance.InexactFloat64()},
	}
	for _, line := range summary {
		if err := setRow(f, varianceSheet, row, line); err != nil {
			return err
		}
		row++
	}

	row++
	for _, r := range report.Recommendations {
		if err := setRow(f, varianceSheet, row, []interface{}{r.Message}); err != nil {
			return err
		}
		row++
	}

	return f.SetColWidth(varianceSheet, "A", "A", 28)
}

func writeRawData(f *excelize.File, table *entity.SpendingTable) error {
	header := make([]interface{}, 0, len(table.Periods)+2)
	header = append(header, "Category", "Depth")
	for _, p := range table.Periods {
		header = append(header, p)
	}
	if err := setRow(f, rawDataSheet, 1, header); err != nil {
		return err
	}

	for i, r := range table.Rows {
		values := make([]interface{}, 0, len(r.Values)+2)
		values = append(values, r.Name, r.Depth)
		for _, v := range r.Values {
			values = append(values, v.InexactFloat64())
		}
		if err := setRow(f, rawDataSheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}
