package entity

import (
	"github.com/shopspring/decimal"
)

// SpendingRow is one category line of an actual-spending export. Values holds one
// signed amount per period, with expenses negative and income positive.
type SpendingRow struct {
	Name   string
	Depth  int
	Values []decimal.Decimal
}

// SpendingTable is the rectangular per-category, per-period actual-spending table.
// Period positions are the column indexes used for range selection.
type SpendingTable struct {
	Periods []string
	Rows    []SpendingRow
}

// NewSpendingTable creates a table from copies of periods and rows, padding or
// truncating each row to the period count.
func NewSpendingTable(periods []string, rows []SpendingRow) *SpendingTable {
	normalized := make([]SpendingRow, len(rows))
	for i, row := range rows {
		values := make([]decimal.Decimal, len(periods))
		for j := range values {
			if j < len(row.Values) {
				values[j] = row.Values[j]
			} else {
				values[j] = decimal.Zero
			}
		}
		row.Values = values
		normalized[i] = row
	}
	return &SpendingTable{
		Periods: append([]string(nil), periods...),
		Rows:    normalized,
	}
}

// PeriodCount returns the number of period columns.
func (t *SpendingTable) PeriodCount() int {
	return len(t.Periods)
}

// PeriodIndex returns the column position of a period label.
func (t *SpendingTable) PeriodIndex(label string) (int, bool) {
	for i, period := range t.Periods {
		if period == label {
			return i, true
		}
	}
	return 0, false
}

// RowTotal sums a row's values over the inclusive column range [start, end].
func (r SpendingRow) RowTotal(start, end int) decimal.Decimal {
	total := decimal.Zero
	for i := start; i <= end && i < len(r.Values); i++ {
		if i < 0 {
			continue
		}
		total = total.Add(r.Values[i])
	}
	return total
}
