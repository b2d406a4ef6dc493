package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpendingTable_NormalizesRowWidth(t *testing.T) {
	table := NewSpendingTable([]string{"Jan", "Feb", "Mar"}, []SpendingRow{
		{Name: "Short", Values: []decimal.Decimal{d("-1")}},
		{Name: "Long", Values: []decimal.Decimal{d("1"), d("2"), d("3"), d("4")}},
	})

	require.Len(t, table.Rows, 2)
	assert.Len(t, table.Rows[0].Values, 3)
	assert.True(t, table.Rows[0].Values[2].IsZero())
	assert.Len(t, table.Rows[1].Values, 3)
	assert.Equal(t, 3, table.PeriodCount())
}

func TestNewSpendingTable_LeavesCallerRowsUntouched(t *testing.T) {
	periods := []string{"Jan", "Feb"}
	rows := []SpendingRow{
		{Name: "Short", Values: []decimal.Decimal{d("-1")}},
		{Name: "Long", Values: []decimal.Decimal{d("1"), d("2"), d("3")}},
	}

	table := NewSpendingTable(periods, rows)
	table.Rows[1].Values[0] = d("99")
	table.Periods[0] = "Dec"

	require.Len(t, rows[0].Values, 1)
	require.Len(t, rows[1].Values, 3)
	assert.True(t, rows[1].Values[0].Equal(d("1")))
	assert.True(t, rows[1].Values[2].Equal(d("3")))
	assert.Equal(t, []string{"Jan", "Feb"}, periods)
	assert.Len(t, table.Rows[0].Values, 2)
}

func TestSpendingRow_RowTotal(t *testing.T) {
	row := SpendingRow{Name: "Groceries", Values: []decimal.Decimal{d("-100"), d("-200.5"), d("-50")}}

	assert.True(t, row.RowTotal(0, 2).Equal(d("-350.5")))
	assert.True(t, row.RowTotal(1, 1).Equal(d("-200.5")))
	assert.True(t, row.RowTotal(2, 10).Equal(d("-50")))
}

func TestSpendingTable_PeriodIndex(t *testing.T) {
	table := NewSpendingTable([]string{"Jan 2024", "Feb 2024"}, nil)

	idx, ok := table.PeriodIndex("Feb 2024")
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = table.PeriodIndex("Mar 2024")
	assert.False(t, ok)
}
