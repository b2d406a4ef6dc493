// Package valueobject contains domain value objects for the Budget Dashboard system.
package valueobject

import "github.com/shopspring/decimal"

// DefaultOverspendThreshold is the variance percentage above which a category is overspent.
const DefaultOverspendThreshold = 10

// PeriodRange is an inclusive pair of period column positions.
type PeriodRange struct {
	Start int
	End   int
}

// FullPeriodRange covers every one of periodCount columns.
func FullPeriodRange(periodCount int) PeriodRange {
	end := periodCount - 1
	if end < 0 {
		end = 0
	}
	return PeriodRange{Start: 0, End: end}
}

// Count returns the number of periods in the range.
func (r PeriodRange) Count() int {
	return r.End - r.Start + 1
}

// IsWithin reports whether the range is ordered and fits inside periodCount columns.
func (r PeriodRange) IsWithin(periodCount int) bool {
	return r.Start >= 0 && r.Start <= r.End && r.End < periodCount
}

// AnalysisSettings contains the user-selected parameters of a variance analysis.
type AnalysisSettings struct {
	Range              PeriodRange
	OverspendThreshold decimal.Decimal // percent, 10 = 10%
	OnlyOverspend      bool
}

// DefaultAnalysisSettings returns the settings used before the user changes anything.
func DefaultAnalysisSettings() AnalysisSettings {
	return AnalysisSettings{
		Range:              PeriodRange{Start: 0, End: 0},
		OverspendThreshold: decimal.NewFromInt(DefaultOverspendThreshold),
	}
}

// IsOverspent checks if a variance percentage exceeds the configured threshold.
func (s AnalysisSettings) IsOverspent(variancePercent decimal.Decimal) bool {
	return variancePercent.GreaterThan(s.OverspendThreshold)
}
