package dto

import (
	"github.com/shopspring/decimal"

	"github.com/budget-dashboard/backend/internal/application/usecase/analysis"
	"github.com/budget-dashboard/backend/internal/domain/valueobject"
)

// UpdateSettingsRequest represents the request body of a settings update. Range
// ends may be given by label or by zero-based index.
type UpdateSettingsRequest struct {
	StartPeriod        string   `json:"start_period,omitempty"`
	EndPeriod          string   `json:"end_period,omitempty"`
	StartIndex         *int     `json:"start_index,omitempty"`
	EndIndex           *int     `json:"end_index,omitempty"`
	OverspendThreshold *float64 `json:"overspend_threshold,omitempty"`
	OnlyOverspend      *bool    `json:"only_overspend,omitempty"`
}

// OverspendingQuery represents the query of the overspending listing.
type OverspendingQuery struct {
	Threshold *float64 `form:"threshold"`
}

// TrendsQuery represents the query of the trends endpoint.
type TrendsQuery struct {
	Category string `form:"category"`
}

// SettingsResponse represents the analysis settings.
type SettingsResponse struct {
	StartIndex         int      `json:"start_index"`
	EndIndex           int      `json:"end_index"`
	StartPeriod        string   `json:"start_period,omitempty"`
	EndPeriod          string   `json:"end_period,omitempty"`
	PeriodCount        int      `json:"period_count"`
	OverspendThreshold float64  `json:"overspend_threshold"`
	OnlyOverspend      bool     `json:"only_overspend"`
	Periods            []string `json:"periods"`
}

// SummaryResponse represents the summary record.
type SummaryResponse struct {
	TotalBudgetedIncome   float64 `json:"total_budgeted_income"`
	TotalBudgetedExpenses float64 `json:"total_budgeted_expenses"`
	BudgetedNet           float64 `json:"budgeted_net"`
	TotalActualIncome     float64 `json:"total_actual_income"`
	TotalActualExpenses   float64 `json:"total_actual_expenses"`
	ActualNet             float64 `json:"actual_net"`
	PeriodCount           int     `json:"period_count"`
}

// VarianceResponse represents one variance record.
type VarianceResponse struct {
	Category        string  `json:"category"`
	Budgeted        float64 `json:"budgeted"`
	Actual          float64 `json:"actual"`
	Variance        float64 `json:"variance"`
	VariancePercent float64 `json:"variance_percent"`
}

// VarianceListResponse represents the variance table.
type VarianceListResponse struct {
	Variances []VarianceResponse `json:"variances"`
}

// OverspendingResponse represents the overspent categories.
type OverspendingResponse struct {
	Threshold  float64  `json:"threshold"`
	Categories []string `json:"categories"`
}

// SavingsResponse represents one savings opportunity.
type SavingsResponse struct {
	Category         string  `json:"category"`
	PotentialSavings float64 `json:"potential_savings"`
	CurrentSpending  float64 `json:"current_spending"`
}

// SavingsListResponse represents every savings opportunity.
type SavingsListResponse struct {
	Opportunities []SavingsResponse `json:"opportunities"`
}

// TrendResponse represents one category trend.
type TrendResponse struct {
	Category string    `json:"category"`
	Periods  []string  `json:"periods"`
	Values   []float64 `json:"values"`
	Mean     float64   `json:"mean"`
	StdDev   float64   `json:"std_dev"`
}

// TrendListResponse represents the trends of several categories.
type TrendListResponse struct {
	Trends []TrendResponse `json:"trends"`
}

// ReconciledCategoryResponse represents one reconciled budget category.
type ReconciledCategoryResponse struct {
	Category string   `json:"category"`
	Type     string   `json:"type"`
	Total    float64  `json:"total"`
	RowNames []string `json:"row_names"`
}

// UnmatchedRowResponse represents a row no budget category claims.
type UnmatchedRowResponse struct {
	Category string  `json:"category"`
	Depth    int     `json:"depth"`
	Total    float64 `json:"total"`
}

// ReconciliationResponse represents the reconciliation report.
type ReconciliationResponse struct {
	StartIndex int                          `json:"start_index"`
	EndIndex   int                          `json:"end_index"`
	Categories []ReconciledCategoryResponse `json:"categories"`
	Unmatched  []UnmatchedRowResponse       `json:"unmatched"`
}

// ToUpdateSettingsInput converts the request to the use case input.
func (r UpdateSettingsRequest) ToUpdateSettingsInput() analysis.UpdateSettingsInput {
	input := analysis.UpdateSettingsInput{
		StartPeriod:   r.StartPeriod,
		EndPeriod:     r.EndPeriod,
		StartIndex:    r.StartIndex,
		EndIndex:      r.EndIndex,
		OnlyOverspend: r.OnlyOverspend,
	}
	if r.OverspendThreshold != nil {
		threshold := decimal.NewFromFloat(*r.OverspendThreshold)
		input.Threshold = &threshold
	}
	return input
}

// ToSettingsResponse converts analysis settings to their DTO.
func ToSettingsResponse(settings valueobject.AnalysisSettings, periods []string) SettingsResponse {
	response := SettingsResponse{
		StartIndex:         settings.Range.Start,
		EndIndex:           settings.Range.End,
		PeriodCount:        settings.Range.Count(),
		OverspendThreshold: money(settings.OverspendThreshold),
		OnlyOverspend:      settings.OnlyOverspend,
		Periods:            periods,
	}
	if response.Periods == nil {
		response.Periods = []string{}
	}
	if settings.Range.IsWithin(len(periods)) {
		response.StartPeriod = periods[settings.Range.Start]
		response.EndPeriod = periods[settings.Range.End]
	}
	return response
}

// ToSettingsOutputResponse converts a SettingsOutput to its DTO.
func ToSettingsOutputResponse(output *analysis.SettingsOutput) SettingsResponse {
	return ToSettingsResponse(output.Settings, output.Periods)
}

// ToSummaryResponse converts a summary record to its DTO.
func ToSummaryResponse(s valueobject.SummaryRecord) SummaryResponse {
	return SummaryResponse{
		TotalBudgetedIncome:   money(s.TotalBudgetedIncome),
		TotalBudgetedExpenses: money(s.TotalBudgetedExpenses),
		BudgetedNet:           money(s.BudgetedNet),
		TotalActualIncome:     money(s.TotalActualIncome),
		TotalActualExpenses:   money(s.TotalActualExpenses),
		ActualNet:             money(s.ActualNet),
		PeriodCount:           s.PeriodCount,
	}
}

// ToVarianceResponses converts variance records to their DTOs.
func ToVarianceResponses(records []valueobject.VarianceRecord) []VarianceResponse {
	out := make([]VarianceResponse, len(records))
	for i, r := range records {
		out[i] = VarianceResponse{
			Category:        r.Category,
			Budgeted:        money(r.Budgeted),
			Actual:          money(r.Actual),
			Variance:        money(r.Variance),
			VariancePercent: money(r.VariancePercent),
		}
	}
	return out
}

// ToSavingsListResponse converts savings opportunities to their DTO.
func ToSavingsListResponse(opportunities []valueobject.SavingsOpportunity) SavingsListResponse {
	response := SavingsListResponse{Opportunities: make([]SavingsResponse, len(opportunities))}
	for i, o := range opportunities {
		response.Opportunities[i] = SavingsResponse{
			Category:         o.Category,
			PotentialSavings: money(o.PotentialSavings),
			CurrentSpending:  money(o.CurrentSpending),
		}
	}
	return response
}

// ToTrendListResponse converts category trends to their DTO.
func ToTrendListResponse(trends []valueobject.CategoryTrend) TrendListResponse {
	response := TrendListResponse{Trends: make([]TrendResponse, len(trends))}
	for i, t := range trends {
		response.Trends[i] = TrendResponse{
			Category: t.Category,
			Periods:  t.Periods,
			Values:   moneyList(t.Values),
			Mean:     money(t.Mean),
			StdDev:   money(t.StdDev),
		}
	}
	return response
}

// ToReconciliationResponse converts a reconciliation report to its DTO.
func ToReconciliationResponse(report valueobject.ReconciliationReport) ReconciliationResponse {
	response := ReconciliationResponse{
		StartIndex: report.Range.Start,
		EndIndex:   report.Range.End,
		Categories: make([]ReconciledCategoryResponse, len(report.Categories)),
		Unmatched:  make([]UnmatchedRowResponse, len(report.Unmatched)),
	}
	for i, c := range report.Categories {
		names := c.RowNames
		if names == nil {
			names = []string{}
		}
		response.Categories[i] = ReconciledCategoryResponse{
			Category: c.Category,
			Type:     c.Type,
			Total:    money(c.Total),
			RowNames: names,
		}
	}
	for i, u := range report.Unmatched {
		response.Unmatched[i] = UnmatchedRowResponse{
			Category: u.Name,
			Depth:    u.Depth,
			Total:    money(u.Total),
		}
	}
	return response
}
