package dto

import (
	"github.com/budget-dashboard/backend/internal/domain/valueobject"
)

// RecommendationResponse represents one report recommendation.
type RecommendationResponse struct {
	Kind     string `json:"kind"`
	Category string `json:"category,omitempty"`
	Message  string `json:"message"`
}

// BudgetReportResponse represents the budget report.
type BudgetReportResponse struct {
	PeriodLabel     string                   `json:"period_label"`
	Summary         SummaryResponse          `json:"summary"`
	Variances       []VarianceResponse       `json:"variances"`
	NetVariance     float64                  `json:"net_variance"`
	Recommendations []RecommendationResponse `json:"recommendations"`
}

// ToBudgetReportResponse converts a budget report to its DTO.
func ToBudgetReportResponse(report valueobject.BudgetReport) BudgetReportResponse {
	response := BudgetReportResponse{
		PeriodLabel:     report.PeriodLabel,
		Summary:         ToSummaryResponse(report.Summary),
		Variances:       ToVarianceResponses(report.Variances),
		NetVariance:     money(report.NetVariance),
		Recommendations: make([]RecommendationResponse, len(report.Recommendations)),
	}
	for i, r := range report.Recommendations {
		response.Recommendations[i] = RecommendationResponse{
			Kind:     r.Kind,
			Category: r.Category,
			Message:  r.Message,
		}
	}
	return response
}
