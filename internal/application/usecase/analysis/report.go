package analysis

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/budget-dashboard/backend/internal/domain/valueobject"
)

var (
	overspentPercent   = decimal.NewFromInt(10)
	underBudgetPercent = decimal.NewFromInt(-20)
)

// GenerateReport collects the summary, variance table and recommendations that a
// report document is rendered from.
func (a *Analyzer) GenerateReport(periodLabel string) (valueobject.BudgetReport, error) {
	variances, err := a.CalculateVariances()
	if err != nil {
		return valueobject.BudgetReport{}, err
	}
	summary := a.GenerateSummaryStats()

	return valueobject.BudgetReport{
		PeriodLabel:     periodLabel,
		Summary:         summary,
		Variances:       variances,
		NetVariance:     summary.ActualNet.Sub(summary.BudgetedNet),
		Recommendations: recommend(variances, summary),
	}, nil
}

func recommend(variances []valueobject.VarianceRecord, summary valueobject.SummaryRecord) []valueobject.Recommendation {
	var overspent, under []string
	for _, record := range variances {
		switch {
		case record.VariancePercent.GreaterThan(overspentPercent):
			overspent = append(overspent, record.Category)
		case record.VariancePercent.LessThan(underBudgetPercent):
			under = append(under, record.Category)
		}
	}

	recommendations := make([]valueobject.Recommendation, 0)
	if len(overspent) > 0 {
		categories := strings.Join(overspent, ", ")
		recommendations = append(recommendations, valueobject.Recommendation{
			Kind:     valueobject.RecommendationOverspent,
			Category: categories,
			Message:  fmt.Sprintf("Review spending in %s - significantly over budget", categories),
		})
	}
	if len(under) > 0 {
		categories := strings.Join(under, ", ")
		recommendations = append(recommendations, valueobject.Recommendation{
			Kind:     valueobject.RecommendationUnderBudget,
			Category: categories,
			Message:  fmt.Sprintf("Consider reallocating budget from %s - consistently under budget", categories),
		})
	}
	if summary.ActualNet.LessThan(summary.BudgetedNet) {
		recommendations = append(recommendations, valueobject.Recommendation{
			Kind:    valueobject.RecommendationOverall,
			Message: "Overall spending exceeds budget - consider expense reduction strategies",
		})
	}
	if len(recommendations) == 0 {
		recommendations = append(recommendations, valueobject.Recommendation{
			Kind:    valueobject.RecommendationOnTrack,
			Message: "Budget performance is on track - continue current spending patterns",
		})
	}
	return recommendations
}
