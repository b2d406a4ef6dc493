package analysis

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-dashboard/backend/internal/application/usecase/session"
	"github.com/budget-dashboard/backend/internal/domain/valueobject"
)

// QueryUseCase answers read-only analysis questions for a session. Each method
// builds a fresh analyzer from the session state.
type QueryUseCase struct {
	manager *session.Manager
}

// NewQueryUseCase creates a new QueryUseCase instance.
func NewQueryUseCase(manager *session.Manager) *QueryUseCase {
	return &QueryUseCase{manager: manager}
}

func (uc *QueryUseCase) run(sessionID uuid.UUID, fn func(a *Analyzer) error) error {
	s, err := uc.manager.Get(sessionID)
	if err != nil {
		return err
	}

	s.Lock()
	defer s.Unlock()

	a, err := analyzerFor(s)
	if err != nil {
		return err
	}
	return fn(a)
}

// Summary returns the summary record. Without actual data the actual totals are zero.
func (uc *QueryUseCase) Summary(ctx context.Context, sessionID uuid.UUID) (valueobject.SummaryRecord, error) {
	var summary valueobject.SummaryRecord
	err := uc.run(sessionID, func(a *Analyzer) error {
		summary = a.GenerateSummaryStats()
		return nil
	})
	return summary, err
}

// Variances returns the variance records.
func (uc *QueryUseCase) Variances(ctx context.Context, sessionID uuid.UUID) ([]valueobject.VarianceRecord, error) {
	var records []valueobject.VarianceRecord
	err := uc.run(sessionID, func(a *Analyzer) (err error) {
		records, err = a.CalculateVariances()
		return err
	})
	return records, err
}

// Overspending lists overspent categories and the threshold applied. A nil
// threshold uses the session's.
func (uc *QueryUseCase) Overspending(ctx context.Context, sessionID uuid.UUID, threshold *decimal.Decimal) ([]string, decimal.Decimal, error) {
	var names []string
	var applied decimal.Decimal
	err := uc.run(sessionID, func(a *Analyzer) (err error) {
		applied = a.Settings().OverspendThreshold
		if threshold != nil {
			applied = *threshold
		}
		names, err = a.IdentifyOverspending(applied)
		return err
	})
	return names, applied, err
}

// Savings returns the savings opportunities.
func (uc *QueryUseCase) Savings(ctx context.Context, sessionID uuid.UUID) ([]valueobject.SavingsOpportunity, error) {
	var opportunities []valueobject.SavingsOpportunity
	err := uc.run(sessionID, func(a *Analyzer) (err error) {
		opportunities, err = a.GetSavingsOpportunities()
		return err
	})
	return opportunities, err
}

// Trends returns spending trends for one category, or every expense category
// when category is empty.
func (uc *QueryUseCase) Trends(ctx context.Context, sessionID uuid.UUID, category string) ([]valueobject.CategoryTrend, error) {
	var trends []valueobject.CategoryTrend
	err := uc.run(sessionID, func(a *Analyzer) (err error) {
		trends, err = a.GetSpendingTrends(category)
		return err
	})
	return trends, err
}

// Reconciliation returns the reconciliation report.
func (uc *QueryUseCase) Reconciliation(ctx context.Context, sessionID uuid.UUID) (valueobject.ReconciliationReport, error) {
	var report valueobject.ReconciliationReport
	err := uc.run(sessionID, func(a *Analyzer) (err error) {
		report, err = a.ReconciliationReport()
		return err
	})
	return report, err
}
