package analysis

import (
	"github.com/budget-dashboard/backend/internal/application/usecase/session"
)

// analyzerFor builds an analyzer over the session's live budget, actual table and
// settings. The caller must hold the session lock while using it.
func analyzerFor(s *session.Session) (*Analyzer, error) {
	live, err := s.LiveBudget()
	if err != nil {
		return nil, err
	}

	a := NewAnalyzer(live)
	a.SetSettings(s.Settings())
	if table, ok := s.Actuals(); ok {
		a.SetActualData(table)
	}
	return a, nil
}
