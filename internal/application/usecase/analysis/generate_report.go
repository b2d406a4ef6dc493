package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/budget-dashboard/backend/internal/application/adapter"
	"github.com/budget-dashboard/backend/internal/application/usecase/session"
	"github.com/budget-dashboard/backend/internal/domain/entity"
	domainerror "github.com/budget-dashboard/backend/internal/domain/error"
	"github.com/budget-dashboard/backend/internal/domain/valueobject"
)

// GenerateReportUseCase builds the budget report of a session.
type GenerateReportUseCase struct {
	manager *session.Manager
}

// NewGenerateReportUseCase creates a new GenerateReportUseCase instance.
func NewGenerateReportUseCase(manager *session.Manager) *GenerateReportUseCase {
	return &GenerateReportUseCase{manager: manager}
}

// Execute returns the report for the selected period range.
func (uc *GenerateReportUseCase) Execute(ctx context.Context, sessionID uuid.UUID) (valueobject.BudgetReport, error) {
	report, _, err := buildReport(uc.manager, sessionID)
	return report, err
}

func buildReport(manager *session.Manager, sessionID uuid.UUID) (valueobject.BudgetReport, *entity.SpendingTable, error) {
	s, err := manager.Get(sessionID)
	if err != nil {
		return valueobject.BudgetReport{}, nil, err
	}

	s.Lock()
	defer s.Unlock()

	a, err := analyzerFor(s)
	if err != nil {
		return valueobject.BudgetReport{}, nil, err
	}
	table, _ := s.Actuals()

	report, err := a.GenerateReport(periodLabel(table, a.Settings().Range))
	if err != nil {
		return valueobject.BudgetReport{}, nil, err
	}
	return report, table, nil
}

// periodLabel names the selected range, e.g. "Jan 2024 - Mar 2024".
func periodLabel(table *entity.SpendingTable, r valueobject.PeriodRange) string {
	if table == nil || !r.IsWithin(table.PeriodCount()) {
		return ""
	}
	if r.Start == r.End {
		return table.Periods[r.Start]
	}
	return table.Periods[r.Start] + " - " + table.Periods[r.End]
}

// ExportReportOutput is a rendered report workbook.
type ExportReportOutput struct {
	Data     []byte
	FileName string
}

// ExportReportUseCase renders the budget report as an Excel workbook.
type ExportReportUseCase struct {
	manager  *session.Manager
	exporter adapter.ReportExporter
}

// NewExportReportUseCase creates a new ExportReportUseCase instance.
func NewExportReportUseCase(manager *session.Manager, exporter adapter.ReportExporter) *ExportReportUseCase {
	return &ExportReportUseCase{
		manager:  manager,
		exporter: exporter,
	}
}

// Execute performs the export.
func (uc *ExportReportUseCase) Execute(ctx context.Context, sessionID uuid.UUID) (*ExportReportOutput, error) {
	report, table, err := buildReport(uc.manager, sessionID)
	if err != nil {
		return nil, err
	}

	data, err := uc.exporter.ExportWorkbook(report, table)
	if err != nil {
		slog.Error("Failed to render report workbook", "session_id", sessionID, "error", err)
		return nil, domainerror.NewAnalysisError(domainerror.ErrCodeExportFailed, "failed to render report workbook", err)
	}

	return &ExportReportOutput{
		Data:     data,
		FileName: fmt.Sprintf("budget_report_%s.xlsx", time.Now().UTC().Format("20060102_150405")),
	}, nil
}
