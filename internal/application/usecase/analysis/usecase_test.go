package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/budget-dashboard/backend/internal/application/usecase/session"
	"github.com/budget-dashboard/backend/internal/domain/entity"
	domainerror "github.com/budget-dashboard/backend/internal/domain/error"
	"github.com/budget-dashboard/backend/internal/domain/valueobject"
)

type mockReportExporter struct {
	mock.Mock
}

func (m *mockReportExporter) ExportWorkbook(report valueobject.BudgetReport, table *entity.SpendingTable) ([]byte, error) {
	args := m.Called(report, table)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

// loadedSession returns a manager with one session holding the household budget
// and, when withActuals is set, the household spending table.
func loadedSession(t *testing.T, withActuals bool) (*session.Manager, uuid.UUID) {
	t.Helper()
	manager := session.NewManager(time.Hour, nil)
	s := manager.Create()

	s.Lock()
	defer s.Unlock()
	s.SetBudget(householdBudget(), session.FileInfo{Name: "budget.yaml", Digest: "b"})
	if withActuals {
		s.SetActuals(householdActuals(), session.FileInfo{Name: "export.csv", Digest: "a"})
	}
	return manager, s.ID
}

func intPtr(v int) *int { return &v }

func TestGetSettingsUseCase(t *testing.T) {
	manager, id := loadedSession(t, true)

	output, err := NewGetSettingsUseCase(manager).Execute(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, valueobject.PeriodRange{Start: 0, End: 2}, output.Settings.Range)
	assert.Equal(t, "Jan", output.StartPeriod)
	assert.Equal(t, "Mar", output.EndPeriod)
	assert.Equal(t, []string{"Jan", "Feb", "Mar"}, output.Periods)
}

func TestUpdateSettingsUseCase(t *testing.T) {
	only := true
	threshold := d("25")

	tests := []struct {
		name      string
		input     UpdateSettingsInput
		wantRange valueobject.PeriodRange
		wantCode  domainerror.AnalysisErrorCode
	}{
		{
			name:      "labels select the range",
			input:     UpdateSettingsInput{StartPeriod: "Feb", EndPeriod: "Mar"},
			wantRange: valueobject.PeriodRange{Start: 1, End: 2},
		},
		{
			name:      "indexes select the range",
			input:     UpdateSettingsInput{StartIndex: intPtr(0), EndIndex: intPtr(0)},
			wantRange: valueobject.PeriodRange{Start: 0, End: 0},
		},
		{
			name:      "label wins over index",
			input:     UpdateSettingsInput{StartPeriod: "Mar", StartIndex: intPtr(0)},
			wantRange: valueobject.PeriodRange{Start: 2, End: 2},
		},
		{
			name:      "threshold and filter leave the range alone",
			input:     UpdateSettingsInput{Threshold: &threshold, OnlyOverspend: &only},
			wantRange: valueobject.PeriodRange{Start: 0, End: 2},
		},
		{
			name:     "unknown label",
			input:    UpdateSettingsInput{EndPeriod: "Dec"},
			wantCode: domainerror.ErrCodeUnknownPeriod,
		},
		{
			name:     "start after end",
			input:    UpdateSettingsInput{StartIndex: intPtr(2), EndIndex: intPtr(1)},
			wantCode: domainerror.ErrCodeInvalidPeriodRange,
		},
		{
			name:     "index out of bounds",
			input:    UpdateSettingsInput{EndIndex: intPtr(3)},
			wantCode: domainerror.ErrCodeInvalidPeriodRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager, id := loadedSession(t, true)
			tt.input.SessionID = id

			output, err := NewUpdateSettingsUseCase(manager).Execute(context.Background(), tt.input)

			if tt.wantCode != "" {
				var analysisErr *domainerror.AnalysisError
				require.ErrorAs(t, err, &analysisErr)
				assert.Equal(t, tt.wantCode, analysisErr.Code)

				current, _ := NewGetSettingsUseCase(manager).Execute(context.Background(), id)
				assert.Equal(t, valueobject.PeriodRange{Start: 0, End: 2}, current.Settings.Range, "nothing stored on error")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRange, output.Settings.Range)
		})
	}
}

func TestUpdateSettingsUseCase_NegativeThreshold(t *testing.T) {
	manager, id := loadedSession(t, true)
	threshold := d("-1")

	_, err := NewUpdateSettingsUseCase(manager).Execute(context.Background(), UpdateSettingsInput{SessionID: id, Threshold: &threshold})

	assert.ErrorIs(t, err, domainerror.ErrInvalidThreshold)
}

func TestUpdateSettingsUseCase_RangeNeedsActuals(t *testing.T) {
	manager, id := loadedSession(t, false)

	_, err := NewUpdateSettingsUseCase(manager).Execute(context.Background(), UpdateSettingsInput{SessionID: id, StartIndex: intPtr(0)})

	assert.ErrorIs(t, err, domainerror.ErrActualDataNotSet)
}

func TestQueryUseCase_Summary(t *testing.T) {
	manager, id := loadedSession(t, false)

	summary, err := NewQueryUseCase(manager).Summary(context.Background(), id)

	require.NoError(t, err)
	assert.True(t, summary.TotalBudgetedIncome.Equal(d("6000")))
	assert.True(t, summary.TotalActualExpenses.IsZero())
	assert.Equal(t, 1, summary.PeriodCount)
}

func TestQueryUseCase_Variances(t *testing.T) {
	manager, id := loadedSession(t, false)
	uc := NewQueryUseCase(manager)

	_, err := uc.Variances(context.Background(), id)
	assert.ErrorIs(t, err, domainerror.ErrActualDataNotSet)

	manager, id = loadedSession(t, true)
	records, err := NewQueryUseCase(manager).Variances(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestQueryUseCase_Overspending(t *testing.T) {
	manager, id := loadedSession(t, true)
	uc := NewQueryUseCase(manager)

	_, applied, err := uc.Overspending(context.Background(), id, nil)
	require.NoError(t, err)
	assert.True(t, applied.Equal(decimal.NewFromInt(valueobject.DefaultOverspendThreshold)))

	override := d("1000")
	names, applied, err := uc.Overspending(context.Background(), id, &override)
	require.NoError(t, err)
	assert.True(t, applied.Equal(override))
	assert.Empty(t, names)
}

func TestQueryUseCase_Trends(t *testing.T) {
	manager, id := loadedSession(t, true)

	trends, err := NewQueryUseCase(manager).Trends(context.Background(), id, "Groceries")

	require.NoError(t, err)
	require.Len(t, trends, 1)
	assert.Equal(t, []string{"Jan", "Feb", "Mar"}, trends[0].Periods)
}

func TestQueryUseCase_Reconciliation(t *testing.T) {
	manager, id := loadedSession(t, true)

	report, err := NewQueryUseCase(manager).Reconciliation(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, valueobject.PeriodRange{Start: 0, End: 2}, report.Range)
}

func TestQueryUseCase_RequiresBudget(t *testing.T) {
	manager := session.NewManager(time.Hour, nil)
	s := manager.Create()

	_, err := NewQueryUseCase(manager).Summary(context.Background(), s.ID)

	assert.ErrorIs(t, err, domainerror.ErrBudgetNotLoaded)
}

func TestGenerateReportUseCase(t *testing.T) {
	manager, id := loadedSession(t, true)

	report, err := NewGenerateReportUseCase(manager).Execute(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, "Jan - Mar", report.PeriodLabel)
	assert.Equal(t, 3, report.Summary.PeriodCount)
	assert.NotEmpty(t, report.Recommendations)
}

func TestPeriodLabel(t *testing.T) {
	table := householdActuals()

	assert.Equal(t, "Feb", periodLabel(table, valueobject.PeriodRange{Start: 1, End: 1}))
	assert.Equal(t, "Jan - Feb", periodLabel(table, valueobject.PeriodRange{Start: 0, End: 1}))
	assert.Equal(t, "", periodLabel(table, valueobject.PeriodRange{Start: 0, End: 5}))
	assert.Equal(t, "", periodLabel(nil, valueobject.PeriodRange{}))
}

func TestExportReportUseCase(t *testing.T) {
	manager, id := loadedSession(t, true)
	exporter := new(mockReportExporter)
	exporter.On("ExportWorkbook", mock.AnythingOfType("valueobject.BudgetReport"), mock.AnythingOfType("*entity.SpendingTable")).
		Return([]byte("xlsx"), nil)

	output, err := NewExportReportUseCase(manager, exporter).Execute(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), output.Data)
	assert.Regexp(t, `^budget_report_\d{8}_\d{6}\.xlsx$`, output.FileName)
	exporter.AssertExpectations(t)
}

func TestExportReportUseCase_ExporterFailure(t *testing.T) {
	manager, id := loadedSession(t, true)
	exporter := new(mockReportExporter)
	exporter.On("ExportWorkbook", mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))

	_, err := NewExportReportUseCase(manager, exporter).Execute(context.Background(), id)

	var analysisErr *domainerror.AnalysisError
	require.ErrorAs(t, err, &analysisErr)
	assert.Equal(t, domainerror.ErrCodeExportFailed, analysisErr.Code)
}
