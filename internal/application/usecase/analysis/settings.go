package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-dashboard/backend/internal/application/usecase/session"
	"github.com/budget-dashboard/backend/internal/domain/entity"
	domainerror "github.com/budget-dashboard/backend/internal/domain/error"
	"github.com/budget-dashboard/backend/internal/domain/valueobject"
)

// SettingsOutput is the analysis configuration of a session with the labels of
// the selected periods.
type SettingsOutput struct {
	Settings    valueobject.AnalysisSettings
	StartPeriod string
	EndPeriod   string
	Periods     []string
}

func settingsOutput(s *session.Session) *SettingsOutput {
	settings := s.Settings()
	out := &SettingsOutput{Settings: settings, Periods: make([]string, 0)}
	if table, ok := s.Actuals(); ok {
		out.Periods = append(out.Periods, table.Periods...)
		if settings.Range.IsWithin(table.PeriodCount()) {
			out.StartPeriod = table.Periods[settings.Range.Start]
			out.EndPeriod = table.Periods[settings.Range.End]
		}
	}
	return out
}

// GetSettingsUseCase returns the analysis settings.
type GetSettingsUseCase struct {
	manager *session.Manager
}

// NewGetSettingsUseCase creates a new GetSettingsUseCase instance.
func NewGetSettingsUseCase(manager *session.Manager) *GetSettingsUseCase {
	return &GetSettingsUseCase{manager: manager}
}

// Execute returns the current settings.
func (uc *GetSettingsUseCase) Execute(ctx context.Context, sessionID uuid.UUID) (*SettingsOutput, error) {
	s, err := uc.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.Lock()
	defer s.Unlock()

	return settingsOutput(s), nil
}

// UpdateSettingsInput changes any subset of the settings. A range end may be
// given as a period label or as a zero-based column index; labels win.
type UpdateSettingsInput struct {
	SessionID     uuid.UUID
	StartPeriod   string
	EndPeriod     string
	StartIndex    *int
	EndIndex      *int
	Threshold     *decimal.Decimal
	OnlyOverspend *bool
}

func (in UpdateSettingsInput) changesRange() bool {
	return in.StartPeriod != "" || in.EndPeriod != "" || in.StartIndex != nil || in.EndIndex != nil
}

// UpdateSettingsUseCase validates and stores new analysis settings.
type UpdateSettingsUseCase struct {
	manager *session.Manager
}

// NewUpdateSettingsUseCase creates a new UpdateSettingsUseCase instance.
func NewUpdateSettingsUseCase(manager *session.Manager) *UpdateSettingsUseCase {
	return &UpdateSettingsUseCase{manager: manager}
}

// Execute applies the update. Nothing is stored when any part is invalid.
func (uc *UpdateSettingsUseCase) Execute(ctx context.Context, input UpdateSettingsInput) (*SettingsOutput, error) {
	if input.Threshold != nil && input.Threshold.IsNegative() {
		return nil, domainerror.NewAnalysisError(
			domainerror.ErrCodeInvalidThreshold,
			fmt.Sprintf("overspend threshold must not be negative, got %s", input.Threshold.String()),
			domainerror.ErrInvalidThreshold,
		)
	}

	s, err := uc.manager.Get(input.SessionID)
	if err != nil {
		return nil, err
	}

	s.Lock()
	defer s.Unlock()

	settings := s.Settings()
	if input.changesRange() {
		table, ok := s.Actuals()
		if !ok {
			return nil, domainerror.NewUnsetDataError("selecting a period range")
		}
		r, err := resolveRange(table, settings.Range, input)
		if err != nil {
			return nil, err
		}
		settings.Range = r
	}
	if input.Threshold != nil {
		settings.OverspendThreshold = *input.Threshold
	}
	if input.OnlyOverspend != nil {
		settings.OnlyOverspend = *input.OnlyOverspend
	}
	s.SetSettings(settings)

	slog.Info("Analysis settings updated",
		"session_id", s.ID,
		"start", settings.Range.Start,
		"end", settings.Range.End,
		"threshold", settings.OverspendThreshold.String(),
		"only_overspend", settings.OnlyOverspend,
	)
	return settingsOutput(s), nil
}

// resolveRange merges the requested ends into current and checks the result.
func resolveRange(table *entity.SpendingTable, current valueobject.PeriodRange, input UpdateSettingsInput) (valueobject.PeriodRange, error) {
	r := current
	resolve := func(label string, index *int, dst *int) error {
		switch {
		case label != "":
			i, ok := table.PeriodIndex(label)
			if !ok {
				return domainerror.NewAnalysisError(
					domainerror.ErrCodeUnknownPeriod,
					fmt.Sprintf("period %q is not a column of the uploaded data", label),
					domainerror.ErrInvalidPeriodRange,
				)
			}
			*dst = i
		case index != nil:
			*dst = *index
		}
		return nil
	}
	if err := resolve(input.StartPeriod, input.StartIndex, &r.Start); err != nil {
		return r, err
	}
	if err := resolve(input.EndPeriod, input.EndIndex, &r.End); err != nil {
		return r, err
	}

	if !r.IsWithin(table.PeriodCount()) {
		return r, domainerror.NewAnalysisError(
			domainerror.ErrCodeInvalidPeriodRange,
			fmt.Sprintf("period range %d-%d must be ordered and within 0-%d", r.Start, r.End, table.PeriodCount()-1),
			domainerror.ErrInvalidPeriodRange,
		)
	}
	return r, nil
}
