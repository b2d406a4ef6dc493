package ingestion

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-dashboard/backend/internal/application/usecase/session"
	"github.com/budget-dashboard/backend/internal/domain/entity"
	domainerror "github.com/budget-dashboard/backend/internal/domain/error"
)

// GetActualsOutput represents the loaded spending table.
type GetActualsOutput struct {
	File  session.FileInfo
	Table *entity.SpendingTable
}

// GetActualsUseCase returns the session's spending table.
type GetActualsUseCase struct {
	manager *session.Manager
}

// NewGetActualsUseCase creates a new GetActualsUseCase instance.
func NewGetActualsUseCase(manager *session.Manager) *GetActualsUseCase {
	return &GetActualsUseCase{manager: manager}
}

// Execute returns the table, or an unset-data error when nothing was uploaded.
func (uc *GetActualsUseCase) Execute(ctx context.Context, sessionID uuid.UUID) (*GetActualsOutput, error) {
	s, err := uc.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.Lock()
	defer s.Unlock()

	table, ok := s.Actuals()
	if !ok {
		return nil, domainerror.NewUnsetDataError("get actuals")
	}
	return &GetActualsOutput{
		File:  *s.Snapshot().ActualsFile,
		Table: table,
	}, nil
}
