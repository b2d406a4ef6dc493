package session

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/budget-dashboard/backend/internal/application/adapter"
)

// EndSessionUseCase discards a session and its upload history.
type EndSessionUseCase struct {
	manager    *Manager
	uploadRepo adapter.UploadRepository
}

// NewEndSessionUseCase creates a new EndSessionUseCase instance.
func NewEndSessionUseCase(manager *Manager, uploadRepo adapter.UploadRepository) *EndSessionUseCase {
	return &EndSessionUseCase{
		manager:    manager,
		uploadRepo: uploadRepo,
	}
}

// Execute performs the session removal.
func (uc *EndSessionUseCase) Execute(ctx context.Context, sessionID uuid.UUID) error {
	if err := uc.manager.Delete(sessionID); err != nil {
		return err
	}

	if err := uc.uploadRepo.DeleteBySession(ctx, sessionID); err != nil {
		slog.Warn("Failed to delete upload history", "session_id", sessionID, "error", err)
	}
	return nil
}
