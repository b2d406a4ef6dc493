package session

import (
	"context"
	"log/slog"

	"github.com/budget-dashboard/backend/internal/application/adapter"
)

// ExpireSessionsUseCase drops idle sessions together with their upload history.
type ExpireSessionsUseCase struct {
	manager    *Manager
	uploadRepo adapter.UploadRepository
}

// NewExpireSessionsUseCase creates a new ExpireSessionsUseCase instance.
func NewExpireSessionsUseCase(manager *Manager, uploadRepo adapter.UploadRepository) *ExpireSessionsUseCase {
	return &ExpireSessionsUseCase{
		manager:    manager,
		uploadRepo: uploadRepo,
	}
}

// Execute returns how many sessions were expired. History cleanup failures are
// logged and do not stop the sweep.
func (uc *ExpireSessionsUseCase) Execute(ctx context.Context) int {
	expired := uc.manager.ExpireIdle()
	for _, id := range expired {
		if err := uc.uploadRepo.DeleteBySession(ctx, id); err != nil {
			slog.Warn("Failed to delete upload history", "session_id", id, "error", err)
		}
	}
	return len(expired)
}
