package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budget-dashboard/backend/internal/application/adapter"
	"github.com/budget-dashboard/backend/internal/domain/entity"
)

// GetSessionUseCase returns session metadata.
type GetSessionUseCase struct {
	manager *Manager
}

// NewGetSessionUseCase creates a new GetSessionUseCase instance.
func NewGetSessionUseCase(manager *Manager) *GetSessionUseCase {
	return &GetSessionUseCase{manager: manager}
}

// Execute returns a snapshot of the session.
func (uc *GetSessionUseCase) Execute(ctx context.Context, sessionID uuid.UUID) (*State, error) {
	s, err := uc.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.Lock()
	defer s.Unlock()

	state := s.Snapshot()
	return &state, nil
}

// ListUploadsUseCase returns the upload history of a session.
type ListUploadsUseCase struct {
	manager    *Manager
	uploadRepo adapter.UploadRepository
}

// NewListUploadsUseCase creates a new ListUploadsUseCase instance.
func NewListUploadsUseCase(manager *Manager, uploadRepo adapter.UploadRepository) *ListUploadsUseCase {
	return &ListUploadsUseCase{
		manager:    manager,
		uploadRepo: uploadRepo,
	}
}

// Execute lists the session's uploads, newest first.
func (uc *ListUploadsUseCase) Execute(ctx context.Context, sessionID uuid.UUID) ([]*entity.Upload, error) {
	if _, err := uc.manager.Get(sessionID); err != nil {
		return nil, err
	}

	uploads, err := uc.uploadRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}
	return uploads, nil
}
