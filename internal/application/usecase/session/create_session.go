package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/budget-dashboard/backend/internal/application/adapter"
)

// CreateSessionOutput represents the output of session creation.
type CreateSessionOutput struct {
	SessionID uuid.UUID
	Token     string
	ExpiresAt time.Time
}

// CreateSessionUseCase starts a session and issues its bearer token.
type CreateSessionUseCase struct {
	manager      *Manager
	tokenService adapter.TokenService
}

// NewCreateSessionUseCase creates a new CreateSessionUseCase instance.
func NewCreateSessionUseCase(manager *Manager, tokenService adapter.TokenService) *CreateSessionUseCase {
	return &CreateSessionUseCase{
		manager:      manager,
		tokenService: tokenService,
	}
}

// Execute performs the session creation.
func (uc *CreateSessionUseCase) Execute(ctx context.Context) (*CreateSessionOutput, error) {
	s := uc.manager.Create()

	token, err := uc.tokenService.GenerateSessionToken(ctx, s.ID)
	if err != nil {
		_ = uc.manager.Delete(s.ID)
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	return &CreateSessionOutput{
		SessionID: s.ID,
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
	}, nil
}
