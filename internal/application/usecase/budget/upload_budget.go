// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/budget-dashboard/backend/internal/application/adapter"
	"github.com/budget-dashboard/backend/internal/application/usecase/session"
	"github.com/budget-dashboard/backend/internal/domain/entity"
)

// UploadBudgetInput represents the input for a budget upload.
type UploadBudgetInput struct {
	SessionID uuid.UUID
	FileName  string
	Data      []byte
	Reload    bool
}

// UploadBudgetOutput represents the output of a budget upload.
type UploadBudgetOutput struct {
	Loaded        bool
	BudgetVersion int
	File          session.FileInfo
	Budget        *entity.Budget
}

// UploadBudgetUseCase loads a budget document into a session.
type UploadBudgetUseCase struct {
	manager    *session.Manager
	codec      adapter.BudgetDocumentCodec
	uploadRepo adapter.UploadRepository
}

// NewUploadBudgetUseCase creates a new UploadBudgetUseCase instance.
func NewUploadBudgetUseCase(manager *session.Manager, codec adapter.BudgetDocumentCodec, uploadRepo adapter.UploadRepository) *UploadBudgetUseCase {
	return &UploadBudgetUseCase{
		manager:    manager,
		codec:      codec,
		uploadRepo: uploadRepo,
	}
}

// Execute performs the budget upload. Uploading the file that is already loaded
// does nothing unless Reload is set. A successful load resets the editor.
func (uc *UploadBudgetUseCase) Execute(ctx context.Context, input UploadBudgetInput) (*UploadBudgetOutput, error) {
	s, err := uc.manager.Get(input.SessionID)
	if err != nil {
		return nil, err
	}

	s.Lock()
	defer s.Unlock()

	digest := session.Digest(input.Data)
	if s.IsCurrentBudget(digest) && !input.Reload {
		state := s.Snapshot()
		live, _ := s.LiveBudget()
		return &UploadBudgetOutput{
			Loaded:        false,
			BudgetVersion: state.BudgetVersion,
			File:          *state.BudgetFile,
			Budget:        live,
		}, nil
	}

	budget, err := uc.codec.Decode(input.Data)
	if err != nil {
		return nil, err
	}

	file := session.FileInfo{
		Name:     input.FileName,
		Digest:   digest,
		Size:     len(input.Data),
		LoadedAt: time.Now().UTC(),
	}
	s.SetBudget(budget, file)

	categories := len(budget.GetIncomeCategories()) + len(budget.GetExpenseCategories())
	upload := entity.NewUpload(s.ID, entity.UploadKindBudget, file.Name, digest, file.Size, categories)
	if err := uc.uploadRepo.Create(ctx, upload); err != nil {
		slog.Warn("Failed to record budget upload", "session_id", s.ID, "error", err)
	}

	slog.Info("Budget loaded",
		"session_id", s.ID,
		"file", file.Name,
		"budget_categories", categories,
		"version", s.Snapshot().BudgetVersion,
	)

	return &UploadBudgetOutput{
		Loaded:        true,
		BudgetVersion: s.Snapshot().BudgetVersion,
		File:          file,
		Budget:        budget,
	}, nil
}
