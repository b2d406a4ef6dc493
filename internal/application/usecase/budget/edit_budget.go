package budget

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-dashboard/backend/internal/application/usecase/session"
	"github.com/budget-dashboard/backend/internal/domain/entity"
)

// EditorOutput is the working copy as seen by the editor.
type EditorOutput struct {
	State         entity.EditorState
	BudgetVersion int
	Rows          []entity.EditorRow
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	NetBudget     decimal.Decimal
	Changed       bool
}

func editorOutput(s *session.Session, editor *entity.BudgetEditor, changed bool) *EditorOutput {
	working := editor.Working()
	return &EditorOutput{
		State:         editor.State(),
		BudgetVersion: s.Snapshot().BudgetVersion,
		Rows:          editor.Rows(),
		TotalIncome:   working.TotalIncome(),
		TotalExpenses: working.TotalExpenses(),
		NetBudget:     working.NetBudget(),
		Changed:       changed,
	}
}

// GetEditorUseCase returns the editor rows of the working copy.
type GetEditorUseCase struct {
	manager *session.Manager
}

// NewGetEditorUseCase creates a new GetEditorUseCase instance.
func NewGetEditorUseCase(manager *session.Manager) *GetEditorUseCase {
	return &GetEditorUseCase{manager: manager}
}

// Execute returns the editor view.
func (uc *GetEditorUseCase) Execute(ctx context.Context, sessionID uuid.UUID) (*EditorOutput, error) {
	s, err := uc.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.Lock()
	defer s.Unlock()

	editor, err := s.Editor()
	if err != nil {
		return nil, err
	}
	return editorOutput(s, editor, false), nil
}

// EditInput is one requested change. Toggle flips the inherited flag and ignores
// Amount and Inherited.
type EditInput struct {
	Category  string
	Amount    *decimal.Decimal
	Inherited bool
	Toggle    bool
}

// ApplyEditsInput represents the input for an edit batch.
type ApplyEditsInput struct {
	SessionID uuid.UUID
	Edits     []EditInput
}

// ApplyEditsUseCase applies a batch of edits to the working copy.
type ApplyEditsUseCase struct {
	manager *session.Manager
}

// NewApplyEditsUseCase creates a new ApplyEditsUseCase instance.
func NewApplyEditsUseCase(manager *session.Manager) *ApplyEditsUseCase {
	return &ApplyEditsUseCase{manager: manager}
}

// Execute resolves toggles against the working copy and applies the batch as one
// unit, so the working indexes are rebuilt once.
func (uc *ApplyEditsUseCase) Execute(ctx context.Context, input ApplyEditsInput) (*EditorOutput, error) {
	s, err := uc.manager.Get(input.SessionID)
	if err != nil {
		return nil, err
	}

	s.Lock()
	defer s.Unlock()

	editor, err := s.Editor()
	if err != nil {
		return nil, err
	}

	edits := make([]entity.BudgetEdit, 0, len(input.Edits))
	for _, in := range input.Edits {
		edit := entity.BudgetEdit{Name: in.Category, Amount: in.Amount, Inherited: in.Inherited}
		if in.Toggle {
			edit = toggleEdit(editor.Working(), in.Category)
		}
		edits = append(edits, edit)
	}

	changed, err := editor.ApplyEdits(edits)
	if err != nil {
		return nil, err
	}
	if changed {
		slog.Info("Budget edits applied", "session_id", s.ID, "edits", len(edits))
	}
	return editorOutput(s, editor, changed), nil
}

// toggleEdit turns a toggle into a concrete edit. Unknown names pass through so
// ApplyEdits reports them.
func toggleEdit(working *entity.Budget, name string) entity.BudgetEdit {
	category, ok := working.GetCategory(name)
	if !ok {
		return entity.BudgetEdit{Name: name, Inherited: true}
	}
	if category.IsInherited() {
		total := category.TotalAmount()
		return entity.BudgetEdit{Name: name, Amount: &total}
	}
	return entity.BudgetEdit{Name: name, Inherited: true}
}

// SaveBudgetUseCase commits the working copy.
type SaveBudgetUseCase struct {
	manager *session.Manager
}

// NewSaveBudgetUseCase creates a new SaveBudgetUseCase instance.
func NewSaveBudgetUseCase(manager *session.Manager) *SaveBudgetUseCase {
	return &SaveBudgetUseCase{manager: manager}
}

// Execute promotes the working copy to live and bumps the budget version when
// anything changed.
func (uc *SaveBudgetUseCase) Execute(ctx context.Context, sessionID uuid.UUID) (*EditorOutput, error) {
	s, err := uc.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.Lock()
	defer s.Unlock()

	wasDirty, err := s.CommitEdits()
	if err != nil {
		return nil, err
	}
	slog.Info("Budget edits saved", "session_id", s.ID, "had_changes", wasDirty)

	editor, _ := s.Editor()
	return editorOutput(s, editor, wasDirty), nil
}

// DiscardBudgetUseCase drops uncommitted edits.
type DiscardBudgetUseCase struct {
	manager *session.Manager
}

// NewDiscardBudgetUseCase creates a new DiscardBudgetUseCase instance.
func NewDiscardBudgetUseCase(manager *session.Manager) *DiscardBudgetUseCase {
	return &DiscardBudgetUseCase{manager: manager}
}

// Execute re-clones the working copy from live.
func (uc *DiscardBudgetUseCase) Execute(ctx context.Context, sessionID uuid.UUID) (*EditorOutput, error) {
	s, err := uc.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.Lock()
	defer s.Unlock()

	editor, err := s.Editor()
	if err != nil {
		return nil, err
	}

	wasDirty := editor.IsDirty()
	editor.Discard()
	if wasDirty {
		slog.Info("Budget edits discarded", "session_id", s.ID)
	}
	return editorOutput(s, editor, wasDirty), nil
}
