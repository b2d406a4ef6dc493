package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budget-dashboard/backend/internal/application/adapter"
	"github.com/budget-dashboard/backend/internal/application/usecase/session"
	"github.com/budget-dashboard/backend/internal/domain/entity"
	domainerror "github.com/budget-dashboard/backend/internal/domain/error"
)

// GetBudgetOutput represents the committed budget of a session.
type GetBudgetOutput struct {
	Budget        *entity.Budget
	BudgetVersion int
	File          *session.FileInfo
}

// GetBudgetUseCase returns the live budget.
type GetBudgetUseCase struct {
	manager *session.Manager
}

// NewGetBudgetUseCase creates a new GetBudgetUseCase instance.
func NewGetBudgetUseCase(manager *session.Manager) *GetBudgetUseCase {
	return &GetBudgetUseCase{manager: manager}
}

// Execute returns a clone of the live budget so callers can read it unlocked.
func (uc *GetBudgetUseCase) Execute(ctx context.Context, sessionID uuid.UUID) (*GetBudgetOutput, error) {
	s, err := uc.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.Lock()
	defer s.Unlock()

	live, err := s.LiveBudget()
	if err != nil {
		return nil, err
	}
	state := s.Snapshot()

	return &GetBudgetOutput{
		Budget:        live.Clone(),
		BudgetVersion: state.BudgetVersion,
		File:          state.BudgetFile,
	}, nil
}

// ListBudgetCategoriesInput represents the input for listing budget categories.
type ListBudgetCategoriesInput struct {
	SessionID uuid.UUID
	Type      entity.CategoryType // empty lists both
}

// BudgetCategory is an amount-bearing category with its forest.
type BudgetCategory struct {
	Category *entity.Category
	Type     entity.CategoryType
}

// ListBudgetCategoriesUseCase lists every amount-bearing category of the live budget.
type ListBudgetCategoriesUseCase struct {
	manager *session.Manager
}

// NewListBudgetCategoriesUseCase creates a new ListBudgetCategoriesUseCase instance.
func NewListBudgetCategoriesUseCase(manager *session.Manager) *ListBudgetCategoriesUseCase {
	return &ListBudgetCategoriesUseCase{manager: manager}
}

// Execute lists budget categories depth-first, income before expenses.
func (uc *ListBudgetCategoriesUseCase) Execute(ctx context.Context, input ListBudgetCategoriesInput) ([]BudgetCategory, error) {
	if input.Type != "" && input.Type != entity.CategoryTypeIncome && input.Type != entity.CategoryTypeExpense {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidCategoryType,
			fmt.Sprintf("category type must be %q or %q", entity.CategoryTypeIncome, entity.CategoryTypeExpense),
			domainerror.ErrInvalidCategoryType,
		)
	}

	s, err := uc.manager.Get(input.SessionID)
	if err != nil {
		return nil, err
	}

	s.Lock()
	defer s.Unlock()

	live, err := s.LiveBudget()
	if err != nil {
		return nil, err
	}

	result := make([]BudgetCategory, 0)
	if input.Type == "" || input.Type == entity.CategoryTypeIncome {
		for _, c := range live.GetIncomeCategories() {
			result = append(result, BudgetCategory{Category: c.Clone(), Type: entity.CategoryTypeIncome})
		}
	}
	if input.Type == "" || input.Type == entity.CategoryTypeExpense {
		for _, c := range live.GetExpenseCategories() {
			result = append(result, BudgetCategory{Category: c.Clone(), Type: entity.CategoryTypeExpense})
		}
	}
	return result, nil
}

// LookupCategoryOutput names the budget category a raw name reconciles to.
type LookupCategoryOutput struct {
	Name           string
	BudgetCategory *entity.Category
	Type           entity.CategoryType
}

// LookupCategoryUseCase resolves a name to its nearest amount-bearing ancestor-or-self.
type LookupCategoryUseCase struct {
	manager *session.Manager
}

// NewLookupCategoryUseCase creates a new LookupCategoryUseCase instance.
func NewLookupCategoryUseCase(manager *session.Manager) *LookupCategoryUseCase {
	return &LookupCategoryUseCase{manager: manager}
}

// Execute performs the lookup against the live budget.
func (uc *LookupCategoryUseCase) Execute(ctx context.Context, sessionID uuid.UUID, name string) (*LookupCategoryOutput, error) {
	s, err := uc.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.Lock()
	defer s.Unlock()

	live, err := s.LiveBudget()
	if err != nil {
		return nil, err
	}

	category, ok := live.LookupBudgetCategory(name)
	if !ok {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetCategoryNotFound,
			fmt.Sprintf("no budget category with an amount covers %q", name),
			domainerror.ErrBudgetCategoryNotFound,
		)
	}
	kind, _ := live.TypeOf(category.Name)

	return &LookupCategoryOutput{
		Name:           name,
		BudgetCategory: category.Clone(),
		Type:           kind,
	}, nil
}

// ExportBudgetOutput is a serialized budget document.
type ExportBudgetOutput struct {
	Data        []byte
	ContentType string
	FileName    string
}

// ExportBudgetUseCase writes the live budget as a YAML or JSON document.
type ExportBudgetUseCase struct {
	manager *session.Manager
	codec   adapter.BudgetDocumentCodec
}

// NewExportBudgetUseCase creates a new ExportBudgetUseCase instance.
func NewExportBudgetUseCase(manager *session.Manager, codec adapter.BudgetDocumentCodec) *ExportBudgetUseCase {
	return &ExportBudgetUseCase{
		manager: manager,
		codec:   codec,
	}
}

// Execute performs the export.
func (uc *ExportBudgetUseCase) Execute(ctx context.Context, sessionID uuid.UUID, format string) (*ExportBudgetOutput, error) {
	s, err := uc.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.Lock()
	defer s.Unlock()

	live, err := s.LiveBudget()
	if err != nil {
		return nil, err
	}

	data, contentType, err := uc.codec.Encode(live, format)
	if err != nil {
		return nil, err
	}

	ext := "yaml"
	if contentType == "application/json" {
		ext = "json"
	}
	return &ExportBudgetOutput{
		Data:        data,
		ContentType: contentType,
		FileName:    "budget." + ext,
	}, nil
}
