package dto

import (
	"github.com/shopspring/decimal"

	"github.com/budget-dashboard/backend/internal/application/usecase/budget"
)

// EditRequest is one change of an edit batch. Toggle flips the inherited flag;
// otherwise Amount sets an explicit amount and Inherited clears it.
type EditRequest struct {
	Category  string   `json:"category" binding:"required"`
	Amount    *float64 `json:"amount,omitempty"`
	Inherited bool     `json:"inherited,omitempty"`
	Toggle    bool     `json:"toggle,omitempty"`
}

// ApplyEditsRequest represents the request body of an edit batch.
type ApplyEditsRequest struct {
	Edits []EditRequest `json:"edits" binding:"dive"`
}

// ToEditInputs converts the request to use case inputs.
func (r ApplyEditsRequest) ToEditInputs() []budget.EditInput {
	inputs := make([]budget.EditInput, len(r.Edits))
	for i, e := range r.Edits {
		in := budget.EditInput{Category: e.Category, Inherited: e.Inherited, Toggle: e.Toggle}
		if e.Amount != nil {
			amount := decimal.NewFromFloat(*e.Amount)
			in.Amount = &amount
		}
		inputs[i] = in
	}
	return inputs
}

// EditorRowResponse represents one row of the budget editor.
type EditorRowResponse struct {
	ID         string   `json:"id"`
	ParentID   string   `json:"parent_id,omitempty"`
	Level      int      `json:"level"`
	IsIncome   bool     `json:"is_income"`
	IsTopLevel bool     `json:"is_top_level"`
	Category   string   `json:"category"`
	Inherited  bool     `json:"inherited"`
	Amount     *float64 `json:"amount"`
	Total      float64  `json:"total"`
}

// EditorResponse represents the editor view of the working copy.
type EditorResponse struct {
	State         string              `json:"state"`
	BudgetVersion int                 `json:"budget_version"`
	Changed       bool                `json:"changed"`
	TotalIncome   float64             `json:"total_income"`
	TotalExpenses float64             `json:"total_expenses"`
	NetBudget     float64             `json:"net_budget"`
	Rows          []EditorRowResponse `json:"rows"`
}

// ToEditorResponse converts an EditorOutput to its DTO.
func ToEditorResponse(output *budget.EditorOutput) EditorResponse {
	response := EditorResponse{
		State:         string(output.State),
		BudgetVersion: output.BudgetVersion,
		Changed:       output.Changed,
		TotalIncome:   money(output.TotalIncome),
		TotalExpenses: money(output.TotalExpenses),
		NetBudget:     money(output.NetBudget),
		Rows:          make([]EditorRowResponse, len(output.Rows)),
	}
	for i, r := range output.Rows {
		response.Rows[i] = EditorRowResponse{
			ID:         r.ID,
			ParentID:   r.ParentID,
			Level:      r.Level,
			IsIncome:   r.IsIncome,
			IsTopLevel: r.IsTopLevel,
			Category:   r.Category,
			Inherited:  r.Inherited,
			Amount:     optionalMoney(r.Amount),
			Total:      money(r.Total),
		}
	}
	return response
}
