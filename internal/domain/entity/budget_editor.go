package entity

import (
	"fmt"

	"github.com/shopspring/decimal"

	domainerror "github.com/budget-dashboard/backend/internal/domain/error"
)

// EditorState is the commit state of a budget editor.
type EditorState string

const (
	EditorStateClean EditorState = "clean"
	EditorStateDirty EditorState = "dirty"
)

// BudgetEdit changes the amount of one existing category.
// Inherited clears the amount; otherwise Amount is required.
type BudgetEdit struct {
	Name      string
	Amount    *decimal.Decimal
	Inherited bool
}

// EditorRow is a flattened view of one category for editing.
type EditorRow struct {
	ID         string
	ParentID   string
	Level      int
	IsIncome   bool
	IsTopLevel bool
	Category   string
	Inherited  bool
	Amount     *decimal.Decimal
	Total      decimal.Decimal
}

// BudgetEditor holds the committed live budget and a working copy that receives
// edits. Only amounts and inherited flags can change; the tree shape is fixed.
type BudgetEditor struct {
	live    *Budget
	working *Budget
	state   EditorState
}

// NewBudgetEditor creates a clean editor over the given live budget.
func NewBudgetEditor(live *Budget) *BudgetEditor {
	return &BudgetEditor{
		live:    live,
		working: live.Clone(),
		state:   EditorStateClean,
	}
}

// Live returns the committed budget.
func (e *BudgetEditor) Live() *Budget {
	return e.live
}

// Working returns the working copy including uncommitted edits.
func (e *BudgetEditor) Working() *Budget {
	return e.working
}

// State returns the current editor state.
func (e *BudgetEditor) State() EditorState {
	return e.state
}

// IsDirty reports whether the working copy has uncommitted edits.
func (e *BudgetEditor) IsDirty() bool {
	return e.state == EditorStateDirty
}

// EditAmount sets an explicit amount on the named working category.
func (e *BudgetEditor) EditAmount(name string, value decimal.Decimal) (bool, error) {
	return e.ApplyEdits([]BudgetEdit{{Name: name, Amount: &value}})
}

// ToggleInherited flips the named working category between inherited and explicit.
// A category that becomes explicit starts from the total it was inheriting.
func (e *BudgetEditor) ToggleInherited(name string) (bool, error) {
	category, ok := e.working.GetCategory(name)
	if !ok {
		return false, categoryNotFound(name)
	}
	if category.IsInherited() {
		total := category.TotalAmount()
		return e.ApplyEdits([]BudgetEdit{{Name: name, Amount: &total}})
	}
	return e.ApplyEdits([]BudgetEdit{{Name: name, Inherited: true}})
}

// ApplyEdits validates the whole batch, applies it to the working copy and rebuilds
// the working indexes once. Nothing is applied if any edit is invalid. It reports
// whether any amount actually changed.
func (e *BudgetEditor) ApplyEdits(edits []BudgetEdit) (bool, error) {
	if len(edits) == 0 {
		return false, domainerror.NewBudgetError(domainerror.ErrCodeEmptyEditBatch, "edit batch is empty", domainerror.ErrInvalidBudgetAmount)
	}

	targets := make([]*Category, len(edits))
	for i, edit := range edits {
		category, ok := e.working.GetCategory(edit.Name)
		if !ok {
			return false, categoryNotFound(edit.Name)
		}
		if !edit.Inherited {
			if edit.Amount == nil {
				return false, domainerror.NewBudgetError(
					domainerror.ErrCodeInvalidEditAmount,
					fmt.Sprintf("category %q needs an amount or must be marked inherited", edit.Name),
					domainerror.ErrInvalidBudgetAmount,
				)
			}
			if edit.Amount.IsNegative() {
				return false, domainerror.NewBudgetError(
					domainerror.ErrCodeInvalidEditAmount,
					fmt.Sprintf("category %q amount must not be negative", edit.Name),
					domainerror.ErrInvalidBudgetAmount,
				)
			}
		}
		targets[i] = category
	}

	changed := false
	for i, edit := range edits {
		category := targets[i]
		switch {
		case edit.Inherited:
			if !category.IsInherited() {
				category.ClearAmount()
				changed = true
			}
		case category.IsInherited() || !category.Amount.Equal(*edit.Amount):
			category.SetAmount(*edit.Amount)
			changed = true
		}
	}

	if changed {
		e.working.RebuildIndexes()
		e.state = EditorStateDirty
	}
	return changed, nil
}

// Save promotes the working copy to live and starts a fresh working copy.
func (e *BudgetEditor) Save() {
	e.live = e.working.Clone()
	e.working = e.live.Clone()
	e.state = EditorStateClean
}

// Discard drops all uncommitted edits.
func (e *BudgetEditor) Discard() {
	e.working = e.live.Clone()
	e.state = EditorStateClean
}

// Rows flattens the working copy, income first, parents before children.
func (e *BudgetEditor) Rows() []EditorRow {
	rows := make([]EditorRow, 0)
	rows = appendRows(rows, e.working.Income, true)
	rows = appendRows(rows, e.working.Expenses, false)
	return rows
}

func appendRows(rows []EditorRow, forest []*Category, isIncome bool) []EditorRow {
	var walk func(nodes []*Category, parentID string, level int)
	walk = func(nodes []*Category, parentID string, level int) {
		for _, node := range nodes {
			id := node.Name
			if parentID != "" {
				id = parentID + "/" + node.Name
			}
			row := EditorRow{
				ID:         id,
				ParentID:   parentID,
				Level:      level,
				IsIncome:   isIncome,
				IsTopLevel: level == 0,
				Category:   node.Name,
				Inherited:  node.IsInherited(),
				Total:      node.TotalAmount(),
			}
			if node.Amount != nil {
				amount := *node.Amount
				row.Amount = &amount
			}
			rows = append(rows, row)
			walk(node.Children, id, level+1)
		}
	}
	walk(forest, "", 0)
	return rows
}

func categoryNotFound(name string) error {
	return domainerror.NewBudgetError(
		domainerror.ErrCodeBudgetCategoryNotFound,
		fmt.Sprintf("category %q not found", name),
		domainerror.ErrBudgetCategoryNotFound,
	)
}
