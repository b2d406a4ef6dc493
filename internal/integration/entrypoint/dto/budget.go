package dto

import (
	"github.com/budget-dashboard/backend/internal/application/usecase/budget"
	"github.com/budget-dashboard/backend/internal/domain/entity"
)

// ListCategoriesQuery represents the query of the budget category listing.
type ListCategoriesQuery struct {
	Type string `form:"type" binding:"omitempty,oneof=income expense"`
}

// ExportDocumentQuery represents the query of the budget document export.
type ExportDocumentQuery struct {
	Format string `form:"format"`
}

// CategoryNodeResponse represents one node of a budget tree.
type CategoryNodeResponse struct {
	Category      string                 `json:"category"`
	Amount        *float64               `json:"amount"`
	Inherited     bool                   `json:"inherited"`
	Total         float64                `json:"total"`
	Subcategories []CategoryNodeResponse `json:"subcategories,omitempty"`
}

// BudgetResponse represents the committed budget.
type BudgetResponse struct {
	BudgetVersion int                    `json:"budget_version"`
	File          *FileResponse          `json:"file,omitempty"`
	TotalIncome   float64                `json:"total_income"`
	TotalExpenses float64                `json:"total_expenses"`
	NetBudget     float64                `json:"net_budget"`
	Income        []CategoryNodeResponse `json:"income"`
	Expenses      []CategoryNodeResponse `json:"expenses"`
}

// UploadBudgetResponse represents the result of a budget upload.
type UploadBudgetResponse struct {
	Loaded bool `json:"loaded"`
	BudgetResponse
}

// BudgetCategoryResponse represents an amount-bearing category.
type BudgetCategoryResponse struct {
	Category string  `json:"category"`
	Type     string  `json:"type"`
	Amount   float64 `json:"amount"`
}

// BudgetCategoryListResponse represents the flattened budget categories.
type BudgetCategoryListResponse struct {
	Categories []BudgetCategoryResponse `json:"categories"`
}

// LookupCategoryResponse represents the budget category a name reconciles to.
type LookupCategoryResponse struct {
	Name           string  `json:"name"`
	BudgetCategory string  `json:"budget_category"`
	Type           string  `json:"type"`
	Amount         float64 `json:"amount"`
}

// ToCategoryNodeResponse converts a category tree to its DTO.
func ToCategoryNodeResponse(c *entity.Category) CategoryNodeResponse {
	node := CategoryNodeResponse{
		Category:  c.Name,
		Amount:    optionalMoney(c.Amount),
		Inherited: c.IsInherited(),
		Total:     money(c.TotalAmount()),
	}
	for _, child := range c.Children {
		node.Subcategories = append(node.Subcategories, ToCategoryNodeResponse(child))
	}
	return node
}

func toForest(forest []*entity.Category) []CategoryNodeResponse {
	out := make([]CategoryNodeResponse, len(forest))
	for i, c := range forest {
		out[i] = ToCategoryNodeResponse(c)
	}
	return out
}

// ToBudgetResponse converts a budget to a BudgetResponse DTO.
func ToBudgetResponse(b *entity.Budget, version int, file *FileResponse) BudgetResponse {
	return BudgetResponse{
		BudgetVersion: version,
		File:          file,
		TotalIncome:   money(b.TotalIncome()),
		TotalExpenses: money(b.TotalExpenses()),
		NetBudget:     money(b.NetBudget()),
		Income:        toForest(b.Income),
		Expenses:      toForest(b.Expenses),
	}
}

// ToBudgetCategoryListResponse converts budget categories to their DTO.
func ToBudgetCategoryListResponse(categories []budget.BudgetCategory) BudgetCategoryListResponse {
	response := BudgetCategoryListResponse{Categories: make([]BudgetCategoryResponse, len(categories))}
	for i, c := range categories {
		response.Categories[i] = BudgetCategoryResponse{
			Category: c.Category.Name,
			Type:     string(c.Type),
			Amount:   money(c.Category.TotalAmount()),
		}
	}
	return response
}

// ToLookupCategoryResponse converts a lookup result to its DTO.
func ToLookupCategoryResponse(output *budget.LookupCategoryOutput) LookupCategoryResponse {
	return LookupCategoryResponse{
		Name:           output.Name,
		BudgetCategory: output.BudgetCategory.Name,
		Type:           string(output.Type),
		Amount:         money(output.BudgetCategory.TotalAmount()),
	}
}
