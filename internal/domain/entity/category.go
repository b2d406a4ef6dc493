// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/shopspring/decimal"
)

// InheritedAmountLiteral is the document token for an amount derived from children.
const InheritedAmountLiteral = "INHERITED"

// CategoryType represents which forest of a budget a category belongs to.
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// Category represents a budget line item in the Budget Dashboard system.
// A nil Amount means the amount is inherited from the sum of the children; it is
// never the same thing as zero.
type Category struct {
	Name     string
	Amount   *decimal.Decimal
	Children []*Category
}

// NewCategory creates a category with an explicit amount.
func NewCategory(name string, amount decimal.Decimal, children ...*Category) *Category {
	return &Category{
		Name:     name,
		Amount:   &amount,
		Children: children,
	}
}

// NewInheritedCategory creates a category whose amount is the sum of its children.
func NewInheritedCategory(name string, children ...*Category) *Category {
	return &Category{
		Name:     name,
		Children: children,
	}
}

// IsInherited reports whether the category derives its amount from its children.
func (c *Category) IsInherited() bool {
	return c.Amount == nil
}

// HasAmount reports whether the category is a budget category.
func (c *Category) HasAmount() bool {
	return c.Amount != nil
}

// SetAmount sets an explicit amount.
func (c *Category) SetAmount(amount decimal.Decimal) {
	c.Amount = &amount
}

// ClearAmount marks the amount as inherited.
func (c *Category) ClearAmount() {
	c.Amount = nil
}

// TotalAmount returns the explicit amount when set, otherwise the recursive sum of
// the children's totals. An inherited leaf totals zero.
func (c *Category) TotalAmount() decimal.Decimal {
	if c.Amount != nil {
		return *c.Amount
	}
	total := decimal.Zero
	for _, child := range c.Children {
		total = total.Add(child.TotalAmount())
	}
	return total
}

// GetSubcategory looks up a direct child by exact name. Grandchildren are not searched.
func (c *Category) GetSubcategory(name string) (*Category, bool) {
	for _, child := range c.Children {
		if child.Name == name {
			return child, true
		}
	}
	return nil, false
}

// Clone returns a structural deep copy of the category and its subtree.
func (c *Category) Clone() *Category {
	clone := &Category{Name: c.Name}
	if c.Amount != nil {
		amount := *c.Amount
		clone.Amount = &amount
	}
	if c.Children != nil {
		clone.Children = make([]*Category, len(c.Children))
		for i, child := range c.Children {
			clone.Children[i] = child.Clone()
		}
	}
	return clone
}

// Walk visits the category and its descendants depth-first, parent before children.
// Returning false from fn skips the node's subtree.
func (c *Category) Walk(depth int, fn func(node *Category, depth int) bool) {
	if !fn(c, depth) {
		return
	}
	for _, child := range c.Children {
		child.Walk(depth+1, fn)
	}
}
