package entity

import (
	"github.com/shopspring/decimal"
)

// Budget holds the income and expense category forests plus two lookup indexes
// derived from them. The indexes are not maintained incrementally: callers must
// invoke RebuildIndexes after loading or after any batch of amount edits.
type Budget struct {
	Income   []*Category
	Expenses []*Category

	nameToNode           map[string]*Category
	nameToBudgetCategory map[string]*Category
}

// NewBudget creates a budget from the two forests and builds its indexes.
func NewBudget(income, expenses []*Category) *Budget {
	b := &Budget{
		Income:   income,
		Expenses: expenses,
	}
	b.RebuildIndexes()
	return b
}

// RebuildIndexes recomputes the name-to-node index and the name-to-budget-category
// index with a single top-down walk of both forests.
func (b *Budget) RebuildIndexes() {
	b.nameToNode = make(map[string]*Category)
	b.nameToBudgetCategory = make(map[string]*Category)

	for _, forest := range [][]*Category{b.Income, b.Expenses} {
		for _, root := range forest {
			b.indexNode(root, nil)
		}
	}
}

func (b *Budget) indexNode(node *Category, current *Category) {
	b.nameToNode[node.Name] = node
	if node.HasAmount() {
		current = node
	}
	if current != nil {
		b.nameToBudgetCategory[node.Name] = current
	} else {
		delete(b.nameToBudgetCategory, node.Name)
	}
	for _, child := range node.Children {
		b.indexNode(child, current)
	}
}

// LookupBudgetCategory returns the nearest ancestor-or-self of the named node that
// carries an amount. It reports false when the name is unknown or no node on its
// path has an amount.
func (b *Budget) LookupBudgetCategory(name string) (*Category, bool) {
	category, ok := b.nameToBudgetCategory[name]
	return category, ok
}

// GetCategory returns the node with the given name at any depth.
func (b *Budget) GetCategory(name string) (*Category, bool) {
	category, ok := b.nameToNode[name]
	return category, ok
}

// GetIncomeCategory looks up a top-level income category by name.
func (b *Budget) GetIncomeCategory(name string) (*Category, bool) {
	return findRoot(b.Income, name)
}

// GetExpenseCategory looks up a top-level expense category by name.
func (b *Budget) GetExpenseCategory(name string) (*Category, bool) {
	return findRoot(b.Expenses, name)
}

func findRoot(forest []*Category, name string) (*Category, bool) {
	for _, root := range forest {
		if root.Name == name {
			return root, true
		}
	}
	return nil, false
}

// GetIncomeCategories returns every income node that carries an amount, depth-first.
func (b *Budget) GetIncomeCategories() []*Category {
	return collectBudgetCategories(b.Income)
}

// GetExpenseCategories returns every expense node that carries an amount, depth-first.
func (b *Budget) GetExpenseCategories() []*Category {
	return collectBudgetCategories(b.Expenses)
}

func collectBudgetCategories(forest []*Category) []*Category {
	result := make([]*Category, 0)
	for _, root := range forest {
		root.Walk(0, func(node *Category, _ int) bool {
			if node.HasAmount() {
				result = append(result, node)
			}
			return true
		})
	}
	return result
}

// TotalIncome sums the outermost amount-bearing income nodes.
func (b *Budget) TotalIncome() decimal.Decimal {
	return sumBudgeted(b.Income)
}

// TotalExpenses sums the outermost amount-bearing expense nodes.
func (b *Budget) TotalExpenses() decimal.Decimal {
	return sumBudgeted(b.Expenses)
}

// NetBudget returns TotalIncome minus TotalExpenses.
func (b *Budget) NetBudget() decimal.Decimal {
	return b.TotalIncome().Sub(b.TotalExpenses())
}

// sumBudgeted stops descending at the first node with an amount so an amount-bearing
// parent and its amount-bearing children are not counted twice.
func sumBudgeted(forest []*Category) decimal.Decimal {
	total := decimal.Zero
	for _, root := range forest {
		root.Walk(0, func(node *Category, _ int) bool {
			if node.HasAmount() {
				total = total.Add(node.TotalAmount())
				return false
			}
			return true
		})
	}
	return total
}

// TypeOf reports which forest holds the named node.
func (b *Budget) TypeOf(name string) (CategoryType, bool) {
	node, ok := b.nameToNode[name]
	if !ok {
		return "", false
	}
	for _, root := range b.Income {
		found := false
		root.Walk(0, func(n *Category, _ int) bool {
			if n == node {
				found = true
			}
			return !found
		})
		if found {
			return CategoryTypeIncome, true
		}
	}
	return CategoryTypeExpense, true
}

// Clone returns a deep copy of both forests with freshly built indexes.
func (b *Budget) Clone() *Budget {
	return NewBudget(cloneForest(b.Income), cloneForest(b.Expenses))
}

func cloneForest(forest []*Category) []*Category {
	if forest == nil {
		return nil
	}
	clone := make([]*Category, len(forest))
	for i, root := range forest {
		clone[i] = root.Clone()
	}
	return clone
}

// DuplicateNames lists category names that occur more than once across both forests,
// in first-seen order.
func DuplicateNames(income, expenses []*Category) []string {
	seen := make(map[string]int)
	var duplicates []string
	for _, forest := range [][]*Category{income, expenses} {
		for _, root := range forest {
			root.Walk(0, func(node *Category, _ int) bool {
				seen[node.Name]++
				if seen[node.Name] == 2 {
					duplicates = append(duplicates, node.Name)
				}
				return true
			})
		}
	}
	return duplicates
}
