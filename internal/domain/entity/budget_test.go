package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// sampleBudget mirrors a typical household budget:
//
//	income:   Salary 6000
//	expenses: Housing 1500 (Rent, Renter's Insurance inherited)
//	          Groceries 400
//	          Transport inherited (Fuel 120, Parking 30)
//	          Misc inherited, no children
func sampleBudget() *Budget {
	return NewBudget(
		[]*Category{NewCategory("Salary", d("6000"))},
		[]*Category{
			NewCategory("Housing", d("1500"),
				NewInheritedCategory("Rent"),
				NewInheritedCategory("Renter's Insurance"),
			),
			NewCategory("Groceries", d("400")),
			NewInheritedCategory("Transport",
				NewCategory("Fuel", d("120")),
				NewCategory("Parking", d("30")),
			),
			NewInheritedCategory("Misc"),
		},
	)
}

func TestCategory_TotalAmount(t *testing.T) {
	tests := []struct {
		name     string
		category *Category
		want     string
	}{
		{
			name:     "explicit amount ignores children",
			category: NewCategory("Housing", d("1500"), NewCategory("Rent", d("9999"))),
			want:     "1500",
		},
		{
			name: "inherited sums children recursively",
			category: NewInheritedCategory("Transport",
				NewCategory("Fuel", d("120")),
				NewInheritedCategory("Transit",
					NewCategory("Bus", d("40.5")),
					NewCategory("Train", d("9.5")),
				),
			),
			want: "170",
		},
		{
			name:     "inherited leaf is zero",
			category: NewInheritedCategory("Misc"),
			want:     "0",
		},
		{
			name:     "explicit zero is not inherited",
			category: NewCategory("Gifts", decimal.Zero),
			want:     "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.category.TotalAmount().Equal(d(tt.want)), "got %s", tt.category.TotalAmount())
		})
	}

	assert.False(t, NewCategory("Gifts", decimal.Zero).IsInherited())
}

func TestCategory_GetSubcategory(t *testing.T) {
	tree := NewInheritedCategory("Transport",
		NewInheritedCategory("Transit", NewCategory("Bus", d("40"))),
	)

	child, ok := tree.GetSubcategory("Transit")
	require.True(t, ok)
	assert.Equal(t, "Transit", child.Name)

	_, ok = tree.GetSubcategory("Bus")
	assert.False(t, ok, "grandchildren must not be found")

	_, ok = tree.GetSubcategory("transit")
	assert.False(t, ok, "lookup is case sensitive")
}

func TestCategory_CloneIsDeep(t *testing.T) {
	original := NewCategory("Housing", d("1500"), NewCategory("Rent", d("1200")))
	clone := original.Clone()

	clone.SetAmount(d("1"))
	clone.Children[0].ClearAmount()

	assert.True(t, original.Amount.Equal(d("1500")))
	require.NotNil(t, original.Children[0].Amount)
	assert.True(t, original.Children[0].Amount.Equal(d("1200")))
}

func TestBudget_Totals(t *testing.T) {
	budget := sampleBudget()

	assert.True(t, budget.TotalIncome().Equal(d("6000")))
	assert.True(t, budget.TotalExpenses().Equal(d("2050")))
	assert.True(t, budget.NetBudget().Equal(budget.TotalIncome().Sub(budget.TotalExpenses())))
}

func TestBudget_TotalsDoNotDoubleCount(t *testing.T) {
	budget := NewBudget(nil, []*Category{
		NewCategory("Housing", d("1500"),
			NewCategory("Rent", d("1200")),
			NewCategory("Utilities", d("200")),
		),
	})

	assert.True(t, budget.TotalExpenses().Equal(d("1500")))
	assert.Len(t, budget.GetExpenseCategories(), 3)
}

func TestBudget_LookupBudgetCategory(t *testing.T) {
	budget := sampleBudget()

	tests := []struct {
		name  string
		want  string
		found bool
	}{
		{name: "Housing", want: "Housing", found: true},
		{name: "Renter's Insurance", want: "Housing", found: true},
		{name: "Rent", want: "Housing", found: true},
		{name: "Fuel", want: "Fuel", found: true},
		{name: "Transport", found: false},
		{name: "Misc", found: false},
		{name: "Unknown", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := budget.LookupBudgetCategory(tt.name)
			require.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, got.Name)
			}
		})
	}
}

func TestBudget_IndexesRebuiltOnlyOnDemand(t *testing.T) {
	budget := sampleBudget()
	transport, ok := budget.GetCategory("Transport")
	require.True(t, ok)

	transport.SetAmount(d("200"))
	transport.Children[0].ClearAmount()

	got, ok := budget.LookupBudgetCategory("Fuel")
	require.True(t, ok)
	assert.Equal(t, "Fuel", got.Name, "index is stale until rebuilt")

	budget.RebuildIndexes()

	got, ok = budget.LookupBudgetCategory("Fuel")
	require.True(t, ok)
	assert.Equal(t, "Transport", got.Name)
}

func TestBudget_GetCategoriesOrder(t *testing.T) {
	budget := sampleBudget()

	var names []string
	for _, c := range budget.GetExpenseCategories() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Housing", "Groceries", "Fuel", "Parking"}, names)

	income := budget.GetIncomeCategories()
	require.Len(t, income, 1)
	assert.Equal(t, "Salary", income[0].Name)
}

func TestBudget_TopLevelLookups(t *testing.T) {
	budget := sampleBudget()

	housing, ok := budget.GetExpenseCategory("Housing")
	require.True(t, ok)
	assert.True(t, housing.Amount.Equal(d("1500")))

	_, ok = budget.GetExpenseCategory("Fuel")
	assert.False(t, ok)

	_, ok = budget.GetIncomeCategory("Housing")
	assert.False(t, ok)
}

func TestBudget_TypeOf(t *testing.T) {
	budget := sampleBudget()

	kind, ok := budget.TypeOf("Salary")
	require.True(t, ok)
	assert.Equal(t, CategoryTypeIncome, kind)

	kind, ok = budget.TypeOf("Parking")
	require.True(t, ok)
	assert.Equal(t, CategoryTypeExpense, kind)

	_, ok = budget.TypeOf("Nope")
	assert.False(t, ok)
}

func TestBudget_CloneIsIndependent(t *testing.T) {
	live := sampleBudget()
	working := live.Clone()

	groceries, ok := working.GetCategory("Groceries")
	require.True(t, ok)
	groceries.SetAmount(d("999"))

	liveGroceries, _ := live.GetCategory("Groceries")
	assert.True(t, liveGroceries.Amount.Equal(d("400")))
	assert.True(t, working.TotalExpenses().Equal(d("2649")))
}

func TestDuplicateNames(t *testing.T) {
	income := []*Category{NewCategory("Salary", d("1"))}
	expenses := []*Category{
		NewInheritedCategory("Food", NewCategory("Salary", d("2"))),
		NewCategory("Food", d("3")),
		NewCategory("Salary", d("4")),
	}

	assert.Equal(t, []string{"Salary", "Food"}, DuplicateNames(income, expenses))
	assert.Empty(t, DuplicateNames(sampleBudget().Income, sampleBudget().Expenses))
}
