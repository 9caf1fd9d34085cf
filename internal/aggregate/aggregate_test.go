package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizexpense/internal/core"
)

func rupees(f float64) core.Money {
	m, err := core.MoneyFromFloat(f)
	if err != nil {
		panic(err)
	}
	return m
}

func expense(date string, amount float64, c core.Category) core.Expense {
	d, err := core.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return core.Expense{Date: d, Amount: rupees(amount), Category: c, Description: "x", PaymentMethod: core.Cash}
}

func TestCategorySpentOverrunScenario(t *testing.T) {
	expenses := []core.Expense{
		expense("2024-03-05", 500, core.Travel),
		expense("2024-03-20", 800, core.Travel),
	}
	ceiling := rupees(1000)

	spent := CategorySpent(expenses, core.Travel, 3, 2024)
	assert.Equal(t, rupees(1300), spent)
	assert.True(t, IsOverBudget(spent, ceiling))
	assert.Equal(t, rupees(300), OverrunAmount(spent, ceiling))

	assert.False(t, IsOverBudget(ceiling, ceiling))
	assert.True(t, OverrunAmount(rupees(10), ceiling).IsZero())
}

func TestMonthlySeriesSingleJanuaryExpense(t *testing.T) {
	series := MonthlySeries([]core.Expense{expense("2025-01-14", 250, core.Meals)}, 2025)

	want := core.MonthlySeries{}
	want[0] = rupees(250)
	assert.Equal(t, want, series)

	assert.Equal(t, core.MonthlySeries{}, MonthlySeries([]core.Expense{expense("2025-01-14", 250, core.Meals)}, 2024))
}

func TestTotalByCategoryOmitsZeroAndKeepsOrder(t *testing.T) {
	totals := TotalByCategory([]core.Expense{
		expense("2024-02-01", 10, core.Other),
		expense("2024-02-01", 20, core.Travel),
		expense("2023-07-01", 5, core.Travel),
	})
	require.Len(t, totals, 2)
	assert.Equal(t, core.CategoryAmount{Category: core.Travel, Amount: rupees(25)}, totals[0])
	assert.Equal(t, core.CategoryAmount{Category: core.Other, Amount: rupees(10)}, totals[1])

	assert.Empty(t, TotalByCategory(nil))
}

func TestAggregationIsTotalPreserving(t *testing.T) {
	expenses := []core.Expense{
		expense("2023-12-31", 19.99, core.Software),
		expense("2024-01-01", 100, core.Software),
		expense("2024-01-15", 42.5, core.Meals),
		expense("2024-06-30", 7, core.Training),
		expense("2025-02-28", 1200, core.Salaries),
	}

	var byCategory core.Money
	for _, ca := range TotalByCategory(expenses) {
		byCategory = byCategory.Add(ca.Amount)
	}

	var byMonth core.Money
	for _, c := range core.Categories() {
		for year := 2023; year <= 2025; year++ {
			for month := 1; month <= 12; month++ {
				byMonth = byMonth.Add(CategorySpent(expenses, c, month, year))
			}
		}
	}

	assert.Equal(t, GrandTotal(expenses), byCategory)
	assert.Equal(t, byCategory, byMonth)
}

func TestBudgetUtilization(t *testing.T) {
	assert.InDelta(t, 50.0, BudgetUtilization(rupees(500), rupees(1000)), 1e-9)
	assert.InDelta(t, 130.0, BudgetUtilization(rupees(1300), rupees(1000)), 1e-9)
	assert.Zero(t, BudgetUtilization(rupees(1300), core.Money{}))
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	expenses := []core.Expense{
		expense("2026-10-01", 900, core.Travel),
		expense("2026-10-14", 100, core.Meals),
		expense("2026-02-10", 50, core.Meals),
		expense("2025-10-10", 75, core.Other),
	}
	budgets := core.DefaultBudgets(rupees(1000))

	s := Summarize(expenses, budgets, now)

	assert.Equal(t, "OCT 2026", s.Stats.Period)
	assert.Equal(t, rupees(1000), s.Stats.MonthTotal)
	assert.Equal(t, rupees(1125), s.Stats.GrandTotal)
	assert.Equal(t, 4, s.Stats.Count)
	assert.Equal(t, rupees(9000), s.Stats.TotalBudget)
	assert.InDelta(t, 1000.0/9000.0*100, s.Stats.Utilization, 1e-9)
	assert.Equal(t, 2026, s.Year)
	assert.Equal(t, rupees(1000), s.Monthly[9])
	assert.Equal(t, rupees(50), s.Monthly[1])
	assert.Len(t, s.CategoryTotals, 3)
}

func TestBudgetStatus(t *testing.T) {
	now := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	expenses := []core.Expense{
		expense("2024-03-05", 500, core.Travel),
		expense("2024-03-20", 800, core.Travel),
		expense("2024-02-20", 800, core.Meals),
	}
	budgets := core.DefaultBudgets(rupees(1000))

	lines := BudgetStatus(expenses, budgets, now)
	require.Len(t, lines, len(core.Categories()))

	travel := lines[1]
	assert.Equal(t, core.Travel, travel.Category)
	assert.Equal(t, rupees(1300), travel.Spent)
	assert.True(t, travel.Over)
	assert.Equal(t, rupees(300), travel.Overrun)
	assert.InDelta(t, 130.0, travel.Percent, 1e-9)

	meals := lines[2]
	assert.True(t, meals.Spent.IsZero(), "February spend must not count in March")
	assert.False(t, meals.Over)
}
