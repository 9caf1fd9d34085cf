// Package aggregate derives dashboard and budget figures from an expense
// snapshot. Every function recomputes from the full collection; Engine adds
// memoization keyed on the store version for callers that query repeatedly.
package aggregate

import (
	"strings"
	"time"

	"bizexpense/internal/core"
)

// TotalByCategory sums amounts per category, in category display order,
// leaving out categories whose sum is zero.
func TotalByCategory(expenses []core.Expense) []core.CategoryAmount {
	sums := make(map[core.Category]core.Money)
	for _, e := range expenses {
		sums[e.Category] = sums[e.Category].Add(e.Amount)
	}
	out := make([]core.CategoryAmount, 0, len(sums))
	for _, c := range core.Categories() {
		if s := sums[c]; !s.IsZero() {
			out = append(out, core.CategoryAmount{Category: c, Amount: s})
		}
	}
	return out
}

// MonthlySeries returns January..December totals for year.
func MonthlySeries(expenses []core.Expense, year int) core.MonthlySeries {
	var series core.MonthlySeries
	for _, e := range expenses {
		if e.Date.Year() == year {
			m := e.Date.Month() - 1
			series[m] = series[m].Add(e.Amount)
		}
	}
	return series
}

// CurrentMonthTotal sums expenses dated in now's month and year.
func CurrentMonthTotal(expenses []core.Expense, now time.Time) core.Money {
	return MonthTotal(expenses, int(now.Month()), now.Year())
}

// MonthTotal sums expenses dated in the given month (1-12) and year.
func MonthTotal(expenses []core.Expense, month, year int) core.Money {
	var total core.Money
	for _, e := range expenses {
		if e.Date.InMonth(month, year) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// GrandTotal sums every expense.
func GrandTotal(expenses []core.Expense) core.Money {
	var total core.Money
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// TotalBudget sums every category ceiling.
func TotalBudget(budgets []core.Budget) core.Money {
	var total core.Money
	for _, b := range budgets {
		total = total.Add(b.Amount)
	}
	return total
}

// BudgetUtilization is spent as a percentage of budget; 0 when budget is not
// positive. Results above 100 mean the budget is overrun.
func BudgetUtilization(spent, budget core.Money) float64 {
	if budget.Cents <= 0 {
		return 0
	}
	return float64(spent.Cents) / float64(budget.Cents) * 100
}

// CategorySpent sums one category's expenses in the given month and year.
func CategorySpent(expenses []core.Expense, c core.Category, month, year int) core.Money {
	var total core.Money
	for _, e := range expenses {
		if e.Category == c && e.Date.InMonth(month, year) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

func IsOverBudget(spent, ceiling core.Money) bool {
	return spent.Cents > ceiling.Cents
}

// OverrunAmount is max(0, spent-ceiling).
func OverrunAmount(spent, ceiling core.Money) core.Money {
	if !IsOverBudget(spent, ceiling) {
		return core.Money{}
	}
	return spent.Sub(ceiling)
}

// BudgetStatus compares each budget against its category's spend in now's month.
func BudgetStatus(expenses []core.Expense, budgets []core.Budget, now time.Time) []core.BudgetLine {
	month, year := int(now.Month()), now.Year()
	lines := make([]core.BudgetLine, 0, len(budgets))
	for _, b := range budgets {
		spent := CategorySpent(expenses, b.Category, month, year)
		lines = append(lines, core.BudgetLine{
			Category: b.Category,
			Ceiling:  b.Amount,
			Spent:    spent,
			Percent:  BudgetUtilization(spent, b.Amount),
			Over:     IsOverBudget(spent, b.Amount),
			Overrun:  OverrunAmount(spent, b.Amount),
		})
	}
	return lines
}

// PeriodLabel renders now's month as the dashboard tag, e.g. "OCT 2026".
func PeriodLabel(now time.Time) string {
	return strings.ToUpper(now.Format("Jan 2006"))
}

// Summarize computes the whole dashboard for one snapshot.
func Summarize(expenses []core.Expense, budgets []core.Budget, now time.Time) core.Summary {
	monthTotal := CurrentMonthTotal(expenses, now)
	totalBudget := TotalBudget(budgets)
	return core.Summary{
		CategoryTotals: TotalByCategory(expenses),
		Year:           now.Year(),
		Monthly:        MonthlySeries(expenses, now.Year()),
		Stats: core.Stats{
			Period:      PeriodLabel(now),
			MonthTotal:  monthTotal,
			GrandTotal:  GrandTotal(expenses),
			Count:       len(expenses),
			TotalBudget: totalBudget,
			Utilization: BudgetUtilization(monthTotal, totalBudget),
		},
	}
}
