package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bizexpense/internal/core"
)

func TestEngineMemoizesPerVersion(t *testing.T) {
	g := NewEngine(32)
	now := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	snap := core.Snapshot{
		Expenses: []core.Expense{expense("2024-03-05", 500, core.Travel)},
		Budgets:  core.DefaultBudgets(rupees(1000)),
		Version:  1,
	}

	assert.Equal(t, rupees(500), g.CategorySpent(snap, core.Travel, 3, 2024))
	first := g.Summarize(snap, now)
	assert.Equal(t, 2, g.Cached())

	// Same version: answers come from the memo even if the caller's slice changed.
	snap.Expenses = append(snap.Expenses, expense("2024-03-20", 800, core.Travel))
	assert.Equal(t, rupees(500), g.CategorySpent(snap, core.Travel, 3, 2024))
	assert.Equal(t, first, g.Summarize(snap, now))

	// New version: the whole memo is dropped and recomputed.
	snap.Version = 2
	assert.Equal(t, rupees(1300), g.CategorySpent(snap, core.Travel, 3, 2024))
	assert.Equal(t, 1, g.Cached())

	lines := g.BudgetStatus(snap, now)
	assert.True(t, lines[1].Over)
	assert.Equal(t, rupees(300), lines[1].Overrun)
	assert.Equal(t, Summarize(snap.Expenses, snap.Budgets, now), g.Summarize(snap, now))
}

func TestEngineSummarizeReturnsIndependentCopies(t *testing.T) {
	g := NewEngine(8)
	now := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	snap := core.Snapshot{
		Expenses: []core.Expense{expense("2024-03-05", 500, core.Travel)},
		Budgets:  core.DefaultBudgets(rupees(1000)),
		Version:  1,
	}

	first := g.Summarize(snap, now)
	first.CategoryTotals[0].Amount = rupees(1)

	again := g.Summarize(snap, now)
	assert.Equal(t, rupees(500), again.CategoryTotals[0].Amount)
	again.CategoryTotals[0].Category = core.Other

	assert.Equal(t, core.Travel, g.Summarize(snap, now).CategoryTotals[0].Category)
}
