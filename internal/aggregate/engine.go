package aggregate

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"bizexpense/internal/cache"
	"bizexpense/internal/core"
)

// Engine memoizes aggregation results per snapshot version. Seeing a new
// version drops every cached entry, so a mutation can never leave a stale
// total behind.
type Engine struct {
	mu        sync.Mutex
	version   uint64
	spent     cache.Cache[core.Money]
	summaries cache.Cache[core.Summary]
}

func NewEngine(size int) *Engine {
	return &Engine{
		spent:     cache.NewLRUCache[core.Money](size, 0),
		summaries: cache.NewLRUCache[core.Summary](size, 0),
	}
}

func (g *Engine) observe(version uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if version != g.version {
		g.spent.Purge()
		g.summaries.Purge()
		g.version = version
	}
}

// CategorySpent is the memoized form of the package-level CategorySpent.
func (g *Engine) CategorySpent(s core.Snapshot, c core.Category, month, year int) core.Money {
	g.observe(s.Version)
	key := fmt.Sprintf("%d|%s|%d|%d", s.Version, c, year, month)
	if v, ok := g.spent.Get(key); ok {
		return v
	}
	v := CategorySpent(s.Expenses, c, month, year)
	g.spent.Set(key, v)
	return v
}

// Summarize is the memoized form of the package-level Summarize. Results are
// keyed by calendar day, so "now" only matters down to the date. The returned
// summary never shares its category slice with the memo.
func (g *Engine) Summarize(s core.Snapshot, now time.Time) core.Summary {
	g.observe(s.Version)
	key := fmt.Sprintf("%d|%s", s.Version, now.Format(core.DateLayout))
	if v, ok := g.summaries.Get(key); ok {
		v.CategoryTotals = slices.Clone(v.CategoryTotals)
		return v
	}
	v := Summarize(s.Expenses, s.Budgets, now)
	g.summaries.Set(key, v)
	v.CategoryTotals = slices.Clone(v.CategoryTotals)
	return v
}

// BudgetStatus builds budget lines from memoized per-category spend.
func (g *Engine) BudgetStatus(s core.Snapshot, now time.Time) []core.BudgetLine {
	month, year := int(now.Month()), now.Year()
	lines := make([]core.BudgetLine, 0, len(s.Budgets))
	for _, b := range s.Budgets {
		spent := g.CategorySpent(s, b.Category, month, year)
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

// Cached reports how many results are currently memoized.
func (g *Engine) Cached() int {
	return g.spent.Size() + g.summaries.Size()
}
