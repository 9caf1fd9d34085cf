package core

// CategoryAmount represents an amount aggregated by category.
type CategoryAmount struct {
	Category Category
	Amount   Money
}

// MonthlySeries holds January..December totals for one year.
type MonthlySeries [12]Money

// Stats is the dashboard headline block.
type Stats struct {
	Period      string // e.g. "OCT 2026"
	MonthTotal  Money
	GrandTotal  Money
	Count       int
	TotalBudget Money
	Utilization float64 // percent, unbounded above 100
}

// Summary is everything the dashboard derives from one snapshot.
type Summary struct {
	CategoryTotals []CategoryAmount
	Year           int
	Monthly        MonthlySeries
	Stats          Stats
}

// BudgetLine compares one category's current-month spend against its ceiling.
type BudgetLine struct {
	Category Category
	Ceiling  Money
	Spent    Money
	Percent  float64
	Over     bool
	Overrun  Money
}
