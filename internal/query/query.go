// Package query filters and orders expense lists for display and export.
package query

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"bizexpense/internal/core"
)

// All is the filter sentinel that matches every category or payment method.
const All = "All"

type (
	Field string
	Order string
)

const (
	ByDate          Field = "date"
	ByAmount        Field = "amount"
	ByCategory      Field = "category"
	ByDescription   Field = "description"
	ByPaymentMethod Field = "paymentMethod"
)

const (
	Ascending  Order = "asc"
	Descending Order = "desc"
)

// Filter selects expenses. Empty Category or PaymentMethod, like All, match everything.
type Filter struct {
	SearchText    string
	Category      string
	PaymentMethod string
}

// Sort names the ordering field and direction.
type Sort struct {
	Field Field
	Order Order
}

// DefaultSort is most recent first.
var DefaultSort = Sort{Field: ByDate, Order: Descending}

func ParseField(s string) (Field, error) {
	switch f := Field(s); f {
	case ByDate, ByAmount, ByCategory, ByDescription, ByPaymentMethod:
		return f, nil
	}
	return "", fmt.Errorf("unknown sort field %q", s)
}

func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.ToLower(s)); o {
	case Ascending, Descending:
		return o, nil
	}
	return "", fmt.Errorf("unknown sort order %q", s)
}

// Validate rejects category and payment method values outside the fixed sets.
func (f Filter) Validate() error {
	if f.Category != "" && f.Category != All {
		if _, err := core.ParseCategory(f.Category); err != nil {
			return err
		}
	}
	if f.PaymentMethod != "" && f.PaymentMethod != All {
		if _, err := core.ParsePaymentMethod(f.PaymentMethod); err != nil {
			return err
		}
	}
	return nil
}

// Matches reports whether e passes all three predicates.
func (f Filter) Matches(e core.Expense) bool {
	if f.SearchText != "" && !strings.Contains(strings.ToLower(e.Description), strings.ToLower(f.SearchText)) {
		return false
	}
	if f.Category != "" && f.Category != All && string(e.Category) != f.Category {
		return false
	}
	if f.PaymentMethod != "" && f.PaymentMethod != All && string(e.PaymentMethod) != f.PaymentMethod {
		return false
	}
	return true
}

// Toggle returns the sort after a click on field's column header: the same
// field flips direction, a new field starts descending.
func (s Sort) Toggle(field Field) Sort {
	if s.Field == field {
		if s.Order == Ascending {
			return Sort{Field: field, Order: Descending}
		}
		return Sort{Field: field, Order: Ascending}
	}
	return Sort{Field: field, Order: Descending}
}

// FilterExpenses returns a new slice holding the matching expenses in their
// original relative order.
func FilterExpenses(expenses []core.Expense, f Filter) []core.Expense {
	out := make([]core.Expense, 0, len(expenses))
	for _, e := range expenses {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// SortExpenses returns a stably sorted copy of expenses.
func SortExpenses(expenses []core.Expense, s Sort) []core.Expense {
	out := slices.Clone(expenses)
	compare := comparator(s.Field)
	slices.SortStableFunc(out, func(a, b core.Expense) int {
		if s.Order == Descending {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return out
}

// Apply filters then sorts; this is the list shown to the user and exported.
func Apply(expenses []core.Expense, f Filter, s Sort) []core.Expense {
	return SortExpenses(FilterExpenses(expenses, f), s)
}

func comparator(field Field) func(a, b core.Expense) int {
	switch field {
	case ByAmount:
		return func(a, b core.Expense) int { return cmp.Compare(a.Amount.Cents, b.Amount.Cents) }
	case ByCategory:
		return func(a, b core.Expense) int { return cmp.Compare(a.Category, b.Category) }
	case ByDescription:
		return func(a, b core.Expense) int { return cmp.Compare(a.Description, b.Description) }
	case ByPaymentMethod:
		return func(a, b core.Expense) int { return cmp.Compare(a.PaymentMethod, b.PaymentMethod) }
	default:
		return func(a, b core.Expense) int { return a.Date.Compare(b.Date.Time) }
	}
}
