package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseDraft is the editable, uncommitted form of an expense. Nothing in it
// reaches the store until Validate succeeds and the caller commits the result.
type ExpenseDraft struct {
	Date            string
	Amount          string
	Category        Category
	Description     string
	PaymentMethod   PaymentMethod
	IsTaxDeductible bool
	ReceiptImage    string
}

// NewExpenseDraft returns a blank draft dated today with the first category
// and payment method preselected.
func NewExpenseDraft(today time.Time) ExpenseDraft {
	return ExpenseDraft{
		Date:          DateOf(today).String(),
		Category:      categories[0],
		PaymentMethod: paymentMethods[0],
	}
}

// DraftFromExpense starts an edit session from a committed expense.
func DraftFromExpense(e Expense) ExpenseDraft {
	return ExpenseDraft{
		Date:            e.Date.String(),
		Amount:          e.Amount.String(),
		Category:        e.Category,
		Description:     e.Description,
		PaymentMethod:   e.PaymentMethod,
		IsTaxDeductible: e.IsTaxDeductible,
		ReceiptImage:    e.ReceiptImage,
	}
}

// Validate checks every field and, on success, returns the expense the draft
// describes with an empty ID. On failure it returns a *ValidationError holding
// one message per offending field.
func (d ExpenseDraft) Validate() (Expense, error) {
	fields := map[string]string{}

	date, err := ParseDate(d.Date)
	if err != nil || date.Validate() != nil {
		fields[FieldDate] = "Date is required"
	}
	amount, err := ParseMoney(d.Amount)
	if err != nil {
		fields[FieldAmount] = "Valid amount is required"
	}
	if strings.TrimSpace(d.Description) == "" {
		fields[FieldDescription] = "Description is required"
	}
	if len(fields) > 0 {
		return Expense{}, &ValidationError{Fields: fields}
	}

	e := Expense{
		Date:            date,
		Amount:          amount,
		Category:        d.Category,
		Description:     d.Description,
		PaymentMethod:   d.PaymentMethod,
		IsTaxDeductible: d.IsTaxDeductible,
		ReceiptImage:    d.ReceiptImage,
	}
	if err := e.Validate(); err != nil {
		return Expense{}, err
	}
	return e, nil
}

// BudgetDraft is a discardable working copy of the committed budget set.
type BudgetDraft struct {
	amounts map[Category]Money
}

// NewBudgetDraft copies budgets into a fresh working set.
func NewBudgetDraft(budgets []Budget) *BudgetDraft {
	d := &BudgetDraft{amounts: make(map[Category]Money, len(categories))}
	for _, b := range budgets {
		d.amounts[b.Category] = b.Amount
	}
	return d
}

// Set changes the working ceiling of one category.
func (d *BudgetDraft) Set(c Category, amount Money) error {
	if !c.Valid() {
		return ErrInvalidCategory
	}
	if amount.Cents < 0 {
		return ErrInvalidAmount
	}
	d.amounts[c] = amount
	return nil
}

// SetInput applies a free-text ceiling the way the budget form does: anything
// that does not parse as a positive number within MaxCents counts as zero.
func (d *BudgetDraft) SetInput(c Category, value string) error {
	amount := Money{}
	if v, err := decimal.NewFromString(strings.TrimSpace(value)); err == nil && v.Sign() > 0 {
		if cents, ok := centsFromDecimal(v); ok {
			amount = Money{Cents: cents}
		}
	}
	return d.Set(c, amount)
}

// Amount returns the working ceiling for c.
func (d *BudgetDraft) Amount(c Category) Money {
	return d.amounts[c]
}

// Budgets returns the working set in category order, ready for commit.
func (d *BudgetDraft) Budgets() []Budget {
	out := make([]Budget, 0, len(d.amounts))
	for _, c := range categories {
		if amount, ok := d.amounts[c]; ok {
			out = append(out, Budget{Category: c, Amount: amount})
		}
	}
	return out
}
