package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	OfficeSupplies Category = "Office Supplies"
	Travel         Category = "Travel"
	Meals          Category = "Meals"
	Marketing      Category = "Marketing"
	Utilities      Category = "Utilities"
	Salaries       Category = "Salaries"
	Software       Category = "Software"
	Training       Category = "Training"
	Other          Category = "Other"
)

const (
	CreditCard    PaymentMethod = "Credit Card"
	BankTransfer  PaymentMethod = "Bank Transfer"
	Cash          PaymentMethod = "Cash"
	Reimbursement PaymentMethod = "Reimbursement"
)

// DateLayout is the calendar-date form used in records and exports.
const DateLayout = "2006-01-02"

type (
	Category      string
	PaymentMethod string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Expense struct {
		ID              string        `json:"id"`
		Date            Date          `json:"date"`
		Amount          Money         `json:"amount"`
		Category        Category      `json:"category"`
		Description     string        `json:"description"`
		PaymentMethod   PaymentMethod `json:"paymentMethod"`
		IsTaxDeductible bool          `json:"isTaxDeductible"`
		ReceiptImage    string        `json:"receiptImage,omitempty"` // data URL, opaque to the core
	}

	Budget struct {
		Category Category `json:"category"`
		Amount   Money    `json:"amount"`
	}
)

var categories = []Category{
	OfficeSupplies, Travel, Meals, Marketing, Utilities, Salaries, Software, Training, Other,
}

var paymentMethods = []PaymentMethod{CreditCard, BankTransfer, Cash, Reimbursement}

var (
	ErrInvalidDate          = errors.New("invalid date")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrEmptyDescription     = errors.New("empty description")
	ErrInvalidCategory      = errors.New("invalid category")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// Categories returns the fixed category set in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// PaymentMethods returns the fixed payment method set in display order.
func PaymentMethods() []PaymentMethod {
	return append([]PaymentMethod(nil), paymentMethods...)
}

func ParseCategory(s string) (Category, error) {
	for _, c := range categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

func (c Category) Valid() bool {
	_, err := ParseCategory(string(c))
	return err == nil
}

func (c Category) String() string {
	return string(c)
}

func (c *Category) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for _, m := range paymentMethods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, s)
}

func (m PaymentMethod) Valid() bool {
	_, err := ParsePaymentMethod(string(m))
	return err == nil
}

func (m PaymentMethod) String() string {
	return string(m)
}

func (m *PaymentMethod) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParsePaymentMethod(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidDate)
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf drops the time-of-day of t, keeping its calendar date in t's location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// InMonth reports whether d falls in the given month (1-12) of year.
func (d Date) InMonth(month, year int) bool {
	return d.Month() == month && d.Year() == year
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	// Records written by browsers may carry a full timestamp.
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if !e.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, e.Category)
	}
	if !e.PaymentMethod.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, e.PaymentMethod)
	}
	return nil
}

func (b Budget) Validate() error {
	if !b.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, b.Category)
	}
	if b.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// DefaultBudgets returns one budget per category at the given ceiling.
func DefaultBudgets(ceiling Money) []Budget {
	out := make([]Budget, len(categories))
	for i, c := range categories {
		out[i] = Budget{Category: c, Amount: ceiling}
	}
	return out
}

// CheckBudgetSet verifies that budgets hold exactly one non-negative entry per
// category and returns them in category display order.
func CheckBudgetSet(budgets []Budget) ([]Budget, error) {
	if len(budgets) != len(categories) {
		return nil, fmt.Errorf("%w: got %d entries, want %d", ErrInvalidBudgetSet, len(budgets), len(categories))
	}
	byCategory := make(map[Category]Budget, len(budgets))
	for _, b := range budgets {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBudgetSet, err)
		}
		if _, dup := byCategory[b.Category]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInvalidBudgetSet, b.Category)
		}
		byCategory[b.Category] = b
	}
	out := make([]Budget, 0, len(categories))
	for _, c := range categories {
		b, ok := byCategory[c]
		if !ok {
			return nil, fmt.Errorf("%w: missing category %q", ErrInvalidBudgetSet, c)
		}
		out = append(out, b)
	}
	return out, nil
}

// Snapshot is a read-only copy of the store's collections. Version increases
// with every committed mutation.
type Snapshot struct {
	Expenses []Expense
	Budgets  []Budget
	Version  uint64
}
