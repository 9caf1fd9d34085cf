// Package core provides money parsing and handling utilities.
//
// Amounts are held as integer paise (hundredths of a rupee). Parsing and
// rendering go through shopspring/decimal so that stored records keep the
// plain JSON number form ("amount": 99.5) older data was written with.
package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseDecimalToCents converts a decimal string to cents with proper rounding.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and performs
// half-up rounding on the third decimal place. The result is always positive cents.
// Returns an error for invalid formats, negative values, or zero amounts.
//
// Examples:
//
//	ParseDecimalToCents("12.34") -> 1234, nil
//	ParseDecimalToCents("12,34") -> 1234, nil
//	ParseDecimalToCents("12.345") -> 1235, nil (rounds up)
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	cents, ok := centsFromDecimal(d)
	if !ok || cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}

// MaxCents bounds every stored amount so sums of a realistic collection stay
// inside int64.
const MaxCents = 1 << 62

// centsFromDecimal rounds d to paise, reporting false when the result falls
// outside ±MaxCents.
func centsFromDecimal(d decimal.Decimal) (int64, bool) {
	cents := d.Shift(2).Round(0)
	if cents.Abs().GreaterThan(decimal.New(MaxCents, 0)) {
		return 0, false
	}
	return cents.IntPart(), true
}

// ParseMoney parses a user-entered amount into Money.
func ParseMoney(s string) (Money, error) {
	cents, err := ParseDecimalToCents(s)
	if err != nil {
		return Money{}, err
	}
	return Money{Cents: cents}, nil
}

// MoneyFromFloat converts a rupee float, rounding half away from zero to paise.
// NaN, infinities and values beyond MaxCents are rejected.
func MoneyFromFloat(f float64) (Money, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Money{}, fmt.Errorf("%w: %v", ErrInvalidAmount, f)
	}
	cents, ok := centsFromDecimal(decimal.NewFromFloat(f))
	if !ok {
		return Money{}, fmt.Errorf("%w: %v out of range", ErrInvalidAmount, f)
	}
	return Money{Cents: cents}, nil
}

// Decimal returns m as a rupee-denominated decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// Float returns the rupee value as a float64 for display purposes.
// Use cents for calculations to avoid floating-point precision issues.
func (m Money) Float() float64 {
	return m.Decimal().InexactFloat64()
}

// String renders the shortest decimal form: 99.5, 1000, 0.05.
func (m Money) String() string {
	return m.Decimal().String()
}

func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

func (m Money) Sub(o Money) Money {
	return Money{Cents: m.Cents - o.Cents}
}

func (m Money) IsZero() bool {
	return m.Cents == 0
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(string(b), `"`)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, raw)
	}
	cents, ok := centsFromDecimal(d)
	if !ok {
		return fmt.Errorf("%w: %s out of range", ErrInvalidAmount, raw)
	}
	m.Cents = cents
	return nil
}
