package core

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"99.5", 9950, true},
		{"-1", 0, false},
		{"0", 0, false},
		{"0.001", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"NaN", 0, false},
		{"Infinity", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := map[int64]string{
		9950:   "99.5",
		100000: "1000",
		5:      "0.05",
		25000:  "250",
		1234:   "12.34",
	}
	for cents, want := range cases {
		if got := (Money{Cents: cents}).String(); got != want {
			t.Fatalf("%d cents: got %q, want %q", cents, got, want)
		}
	}
}

func TestMoneyUnmarshalAcceptsNumbersAndStrings(t *testing.T) {
	var m Money
	for raw, want := range map[string]int64{`99.5`: 9950, `"12.34"`: 1234, `1000`: 100000, `0.125`: 13} {
		if err := json.Unmarshal([]byte(raw), &m); err != nil || m.Cents != want {
			t.Fatalf("%s: got %d (err=%v), want %d", raw, m.Cents, err, want)
		}
	}
	if err := json.Unmarshal([]byte(`"lots"`), &m); err == nil {
		t.Fatalf("expected error for non-numeric amount")
	}
}

func TestMoneyUnmarshalRejectsOutOfRange(t *testing.T) {
	for _, raw := range []string{`1e20`, `"-1e20"`, `92233720368547758.07`} {
		var m Money
		if err := json.Unmarshal([]byte(raw), &m); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("%s: got %d cents (err=%v), want ErrInvalidAmount", raw, m.Cents, err)
		}
	}
}

func TestMoneyFromFloat(t *testing.T) {
	m, err := MoneyFromFloat(1000.005)
	if err != nil || m.Cents != 100001 {
		t.Fatalf("MoneyFromFloat(1000.005) = %d (err=%v), want 100001", m.Cents, err)
	}
	for _, f := range []float64{math.Inf(1), math.Inf(-1), math.NaN(), 1e300} {
		if _, err := MoneyFromFloat(f); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("MoneyFromFloat(%v): err = %v, want ErrInvalidAmount", f, err)
		}
	}
}
