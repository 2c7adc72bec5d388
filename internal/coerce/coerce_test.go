package coerce

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1000", "1000"},
		{"$1,000", "1000"},
		{"$ 12,345.67", "12345.67"},
		{"980.5", "980.5"},
		{"", "0"},
		{"-", "0"},
		{"NaN", "0"},
		{"  $250  ", "250"},
	}
	for _, tt := range tests {
		got, err := Money(tt.in)
		if err != nil {
			t.Errorf("Money(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("Money(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestMoneyMalformed(t *testing.T) {
	for _, in := range []string{"1.2.3,4,5", "--12"} {
		if _, err := Money(in); err == nil {
			t.Errorf("Money(%q) expected error", in)
		}
	}
}

func TestMoneyEU(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.000,00", "1000"},
		{"980,00", "980"},
		{"$ 12.345,67", "12345.67"},
		{"1.234.567,89", "1234567.89"},
		{"150", "150"},
		{"", "0"},
	}
	for _, tt := range tests {
		got, err := MoneyEU(tt.in)
		if err != nil {
			t.Errorf("MoneyEU(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("MoneyEU(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestMoneyTrailingMinus(t *testing.T) {
	got, err := MoneyEU("1.500,25-")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("-1500.25")) {
		t.Errorf("MoneyEU(\"1.500,25-\") = %s, want -1500.25", got)
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"20240110", "2024-01-10"},
		{"2024-01-10", "2024-01-10"},
		{"10-01-2024", "2024-01-10"},
		{"10/01/2024", "2024-01-10"},
		{"2024-01-10 00:00:00", "2024-01-10"},
		// unknown representations pass through untouched
		{"enero 10 de 2024", "enero 10 de 2024"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Date(tt.in); got != tt.want {
			t.Errorf("Date(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMonthNumber(t *testing.T) {
	for in, want := range map[string]string{
		"enero":      "01",
		"SEPTIEMBRE": "09",
		"setiembre":  "09",
		"diciembre":  "12",
	} {
		got, ok := MonthNumber(in)
		if !ok || got != want {
			t.Errorf("MonthNumber(%q) = %q,%v, want %q", in, got, ok, want)
		}
	}
	if _, ok := MonthNumber("smarch"); ok {
		t.Error("MonthNumber accepted an unknown month")
	}
}
