// Package coerce parses the locale-formatted currency strings and the date
// representations that payer files deliver into canonical values.
package coerce

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var nonNumeric = regexp.MustCompile(`[^\d,.\-]`)

// Money parses a currency string in plain or US notation ("1000", "980.5",
// "$1,000"). Blank and dash cells coerce to zero; anything else malformed is
// an error rather than a silent zero.
func Money(s string) (decimal.Decimal, error) {
	clean, zero := cleanAmount(s)
	if zero {
		return decimal.Zero, nil
	}
	clean = strings.ReplaceAll(clean, ",", "")
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("malformed amount %q", s)
	}
	return d, nil
}

// MoneyEU parses the "1.234,56" notation used by payer PDF statements:
// thousands separator ".", decimal separator ",".
func MoneyEU(s string) (decimal.Decimal, error) {
	clean, zero := cleanAmount(s)
	if zero {
		return decimal.Zero, nil
	}
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("malformed amount %q", s)
	}
	return d, nil
}

// cleanAmount strips currency symbols and whitespace. Trailing-minus credit
// notation is rewritten to a leading sign.
func cleanAmount(s string) (clean string, zero bool) {
	t := strings.TrimSpace(s)
	if t == "" || t == "-" || strings.EqualFold(t, "nan") {
		return "", true
	}
	clean = nonNumeric.ReplaceAllString(t, "")
	if clean == "" {
		return "", true
	}
	if strings.HasSuffix(clean, "-") {
		clean = "-" + strings.TrimSuffix(clean, "-")
	}
	return clean, false
}

var dateLayouts = []string{
	"20060102",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02-01-2006",
	"02/01/2006",
}

// Date normalizes the date formats payers use (ISO-compact, ISO, day-first)
// to 2006-01-02. Unrecognized representations pass through unchanged so the
// caller can keep the payer's own formatting.
func Date(s string) string {
	t := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, t); err == nil {
			return d.Format("2006-01-02")
		}
	}
	return t
}

// months maps Spanish month names to two-digit numbers, including the
// "setiembre" variant some statements carry.
var months = map[string]string{
	"enero":      "01",
	"febrero":    "02",
	"marzo":      "03",
	"abril":      "04",
	"mayo":       "05",
	"junio":      "06",
	"julio":      "07",
	"agosto":     "08",
	"septiembre": "09",
	"setiembre":  "09",
	"octubre":    "10",
	"noviembre":  "11",
	"diciembre":  "12",
}

// MonthNumber resolves a Spanish month name to its two-digit number.
func MonthNumber(name string) (string, bool) {
	m, ok := months[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}
