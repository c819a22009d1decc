// Package amount converts subgraph decimal strings and raw token amounts into
// the decimal strings used by the stats documents.
package amount

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TokenDecimals is the fixed-point precision of every protocol token.
const TokenDecimals = 18

const strPlaces = 8

// Parse reads a decimal string, returning zero for empty or malformed input.
func Parse(value string) decimal.Decimal {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseStrict reads a decimal string and reports malformed or empty input.
func ParseStrict(value string) (decimal.Decimal, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Str formats a value without trailing zeros, rounded to 8 places.
func Str(d decimal.Decimal) string {
	return d.Round(strPlaces).String()
}

// Fixed formats a value with exactly places decimals.
func Fixed(d decimal.Decimal, places int32) string {
	return d.StringFixed(places)
}

// Div divides a by b, returning zero when b is zero.
func Div(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}

// Scale converts a raw fixed-point integer string into a human amount with
// the given number of decimal places. Malformed input scales to "0".
func Scale(raw string, decimals int32, places int32) string {
	d, ok := ParseStrict(raw)
	if !ok {
		return "0"
	}
	return d.Shift(-decimals).StringFixed(places)
}
