// Package format renders and parses monetary values in the Indonesian
// convention: dots as thousand separators, comma as the decimal separator.
package format

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrEmptyNumber is returned by ParseNumberID for empty input.
var ErrEmptyNumber = errors.New("empty number")

// NumberID formats a decimal in Indonesian style with the given number of
// decimal places: 1234.5 -> "1.234,50".
func NumberID(value decimal.Decimal, decimals int32) string {
	sign := ""
	if value.IsNegative() {
		sign = "-"
		value = value.Abs()
	}

	fixed := value.StringFixed(decimals) // "1234.50"
	intPart := fixed
	fracPart := ""
	if idx := strings.IndexByte(fixed, '.'); idx >= 0 {
		intPart = fixed[:idx]
		fracPart = fixed[idx+1:]
	}

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if fracPart != "" {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	return b.String()
}

// CurrencyID formats a decimal as Indonesian Rupiah: 1234.5 -> "Rp 1.234,50".
func CurrencyID(value decimal.Decimal) string {
	return "Rp " + NumberID(value, 2)
}

// ParseNumberID parses a numeric string in Indonesian format:
// "1.234,56" -> 1234.56. Plain US-style input without thousand separators
// ("1234.56") is accepted as well.
func ParseNumberID(s string) (decimal.Decimal, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return decimal.Zero, ErrEmptyNumber
	}
	// "1234.56" with a single dot and no comma is already machine-readable.
	if !strings.Contains(t, ",") && strings.Count(t, ".") == 1 {
		return decimal.NewFromString(t)
	}
	t = strings.ReplaceAll(t, ".", "")
	t = strings.ReplaceAll(t, ",", ".")
	return decimal.NewFromString(t)
}
