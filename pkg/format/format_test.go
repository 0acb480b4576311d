package format_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"storecrm_backend/pkg/format"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestNumberID(t *testing.T) {
	cases := []struct {
		in       string
		decimals int32
		want     string
	}{
		{"1234.5", 2, "1.234,50"},
		{"0", 2, "0,00"},
		{"-1234.5", 2, "-1.234,50"},
		{"1000000", 2, "1.000.000,00"},
		{"999", 2, "999,00"},
		{"1234567.891", 2, "1.234.567,89"},
		{"12", 0, "12"},
	}
	for _, tc := range cases {
		got := format.NumberID(dec(t, tc.in), tc.decimals)
		if got != tc.want {
			t.Errorf("NumberID(%s, %d) = %q, want %q", tc.in, tc.decimals, got, tc.want)
		}
	}
}

func TestCurrencyID(t *testing.T) {
	if got := format.CurrencyID(dec(t, "1234.5")); got != "Rp 1.234,50" {
		t.Errorf("CurrencyID = %q, want %q", got, "Rp 1.234,50")
	}
	if got := format.CurrencyID(decimal.Zero); got != "Rp 0,00" {
		t.Errorf("CurrencyID(0) = %q, want %q", got, "Rp 0,00")
	}
	if got := format.CurrencyID(dec(t, "-250000")); got != "Rp -250.000,00" {
		t.Errorf("CurrencyID(-250000) = %q, want %q", got, "Rp -250.000,00")
	}
}

func TestParseNumberID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.234,56", "1234.56"},
		{"1234.56", "1234.56"},
		{"1.000.000", "1000000"},
		{"0,5", "0.5"},
	}
	for _, tc := range cases {
		got, err := format.ParseNumberID(tc.in)
		if err != nil {
			t.Errorf("ParseNumberID(%q) error: %v", tc.in, err)
			continue
		}
		if !got.Equal(dec(t, tc.want)) {
			t.Errorf("ParseNumberID(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}

	if _, err := format.ParseNumberID(""); err == nil {
		t.Error("ParseNumberID(\"\") expected error")
	}
	if _, err := format.ParseNumberID("abc"); err == nil {
		t.Error("ParseNumberID(\"abc\") expected error")
	}
}
