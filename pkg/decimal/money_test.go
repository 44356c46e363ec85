package decimal

import (
	"testing"

	stddec "github.com/shopspring/decimal"
)

func TestConstructors(t *testing.T) {
	m := NewMoney(12.345)
	if m.String() != "12.35" {
		t.Fatalf("NewMoney display mismatch: got %s", m.String())
	}

	d := stddec.NewFromFloat(10.125)
	m2 := NewMoneyFromDecimal(d)
	if !m2.Decimal.Equal(d) {
		t.Fatalf("NewMoneyFromDecimal mismatch: got %s want %s", m2.Decimal, d)
	}

	m3, err := NewMoneyFromString("123.45")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m3.String() != "123.45" {
		t.Fatalf("NewMoneyFromString display mismatch: got %s", m3.String())
	}

	if _, err := NewMoneyFromString("not-a-number"); err == nil {
		t.Fatalf("expected error for invalid string")
	}
}

func TestGrouped(t *testing.T) {
	cases := []struct {
		in  int64
		out string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{99999, "99,999"},
		{100000, "1,00,000"},
		{1234567, "12,34,567"},
		{123456789, "12,34,56,789"},
		{-2500000, "-25,00,000"},
	}
	for _, c := range cases {
		if got := NewMoneyFromInt(c.in).Grouped(); got != c.out {
			t.Fatalf("Grouped(%d) got %s want %s", c.in, got, c.out)
		}
	}
}

func TestGroupedRoundsToRupees(t *testing.T) {
	if got := NewMoney(28859.5).Grouped(); got != "28,860" {
		t.Fatalf("Grouped(28859.5) got %s", got)
	}
	if got := FormatINR(stddec.NewFromInt(1200000)); got != "₹12,00,000" {
		t.Fatalf("FormatINR got %s", got)
	}
}

func TestParseINR(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"12,00,000", "1200000.00"},
		{"₹ 2,40,000", "240000.00"},
		{"  75000 ", "75000.00"},
		{"", "0.00"},
		{"1,234.50", "1234.50"},
	}
	for _, c := range cases {
		m, err := ParseINR(c.in)
		if err != nil {
			t.Fatalf("ParseINR(%q) unexpected error: %v", c.in, err)
		}
		if m.String() != c.want {
			t.Fatalf("ParseINR(%q) got %s want %s", c.in, m.String(), c.want)
		}
	}
	if _, err := ParseINR("12 lakh"); err == nil {
		t.Fatalf("expected error for non-numeric input")
	}
}

func TestPeriodConversions(t *testing.T) {
	m := NewMoneyFromInt(1200000)
	if got := m.Monthly().String(); got != "100000.00" {
		t.Fatalf("Monthly got %s", got)
	}
	if got := m.Monthly().Annual().String(); got != "1200000.00" {
		t.Fatalf("Annual after Monthly got %s", got)
	}
}

func TestMinMaxAndArithmetic(t *testing.T) {
	a := NewMoneyFromInt(100)
	b := NewMoneyFromInt(250)
	if !Min(a, b).Equal(a) || !Max(a, b).Equal(b) {
		t.Fatalf("Min/Max mismatch")
	}
	if got := b.Sub(a).Add(a).Mul(stddec.NewFromFloat(0.5)).String(); got != "125.00" {
		t.Fatalf("arithmetic got %s", got)
	}
	if got := NewMoney(2.345).Round().String(); got != "2.35" {
		t.Fatalf("Round got %s", got)
	}
}
