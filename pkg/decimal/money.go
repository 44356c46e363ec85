package decimal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a rupee amount with financial precision
type Money struct {
	decimal.Decimal
}

var twelve = decimal.NewFromInt(12)

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromInt creates a new Money instance from whole rupees
func NewMoneyFromInt(value int64) Money {
	return Money{decimal.NewFromInt(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a plain decimal string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// ParseINR parses an Indian-grouped amount such as "₹ 12,34,567.50".
// Separators, the rupee sign and surrounding spaces are ignored; an empty
// string parses as zero.
func ParseINR(value string) (Money, error) {
	cleaned := strings.NewReplacer(",", "", "₹", "", " ", "", "\u00a0", "").Replace(strings.TrimSpace(value))
	if cleaned == "" {
		return Zero(), nil
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	return Money{d}, nil
}

// Rupees rounds to whole rupees (half away from zero)
func (m Money) Rupees() Money {
	return Money{m.Decimal.Round(0)}
}

// Round rounds the money amount to paise
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Annual converts a monthly amount to annual
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(twelve)}
}

// Monthly converts an annual amount to monthly
func (m Money) Monthly() Money {
	return Money{m.Decimal.Div(twelve)}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// Mul multiplies by a decimal factor
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{m.Decimal.Mul(factor)}
}

// Equal checks if this amount equals another
func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}

// Min returns the minimum of two Money amounts
func Min(a, b Money) Money {
	if a.LessThan(b.Decimal) {
		return a
	}
	return b
}

// Max returns the maximum of two Money amounts
func Max(a, b Money) Money {
	if a.GreaterThan(b.Decimal) {
		return a
	}
	return b
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the amount with two decimals
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Grouped formats whole rupees with Indian digit grouping: the last three
// digits, then groups of two (12,34,567).
func (m Money) Grouped() string {
	digits := m.Rupees().Abs().StringFixed(0)
	sign := ""
	if m.Rupees().IsNegative() {
		sign = "-"
	}
	if len(digits) <= 3 {
		return sign + digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return sign + strings.Join(groups, ",") + "," + tail
}

// Format formats the amount as rupees with Indian grouping
func (m Money) Format() string {
	return "₹" + m.Grouped()
}

// FormatINR formats a raw decimal as grouped rupees
func FormatINR(d decimal.Decimal) string {
	return NewMoneyFromDecimal(d).Format()
}

// UnmarshalText accepts plain or Indian-grouped amounts, so YAML scenario
// files may write `ctc: 12,00,000`.
func (m *Money) UnmarshalText(text []byte) error {
	parsed, err := ParseINR(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// UnmarshalJSON accepts numbers and quoted (optionally grouped) strings.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*m = Zero()
		return nil
	}
	return m.UnmarshalText([]byte(strings.Trim(s, `"`)))
}
