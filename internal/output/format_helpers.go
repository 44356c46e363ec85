package output

import (
	"github.com/shopspring/decimal"

	"github.com/paycalc/ctc-calculator/internal/domain"
	money "github.com/paycalc/ctc-calculator/pkg/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// FormatCurrency formats a decimal as whole rupees with Indian grouping.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string { return money.FormatINR(amount) }

// FormatPlain is FormatCurrency without the rupee sign, for fonts and
// spreadsheets that cannot show it.
func FormatPlain(amount decimal.Decimal) string { return money.NewMoneyFromDecimal(amount).Grouped() }

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate formats a fractional rate (0.3) as a whole percentage (30%).
func FormatRate(rate decimal.Decimal) string { return rate.Mul(hundred).StringFixed(0) + "%" }

// PeriodAmount converts an annual amount to the report period. Monthly
// figures are rounded to the rupee.
func PeriodAmount(annual decimal.Decimal, period domain.Period) decimal.Decimal {
	if period == domain.PeriodMonthly {
		return annual.Div(twelve).Round(0)
	}
	return annual
}

// PeriodLabel is the column suffix for a period.
func PeriodLabel(period domain.Period) string {
	if period == domain.PeriodMonthly {
		return "Monthly"
	}
	return "Yearly"
}

// PercentOfCTC returns part/ctc as a percentage to one decimal place, or zero
// when ctc is zero.
func PercentOfCTC(part, ctc decimal.Decimal) decimal.Decimal {
	if ctc.IsZero() {
		return decimal.Zero
	}
	return part.Div(ctc).Mul(hundred).Round(1)
}

// slabRange renders a bracket as "₹4,00,001 - ₹8,00,000" or "Above ₹24,00,000".
func slabRange(s domain.SlabLine, currency func(decimal.Decimal) string) string {
	if s.Max.IsZero() {
		return "Above " + currency(s.Min)
	}
	lower := s.Min
	if !lower.IsZero() {
		lower = lower.Add(decimal.NewFromInt(1))
	}
	return currency(lower) + " - " + currency(s.Max)
}
