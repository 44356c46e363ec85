package calculation

import (
	"github.com/paycalc/ctc-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Slabs and standard deduction follow FY 2025-26 for both regimes.
//    Surcharge on incomes above 50L is not modelled.
// 2. The section 87A rebate is all-or-nothing: at or below the rebate limit
//    slab tax is zero, one rupee above it the full slab tax is due. Marginal
//    relief is not applied.
// 3. Cess is charged on post-rebate tax only.

// TaxCalculator computes slab tax for either regime.
type TaxCalculator struct {
	Regimes  map[domain.Regime]domain.RegimeRules
	CessRate decimal.Decimal
}

// NewTaxCalculator creates a tax calculator with the built-in FY rules.
func NewTaxCalculator() *TaxCalculator {
	return NewTaxCalculatorWithRules(DefaultRules())
}

// NewTaxCalculatorWithRules creates a tax calculator from a loaded rule set.
func NewTaxCalculatorWithRules(rules domain.Rules) *TaxCalculator {
	rules = withDefaults(rules)
	return &TaxCalculator{Regimes: rules.Regimes, CessRate: rules.CessRate}
}

// rulesFor resolves a regime; anything unknown falls back to the new regime.
func (tc *TaxCalculator) rulesFor(regime domain.Regime) (domain.Regime, domain.RegimeRules) {
	if r, ok := tc.Regimes[regime]; ok {
		return regime, r
	}
	return domain.RegimeNew, tc.Regimes[domain.RegimeNew]
}

// StandardDeduction returns the standard deduction of a regime.
func (tc *TaxCalculator) StandardDeduction(regime domain.Regime) decimal.Decimal {
	_, r := tc.rulesFor(regime)
	return r.StandardDeduction
}

// ComputeTax applies the standard deduction to income, then slab tax, the
// rebate and cess. Negative income is treated as zero.
func (tc *TaxCalculator) ComputeTax(income decimal.Decimal, regime domain.Regime) domain.TaxResult {
	regime, rules := tc.rulesFor(regime)

	income = decimal.Max(income, decimal.Zero)
	netTaxable := decimal.Max(income.Sub(rules.StandardDeduction), decimal.Zero)

	tax := slabTax(netTaxable, rules.Brackets)
	rebate := netTaxable.LessThanOrEqual(rules.RebateLimit) && tax.IsPositive()
	if netTaxable.LessThanOrEqual(rules.RebateLimit) {
		tax = decimal.Zero
	}
	cess := tax.Mul(tc.CessRate)

	return domain.TaxResult{
		Regime:            regime,
		Tax:               tax,
		Cess:              cess,
		TotalTax:          tax.Add(cess),
		NetTaxableIncome:  netTaxable,
		StandardDeduction: rules.StandardDeduction,
		RebateApplied:     rebate,
	}
}

// SlabBreakdown attributes netTaxable across every bracket of the regime.
// Amounts are before rebate and cess.
func (tc *TaxCalculator) SlabBreakdown(netTaxable decimal.Decimal, regime domain.Regime) []domain.SlabLine {
	_, rules := tc.rulesFor(regime)
	netTaxable = decimal.Max(netTaxable, decimal.Zero)

	lines := make([]domain.SlabLine, 0, len(rules.Brackets))
	for _, b := range rules.Brackets {
		inBracket := incomeInBracket(netTaxable, b)
		lines = append(lines, domain.SlabLine{
			Min:     b.Min,
			Max:     b.Max,
			Rate:    b.Rate,
			Taxable: inBracket,
			Tax:     inBracket.Mul(b.Rate),
		})
	}
	return lines
}

func slabTax(income decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	total := decimal.Zero
	for _, b := range brackets {
		if income.LessThanOrEqual(b.Min) {
			break
		}
		total = total.Add(incomeInBracket(income, b).Mul(b.Rate))
	}
	return total
}

func incomeInBracket(income decimal.Decimal, b domain.TaxBracket) decimal.Decimal {
	if income.LessThanOrEqual(b.Min) {
		return decimal.Zero
	}
	upper := income
	if !b.Unbounded() {
		upper = decimal.Min(income, b.Max)
	}
	return upper.Sub(b.Min)
}
