package output

import (
	"fmt"

	"github.com/paycalc/ctc-calculator/internal/domain"
	"github.com/paycalc/ctc-calculator/pkg/dateutil"
)

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Income tax: new regime slabs for FY 2025-26 with a ₹75,000 standard deduction",
	"Section 87A rebate: no tax when net taxable income is ₹12,00,000 or less",
	"Health and education cess: 4% of tax after rebate",
	"Provident fund: 12% of basic, capped at ₹21,600 a year",
	"Gratuity: 4.81% of basic; professional tax: ₹2,400 a year",
	"Bonus tax: flat 30% above ₹24,00,000 CTC, otherwise banded on gross salary",
}

// GenerateAssumptions creates the assumptions list from the rules in effect.
func GenerateAssumptions(rules domain.Rules) []string {
	newRegime := rules.Regimes[domain.RegimeNew]
	out := []string{
		fmt.Sprintf("Income tax: new regime slabs for %s with a %s standard deduction",
			dateutil.FinancialYearLabel(rules.Metadata.FinancialYear), FormatCurrency(newRegime.StandardDeduction)),
		fmt.Sprintf("Section 87A rebate: no tax when net taxable income is %s or less", FormatCurrency(newRegime.RebateLimit)),
		fmt.Sprintf("Health and education cess: %s of tax after rebate", FormatRate(rules.CessRate)),
	}
	pf := fmt.Sprintf("Provident fund: %s of basic", FormatRate(rules.ProvidentFund.Rate))
	if rules.ProvidentFund.CapEnabled {
		pf += fmt.Sprintf(", capped at %s a year", FormatCurrency(rules.ProvidentFund.AnnualCap))
	}
	out = append(out, pf,
		fmt.Sprintf("Gratuity: %s of basic; professional tax: %s a year",
			rules.GratuityRate.Mul(hundred).String()+"%", FormatCurrency(rules.ProfessionalTax)),
		fmt.Sprintf("Bonus tax: flat %s above %s CTC, otherwise banded on gross salary",
			FormatRate(rules.BonusTax.FlatRate), FormatCurrency(rules.BonusTax.FlatRateAboveCTC)),
	)
	if !rules.HomeLoanCap.IsZero() {
		out = append(out, fmt.Sprintf("Let-out home loan interest net of rent: deductible up to %s", FormatCurrency(rules.HomeLoanCap)))
	}
	return out
}

// assumptionsFor returns the comparison's own assumptions or the defaults.
func assumptionsFor(results *domain.ScenarioComparison) []string {
	if len(results.Assumptions) > 0 {
		return results.Assumptions
	}
	return DefaultAssumptions
}

