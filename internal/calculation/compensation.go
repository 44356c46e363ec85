package calculation

import (
	"github.com/paycalc/ctc-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	half   = decimal.NewFromFloat(0.5)
	twelve = decimal.NewFromInt(12)
)

// CompensationCalculator turns a breakup and its tax into net pay, split into
// the fixed base and the performance incentive.
type CompensationCalculator struct {
	TaxCalc  *TaxCalculator
	BonusTax domain.BonusTaxRules
	Logger   Logger
}

// NewCompensationCalculator creates a calculator with the built-in rules.
func NewCompensationCalculator() *CompensationCalculator {
	return NewCompensationCalculatorWithRules(DefaultRules())
}

// NewCompensationCalculatorWithRules creates a calculator from a rule set.
func NewCompensationCalculatorWithRules(rules domain.Rules) *CompensationCalculator {
	rules = withDefaults(rules)
	return &CompensationCalculator{
		TaxCalc:  NewTaxCalculatorWithRules(rules),
		BonusTax: rules.BonusTax,
		Logger:   NopLogger{},
	}
}

// HeadlineTax is the tax shown for the fixed salary. Gross is reduced by the
// standard deduction and the home-loan deduction before it reaches the tax
// engine, which applies its own standard deduction on top.
func (cc *CompensationCalculator) HeadlineTax(gross, homeLoan decimal.Decimal) domain.TaxResult {
	sd := cc.TaxCalc.StandardDeduction(domain.RegimeNew)
	taxable := decimal.Max(gross.Sub(sd).Sub(homeLoan), decimal.Zero)
	return cc.TaxCalc.ComputeTax(taxable, domain.RegimeNew)
}

// BonusTaxRate is the flat rate charged on the whole bonus. Above the CTC
// threshold the top rate applies; otherwise the gross salary band decides.
// This approximates slab tax on the incentive and is kept as is.
func (cc *CompensationCalculator) BonusTaxRate(ctc, gross decimal.Decimal) decimal.Decimal {
	if ctc.GreaterThan(cc.BonusTax.FlatRateAboveCTC) {
		return cc.BonusTax.FlatRate
	}
	for _, band := range cc.BonusTax.Bands {
		if gross.GreaterThan(band.Above) {
			return band.Rate
		}
	}
	return decimal.Zero
}

// ComputeSummary derives net pay from the breakup figures. headline is the
// result of HeadlineTax and only feeds TotalDeductions; net pay runs the same
// computation again on the bonus-excluded gross, so with no bonus the tax in
// net pay equals the tax shown.
func (cc *CompensationCalculator) ComputeSummary(ctc, gross decimal.Decimal, deductions []domain.DeductionItem, headline domain.TaxResult, bonus, payoutPct, homeLoan decimal.Decimal) domain.CompensationSummary {
	log := cc.logger()

	taxFixed := cc.HeadlineTax(gross, homeLoan).TotalTax

	rate := cc.BonusTaxRate(ctc, gross)
	taxOnIncentive := bonus.Mul(rate)
	realistic := bonus.Mul(payoutPct).Div(hundred)
	postTaxIncentive := realistic.Sub(taxOnIncentive)

	totalDeductions := domain.SumDeductions(deductions)
	baseNet := gross.Sub(totalDeductions).Sub(taxFixed)
	netAnnual := roundHalfUp(baseNet.Add(postTaxIncentive))

	log.Debugf("summary: gross=%s deductions=%s taxFixed=%s bonusRate=%s net=%s",
		gross.StringFixed(2), totalDeductions.StringFixed(2), taxFixed.StringFixed(2), rate.String(), netAnnual.String())

	return domain.CompensationSummary{
		GrossSalary:        gross,
		TotalDeductions:    totalDeductions.Add(headline.TotalTax),
		NetAnnualSalary:    netAnnual,
		NetMonthlySalary:   roundHalfUp(netAnnual.Div(twelve)),
		MonthlyBase:        baseNet.Div(twelve),
		MonthlyIncentive:   postTaxIncentive.Div(twelve),
		BonusTaxRate:       rate,
		TaxOnIncentive:     taxOnIncentive,
		TaxFixed:           taxFixed,
		PerformanceBonus:   bonus,
		RealisticIncentive: realistic,
		PostTaxIncentive:   postTaxIncentive,
		BaseNetPay:         baseNet,
	}
}

func (cc *CompensationCalculator) logger() Logger {
	if cc.Logger == nil {
		return NopLogger{}
	}
	return cc.Logger
}

// roundHalfUp rounds to the nearest integer with halves going up, so -2.5
// becomes -2.
func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Add(half).Floor()
}
