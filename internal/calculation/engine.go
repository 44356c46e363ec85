package calculation

import (
	"context"
	"fmt"

	"github.com/paycalc/ctc-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine runs the whole pipeline: breakup, tax, then summary.
// It keeps no state between runs, so one engine may be reused freely.
type CalculationEngine struct {
	Rules       domain.Rules
	Profile     domain.Profile
	TaxCalc     *TaxCalculator
	BreakupCalc *BreakupCalculator
	CompCalc    *CompensationCalculator
	Logger      Logger
}

// NewCalculationEngine creates an engine with the built-in FY rules and the
// home-loan profile.
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithRules(DefaultRules(), domain.ProfileHomeLoan)
}

// NewCalculationEngineWithRules creates an engine from a loaded rule set.
func NewCalculationEngineWithRules(rules domain.Rules, profile domain.Profile) *CalculationEngine {
	rules = withDefaults(rules)
	if profile == "" {
		profile = domain.ProfileHomeLoan
	}
	comp := NewCompensationCalculatorWithRules(rules)
	return &CalculationEngine{
		Rules:       rules,
		Profile:     profile,
		TaxCalc:     comp.TaxCalc,
		BreakupCalc: NewBreakupCalculatorWithRules(rules),
		CompCalc:    comp,
		Logger:      NopLogger{},
	}
}

// SetLogger sets the logger for the engine and its calculators. If nil is
// provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	ce.Logger = l
	ce.BreakupCalc.Logger = l
	ce.CompCalc.Logger = l
}

// Recompute derives every output from inputs in one pass. Identical inputs
// give identical results and the inputs are never modified.
func (ce *CalculationEngine) Recompute(in domain.Inputs) *domain.Result {
	if in.Regime != "" && in.Regime != domain.RegimeNew {
		ce.Logger.Warnf("regime %q requested; net pay is computed under the new regime", in.Regime)
	}

	capPF := ce.Rules.ProvidentFund.CapEnabled
	homeLoan := domain.HomeLoanDeduction{}
	switch ce.Profile {
	case domain.ProfilePFCapToggle:
		capPF = in.PFCapEnabled
		if in.HomeLoanInterest.IsPositive() || in.RentReceived.IsPositive() {
			ce.Logger.Warnf("home-loan inputs ignored under profile %s", ce.Profile)
		}
	default:
		homeLoan = ComputeHomeLoanDeduction(in.HomeLoanInterest, in.RentReceived, ce.Rules.HomeLoanCap)
		if homeLoan.CapExceeded {
			ce.Logger.Infof("home-loan loss %s exceeds cap; deduction limited to %s",
				homeLoan.Uncapped.StringFixed(0), homeLoan.Deduction.StringFixed(0))
		}
	}

	breakup := ce.BreakupCalc.ComputeBreakupWithPFCap(in.CTC, in.Earnings, in.CustomDeductions, in.BonusAmount, capPF)
	headline := ce.CompCalc.HeadlineTax(breakup.GrossSalary, homeLoan.Deduction)
	summary := ce.CompCalc.ComputeSummary(in.CTC, breakup.GrossSalary, breakup.Deductions, headline,
		breakup.Bonus, in.RealisticPayoutPercent, homeLoan.Deduction)

	return &domain.Result{
		Profile:           ce.Profile,
		Regime:            domain.RegimeNew,
		FinancialYear:     ce.Rules.Metadata.FinancialYear,
		RealisticPayout:   in.RealisticPayoutPercent,
		Breakup:           breakup,
		HomeLoan:          homeLoan,
		Tax:               headline,
		TaxSlabs:          ce.TaxCalc.SlabBreakdown(headline.NetTaxableIncome, domain.RegimeNew),
		DisplayDeductions: displayDeductions(breakup.Deductions, headline.TotalTax),
		Summary:           summary,
	}
}

// RunScenario validates a loaded scenario and recomputes it.
func (ce *CalculationEngine) RunScenario(ctx context.Context, config *domain.Configuration) (*domain.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if config == nil {
		return nil, fmt.Errorf("scenario is nil")
	}
	if _, err := domain.ParseRegime(config.Regime); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", config.Name, err)
	}
	if config.CTC.IsNegative() {
		return nil, fmt.Errorf("scenario %q: CTC cannot be negative", config.Name)
	}

	result := ce.Recompute(config.Inputs())
	result.Name = config.Name
	ce.Logger.Infof("scenario %q: gross %s, net %s", config.Name,
		result.Summary.GrossSalary.StringFixed(0), result.Summary.NetAnnualSalary.String())
	return result, nil
}

// RunScenarios recomputes several offers so they can be compared.
func (ce *CalculationEngine) RunScenarios(ctx context.Context, configs []*domain.Configuration) (*domain.ScenarioComparison, error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("no scenarios to compare")
	}
	comparison := &domain.ScenarioComparison{}
	for i, cfg := range configs {
		result, err := ce.RunScenario(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to run scenario %d: %w", i+1, err)
		}
		comparison.Results = append(comparison.Results, result)
	}
	return comparison, nil
}

// displayDeductions appends the income tax line shown with the deductions.
func displayDeductions(deductions []domain.DeductionItem, totalTax decimal.Decimal) []domain.DeductionItem {
	out := make([]domain.DeductionItem, 0, len(deductions)+1)
	out = append(out, deductions...)
	return append(out, domain.DeductionItem{
		ID:          domain.IncomeTaxID,
		Name:        "Income Tax",
		Line:        domain.Active(totalTax),
		IsFixed:     true,
		IsTax:       true,
		Description: "Slab tax after rebate, plus 4% health and education cess.",
	})
}
