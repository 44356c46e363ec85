package calculation

import (
	"github.com/paycalc/ctc-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// BreakupCalculator derives earnings, deductions and fixed gross from CTC.
type BreakupCalculator struct {
	ProvidentFund            domain.ProvidentFundRules
	ProfessionalTax          decimal.Decimal
	GratuityRate             decimal.Decimal
	BalancingNetOfDeductions bool
	Logger                   Logger
}

// NewBreakupCalculator creates a breakup calculator with the built-in rules.
func NewBreakupCalculator() *BreakupCalculator {
	return NewBreakupCalculatorWithRules(DefaultRules())
}

// NewBreakupCalculatorWithRules creates a breakup calculator from a rule set.
func NewBreakupCalculatorWithRules(rules domain.Rules) *BreakupCalculator {
	rules = withDefaults(rules)
	return &BreakupCalculator{
		ProvidentFund:            rules.ProvidentFund,
		ProfessionalTax:          rules.ProfessionalTax,
		GratuityRate:             rules.GratuityRate,
		BalancingNetOfDeductions: rules.BalancingNetOfDeductions,
		Logger:                   NopLogger{},
	}
}

// ComputeBreakup resolves the salary structure using the rule set's PF cap.
func (bc *BreakupCalculator) ComputeBreakup(ctc decimal.Decimal, earnings []domain.EarningItem, custom []domain.DeductionItem, bonus decimal.Decimal) domain.Breakup {
	return bc.ComputeBreakupWithPFCap(ctc, earnings, custom, bonus, bc.ProvidentFund.CapEnabled)
}

// ComputeBreakupWithPFCap resolves the salary structure in order: basic,
// baseline deductions, the other earnings, the deduction merge, the balancing
// earning and finally gross. The arguments are left untouched.
func (bc *BreakupCalculator) ComputeBreakupWithPFCap(ctc decimal.Decimal, earnings []domain.EarningItem, custom []domain.DeductionItem, bonus decimal.Decimal, capPF bool) domain.Breakup {
	log := bc.logger()
	ctc = decimal.Max(ctc, decimal.Zero)
	bonus = decimal.Max(bonus, decimal.Zero)
	resolved := append([]domain.EarningItem(nil), earnings...)

	// Step 1: basic.
	basic := decimal.Zero
	for i := range resolved {
		if resolved[i].ID != domain.BasicID {
			continue
		}
		if resolved[i].Kind == domain.KindPercentage {
			resolved[i].Line = resolved[i].Line.WithAmount(ctc.Mul(resolved[i].Percentage).Div(hundred))
		}
		basic = resolved[i].Amount()
		break
	}

	// Steps 2 and 3: baseline deductions.
	pf := basic.Mul(bc.ProvidentFund.Rate)
	if capPF && !bc.ProvidentFund.AnnualCap.IsZero() {
		pf = decimal.Min(pf, bc.ProvidentFund.AnnualCap)
	}
	baseline := []domain.DeductionItem{
		{
			ID:          domain.PFID,
			Name:        "Provident Fund (PF)",
			Line:        domain.Active(pf),
			IsFixed:     true,
			Description: "Employee and employer PF combined at 12% of basic.",
		},
		{
			ID:          domain.ProfessionalTaxID,
			Name:        "Professional Tax",
			Line:        domain.Active(bc.ProfessionalTax),
			IsFixed:     true,
			Description: "State levy on employment, flat per year.",
		},
		{
			ID:          domain.GratuityID,
			Name:        "Gratuity",
			Line:        domain.Active(basic.Mul(bc.GratuityRate)),
			IsFixed:     true,
			Description: "Accrual at 4.81% of basic, paid after five years of service.",
		},
	}

	// Step 4: the remaining non-balancing earnings.
	for i := range resolved {
		e := &resolved[i]
		if e.ID == domain.BasicID {
			continue
		}
		switch e.Kind {
		case domain.KindPercentage:
			e.Line = e.Line.WithAmount(ctc.Mul(e.Percentage).Div(hundred))
		case domain.KindFormula:
			e.Line = e.Line.WithAmount(basic.Mul(e.Factor))
		}
	}

	// Step 5: merge.
	deductions := mergeDeductions(baseline, custom)
	totalDeductions := domain.SumDeductions(deductions)

	// Step 6: balancing residual.
	fixed := decimal.Zero
	for _, e := range resolved {
		if e.Kind != domain.KindBalancing {
			fixed = fixed.Add(e.Amount())
		}
	}
	residual := ctc.Sub(fixed).Sub(bonus)
	if bc.BalancingNetOfDeductions {
		residual = residual.Sub(totalDeductions)
	}
	if residual.IsNegative() {
		log.Debugf("balancing residual %s clamped to zero", residual.StringFixed(2))
		residual = decimal.Zero
	}
	balanced := false
	for i := range resolved {
		if resolved[i].Kind != domain.KindBalancing {
			continue
		}
		if balanced {
			log.Warnf("earning %q is an extra balancing item; set to zero", resolved[i].ID)
			resolved[i].Line = resolved[i].Line.WithAmount(decimal.Zero)
			continue
		}
		resolved[i].Line = resolved[i].Line.WithAmount(residual)
		balanced = true
	}

	// Step 7: gross.
	gross := domain.SumEarnings(resolved)
	log.Debugf("breakup: ctc=%s basic=%s deductions=%s gross=%s", ctc.StringFixed(2), basic.StringFixed(2), totalDeductions.StringFixed(2), gross.StringFixed(2))

	return domain.Breakup{
		CTC:         ctc,
		Basic:       basic,
		GrossSalary: gross,
		EmployerPF:  decimal.Zero,
		Bonus:       bonus,
		Earnings:    resolved,
		Deductions:  deductions,
	}
}

// mergeDeductions replaces baseline entries with same-id custom entries and
// appends the rest of the custom list. Within custom the last entry for an id
// wins but keeps the position of the first.
func mergeDeductions(baseline, custom []domain.DeductionItem) []domain.DeductionItem {
	merged := make([]domain.DeductionItem, 0, len(baseline)+len(custom))
	index := make(map[string]int, len(baseline)+len(custom))
	for _, d := range baseline {
		index[d.ID] = len(merged)
		merged = append(merged, d)
	}
	for _, d := range custom {
		if i, ok := index[d.ID]; ok {
			merged[i] = d
			continue
		}
		index[d.ID] = len(merged)
		merged = append(merged, d)
	}
	return merged
}

func (bc *BreakupCalculator) logger() Logger {
	if bc.Logger == nil {
		return NopLogger{}
	}
	return bc.Logger
}
