package calculation

import (
	"github.com/paycalc/ctc-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultRules returns the FY 2025-26 statutory constants. Callers get a
// fresh copy and may change it freely.
func DefaultRules() domain.Rules {
	return domain.Rules{
		Metadata: domain.RegulatoryMetadata{
			FinancialYear: 2025,
			Description:   "Indian income tax and payroll rules, FY 2025-26",
		},
		Regimes: map[domain.Regime]domain.RegimeRules{
			domain.RegimeNew: {
				StandardDeduction: decimal.NewFromInt(75000),
				RebateLimit:       decimal.NewFromInt(1200000),
				Brackets: []domain.TaxBracket{
					{Min: decimal.Zero, Max: decimal.NewFromInt(400000), Rate: decimal.Zero},
					{Min: decimal.NewFromInt(400000), Max: decimal.NewFromInt(800000), Rate: decimal.NewFromFloat(0.05)},
					{Min: decimal.NewFromInt(800000), Max: decimal.NewFromInt(1200000), Rate: decimal.NewFromFloat(0.10)},
					{Min: decimal.NewFromInt(1200000), Max: decimal.NewFromInt(1600000), Rate: decimal.NewFromFloat(0.15)},
					{Min: decimal.NewFromInt(1600000), Max: decimal.NewFromInt(2000000), Rate: decimal.NewFromFloat(0.20)},
					{Min: decimal.NewFromInt(2000000), Max: decimal.NewFromInt(2400000), Rate: decimal.NewFromFloat(0.25)},
					{Min: decimal.NewFromInt(2400000), Max: decimal.Zero, Rate: decimal.NewFromFloat(0.30)},
				},
			},
			domain.RegimeOld: {
				StandardDeduction: decimal.NewFromInt(50000),
				RebateLimit:       decimal.NewFromInt(500000),
				Brackets: []domain.TaxBracket{
					{Min: decimal.Zero, Max: decimal.NewFromInt(250000), Rate: decimal.Zero},
					{Min: decimal.NewFromInt(250000), Max: decimal.NewFromInt(500000), Rate: decimal.NewFromFloat(0.05)},
					{Min: decimal.NewFromInt(500000), Max: decimal.NewFromInt(1000000), Rate: decimal.NewFromFloat(0.20)},
					{Min: decimal.NewFromInt(1000000), Max: decimal.Zero, Rate: decimal.NewFromFloat(0.30)},
				},
			},
		},
		CessRate: decimal.NewFromFloat(0.04),
		ProvidentFund: domain.ProvidentFundRules{
			Rate:       decimal.NewFromFloat(0.12),
			AnnualCap:  decimal.NewFromInt(21600),
			CapEnabled: true,
		},
		ProfessionalTax: decimal.NewFromInt(2400),
		GratuityRate:    decimal.NewFromFloat(0.0481),
		HomeLoanCap:     decimal.NewFromInt(200000),
		BonusTax: domain.BonusTaxRules{
			FlatRateAboveCTC: decimal.NewFromInt(2400000),
			FlatRate:         decimal.NewFromFloat(0.30),
			Bands: []domain.BonusBand{
				{Above: decimal.NewFromInt(2000000), Rate: decimal.NewFromFloat(0.25)},
				{Above: decimal.NewFromInt(1600000), Rate: decimal.NewFromFloat(0.20)},
				{Above: decimal.NewFromInt(1200000), Rate: decimal.NewFromFloat(0.15)},
				{Above: decimal.NewFromInt(800000), Rate: decimal.NewFromFloat(0.10)},
				{Above: decimal.NewFromInt(400000), Rate: decimal.NewFromFloat(0.05)},
			},
		},
		BalancingNetOfDeductions: true,
	}
}

// withDefaults fills zero amounts in a rule set built in code. Flags are
// taken as given; rule files get their defaults when they are parsed.
func withDefaults(r domain.Rules) domain.Rules {
	def := DefaultRules()
	if r.Metadata.FinancialYear == 0 {
		r.Metadata = def.Metadata
	}
	regimes := make(map[domain.Regime]domain.RegimeRules, len(def.Regimes))
	for regime, rules := range def.Regimes {
		regimes[regime] = rules
	}
	for regime, rules := range r.Regimes {
		regimes[regime] = rules
	}
	r.Regimes = regimes
	if r.CessRate.IsZero() {
		r.CessRate = def.CessRate
	}
	if r.ProvidentFund.Rate.IsZero() {
		r.ProvidentFund = def.ProvidentFund
	}
	if r.ProfessionalTax.IsZero() {
		r.ProfessionalTax = def.ProfessionalTax
	}
	if r.GratuityRate.IsZero() {
		r.GratuityRate = def.GratuityRate
	}
	if r.HomeLoanCap.IsZero() {
		r.HomeLoanCap = def.HomeLoanCap
	}
	if r.BonusTax.FlatRate.IsZero() && len(r.BonusTax.Bands) == 0 {
		r.BonusTax = def.BonusTax
	}
	return r
}
