package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Regime is the income-tax variant.
type Regime string

const (
	RegimeNew Regime = "new"
	RegimeOld Regime = "old"
)

// ParseRegime accepts "new" or "old" in any case.
func ParseRegime(s string) (Regime, error) {
	switch Regime(strings.ToLower(strings.TrimSpace(s))) {
	case RegimeNew, "":
		return RegimeNew, nil
	case RegimeOld:
		return RegimeOld, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRegime, s)
}

// Profile selects one of two deployment behaviours that are never combined:
// home-loan relief with an always-capped PF, or a user PF-cap toggle without
// home-loan relief.
type Profile string

const (
	ProfileHomeLoan    Profile = "home_loan"
	ProfilePFCapToggle Profile = "pf_cap_toggle"
)

// ParseProfile validates a profile name; empty means home_loan.
func ParseProfile(s string) (Profile, error) {
	switch Profile(strings.ToLower(strings.TrimSpace(s))) {
	case ProfileHomeLoan, "":
		return ProfileHomeLoan, nil
	case ProfilePFCapToggle:
		return ProfilePFCapToggle, nil
	}
	return "", fmt.Errorf("unknown profile %q (want home_loan or pf_cap_toggle)", s)
}

// TaxBracket is one slab. A zero Max marks the open-ended top slab.
type TaxBracket struct {
	Min  decimal.Decimal `yaml:"min" json:"min"`
	Max  decimal.Decimal `yaml:"max" json:"max"`
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// Unbounded reports whether the bracket has no upper limit.
func (b TaxBracket) Unbounded() bool { return b.Max.IsZero() }

// RegimeRules holds the slab table and reliefs of one regime.
type RegimeRules struct {
	StandardDeduction decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`
	RebateLimit       decimal.Decimal `yaml:"rebate_limit" json:"rebate_limit"` // net taxable at or below this pays no slab tax
	Brackets          []TaxBracket    `yaml:"brackets" json:"brackets"`
}

// ProvidentFundRules covers the combined PF deduction.
type ProvidentFundRules struct {
	Rate       decimal.Decimal `yaml:"rate" json:"rate"`
	AnnualCap  decimal.Decimal `yaml:"annual_cap" json:"annual_cap"`
	CapEnabled bool            `yaml:"cap_enabled" json:"cap_enabled"`
}

// BonusBand maps gross salary above a threshold to a flat bonus tax rate.
type BonusBand struct {
	Above decimal.Decimal `yaml:"above" json:"above"`
	Rate  decimal.Decimal `yaml:"rate" json:"rate"`
}

// BonusTaxRules drive the flat-rate incentive tax approximation.
type BonusTaxRules struct {
	FlatRateAboveCTC decimal.Decimal `yaml:"flat_rate_above_ctc" json:"flat_rate_above_ctc"`
	FlatRate         decimal.Decimal `yaml:"flat_rate" json:"flat_rate"`
	Bands            []BonusBand     `yaml:"bands" json:"bands"`
}

// RegulatoryMetadata describes the rule set.
type RegulatoryMetadata struct {
	FinancialYear int    `yaml:"financial_year" json:"financial_year"`
	Description   string `yaml:"description" json:"description"`
}

// Rules gathers every statutory constant the engines use.
type Rules struct {
	Metadata        RegulatoryMetadata     `yaml:"metadata" json:"metadata"`
	Regimes         map[Regime]RegimeRules `yaml:"regimes" json:"regimes"`
	CessRate        decimal.Decimal        `yaml:"cess_rate" json:"cess_rate"`
	ProvidentFund   ProvidentFundRules     `yaml:"provident_fund" json:"provident_fund"`
	ProfessionalTax decimal.Decimal        `yaml:"professional_tax" json:"professional_tax"`
	GratuityRate    decimal.Decimal        `yaml:"gratuity_rate" json:"gratuity_rate"`
	HomeLoanCap     decimal.Decimal        `yaml:"home_loan_cap" json:"home_loan_cap"`
	BonusTax        BonusTaxRules          `yaml:"bonus_tax" json:"bonus_tax"`

	// BalancingNetOfDeductions subtracts deductions from CTC before solving
	// the balancing earning. When false the balancing earning only absorbs
	// CTC less other earnings and bonus, so gross equals CTC.
	BalancingNetOfDeductions bool `yaml:"balancing_net_of_deductions" json:"balancing_net_of_deductions"`
}
