package domain

import (
	"github.com/shopspring/decimal"

	money "github.com/paycalc/ctc-calculator/pkg/decimal"
)

// Configuration is a scenario file: one CTC offer plus the user's edits.
type Configuration struct {
	Name                   string           `yaml:"name" json:"name"`
	CTC                    money.Money      `yaml:"ctc" json:"ctc" validate:"gte=0"`
	Earnings               []EarningSpec    `yaml:"earnings,omitempty" json:"earnings,omitempty" validate:"omitempty,dive"`
	CustomDeductions       []DeductionSpec  `yaml:"custom_deductions,omitempty" json:"custom_deductions,omitempty" validate:"omitempty,dive"`
	Bonus                  money.Money      `yaml:"bonus" json:"bonus" validate:"gte=0"`
	RealisticPayoutPercent *decimal.Decimal `yaml:"realistic_payout_percent,omitempty" json:"realistic_payout_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
	HomeLoan               HomeLoanSpec     `yaml:"home_loan,omitempty" json:"home_loan,omitempty"`
	PFCapEnabled           *bool            `yaml:"pf_cap_enabled,omitempty" json:"pf_cap_enabled,omitempty"`
	Regime                 string           `yaml:"regime,omitempty" json:"regime,omitempty" validate:"omitempty,oneof=new old"`
}

// EarningSpec is an earnings row as written in a scenario file.
type EarningSpec struct {
	ID          string          `yaml:"id" json:"id" validate:"required"`
	Name        string          `yaml:"name" json:"name" validate:"required"`
	Kind        string          `yaml:"kind" json:"kind" validate:"required,oneof=percentage formula balancing fixed manual"`
	Percentage  decimal.Decimal `yaml:"percentage,omitempty" json:"percentage,omitempty" validate:"gte=0,lte=100"`
	Factor      decimal.Decimal `yaml:"factor,omitempty" json:"factor,omitempty" validate:"gte=0"`
	Amount      money.Money     `yaml:"amount,omitempty" json:"amount,omitempty" validate:"gte=0"`
	Taxable     string          `yaml:"taxable,omitempty" json:"taxable,omitempty" validate:"omitempty,oneof=full partial exempt"`
	Disabled    bool            `yaml:"disabled,omitempty" json:"disabled,omitempty"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
}

// DeductionSpec is a custom deduction as written in a scenario file. Using a
// baseline id (pf, pt, gratuity) overrides that baseline.
type DeductionSpec struct {
	ID          string      `yaml:"id" json:"id" validate:"required"`
	Name        string      `yaml:"name" json:"name" validate:"required"`
	Amount      money.Money `yaml:"amount" json:"amount" validate:"gte=0"`
	Disabled    bool        `yaml:"disabled,omitempty" json:"disabled,omitempty"`
	IsFixed     bool        `yaml:"is_fixed,omitempty" json:"is_fixed,omitempty"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
}

// HomeLoanSpec carries home-loan interest and rent from the property.
type HomeLoanSpec struct {
	InterestPaid money.Money `yaml:"interest_paid,omitempty" json:"interest_paid,omitempty" validate:"gte=0"`
	RentReceived money.Money `yaml:"rent_received,omitempty" json:"rent_received,omitempty" validate:"gte=0"`
}

// DefaultRealisticPayoutPercent is the assumed share of the bonus paid out.
var DefaultRealisticPayoutPercent = decimal.NewFromInt(80)

// EarningItem converts a spec row into a domain earning.
func (s EarningSpec) EarningItem() EarningItem {
	line := Active(s.Amount.Decimal)
	if s.Disabled {
		line = Suspended(s.Amount.Decimal)
	}
	taxable := Taxability(s.Taxable)
	if taxable == "" {
		taxable = TaxableFull
	}
	return EarningItem{
		ID:          s.ID,
		Name:        s.Name,
		Kind:        EarningKind(s.Kind),
		Percentage:  s.Percentage,
		Factor:      s.Factor,
		Taxable:     taxable,
		Line:        line,
		Description: s.Description,
	}
}

// DeductionItem converts a spec row into a domain deduction.
func (s DeductionSpec) DeductionItem() DeductionItem {
	line := Active(s.Amount.Decimal)
	if s.Disabled {
		line = Suspended(s.Amount.Decimal)
	}
	return DeductionItem{
		ID:          s.ID,
		Name:        s.Name,
		Line:        line,
		IsFixed:     s.IsFixed,
		Description: s.Description,
	}
}

// EarningSpecFrom converts a domain earning back into its file form.
func EarningSpecFrom(e EarningItem) EarningSpec {
	return EarningSpec{
		ID:          e.ID,
		Name:        e.Name,
		Kind:        string(e.Kind),
		Percentage:  e.Percentage,
		Factor:      e.Factor,
		Amount:      money.NewMoneyFromDecimal(e.Line.Amount),
		Taxable:     string(e.Taxable),
		Disabled:    e.Line.IsSuspended(),
		Description: e.Description,
	}
}

// DeductionSpecFrom converts a domain deduction back into its file form.
func DeductionSpecFrom(d DeductionItem) DeductionSpec {
	return DeductionSpec{
		ID:          d.ID,
		Name:        d.Name,
		Amount:      money.NewMoneyFromDecimal(d.Line.Amount),
		Disabled:    d.Line.IsSuspended(),
		IsFixed:     d.IsFixed,
		Description: d.Description,
	}
}

// Inputs converts the scenario into engine inputs. Missing earnings fall
// back to the default template; a missing payout defaults to 80%.
func (c *Configuration) Inputs() Inputs {
	earnings := DefaultEarnings()
	if len(c.Earnings) > 0 {
		earnings = make([]EarningItem, 0, len(c.Earnings))
		for _, s := range c.Earnings {
			earnings = append(earnings, s.EarningItem())
		}
	}
	custom := make([]DeductionItem, 0, len(c.CustomDeductions))
	for _, s := range c.CustomDeductions {
		custom = append(custom, s.DeductionItem())
	}
	payout := DefaultRealisticPayoutPercent
	if c.RealisticPayoutPercent != nil {
		payout = *c.RealisticPayoutPercent
	}
	pfCap := true
	if c.PFCapEnabled != nil {
		pfCap = *c.PFCapEnabled
	}
	regime := RegimeNew
	if c.Regime != "" {
		regime = Regime(c.Regime)
	}
	return Inputs{
		CTC:                    c.CTC.Decimal,
		Earnings:               earnings,
		CustomDeductions:       custom,
		BonusAmount:            c.Bonus.Decimal,
		RealisticPayoutPercent: payout,
		HomeLoanInterest:       c.HomeLoan.InterestPaid.Decimal,
		RentReceived:           c.HomeLoan.RentReceived.Decimal,
		PFCapEnabled:           pfCap,
		Regime:                 regime,
	}
}
