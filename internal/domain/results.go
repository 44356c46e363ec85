package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidRegime is returned when a regime name is not recognised.
var ErrInvalidRegime = errors.New("invalid tax regime")

// TaxResult is the outcome of one tax computation. Never mutated.
type TaxResult struct {
	Regime            Regime          `json:"regime"`
	Tax               decimal.Decimal `json:"tax"`
	Cess              decimal.Decimal `json:"cess"`
	TotalTax          decimal.Decimal `json:"total_tax"`
	NetTaxableIncome  decimal.Decimal `json:"net_taxable_income"`
	StandardDeduction decimal.Decimal `json:"standard_deduction"`
	RebateApplied     bool            `json:"rebate_applied"`
}

// SlabLine is the tax attributed to one bracket, before rebate and cess.
type SlabLine struct {
	Min     decimal.Decimal `json:"min"`
	Max     decimal.Decimal `json:"max"` // zero for the open-ended slab
	Rate    decimal.Decimal `json:"rate"`
	Taxable decimal.Decimal `json:"taxable"`
	Tax     decimal.Decimal `json:"tax"`
}

// Breakup is the salary structure derived from CTC.
type Breakup struct {
	CTC         decimal.Decimal `json:"ctc"`
	Basic       decimal.Decimal `json:"basic"`
	GrossSalary decimal.Decimal `json:"gross_salary"` // fixed, bonus excluded
	EmployerPF  decimal.Decimal `json:"employer_pf"`  // folded into the combined PF deduction
	Bonus       decimal.Decimal `json:"bonus"`
	Earnings    []EarningItem   `json:"earnings"`
	Deductions  []DeductionItem `json:"deductions"`
}

// HomeLoanDeduction is the interest relief on a let-out property.
type HomeLoanDeduction struct {
	InterestPaid decimal.Decimal `json:"interest_paid"`
	RentReceived decimal.Decimal `json:"rent_received"`
	Uncapped     decimal.Decimal `json:"uncapped"`
	Deduction    decimal.Decimal `json:"deduction"`
	CapExceeded  bool            `json:"cap_exceeded"`
}

// CompensationSummary is the final fixed-plus-incentive net pay view.
type CompensationSummary struct {
	GrossSalary        decimal.Decimal `json:"gross_salary"`
	TotalDeductions    decimal.Decimal `json:"total_deductions"` // deductions plus income tax
	NetAnnualSalary    decimal.Decimal `json:"net_annual_salary"`
	NetMonthlySalary   decimal.Decimal `json:"net_monthly_salary"`
	MonthlyBase        decimal.Decimal `json:"monthly_base"`
	MonthlyIncentive   decimal.Decimal `json:"monthly_incentive"`
	BonusTaxRate       decimal.Decimal `json:"bonus_tax_rate"`
	TaxOnIncentive     decimal.Decimal `json:"tax_on_incentive"`
	TaxFixed           decimal.Decimal `json:"tax_fixed"`
	PerformanceBonus   decimal.Decimal `json:"performance_bonus"`
	RealisticIncentive decimal.Decimal `json:"realistic_incentive"`
	PostTaxIncentive   decimal.Decimal `json:"post_tax_incentive"`
	BaseNetPay         decimal.Decimal `json:"base_net_pay"`
}

// Inputs is everything one recompute needs.
type Inputs struct {
	CTC                    decimal.Decimal
	Earnings               []EarningItem
	CustomDeductions       []DeductionItem
	BonusAmount            decimal.Decimal
	RealisticPayoutPercent decimal.Decimal
	HomeLoanInterest       decimal.Decimal
	RentReceived           decimal.Decimal
	PFCapEnabled           bool // honoured only under ProfilePFCapToggle
	Regime                 Regime
}

// Result is the whole output of one recompute.
type Result struct {
	Name              string              `json:"name,omitempty"`
	Profile           Profile             `json:"profile"`
	Regime            Regime              `json:"regime"`
	FinancialYear     int                 `json:"financial_year"`
	RealisticPayout   decimal.Decimal     `json:"realistic_payout_percent"`
	Breakup           Breakup             `json:"breakup"`
	HomeLoan          HomeLoanDeduction   `json:"home_loan"`
	Tax               TaxResult           `json:"tax"`
	TaxSlabs          []SlabLine          `json:"tax_slabs"`
	DisplayDeductions []DeductionItem     `json:"display_deductions"`
	Summary           CompensationSummary `json:"summary"`
}

// Period selects whether reports show annual or monthly amounts.
type Period string

const (
	PeriodYearly  Period = "yearly"
	PeriodMonthly Period = "monthly"
)

// ParsePeriod accepts yearly/monthly and the short forms y/m; empty means yearly.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yearly", "year", "annual", "y":
		return PeriodYearly, nil
	case "monthly", "month", "m":
		return PeriodMonthly, nil
	}
	return "", fmt.Errorf("unknown period %q (want yearly or monthly)", s)
}

// ScenarioComparison holds the results of several offers, in input order,
// and the period reports should use.
type ScenarioComparison struct {
	Results     []*Result `json:"results"`
	Period      Period    `json:"period"`
	Assumptions []string  `json:"assumptions,omitempty"`
}
