package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/paycalc/ctc-calculator/internal/domain"
	"github.com/paycalc/ctc-calculator/pkg/dateutil"
)

// ConsoleVerboseFormatter renders the detailed calculation report: the
// salary breakup, the tax slab working and the take-home summary of each offer.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	period := results.Period

	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintln(&buf, "DETAILED CTC BREAKDOWN")
	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintf(&buf, "Amounts: %s\n", strings.ToLower(PeriodLabel(period)))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range assumptionsFor(results) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, r := range results.Results {
		fmt.Fprintf(&buf, "SCENARIO %d: %s\n", i+1, scenarioName(r, i))
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		writeDetailedResult(&buf, r, period)
		fmt.Fprintln(&buf)
	}

	if len(results.Results) > 1 {
		rec := AnalyzeScenarios(results)
		fmt.Fprintln(&buf, "SUMMARY & RECOMMENDATIONS")
		fmt.Fprintln(&buf, "=========================")
		fmt.Fprintf(&buf, "Best scenario: %s\n", rec.ScenarioName)
		fmt.Fprintf(&buf, "Net Annual Salary: %s\n", FormatCurrency(rec.NetAnnual))
		fmt.Fprintf(&buf, "Change vs %s: %s (%s)\n", scenarioName(results.Results[0], 0),
			signed(rec.NetIncomeChange), FormatPercentage(rec.PercentageChange))
		fmt.Fprintf(&buf, "Monthly Change: %s\n", signed(rec.NetIncomeChange.Div(twelve).Round(0)))
	}

	return buf.Bytes(), nil
}

func writeDetailedResult(buf *bytes.Buffer, r *domain.Result, period domain.Period) {
	amount := func(d decimal.Decimal) string { return FormatCurrency(PeriodAmount(d, period)) }
	ctc := r.Breakup.CTC

	fmt.Fprintf(buf, "CTC:                    %s\n", FormatCurrency(ctc))
	fmt.Fprintf(buf, "Tax Regime:             %s (%s, %s)\n", r.Regime,
		dateutil.FinancialYearLabel(r.FinancialYear), dateutil.AssessmentYearLabel(r.FinancialYear))
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "EARNINGS:")
	for _, e := range r.Breakup.Earnings {
		fmt.Fprintf(buf, "  %-28s %14s  %5s%%%s\n", e.Name, amount(e.Amount()),
			PercentOfCTC(e.Amount(), ctc).StringFixed(1), disabledMark(e.Disabled()))
	}
	fmt.Fprintf(buf, "  %-28s %14s\n", "GROSS SALARY", amount(r.Breakup.GrossSalary))
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "DEDUCTIONS:")
	fmt.Fprintf(buf, "  %-28s %14s\n", "Standard Deduction", amount(r.Tax.StandardDeduction))
	if !r.HomeLoan.Deduction.IsZero() {
		fmt.Fprintf(buf, "  %-28s %14s\n", "Home Loan Interest (net)", amount(r.HomeLoan.Deduction))
	}
	for _, d := range r.DisplayDeductions {
		fmt.Fprintf(buf, "  %-28s %14s%s\n", d.Name, amount(d.Amount()), disabledMark(d.Disabled()))
	}
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "TAX CALCULATION:")
	fmt.Fprintf(buf, "  Net Taxable Income:    %s\n", FormatCurrency(r.Tax.NetTaxableIncome))
	fmt.Fprintf(buf, "  %-30s %6s %14s %12s\n", "Slab", "Rate", "Taxable", "Tax")
	for _, s := range r.TaxSlabs {
		fmt.Fprintf(buf, "  %-30s %6s %14s %12s\n", slabRange(s, FormatCurrency), FormatRate(s.Rate),
			FormatCurrency(s.Taxable), FormatCurrency(s.Tax))
	}
	fmt.Fprintf(buf, "  Total Tax:             %s\n", FormatCurrency(r.Tax.Tax))
	if r.Tax.RebateApplied {
		fmt.Fprintln(buf, "  (rebate u/s 87A applied)")
	}
	fmt.Fprintf(buf, "  Cess (%s):             %s\n", FormatRate(cessRate(r.Tax)), FormatCurrency(r.Tax.Cess))
	fmt.Fprintf(buf, "  Total Income Tax:      %s\n", FormatCurrency(r.Tax.TotalTax))
	fmt.Fprintln(buf)

	s := r.Summary
	fmt.Fprintln(buf, "SUMMARY:")
	fmt.Fprintf(buf, "  Gross Salary:          %s\n", amount(s.GrossSalary))
	fmt.Fprintf(buf, "  Total Deductions:      %s\n", amount(s.TotalDeductions))
	fmt.Fprintf(buf, "  Net Take Home:         %s\n", amount(s.NetAnnualSalary))
	fmt.Fprintf(buf, "  Net Monthly Salary:    %s\n", FormatCurrency(s.NetMonthlySalary))
	if !s.PerformanceBonus.IsZero() {
		fmt.Fprintln(buf)
		fmt.Fprintln(buf, "PERFORMANCE BONUS:")
		fmt.Fprintf(buf, "  Target Bonus:          %s\n", FormatCurrency(s.PerformanceBonus))
		fmt.Fprintf(buf, "  Expected Payout:       %s (%s%%)\n", FormatCurrency(s.RealisticIncentive), r.RealisticPayout.String())
		fmt.Fprintf(buf, "  Tax on Bonus (%s):    %s\n", FormatRate(s.BonusTaxRate), FormatCurrency(s.TaxOnIncentive))
		fmt.Fprintf(buf, "  Post-tax Bonus:        %s\n", FormatCurrency(s.PostTaxIncentive))
		fmt.Fprintf(buf, "  Monthly Base:          %s\n", FormatCurrency(s.MonthlyBase.Round(0)))
		fmt.Fprintf(buf, "  Monthly Incentive:     %s\n", FormatCurrency(s.MonthlyIncentive.Round(0)))
	}

	m := ComputeMetrics(r)
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "WHERE THE CTC GOES:")
	fmt.Fprintf(buf, "  Total Tax:             %s (%s%%)\n", FormatCurrency(m.TotalTax.Amount), m.TotalTax.Percent.StringFixed(1))
	fmt.Fprintf(buf, "  Fixed In-hand:         %s (%s%%)\n", FormatCurrency(m.FixedInHand.Amount), m.FixedInHand.Percent.StringFixed(1))
	fmt.Fprintf(buf, "  Bonus:                 %s (%s%%)\n", FormatCurrency(m.Bonus.Amount), m.Bonus.Percent.StringFixed(1))
	fmt.Fprintf(buf, "  Other:                 %s (%s%%)\n", FormatCurrency(m.Other.Amount), m.Other.Percent.StringFixed(1))
}

func disabledMark(disabled bool) string {
	if disabled {
		return "  (disabled)"
	}
	return ""
}

// signed prefixes positive amounts with "+".
func signed(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + FormatCurrency(d)
	}
	return FormatCurrency(d)
}
