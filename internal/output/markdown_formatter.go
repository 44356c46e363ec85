package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/paycalc/ctc-calculator/internal/domain"
	"github.com/paycalc/ctc-calculator/pkg/dateutil"
)

// MarkdownFormatter renders the detailed report as GitHub-flavoured markdown.
// The HTML report is built from the same document.
type MarkdownFormatter struct{}

func (m MarkdownFormatter) Name() string { return "markdown" }

func (m MarkdownFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	period := results.Period

	fmt.Fprintln(&buf, "# CTC Breakdown")
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Amounts are shown %s.\n\n", strings.ToLower(PeriodLabel(period)))

	if len(results.Results) > 1 {
		writeMarkdownComparison(&buf, results)
	}

	for i, r := range results.Results {
		writeMarkdownResult(&buf, r, i, period)
	}

	fmt.Fprintln(&buf, "## Assumptions")
	fmt.Fprintln(&buf)
	for _, a := range assumptionsFor(results) {
		fmt.Fprintf(&buf, "- %s\n", a)
	}
	return buf.Bytes(), nil
}

func writeMarkdownComparison(buf *bytes.Buffer, results *domain.ScenarioComparison) {
	fmt.Fprintln(buf, "## Comparison")
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "| Scenario | CTC | Gross | Income Tax | Net Annual | Net Monthly |")
	fmt.Fprintln(buf, "|---|---:|---:|---:|---:|---:|")
	for i, r := range results.Results {
		s := r.Summary
		fmt.Fprintf(buf, "| %s | %s | %s | %s | %s | %s |\n", mdEscape(scenarioName(r, i)),
			FormatCurrency(r.Breakup.CTC), FormatCurrency(s.GrossSalary), FormatCurrency(r.Tax.TotalTax),
			FormatCurrency(s.NetAnnualSalary), FormatCurrency(s.NetMonthlySalary))
	}
	rec := AnalyzeScenarios(results)
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "**Recommended:** %s, %s net a year (%s, %s vs %s).\n\n", mdEscape(rec.ScenarioName),
		FormatCurrency(rec.NetAnnual), signed(rec.NetIncomeChange), FormatPercentage(rec.PercentageChange),
		mdEscape(scenarioName(results.Results[0], 0)))
}

func writeMarkdownResult(buf *bytes.Buffer, r *domain.Result, idx int, period domain.Period) {
	amount := func(d decimal.Decimal) string { return FormatCurrency(PeriodAmount(d, period)) }
	ctc := r.Breakup.CTC
	label := PeriodLabel(period)

	fmt.Fprintf(buf, "## %s\n\n", mdEscape(scenarioName(r, idx)))
	fmt.Fprintf(buf, "CTC %s, %s regime, %s.\n\n", FormatCurrency(ctc), r.Regime, dateutil.FinancialYearLabel(r.FinancialYear))

	fmt.Fprintln(buf, "### Earnings")
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "| Component | %s | %% of CTC |\n", label)
	fmt.Fprintln(buf, "|---|---:|---:|")
	for _, e := range r.Breakup.Earnings {
		fmt.Fprintf(buf, "| %s%s | %s | %s%% |\n", mdEscape(e.Name), disabledMark(e.Disabled()),
			amount(e.Amount()), PercentOfCTC(e.Amount(), ctc).StringFixed(1))
	}
	fmt.Fprintf(buf, "| **Gross Salary** | **%s** | %s%% |\n\n", amount(r.Breakup.GrossSalary),
		PercentOfCTC(r.Breakup.GrossSalary, ctc).StringFixed(1))

	fmt.Fprintln(buf, "### Deductions")
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "| Deduction | %s |\n", label)
	fmt.Fprintln(buf, "|---|---:|")
	fmt.Fprintf(buf, "| Standard Deduction | %s |\n", amount(r.Tax.StandardDeduction))
	if !r.HomeLoan.Deduction.IsZero() {
		fmt.Fprintf(buf, "| Home Loan Interest (net) | %s |\n", amount(r.HomeLoan.Deduction))
	}
	for _, d := range r.DisplayDeductions {
		fmt.Fprintf(buf, "| %s%s | %s |\n", mdEscape(d.Name), disabledMark(d.Disabled()), amount(d.Amount()))
	}
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "### Income Tax")
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "Net taxable income: %s\n\n", FormatCurrency(r.Tax.NetTaxableIncome))
	fmt.Fprintln(buf, "| Slab | Rate | Taxable | Tax |")
	fmt.Fprintln(buf, "|---|---:|---:|---:|")
	for _, s := range r.TaxSlabs {
		fmt.Fprintf(buf, "| %s | %s | %s | %s |\n", slabRange(s, FormatCurrency), FormatRate(s.Rate),
			FormatCurrency(s.Taxable), FormatCurrency(s.Tax))
	}
	fmt.Fprintf(buf, "| Total Tax | | | %s |\n", FormatCurrency(r.Tax.Tax))
	fmt.Fprintf(buf, "| Cess | %s | | %s |\n", FormatRate(cessRate(r.Tax)), FormatCurrency(r.Tax.Cess))
	fmt.Fprintf(buf, "| **Total Income Tax** | | | **%s** |\n\n", FormatCurrency(r.Tax.TotalTax))
	if r.Tax.RebateApplied {
		fmt.Fprintln(buf, "_Rebate u/s 87A applied._")
		fmt.Fprintln(buf)
	}

	s := r.Summary
	fmt.Fprintln(buf, "### Summary")
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "- Gross Salary: %s\n", amount(s.GrossSalary))
	fmt.Fprintf(buf, "- Total Deductions: %s\n", amount(s.TotalDeductions))
	fmt.Fprintf(buf, "- **Net Take Home: %s**\n", amount(s.NetAnnualSalary))
	fmt.Fprintf(buf, "- Net Monthly Salary: %s\n", FormatCurrency(s.NetMonthlySalary))
	if !s.PerformanceBonus.IsZero() {
		fmt.Fprintf(buf, "- Bonus: %s target, %s expected at %s%%, %s after %s tax\n",
			FormatCurrency(s.PerformanceBonus), FormatCurrency(s.RealisticIncentive), r.RealisticPayout.String(),
			FormatCurrency(s.PostTaxIncentive), FormatRate(s.BonusTaxRate))
	}
	fmt.Fprintln(buf)
}

// cessRate recovers the applied cess rate; 4% when no tax was due.
func cessRate(t domain.TaxResult) decimal.Decimal {
	if t.Tax.IsZero() {
		return decimal.NewFromFloat(0.04)
	}
	return t.Cess.Div(t.Tax).Round(2)
}

var mdReplacer = strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`)

func mdEscape(s string) string { return mdReplacer.Replace(s) }
