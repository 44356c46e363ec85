package output

import (
	"bytes"
	"fmt"

	"github.com/paycalc/ctc-calculator/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "CTC SUMMARY")
	fmt.Fprintln(&buf, "================================")
	for i, r := range results.Results {
		s := r.Summary
		fmt.Fprintf(&buf, "%s: CTC=%s Gross=%s Tax=%s\n",
			scenarioName(r, i),
			FormatCurrency(r.Breakup.CTC),
			FormatCurrency(s.GrossSalary),
			FormatCurrency(r.Tax.TotalTax),
		)
		fmt.Fprintf(&buf, "  NetAnnual=%s NetMonthly=%s PostTaxBonus=%s\n",
			FormatCurrency(s.NetAnnualSalary), FormatCurrency(s.NetMonthlySalary), FormatCurrency(s.PostTaxIncentive))
	}
	if len(results.Results) > 1 {
		rec := AnalyzeScenarios(results)
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (Δ %s / %s)\n", rec.ScenarioName, FormatCurrency(rec.NetIncomeChange), FormatPercentage(rec.PercentageChange))
	}
	return buf.Bytes(), nil
}
