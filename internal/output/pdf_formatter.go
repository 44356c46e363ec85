package output

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/paycalc/ctc-calculator/internal/domain"
	"github.com/paycalc/ctc-calculator/pkg/dateutil"
)

// PDFFormatter renders a printable A4 report, one page per scenario. The
// core PDF fonts have no rupee glyph, so amounts are written as "Rs.".
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

func rs(d decimal.Decimal) string { return "Rs. " + FormatPlain(d) }

func (p PDFFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("CTC Breakdown", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	period := results.Period

	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 11)
		pdf.CellFormat(110, 7, tr(label), "B", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, value, "B", 1, "R", false, 0, "")
	}
	heading := func(text string) {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, tr(text))
		pdf.Ln(9)
	}

	for i, r := range results.Results {
		amount := func(d decimal.Decimal) string { return rs(PeriodAmount(d, period)) }
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 16)
		pdf.Cell(0, 10, tr(fmt.Sprintf("CTC Breakdown: %s", scenarioName(r, i))))
		pdf.Ln(12)
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 6, fmt.Sprintf("CTC %s, %s regime, %s, %s amounts", rs(r.Breakup.CTC), r.Regime, dateutil.FinancialYearLabel(r.FinancialYear), PeriodLabel(period)))
		pdf.Ln(8)

		heading("Earnings")
		for _, e := range r.Breakup.Earnings {
			row(e.Name+disabledMark(e.Disabled()), amount(e.Amount()), false)
		}
		row("Gross Salary", amount(r.Breakup.GrossSalary), true)

		heading("Deductions")
		row("Standard Deduction", amount(r.Tax.StandardDeduction), false)
		if !r.HomeLoan.Deduction.IsZero() {
			row("Home Loan Interest (net)", amount(r.HomeLoan.Deduction), false)
		}
		for _, d := range r.DisplayDeductions {
			row(d.Name+disabledMark(d.Disabled()), amount(d.Amount()), false)
		}

		heading("Income Tax")
		for _, s := range r.TaxSlabs {
			row(fmt.Sprintf("%s @ %s", slabRange(s, rs), FormatRate(s.Rate)), rs(s.Tax), false)
		}
		row("Cess", rs(r.Tax.Cess), false)
		row("Total Income Tax", rs(r.Tax.TotalTax), true)

		s := r.Summary
		heading("Take Home")
		row("Total Deductions", amount(s.TotalDeductions), false)
		row("Net Take Home", amount(s.NetAnnualSalary), true)
		row("Net Monthly Salary", rs(s.NetMonthlySalary), false)
		if !s.PerformanceBonus.IsZero() {
			row("Post-tax Bonus (expected)", rs(s.PostTaxIncentive), false)
		}
	}

	if len(results.Results) > 1 {
		rec := AnalyzeScenarios(results)
		pdf.AddPage()
		heading("Recommendation")
		row("Best scenario", tr(rec.ScenarioName), true)
		row("Net Annual Salary", rs(rec.NetAnnual), false)
		row("Change vs first scenario", rs(rec.NetIncomeChange), false)
	}

	heading("Assumptions")
	pdf.SetFont("Helvetica", "", 9)
	for _, a := range assumptionsFor(results) {
		pdf.MultiCell(0, 5, tr("- "+a), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
