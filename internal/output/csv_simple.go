package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/paycalc/ctc-calculator/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "CTC", "GrossSalary", "TotalDeductions", "IncomeTax", "BonusTaxRate", "PostTaxBonus", "NetAnnualSalary", "NetMonthlySalary", "TaxPercentOfCTC", "InHandPercentOfCTC"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i, r := range results.Results {
		s := r.Summary
		m := ComputeMetrics(r)
		row := []string{
			scenarioName(r, i),
			r.Breakup.CTC.StringFixed(2),
			s.GrossSalary.StringFixed(2),
			s.TotalDeductions.StringFixed(2),
			r.Tax.TotalTax.StringFixed(2),
			s.BonusTaxRate.StringFixed(2),
			s.PostTaxIncentive.StringFixed(2),
			s.NetAnnualSalary.StringFixed(2),
			s.NetMonthlySalary.StringFixed(2),
			m.TotalTax.Percent.StringFixed(1),
			m.FixedInHand.Percent.StringFixed(1),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
