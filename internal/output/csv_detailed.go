package output

import (
	"bytes"
	"encoding/csv"

	"github.com/paycalc/ctc-calculator/internal/domain"
)

// CSVDetailedExporter writes one row per line item of every scenario:
// earnings, deductions (income tax included) and tax slabs. Amounts follow
// the comparison period.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Section", "ID", "Name", "Amount", "PercentOfCTC", "Disabled"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	period := results.Period
	for i, r := range results.Results {
		name := scenarioName(r, i)
		ctc := r.Breakup.CTC
		var rows [][]string
		for _, e := range r.Breakup.Earnings {
			rows = append(rows, []string{name, "earning", e.ID, e.Name,
				PeriodAmount(e.Amount(), period).StringFixed(2),
				PercentOfCTC(e.Amount(), ctc).StringFixed(1),
				boolToString(e.Disabled())})
		}
		for _, d := range r.DisplayDeductions {
			rows = append(rows, []string{name, "deduction", d.ID, d.Name,
				PeriodAmount(d.Amount(), period).StringFixed(2),
				PercentOfCTC(d.Amount(), ctc).StringFixed(1),
				boolToString(d.Disabled())})
		}
		for n, s := range r.TaxSlabs {
			rows = append(rows, []string{name, "slab", "slab_" + intToString(n+1), slabRange(s, FormatPlain) + " @ " + FormatRate(s.Rate),
				s.Tax.StringFixed(2), "", "false"})
		}
		rows = append(rows, []string{name, "summary", "net_annual", "Net Annual Salary",
			PeriodAmount(r.Summary.NetAnnualSalary, period).StringFixed(2),
			PercentOfCTC(r.Summary.NetAnnualSalary, ctc).StringFixed(1), "false"})
		if err := w.WriteAll(rows); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
