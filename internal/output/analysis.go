package output

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/paycalc/ctc-calculator/internal/domain"
)

// MetricShare is one slice of the CTC split, in rupees and percent of CTC.
type MetricShare struct {
	Amount  decimal.Decimal `json:"amount"`
	Percent decimal.Decimal `json:"percent"`
}

// Metrics splits the CTC into where the money goes: income tax, fixed
// in-hand pay, the bonus and everything else (PF, gratuity, other
// deductions).
type Metrics struct {
	TotalTax    MetricShare `json:"total_tax"`
	FixedInHand MetricShare `json:"fixed_in_hand"`
	Bonus       MetricShare `json:"bonus"`
	Other       MetricShare `json:"other"`
}

// ComputeMetrics derives the CTC split for one result. Amounts are rounded
// to the rupee and percentages to one decimal.
func ComputeMetrics(r *domain.Result) Metrics {
	ctc := r.Breakup.CTC
	totalTax := r.Tax.TotalTax.Round(0)
	bonus := r.Summary.PerformanceBonus.Round(0)
	fixedInHand := decimal.Max(decimal.Zero, r.Summary.NetAnnualSalary.Sub(bonus)).Round(0)
	other := ctc.Sub(totalTax).Sub(fixedInHand).Sub(bonus).Round(0)

	share := func(v decimal.Decimal) MetricShare {
		return MetricShare{Amount: v, Percent: PercentOfCTC(v, ctc)}
	}
	return Metrics{
		TotalTax:    share(totalTax),
		FixedInHand: share(fixedInHand),
		Bonus:       share(bonus),
		Other:       share(other),
	}
}

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName     string
	NetAnnual        decimal.Decimal
	NetIncomeChange  decimal.Decimal
	PercentageChange decimal.Decimal
}

// AnalyzeScenarios picks the offer with the highest net annual salary and
// compares it with the first offer, which serves as the baseline. Ties keep
// input order.
func AnalyzeScenarios(results *domain.ScenarioComparison) Recommendation {
	if results == nil || len(results.Results) == 0 {
		return Recommendation{}
	}
	ranks := make([]int, len(results.Results))
	for i := range ranks {
		ranks[i] = i
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		return results.Results[ranks[i]].Summary.NetAnnualSalary.GreaterThan(results.Results[ranks[j]].Summary.NetAnnualSalary)
	})
	best := results.Results[ranks[0]]
	baseline := results.Results[0].Summary.NetAnnualSalary
	delta := best.Summary.NetAnnualSalary.Sub(baseline)
	pct := decimal.Zero
	if !baseline.IsZero() {
		pct = delta.Div(baseline).Mul(hundred)
	}
	return Recommendation{
		ScenarioName:     scenarioName(best, ranks[0]),
		NetAnnual:        best.Summary.NetAnnualSalary,
		NetIncomeChange:  delta,
		PercentageChange: pct,
	}
}

// scenarioName falls back to a positional name for unnamed offers.
func scenarioName(r *domain.Result, idx int) string {
	if r.Name != "" {
		return r.Name
	}
	return "Offer " + string(rune('A'+idx%26))
}
