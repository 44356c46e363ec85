package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	calc "github.com/paycalc/ctc-calculator/internal/calculation"
	"github.com/paycalc/ctc-calculator/internal/domain"
	money "github.com/paycalc/ctc-calculator/pkg/decimal"
)

// Prints one CSV row per CTC step so tax cliffs (the rebate edge, the
// bonus-rate jump above 24L) can be plotted.
func main() {
	if len(os.Args) < 4 {
		fmt.Println("usage: ctc_sweep <from> <to> <step> [bonus]")
		return
	}
	from := mustParse(os.Args[1])
	to := mustParse(os.Args[2])
	step := mustParse(os.Args[3])
	bonus := decimal.Zero
	if len(os.Args) > 4 {
		bonus = mustParse(os.Args[4])
	}
	if !step.IsPositive() {
		fmt.Println("step must be positive")
		return
	}

	engine := calc.NewCalculationEngine()
	fmt.Println("CTC,Gross,NetTaxable,IncomeTax,BonusTaxRate,NetAnnual,NetMonthly,MarginalKeep")

	var prevNet decimal.Decimal
	for ctc := from; ctc.LessThanOrEqual(to); ctc = ctc.Add(step) {
		r := engine.Recompute(domain.Inputs{
			CTC:                    ctc,
			Earnings:               domain.DefaultEarnings(),
			BonusAmount:            bonus,
			RealisticPayoutPercent: domain.DefaultRealisticPayoutPercent,
			PFCapEnabled:           true,
			Regime:                 domain.RegimeNew,
		})
		// share of the extra CTC that reaches the employee
		keep := ""
		if !ctc.Equal(from) {
			keep = r.Summary.NetAnnualSalary.Sub(prevNet).Div(step).StringFixed(3)
		}
		prevNet = r.Summary.NetAnnualSalary
		fmt.Printf("%s,%s,%s,%s,%s,%s,%s,%s\n",
			ctc.StringFixed(0),
			r.Breakup.GrossSalary.StringFixed(0),
			r.Tax.NetTaxableIncome.StringFixed(0),
			r.Tax.TotalTax.StringFixed(2),
			r.Summary.BonusTaxRate.StringFixed(2),
			r.Summary.NetAnnualSalary.StringFixed(0),
			r.Summary.NetMonthlySalary.StringFixed(0),
			keep)
	}
}

func mustParse(s string) decimal.Decimal {
	m, err := money.ParseINR(s)
	if err != nil {
		panic(err)
	}
	return m.Decimal
}
