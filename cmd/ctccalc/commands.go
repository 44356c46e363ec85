package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/paycalc/ctc-calculator/internal/config"
	"github.com/paycalc/ctc-calculator/internal/domain"
	"github.com/paycalc/ctc-calculator/internal/output"
	money "github.com/paycalc/ctc-calculator/pkg/decimal"
	"github.com/paycalc/ctc-calculator/pkg/dateutil"
)

// reportFlags are shared by commands that print a report.
type reportFlags struct {
	format string
	period string
	outDir string
}

func (rf *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&rf.format, "format", "f", "", "output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().StringVarP(&rf.period, "period", "p", "", "show amounts yearly or monthly")
	cmd.Flags().StringVarP(&rf.outDir, "out", "o", "", "write the report to a file in this directory instead of stdout")
}

// emit renders the comparison. Reports go to stdout unless a directory is
// given; PDF always goes to a file.
func (a *app) emit(cmd *cobra.Command, rf reportFlags, cmp *domain.ScenarioComparison) error {
	format := rf.format
	if format == "" {
		format = a.settings.Output.Format
	}
	period := a.settings.Output.Period
	if rf.period != "" {
		p, err := domain.ParsePeriod(rf.period)
		if err != nil {
			return err
		}
		period = p
	}
	cmp.Period = period

	f := output.GetFormatterByName(format)
	if f == nil && output.NormalizeFormatName(format) != "all" {
		// GenerateReport fails before writing and lists the known formats
		_, err := output.GenerateReport(cmp, format, "")
		return err
	}

	dir := rf.outDir
	if dir == "" && (f == nil || f.Name() == "pdf") {
		dir = a.settings.Output.Dir
	}
	if dir != "" {
		files, err := output.GenerateReport(cmp, format, dir)
		if err != nil {
			return err
		}
		for _, name := range files {
			a.logger.Info("report written", zap.String("file", name))
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", name)
		}
		return nil
	}

	data, err := f.Format(cmp)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func newCalculateCmd(a *app) *cobra.Command {
	var rf reportFlags
	cmd := &cobra.Command{
		Use:   "calculate <offer.yaml> [more offers...]",
		Short: "Break down one or more offers and compare them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			configs := make([]*domain.Configuration, 0, len(args))
			for _, path := range args {
				cfg, err := parser.LoadFromFile(path)
				if err != nil {
					return err
				}
				a.logger.Debug("loaded offer", zap.String("file", path), zap.String("name", cfg.Name))
				configs = append(configs, cfg)
			}

			engine, err := a.engine()
			if err != nil {
				return err
			}
			cmp, err := engine.RunScenarios(cmd.Context(), configs)
			if err != nil {
				return err
			}
			cmp.Assumptions = output.GenerateAssumptions(engine.Rules)
			return a.emit(cmd, rf, cmp)
		},
	}
	rf.register(cmd)
	return cmd
}

func newQuickCmd(a *app) *cobra.Command {
	var (
		rf                         reportFlags
		ctc, bonus, interest, rent string
		payout                     float64
		noPFCap                    bool
		name                       string
	)
	cmd := &cobra.Command{
		Use:   "quick",
		Short: "Break down a single CTC given on the command line",
		Example: "  ctccalc quick --ctc 18,00,000 --bonus 1,50,000\n" +
			"  ctccalc quick --ctc 3000000 --period monthly --format markdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &domain.Configuration{Name: name, Regime: string(domain.RegimeNew)}
			var err error
			if cfg.CTC, err = money.ParseINR(ctc); err != nil {
				return fmt.Errorf("--ctc: %w", err)
			}
			if cfg.Bonus, err = parseOptional(bonus); err != nil {
				return fmt.Errorf("--bonus: %w", err)
			}
			if cfg.HomeLoan.InterestPaid, err = parseOptional(interest); err != nil {
				return fmt.Errorf("--interest: %w", err)
			}
			if cfg.HomeLoan.RentReceived, err = parseOptional(rent); err != nil {
				return fmt.Errorf("--rent: %w", err)
			}
			pct := decimal.NewFromFloat(payout)
			cfg.RealisticPayoutPercent = &pct
			capPF := !noPFCap
			cfg.PFCapEnabled = &capPF

			if err := config.NewInputParser().ValidateConfiguration(cfg); err != nil {
				return err
			}
			engine, err := a.engine()
			if err != nil {
				return err
			}
			cmp, err := engine.RunScenarios(cmd.Context(), []*domain.Configuration{cfg})
			if err != nil {
				return err
			}
			cmp.Assumptions = output.GenerateAssumptions(engine.Rules)
			return a.emit(cmd, rf, cmp)
		},
	}
	cmd.Flags().StringVar(&ctc, "ctc", "", "annual cost to company, e.g. 12,00,000")
	cmd.Flags().StringVar(&bonus, "bonus", "", "annual performance bonus")
	cmd.Flags().Float64Var(&payout, "payout", domain.DefaultRealisticPayoutPercent.InexactFloat64(), "expected bonus payout percent")
	cmd.Flags().StringVar(&interest, "interest", "", "home loan interest paid on a let-out property")
	cmd.Flags().StringVar(&rent, "rent", "", "rent received from that property")
	cmd.Flags().BoolVar(&noPFCap, "no-pf-cap", false, "take PF on full basic (pf_cap_toggle profile only)")
	cmd.Flags().StringVar(&name, "name", "Offer", "scenario name shown in the report")
	_ = cmd.MarkFlagRequired("ctc")
	rf.register(cmd)
	return cmd
}

func parseOptional(s string) (money.Money, error) {
	if strings.TrimSpace(s) == "" {
		return money.Zero(), nil
	}
	return money.ParseINR(s)
}

func newTaxCmd(a *app) *cobra.Command {
	var income, regime string
	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Compute income tax on an annual income",
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := money.ParseINR(income)
			if err != nil {
				return fmt.Errorf("--income: %w", err)
			}
			r, err := domain.ParseRegime(regime)
			if err != nil {
				return err
			}
			engine, err := a.engine()
			if err != nil {
				return err
			}

			fy := engine.Rules.Metadata.FinancialYear
			if current := dateutil.FinancialYear(time.Now()); current != fy {
				a.logger.Warn("rules are for a different financial year",
					zap.String("rules", dateutil.FinancialYearLabel(fy)),
					zap.String("current", dateutil.FinancialYearLabel(current)))
			}
			start, end := dateutil.FinancialYearBounds(fy)

			res := engine.TaxCalc.ComputeTax(amount.Decimal, r)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s (%s to %s), %s, %s regime\n", dateutil.FinancialYearLabel(fy),
				start.Format("02 Jan 2006"), end.Format("02 Jan 2006"), dateutil.AssessmentYearLabel(fy), res.Regime)
			fmt.Fprintf(w, "Income:              %s\n", output.FormatCurrency(amount.Decimal))
			fmt.Fprintf(w, "Standard Deduction:  %s\n", output.FormatCurrency(res.StandardDeduction))
			fmt.Fprintf(w, "Net Taxable Income:  %s\n", output.FormatCurrency(res.NetTaxableIncome))
			for _, s := range engine.TaxCalc.SlabBreakdown(res.NetTaxableIncome, r) {
				if s.Taxable.IsZero() {
					continue
				}
				fmt.Fprintf(w, "  %-5s on %14s = %s\n", output.FormatRate(s.Rate), output.FormatCurrency(s.Taxable), output.FormatCurrency(s.Tax))
			}
			if res.RebateApplied {
				fmt.Fprintln(w, "Rebate u/s 87A:      applied")
			}
			fmt.Fprintf(w, "Tax:                 %s\n", output.FormatCurrency(res.Tax))
			fmt.Fprintf(w, "Cess:                %s\n", output.FormatCurrency(res.Cess))
			fmt.Fprintf(w, "Total Tax:           %s\n", output.FormatCurrency(res.TotalTax))
			return nil
		},
	}
	cmd.Flags().StringVar(&income, "income", "", "annual income before the standard deduction")
	cmd.Flags().StringVar(&regime, "regime", string(domain.RegimeNew), "tax regime: new or old")
	_ = cmd.MarkFlagRequired("income")
	return cmd
}

func newExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example [file]",
		Short: "Write an example offer file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "example_offer.yaml"
			if len(args) == 1 {
				filename = args[0]
			}
			if _, err := os.Stat(filename); err == nil {
				return fmt.Errorf("%s already exists", filename)
			}
			cfg := config.NewInputParser().CreateExampleConfiguration()
			if err := output.SaveConfiguration(cfg, filename); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example offer written to %s\n", filename)
			return nil
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <offer.yaml> [more offers...]",
		Short: "Check offer files without computing anything",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			var failed int
			for _, path := range args {
				if _, err := parser.LoadFromFile(path); err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files invalid", failed, len(args))
			}
			return nil
		},
	}
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List output formats and their aliases",
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Formats:")
			for _, name := range output.AvailableFormatterNames() {
				fmt.Fprintf(w, "  %s\n", name)
			}
			fmt.Fprintln(w, "Aliases:")
			for _, alias := range output.AvailableFormatAliases() {
				fmt.Fprintf(w, "  %s -> %s\n", alias, output.NormalizeFormatName(alias))
			}
		},
	}
}
