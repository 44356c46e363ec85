// Command ctccalc breaks a cost-to-company offer down into salary
// components, income tax and monthly take-home pay.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/paycalc/ctc-calculator/internal/calculation"
	"github.com/paycalc/ctc-calculator/internal/config"
	"github.com/paycalc/ctc-calculator/internal/domain"
	"github.com/paycalc/ctc-calculator/internal/logging"
)

var version = "dev"

// app carries what every subcommand needs once settings are loaded.
type app struct {
	settingsFile string
	logLevel     string
	profile      string
	regulatory   string

	settings *config.Settings
	logger   *zap.Logger
	closeLog func() error
}

func main() {
	root, a := newRootCmd()
	err := root.Execute()
	a.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	root := &cobra.Command{
		Use:           "ctccalc",
		Short:         "Indian CTC breakdown and take-home calculator",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.settingsFile, "config", "", "settings file (default ./ctccalc.yaml)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&a.profile, "profile", "", "calculation profile: home_loan or pf_cap_toggle")
	flags.StringVar(&a.regulatory, "regulatory", "", "YAML file with tax and payroll rules")

	root.AddCommand(
		newCalculateCmd(a),
		newQuickCmd(a),
		newTaxCmd(a),
		newExampleCmd(),
		newValidateCmd(),
		newFormatsCmd(),
	)
	return root, a
}

// init loads .env, then settings, then builds the logger. Flags win over
// settings.
func (a *app) init() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	settings, err := config.LoadSettings(a.settingsFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		settings.Log.Level = a.logLevel
	}
	if a.profile != "" {
		p, err := domain.ParseProfile(a.profile)
		if err != nil {
			return err
		}
		settings.Profile = p
	}
	if a.regulatory != "" {
		settings.RegulatoryFile = a.regulatory
	}
	a.settings = settings

	logger, closeLog, err := logging.New(logging.Config{
		Level:  settings.Log.Level,
		Format: settings.Log.Format,
		Output: settings.Log.Output,
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.logger = logger
	a.closeLog = closeLog
	return nil
}

// close flushes and releases the log output. Safe to call when init never ran.
func (a *app) close() {
	if a.closeLog != nil {
		_ = a.closeLog()
		a.closeLog = nil
	}
}

// engine builds a calculation engine from the active rules and profile.
func (a *app) engine() (*calculation.CalculationEngine, error) {
	rules, err := config.LoadRegulatory(a.settings.RegulatoryFile)
	if err != nil {
		return nil, err
	}
	if a.settings.RegulatoryFile != "" {
		a.logger.Info("loaded regulatory rules",
			zap.String("file", a.settings.RegulatoryFile),
			zap.Int("financial_year", rules.Metadata.FinancialYear))
	}
	engine := calculation.NewCalculationEngineWithRules(rules, a.settings.Profile)
	engine.SetLogger(logging.ForEngine(a.logger))
	return engine, nil
}
