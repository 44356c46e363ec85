package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/paycalc/ctc-calculator/internal/calculation"
	"github.com/paycalc/ctc-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed regulatory.yaml
var embeddedRegulatory []byte

// LoadRegulatory reads a rule file. An empty path loads the rules compiled
// into the binary.
func LoadRegulatory(path string) (domain.Rules, error) {
	data := embeddedRegulatory
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return domain.Rules{}, fmt.Errorf("failed to read regulatory file %s: %w", path, err)
		}
		data = b
	}
	return ParseRegulatory(data)
}

// ParseRegulatory decodes and checks a YAML rule set. The file is decoded
// over the built-in rules, so keys it leaves out keep their statutory values.
// A regime or band list that is present replaces the built-in one whole.
func ParseRegulatory(data []byte) (domain.Rules, error) {
	rules := calculation.DefaultRules()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return domain.Rules{}, fmt.Errorf("failed to parse regulatory YAML: %w", err)
	}
	if err := ValidateRules(rules); err != nil {
		return domain.Rules{}, fmt.Errorf("regulatory validation failed: %w", err)
	}
	return rules, nil
}

// ValidateRules checks that every slab table is contiguous and ascending with
// only the last slab open ended.
func ValidateRules(rules domain.Rules) error {
	for regime, r := range rules.Regimes {
		if _, err := domain.ParseRegime(string(regime)); err != nil {
			return err
		}
		if len(r.Brackets) == 0 {
			return fmt.Errorf("regime %s has no brackets", regime)
		}
		if r.StandardDeduction.IsNegative() || r.RebateLimit.IsNegative() {
			return fmt.Errorf("regime %s: standard deduction and rebate limit cannot be negative", regime)
		}
		prevMax := decimal.Zero
		for i, b := range r.Brackets {
			if !b.Min.Equal(prevMax) {
				return fmt.Errorf("regime %s bracket %d starts at %s, want %s", regime, i+1, b.Min, prevMax)
			}
			last := i == len(r.Brackets)-1
			if b.Unbounded() && !last {
				return fmt.Errorf("regime %s bracket %d is open ended but not last", regime, i+1)
			}
			if !b.Unbounded() && b.Max.LessThanOrEqual(b.Min) {
				return fmt.Errorf("regime %s bracket %d max must exceed min", regime, i+1)
			}
			if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
				return fmt.Errorf("regime %s bracket %d rate must be between 0 and 1", regime, i+1)
			}
			prevMax = b.Max
		}
	}
	if rules.CessRate.IsNegative() {
		return fmt.Errorf("cess rate cannot be negative")
	}
	if rules.ProvidentFund.AnnualCap.IsNegative() {
		return fmt.Errorf("provident fund cap cannot be negative")
	}
	prev := decimal.Zero
	for i, band := range rules.BonusTax.Bands {
		if i > 0 && band.Above.GreaterThanOrEqual(prev) {
			return fmt.Errorf("bonus tax bands must be listed from the highest threshold down")
		}
		prev = band.Above
	}
	return nil
}
