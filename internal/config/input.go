package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hjson/hjson-go/v4"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/paycalc/ctc-calculator/internal/domain"
	money "github.com/paycalc/ctc-calculator/pkg/decimal"
)

// ErrUnsupportedInput is returned for scenario files of an unknown type.
var ErrUnsupportedInput = errors.New("unsupported input format")

// InputParser handles parsing of scenario files
type InputParser struct {
	validate *validator.Validate
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	v := validator.New()
	// report fields by their YAML names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, money.Money{})
	return &InputParser{validate: v}
}

// decimalValue lets gte/lte tags compare decimal amounts.
func decimalValue(field reflect.Value) any {
	switch v := field.Interface().(type) {
	case decimal.Decimal:
		f, _ := v.Float64()
		return f
	case money.Money:
		f, _ := v.Float64()
		return f
	}
	return nil
}

// LoadFromFile loads a scenario from a YAML, JSON or HJSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data, filepath.Ext(filename))
}

// Parse decodes a scenario in the format named by ext (".yaml", "json", ...)
// and validates it.
func (ip *InputParser) Parse(data []byte, ext string) (*domain.Configuration, error) {
	var config domain.Configuration
	switch strings.TrimPrefix(strings.ToLower(ext), ".") {
	case "yaml", "yml", "":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case "hjson":
		// HJSON goes through a generic value so the JSON decoders of the
		// amount types still apply.
		var generic any
		if err := hjson.Unmarshal(data, &generic); err != nil {
			return nil, fmt.Errorf("failed to parse HJSON: %w", err)
		}
		b, err := json.Marshal(generic)
		if err != nil {
			return nil, fmt.Errorf("failed to convert HJSON: %w", err)
		}
		if err := json.Unmarshal(b, &config); err != nil {
			return nil, fmt.Errorf("failed to decode HJSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q (use .yaml, .json or .hjson)", ErrUnsupportedInput, ext)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// ValidateConfiguration validates the loaded scenario
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validate.Struct(config); err != nil {
		return formatValidationErrors(err)
	}

	if _, err := domain.ParseRegime(config.Regime); err != nil {
		return err
	}

	if len(config.Earnings) > 0 {
		if err := validateEarnings(config.Earnings); err != nil {
			return fmt.Errorf("earnings: %w", err)
		}
	}

	seen := make(map[string]bool, len(config.CustomDeductions))
	for _, d := range config.CustomDeductions {
		if d.ID == domain.IncomeTaxID {
			return fmt.Errorf("custom deduction id %q is reserved for income tax", d.ID)
		}
		if seen[d.ID] {
			return fmt.Errorf("duplicate custom deduction id %q", d.ID)
		}
		seen[d.ID] = true
	}

	return nil
}

// validateEarnings checks ids and that exactly one earning is balancing.
func validateEarnings(earnings []domain.EarningSpec) error {
	seen := make(map[string]bool, len(earnings))
	balancing := 0
	for _, e := range earnings {
		if seen[e.ID] {
			return fmt.Errorf("duplicate earning id %q", e.ID)
		}
		seen[e.ID] = true

		switch domain.EarningKind(e.Kind) {
		case domain.KindBalancing:
			balancing++
		case domain.KindPercentage:
			if e.Percentage.IsZero() && !e.Disabled {
				return fmt.Errorf("earning %q: percentage kind needs a percentage", e.ID)
			}
		case domain.KindFormula:
			if e.ID == domain.BasicID {
				return fmt.Errorf("earning %q: basic cannot be derived from itself", e.ID)
			}
		}
	}
	if balancing != 1 {
		return fmt.Errorf("exactly one balancing earning is required, found %d", balancing)
	}
	return nil
}

// formatValidationErrors turns validator output into one readable error.
func formatValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", strings.TrimPrefix(e.Namespace(), "Configuration."), validationMessage(e)))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	default:
		return "failed " + e.Tag() + " check"
	}
}

// CreateExampleConfiguration creates an example scenario file content: an
// 18 lakh offer with a performance bonus, an NPS contribution and a let-out
// flat on a home loan.
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	payout := decimal.NewFromInt(80)
	earnings := make([]domain.EarningSpec, 0, 3)
	for _, e := range domain.DefaultEarnings() {
		earnings = append(earnings, domain.EarningSpecFrom(e))
	}
	return &domain.Configuration{
		Name:     "Example Offer",
		CTC:      money.NewMoneyFromInt(1800000),
		Earnings: earnings,
		CustomDeductions: []domain.DeductionSpec{
			{
				ID:          "custom_deduction_nps",
				Name:        "NPS (employee)",
				Amount:      money.NewMoneyFromInt(50000),
				Description: "Voluntary pension contribution.",
			},
		},
		Bonus:                  money.NewMoneyFromInt(150000),
		RealisticPayoutPercent: &payout,
		HomeLoan: domain.HomeLoanSpec{
			InterestPaid: money.NewMoneyFromInt(240000),
			RentReceived: money.NewMoneyFromInt(90000),
		},
		Regime: string(domain.RegimeNew),
	}
}
