package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/paycalc/ctc-calculator/internal/domain"
)

// Settings are the CLI defaults. Flags override them.
type Settings struct {
	Log            LogSettings
	Output         OutputSettings
	Profile        domain.Profile
	RegulatoryFile string
}

// LogSettings configure the zap logger.
type LogSettings struct {
	Level  string
	Format string
	Output string
}

// OutputSettings choose the default report.
type OutputSettings struct {
	Format string
	Period domain.Period
	Dir    string
}

// LoadSettings reads ctccalc.yaml and CTCCALC_* environment variables.
//
// Priority (highest to lowest):
// 1. Environment variables with CTCCALC_ prefix (e.g., CTCCALC_LOG_LEVEL)
// 2. The file at path, or ctccalc.yaml in the working or home directory
// 3. Built-in defaults
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("ctccalc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/ctccalc")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading settings file: %w", err)
		}
	}

	v.SetEnvPrefix("CTCCALC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	profile, err := domain.ParseProfile(v.GetString("profile"))
	if err != nil {
		return nil, err
	}
	period, err := domain.ParsePeriod(v.GetString("output.period"))
	if err != nil {
		return nil, err
	}

	return &Settings{
		Log: LogSettings{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Output: OutputSettings{
			Format: v.GetString("output.format"),
			Period: period,
			Dir:    v.GetString("output.dir"),
		},
		Profile:        profile,
		RegulatoryFile: v.GetString("regulatory_file"),
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stderr")
	v.SetDefault("output.format", "console")
	v.SetDefault("output.period", string(domain.PeriodYearly))
	v.SetDefault("output.dir", ".")
	v.SetDefault("profile", string(domain.ProfileHomeLoan))
	v.SetDefault("regulatory_file", "")
}
