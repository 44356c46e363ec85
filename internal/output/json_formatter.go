package output

import (
	"encoding/json"

	"github.com/paycalc/ctc-calculator/internal/domain"
)

// jsonScenario is one offer plus its derived CTC split.
type jsonScenario struct {
	*domain.Result
	Metrics Metrics `json:"metrics"`
}

type jsonReport struct {
	Period         domain.Period   `json:"period"`
	Assumptions    []string        `json:"assumptions"`
	Scenarios      []jsonScenario  `json:"scenarios"`
	Recommendation *Recommendation `json:"recommendation,omitempty"`
}

// JSONFormatter serializes the scenario comparison as pretty-printed JSON.
// Amounts are always annual; period only records what the caller asked for.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	report := jsonReport{
		Period:      results.Period,
		Assumptions: assumptionsFor(results),
		Scenarios:   make([]jsonScenario, 0, len(results.Results)),
	}
	for _, r := range results.Results {
		report.Scenarios = append(report.Scenarios, jsonScenario{Result: r, Metrics: ComputeMetrics(r)})
	}
	if len(results.Results) > 1 {
		rec := AnalyzeScenarios(results)
		report.Recommendation = &rec
	}
	return json.MarshalIndent(report, "", "  ")
}
