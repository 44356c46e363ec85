package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/paycalc/ctc-calculator/internal/domain"
)

// HTMLFormatter produces a standalone HTML report: the markdown report
// rendered with goldmark inside a styled page with CTC split bars.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  func(m MetricShare) string { return m.Percent.StringFixed(1) },
}).Parse(htmlTemplateSource))

var markdownRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

type htmlScenario struct {
	Name    string
	Metrics Metrics
}

func (h HTMLFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	md, err := MarkdownFormatter{}.Format(results)
	if err != nil {
		return nil, err
	}
	var body bytes.Buffer
	if err := markdownRenderer.Convert(md, &body); err != nil {
		return nil, err
	}

	scenarios := make([]htmlScenario, 0, len(results.Results))
	for i, r := range results.Results {
		scenarios = append(scenarios, htmlScenario{Name: scenarioName(r, i), Metrics: ComputeMetrics(r)})
	}

	data := struct {
		Title     string
		Body      template.HTML
		Scenarios []htmlScenario
	}{
		Title: "CTC Breakdown",
		// goldmark escapes raw HTML by default, so the body is safe to inline
		Body:      template.HTML(body.String()),
		Scenarios: scenarios,
	}
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
