package output

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paycalc/ctc-calculator/internal/calculation"
	"github.com/paycalc/ctc-calculator/internal/domain"
	money "github.com/paycalc/ctc-calculator/pkg/decimal"
)

func buildTestComparison(t *testing.T) *domain.ScenarioComparison {
	t.Helper()
	payout := decimal.NewFromInt(80)
	configs := []*domain.Configuration{
		{Name: "A", CTC: money.NewMoneyFromInt(1200000)},
		{
			Name:                   "B",
			CTC:                    money.NewMoneyFromInt(3000000),
			Bonus:                  money.NewMoneyFromInt(300000),
			RealisticPayoutPercent: &payout,
			HomeLoan:               domain.HomeLoanSpec{InterestPaid: money.NewMoneyFromInt(150000)},
		},
	}
	cmp, err := calculation.NewCalculationEngine().RunScenarios(context.Background(), configs)
	require.NoError(t, err)
	return cmp
}

func TestConsoleLiteFormatter(t *testing.T) {
	f := ConsoleFormatter{}
	out, err := f.Format(buildTestComparison(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	if !strings.Contains(content, "Recommended: B") {
		t.Fatalf("expected recommendation for B, got: %s", content)
	}
	if !strings.Contains(content, "NetAnnual=₹10,94,280") {
		t.Fatalf("expected net annual of A, got: %s", content)
	}
}

func TestConsoleVerboseFormatter(t *testing.T) {
	f := ConsoleVerboseFormatter{}
	out, err := f.Format(buildTestComparison(t))
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "DETAILED CTC BREAKDOWN")
	assert.Contains(t, content, "SCENARIO 1: A")
	assert.Contains(t, content, "Special Allowance")
	assert.Contains(t, content, "Standard Deduction")
	assert.Contains(t, content, "Home Loan Interest (net)")
	assert.Contains(t, content, "Above ₹24,00,000")
	assert.Contains(t, content, "(rebate u/s 87A applied)", "scenario A sits under the rebate limit")
	assert.Contains(t, content, "PERFORMANCE BONUS:")
	assert.Contains(t, content, "Best scenario: B")
	assert.Contains(t, content, DefaultAssumptions[0])
}

func TestConsoleVerboseFormatter_MonthlyPeriod(t *testing.T) {
	cmp := buildTestComparison(t)
	cmp.Period = domain.PeriodMonthly
	out, err := ConsoleVerboseFormatter{}.Format(cmp)
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "Amounts: monthly")
	// basic of scenario A: 6,00,000 a year
	assert.Contains(t, content, "₹50,000")
}

func TestConsoleVerboseFormatter_DisabledLines(t *testing.T) {
	in := domain.Inputs{
		CTC:      decimal.NewFromInt(1200000),
		Earnings: domain.DefaultEarnings(),
		CustomDeductions: []domain.DeductionItem{
			{ID: domain.ProfessionalTaxID, Name: "Professional Tax", Line: domain.Suspended(decimal.NewFromInt(2400))},
		},
		RealisticPayoutPercent: decimal.NewFromInt(80),
		Regime:                 domain.RegimeNew,
	}
	r := calculation.NewCalculationEngine().Recompute(in)
	out, err := ConsoleVerboseFormatter{}.Format(&domain.ScenarioComparison{Results: []*domain.Result{r}})
	require.NoError(t, err)
	assert.Contains(t, string(out), "(disabled)")
	assert.NotContains(t, string(out), "SUMMARY & RECOMMENDATIONS", "single offer has nothing to compare")
}

func TestCSVSummarizerInputOrder(t *testing.T) {
	f := CSVSummarizer{}
	out, err := f.Format(buildTestComparison(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines (header+2 rows), got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], "A,1200000.00,") || !strings.HasPrefix(lines[2], "B,") {
		t.Fatalf("rows not in input order: %v", lines)
	}
}

func TestCSVDetailedExporter(t *testing.T) {
	out, err := CSVDetailedExporter{}.Format(buildTestComparison(t))
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)

	sections := map[string]int{}
	for _, rec := range records[1:] {
		require.Len(t, rec, 7)
		sections[rec[1]]++
	}
	// 3 earnings, 4 deductions (tax included), 7 slabs and a summary per offer
	assert.Equal(t, 6, sections["earning"])
	assert.Equal(t, 8, sections["deduction"])
	assert.Equal(t, 14, sections["slab"])
	assert.Equal(t, 2, sections["summary"])

	assert.Equal(t, []string{"A", "earning", "basic", "Basic Salary", "600000.00", "50.0", "false"}, records[1])
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestComparison(t))
	require.NoError(t, err)

	var decoded struct {
		Period    string `json:"period"`
		Scenarios []struct {
			Name    string `json:"name"`
			Summary struct {
				NetAnnualSalary string `json:"net_annual_salary"`
			} `json:"summary"`
			Metrics struct {
				TotalTax struct {
					Percent string `json:"percent"`
				} `json:"total_tax"`
			} `json:"metrics"`
		} `json:"scenarios"`
		Recommendation *struct {
			ScenarioName string
		} `json:"recommendation"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded.Scenarios, 2)
	assert.Equal(t, "A", decoded.Scenarios[0].Name)
	assert.Equal(t, "1094280", decoded.Scenarios[0].Summary.NetAnnualSalary)
	assert.Equal(t, "0", decoded.Scenarios[0].Metrics.TotalTax.Percent)
	require.NotNil(t, decoded.Recommendation)
	assert.Equal(t, "B", decoded.Recommendation.ScenarioName)
}

func TestMarkdownFormatter(t *testing.T) {
	cmp := buildTestComparison(t)
	cmp.Results[0].Name = "Offer | pipe"
	out, err := MarkdownFormatter{}.Format(cmp)
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "## Comparison")
	assert.Contains(t, content, `Offer \| pipe`, "table cells are escaped")
	assert.Contains(t, content, "| **Gross Salary** |")
	assert.Contains(t, content, "| **Total Income Tax** |")
	assert.Contains(t, content, "## Assumptions")
}

func TestHTMLFormatterBasic(t *testing.T) {
	f := HTMLFormatter{}
	out, err := f.Format(buildTestComparison(t))
	if err != nil {
		t.Fatalf("html format error: %v", err)
	}
	content := string(out)
	if !strings.Contains(content, "<table>") {
		t.Fatalf("expected markdown tables rendered as HTML")
	}
	if !strings.Contains(content, "Where the CTC goes: B") {
		t.Fatalf("expected CTC split section in HTML output")
	}
	if strings.Contains(content, "| Component |") {
		t.Fatalf("markdown table syntax leaked into HTML")
	}
}

func TestHTMLAssumptionsSectionPresent(t *testing.T) {
	f := HTMLFormatter{}
	out, err := f.Format(buildTestComparison(t))
	if err != nil {
		t.Fatalf("html format error: %v", err)
	}
	content := string(out)
	if !strings.Contains(content, "Assumptions</h2>") {
		t.Fatalf("expected Assumptions section in HTML output")
	}
	found := false
	for _, a := range DefaultAssumptions {
		if strings.Contains(content, a) {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected at least one default assumption to be rendered in HTML")
	}
}

func TestPDFFormatter(t *testing.T) {
	out, err := PDFFormatter{}.Format(buildTestComparison(t))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF-"), "output is a PDF document")
	assert.Greater(t, len(out), 1000)
}

func TestFormatterRegistry(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"console", "console"},
		{"VERBOSE", "console"},
		{"lite", "console-lite"},
		{"csv-detailed", "detailed-csv"},
		{"md", "markdown"},
		{" pdf ", "pdf"},
		{"html", "html"},
	}
	for _, tt := range tests {
		f := GetFormatterByName(tt.name)
		require.NotNil(t, f, tt.name)
		assert.Equal(t, tt.want, f.Name())
	}
	assert.Nil(t, GetFormatterByName("xml"))
	assert.Equal(t, []string{"console", "console-lite", "csv", "detailed-csv", "html", "json", "markdown", "pdf"}, AvailableFormatterNames())
	assert.Contains(t, AvailableFormatAliases(), "md")
}

func TestFormatterFunc(t *testing.T) {
	f := FormatterFunc{ID: "count", F: func(c *domain.ScenarioComparison) ([]byte, error) {
		return []byte(intToString(len(c.Results))), nil
	}}
	out, err := f.Format(buildTestComparison(t))
	require.NoError(t, err)
	assert.Equal(t, "2", string(out))
	assert.Equal(t, "count", f.Name())
	assert.Equal(t, "txt", FileExtension(f))
}

// Golden snapshot tests (prefix-based) ensure key headers remain stable.
func TestGoldenSnapshots(t *testing.T) {
	cases := []struct {
		name      string
		golden    string
		formatter Formatter
	}{
		{"console_verbose", "console_verbose.golden", ConsoleVerboseFormatter{}},
		{"console_lite", "console_lite.golden", ConsoleFormatter{}},
		{"csv_summary", "csv_summary.golden", CSVSummarizer{}},
		{"csv_detailed", "csv_detailed.golden", CSVDetailedExporter{}},
		{"html", "html_prefix.golden", HTMLFormatter{}},
		{"markdown", "markdown.golden", MarkdownFormatter{}},
	}

	cmp := buildTestComparison(t)
	update := os.Getenv("UPDATE_GOLDEN") == "1"
	for _, tc := range cases {
		out, err := tc.formatter.Format(cmp)
		if err != nil {
			t.Fatalf("%s: format error: %v", tc.name, err)
		}
		goldenPath := filepath.Join("testdata", tc.golden)
		if update {
			// only first line to keep golden small & stable
			line := firstLine(string(out)) + "\n"
			if err := os.WriteFile(goldenPath, []byte(line), 0644); err != nil {
				t.Fatalf("%s: update golden failed: %v", tc.name, err)
			}
		}
		data, err := os.ReadFile(goldenPath)
		if err != nil {
			t.Fatalf("%s: read golden: %v", tc.name, err)
		}
		if !strings.HasPrefix(string(out), strings.TrimSpace(string(data))) {
			t.Fatalf("%s: output does not match golden prefix %q", tc.name, strings.TrimSpace(string(data)))
		}
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
