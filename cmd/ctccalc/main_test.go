package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paycalc/ctc-calculator/internal/config"
	"github.com/paycalc/ctc-calculator/internal/output"
)

const testdataDir = "../../test/testdata"

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root, a := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := root.Execute()
	a.close()
	return out.String(), err
}

func TestQuickCommand(t *testing.T) {
	out, err := runCLI(t, "quick", "--ctc", "12,00,000", "--format", "console-lite")
	require.NoError(t, err)
	assert.Contains(t, out, "NetAnnual=₹10,94,280")
	assert.Contains(t, out, "NetMonthly=₹91,190")
}

func TestQuickCommand_Errors(t *testing.T) {
	_, err := runCLI(t, "quick")
	assert.Error(t, err, "--ctc is required")

	_, err = runCLI(t, "quick", "--ctc", "twelve")
	assert.ErrorContains(t, err, "--ctc")

	_, err = runCLI(t, "quick", "--ctc", "1200000", "--payout", "150")
	assert.ErrorContains(t, err, "realistic_payout_percent")

	_, err = runCLI(t, "quick", "--ctc", "1200000", "--format", "xml")
	assert.ErrorIs(t, err, output.ErrUnsupportedFormat)

	_, err = runCLI(t, "quick", "--ctc", "1200000", "--period", "weekly")
	assert.ErrorContains(t, err, "unknown period")
}

func TestTaxCommand(t *testing.T) {
	tests := []struct {
		name     string
		income   string
		contains []string
	}{
		{
			name:     "rebate wipes out tax at 12L net taxable",
			income:   "12,75,000",
			contains: []string{"Net Taxable Income:  ₹12,00,000", "Rebate u/s 87A:      applied", "Total Tax:           ₹0"},
		},
		{
			name:     "above the rebate limit",
			income:   "1600000",
			contains: []string{"Net Taxable Income:  ₹15,25,000", "Cess:                ₹4,350", "Total Tax:           ₹1,13,100"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, "tax", "--income", tt.income)
			require.NoError(t, err)
			assert.Contains(t, out, "FY 2025-26 (01 Apr 2025 to 31 Mar 2026), AY 2026-27")
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}

	_, err := runCLI(t, "tax", "--income", "100", "--regime", "flat")
	assert.Error(t, err)
}

func TestCalculateCommand(t *testing.T) {
	out, err := runCLI(t, "calculate",
		filepath.Join(testdataDir, "offer_a.yaml"),
		filepath.Join(testdataDir, "offer_b.yaml"),
		filepath.Join(testdataDir, "offer_c.json"),
		"--format", "markdown", "--period", "monthly")
	require.NoError(t, err)
	assert.Contains(t, out, "Amounts are shown monthly.")
	assert.Contains(t, out, "## Current Role")
	assert.Contains(t, out, "## Offer C")
	assert.Contains(t, out, "**Recommended:** Offer B")
	assert.Contains(t, out, "NPS (employee)")
}

func TestCalculateCommand_WritesFiles(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, "calculate", filepath.Join(testdataDir, "offer_a.yaml"), "--format", "pdf", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".pdf"))
}

func TestCalculateCommand_BadInput(t *testing.T) {
	_, err := runCLI(t, "calculate", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = runCLI(t, "calculate")
	assert.Error(t, err, "at least one offer is required")
}

func TestCalculateCommand_RegulatoryOverride(t *testing.T) {
	out, err := runCLI(t, "calculate", filepath.Join(testdataDir, "offer_a.yaml"),
		"--regulatory", "../../internal/config/regulatory.yaml", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Current Role,1200000.00,")

	_, err = runCLI(t, "calculate", filepath.Join(testdataDir, "offer_a.yaml"), "--regulatory", "nope.yaml")
	assert.Error(t, err)
}

func TestEngineUsesEmbeddedRulesByDefault(t *testing.T) {
	root, a := newRootCmd()
	root.SetArgs([]string{"formats"})
	require.NoError(t, root.Execute())
	defer a.close()

	engine, err := a.engine()
	require.NoError(t, err)
	embedded, err := config.LoadRegulatory("")
	require.NoError(t, err)
	assert.Equal(t, embedded, engine.Rules)
}

func TestLogFileReleasedAfterCommand(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "ctccalc.log")
	t.Setenv("CTCCALC_LOG_OUTPUT", logPath)

	root, a := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--log-level", "debug", "calculate", filepath.Join(testdataDir, "offer_a.yaml"), "--format", "csv"})
	require.NoError(t, root.Execute())
	require.NotNil(t, a.closeLog)
	a.close()
	assert.Nil(t, a.closeLog)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "loaded offer")

	// a failing command still leaves a cleanup to run
	root, a = newRootCmd()
	root.SetArgs([]string{"calculate", "missing.yaml"})
	assert.Error(t, root.Execute())
	assert.NotNil(t, a.closeLog)
	a.close()
}

func TestExampleAndValidateCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offer.yaml")
	out, err := runCLI(t, "example", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, err = runCLI(t, "example", path)
	assert.ErrorContains(t, err, "already exists")

	out, err = runCLI(t, "validate", path, filepath.Join(testdataDir, "offer_b.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, ": ok"))

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("ctc: -5\n"), 0644))
	_, err = runCLI(t, "validate", path, bad)
	assert.ErrorContains(t, err, "1 of 2 files invalid")
}

func TestFormatsCommand(t *testing.T) {
	out, err := runCLI(t, "formats")
	require.NoError(t, err)
	for _, name := range output.AvailableFormatterNames() {
		assert.Contains(t, out, "  "+name+"\n")
	}
	assert.Contains(t, out, "md -> markdown")
}

func TestProfileFlag(t *testing.T) {
	_, err := runCLI(t, "quick", "--ctc", "1200000", "--profile", "bogus")
	assert.Error(t, err)

	out, err := runCLI(t, "quick", "--ctc", "2000000", "--profile", "pf_cap_toggle", "--no-pf-cap", "--format", "detailed-csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Offer,deduction,pf,Provident Fund (PF),120000.00,")
}
