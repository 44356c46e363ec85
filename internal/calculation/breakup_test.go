package calculation

import (
	"testing"

	"github.com/paycalc/ctc-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func earningAmount(t *testing.T, b domain.Breakup, id string) decimal.Decimal {
	t.Helper()
	e, ok := domain.FindEarning(b.Earnings, id)
	require.True(t, ok, "earning %q missing", id)
	return e.Amount()
}

func deductionAmount(t *testing.T, b domain.Breakup, id string) decimal.Decimal {
	t.Helper()
	d, ok := domain.FindDeduction(b.Deductions, id)
	require.True(t, ok, "deduction %q missing", id)
	return d.Amount()
}

func TestComputeBreakup_DefaultTemplate12L(t *testing.T) {
	calc := NewBreakupCalculator()
	b := calc.ComputeBreakup(inr(1200000), domain.DefaultEarnings(), nil, decimal.Zero)

	assertDecimal(t, inr(600000), b.Basic)
	assertDecimal(t, inr(600000), earningAmount(t, b, domain.BasicID))
	assertDecimal(t, inr(300000), earningAmount(t, b, domain.HRAID))
	assertDecimal(t, inr(21600), deductionAmount(t, b, domain.PFID), "PF capped")
	assertDecimal(t, inr(2400), deductionAmount(t, b, domain.ProfessionalTaxID))
	assertDecimal(t, inr(28860), deductionAmount(t, b, domain.GratuityID))

	// 12,00,000 - 9,00,000 - 52,860
	assertDecimal(t, inr(247140), earningAmount(t, b, domain.SpecialID))
	assertDecimal(t, inr(1147140), b.GrossSalary)
	assert.True(t, b.EmployerPF.IsZero(), "employer PF is folded into the combined PF line")
	assert.Len(t, b.Deductions, 3)
}

func TestComputeBreakup_GrossEqualsCTCWhenBalancingIgnoresDeductions(t *testing.T) {
	rules := DefaultRules()
	rules.BalancingNetOfDeductions = false
	calc := NewBreakupCalculatorWithRules(rules)

	b := calc.ComputeBreakup(inr(1200000), domain.DefaultEarnings(), nil, decimal.Zero)
	assertDecimal(t, inr(300000), earningAmount(t, b, domain.SpecialID))
	assertDecimal(t, inr(1200000), b.GrossSalary)

	headline := NewCompensationCalculator().HeadlineTax(b.GrossSalary, decimal.Zero)
	assertDecimal(t, inr(1050000), headline.NetTaxableIncome)
	assert.True(t, headline.TotalTax.IsZero())
	assertDecimal(t, inr(1125000), b.GrossSalary.Sub(inr(75000)), "taxable after standard deduction")
}

func TestComputeBreakup_BalancingInvariant(t *testing.T) {
	calc := NewBreakupCalculator()
	custom := []domain.DeductionItem{
		{ID: "custom_deduction_nps", Name: "NPS", Line: domain.Active(inr(50000))},
	}
	for ctc := int64(0); ctc <= 6000000; ctc += 137500 {
		for _, bonus := range []int64{0, 100000, 500000} {
			b := calc.ComputeBreakup(inr(ctc), domain.DefaultEarnings(), custom, inr(bonus))
			sum := domain.SumEarnings(b.Earnings)
			require.True(t, sum.Sub(b.GrossSalary).Abs().LessThanOrEqual(decimal.NewFromInt(1)),
				"ctc %d bonus %d: earnings %s != gross %s", ctc, bonus, sum, b.GrossSalary)
			require.False(t, earningAmount(t, b, domain.SpecialID).IsNegative(),
				"ctc %d bonus %d: balancing item went negative", ctc, bonus)
		}
	}
}

func TestComputeBreakup_NegativeResidualClamped(t *testing.T) {
	calc := NewBreakupCalculator()
	b := calc.ComputeBreakup(inr(300000), domain.DefaultEarnings(), nil, inr(500000))

	assert.True(t, earningAmount(t, b, domain.SpecialID).IsZero())
	assertDecimal(t, inr(225000), b.GrossSalary) // basic 1.5L + HRA 75k
}

func TestComputeBreakup_PFCap(t *testing.T) {
	calc := NewBreakupCalculator()

	// CTC 20L puts basic at 10L
	capped := calc.ComputeBreakupWithPFCap(inr(2000000), domain.DefaultEarnings(), nil, decimal.Zero, true)
	assertDecimal(t, inr(1000000), capped.Basic)
	assertDecimal(t, inr(21600), deductionAmount(t, capped, domain.PFID))

	uncapped := calc.ComputeBreakupWithPFCap(inr(2000000), domain.DefaultEarnings(), nil, decimal.Zero, false)
	assertDecimal(t, inr(120000), deductionAmount(t, uncapped, domain.PFID))
	assert.True(t, uncapped.GrossSalary.LessThan(capped.GrossSalary), "a larger PF leaves less for the balancing item")

	// below the cap both agree
	low := calc.ComputeBreakupWithPFCap(inr(300000), domain.DefaultEarnings(), nil, decimal.Zero, true)
	assertDecimal(t, inr(18000), deductionAmount(t, low, domain.PFID))
}

func TestComputeBreakup_DeductionMerge(t *testing.T) {
	calc := NewBreakupCalculator()

	tests := []struct {
		name     string
		custom   []domain.DeductionItem
		id       string
		expected decimal.Decimal
		count    int
	}{
		{
			name:     "custom PF replaces baseline without re-capping",
			custom:   []domain.DeductionItem{{ID: domain.PFID, Name: "PF", Line: domain.Active(inr(72000))}},
			id:       domain.PFID,
			expected: inr(72000),
			count:    3,
		},
		{
			name:     "disabled override contributes zero but stays listed",
			custom:   []domain.DeductionItem{{ID: domain.ProfessionalTaxID, Name: "PT", Line: domain.Suspended(inr(2400))}},
			id:       domain.ProfessionalTaxID,
			expected: decimal.Zero,
			count:    3,
		},
		{
			name:     "unknown id is a new deduction",
			custom:   []domain.DeductionItem{{ID: "custom_deduction_meal", Name: "Meal card", Line: domain.Active(inr(26400))}},
			id:       "custom_deduction_meal",
			expected: inr(26400),
			count:    4,
		},
		{
			name: "repeated custom id keeps the last entry",
			custom: []domain.DeductionItem{
				{ID: domain.GratuityID, Name: "Gratuity", Line: domain.Active(inr(1000))},
				{ID: domain.GratuityID, Name: "Gratuity", Line: domain.Active(inr(2000))},
			},
			id:       domain.GratuityID,
			expected: inr(2000),
			count:    3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := calc.ComputeBreakup(inr(1200000), domain.DefaultEarnings(), tt.custom, decimal.Zero)
			assert.Len(t, b.Deductions, tt.count)

			matches := 0
			for _, d := range b.Deductions {
				if d.ID == tt.id {
					matches++
				}
			}
			assert.Equal(t, 1, matches, "exactly one %q entry after merge", tt.id)
			assertDecimal(t, tt.expected, deductionAmount(t, b, tt.id))
		})
	}
}

func TestComputeBreakup_SuspendedOverrideKeepsAmount(t *testing.T) {
	calc := NewBreakupCalculator()
	custom := []domain.DeductionItem{{ID: domain.PFID, Name: "PF", Line: domain.Suspended(inr(21600))}}

	b := calc.ComputeBreakup(inr(1200000), domain.DefaultEarnings(), custom, decimal.Zero)
	pf, ok := domain.FindDeduction(b.Deductions, domain.PFID)
	require.True(t, ok)
	assert.True(t, pf.Disabled())
	assert.True(t, pf.Amount().IsZero())
	assertDecimal(t, inr(21600), pf.Line.Resume().Effective(), "re-enable restores the remembered amount")

	// the suspended PF no longer reduces the balancing item
	assertDecimal(t, inr(268740), earningAmount(t, b, domain.SpecialID))
}

func TestComputeBreakup_DisabledBasic(t *testing.T) {
	calc := NewBreakupCalculator()
	earnings := domain.SetEarningEnabled(domain.DefaultEarnings(), domain.BasicID, false)

	b := calc.ComputeBreakup(inr(1200000), earnings, nil, decimal.Zero)
	assert.True(t, b.Basic.IsZero())
	assert.True(t, earningAmount(t, b, domain.HRAID).IsZero(), "HRA follows basic")
	assertDecimal(t, inr(2400), domain.SumDeductions(b.Deductions), "only PT remains")
	assertDecimal(t, inr(1197600), b.GrossSalary)
}

func TestComputeBreakup_ManualAndFixedEarnings(t *testing.T) {
	calc := NewBreakupCalculator()
	earnings := domain.OverrideEarningAmount(domain.DefaultEarnings(), domain.HRAID, inr(240000))
	earnings, _ = domain.AddCustomEarning(earnings, "LTA", inr(50000))
	earnings = append(earnings, domain.EarningItem{
		ID:         "telephone",
		Name:       "Telephone",
		Kind:       domain.KindPercentage,
		Percentage: decimal.NewFromInt(1),
		Taxable:    domain.TaxableExempt,
		Line:       domain.Active(decimal.Zero),
	})

	b := calc.ComputeBreakup(inr(1200000), earnings, nil, decimal.Zero)
	assertDecimal(t, inr(240000), earningAmount(t, b, domain.HRAID), "manual amount survives recompute")
	assertDecimal(t, inr(12000), earningAmount(t, b, "telephone"))
	// 12,00,000 - (6,00,000 + 2,40,000 + 50,000 + 12,000) - 52,860
	assertDecimal(t, inr(245140), earningAmount(t, b, domain.SpecialID))
}

func TestComputeBreakup_ExtraBalancingItemZeroed(t *testing.T) {
	calc := NewBreakupCalculator()
	earnings := append(domain.DefaultEarnings(), domain.EarningItem{
		ID:   "flexi",
		Name: "Flexi Pay",
		Kind: domain.KindBalancing,
		Line: domain.Active(inr(99999)),
	})

	b := calc.ComputeBreakup(inr(1200000), earnings, nil, decimal.Zero)
	assert.True(t, earningAmount(t, b, "flexi").IsZero())
	assertDecimal(t, inr(247140), earningAmount(t, b, domain.SpecialID))
}

func TestComputeBreakup_DoesNotMutateInputs(t *testing.T) {
	calc := NewBreakupCalculator()
	earnings := domain.DefaultEarnings()
	custom := []domain.DeductionItem{{ID: domain.PFID, Name: "PF", Line: domain.Active(inr(10000))}}

	_ = calc.ComputeBreakup(inr(1200000), earnings, custom, decimal.Zero)

	assert.Equal(t, domain.DefaultEarnings(), earnings)
	assertDecimal(t, inr(10000), custom[0].Amount())
}

func TestComputeBreakup_Idempotent(t *testing.T) {
	calc := NewBreakupCalculator()
	custom := []domain.DeductionItem{{ID: "custom_deduction_vpf", Name: "VPF", Line: domain.Active(inr(24000))}}

	first := calc.ComputeBreakup(inr(1850000), domain.DefaultEarnings(), custom, inr(150000))
	second := calc.ComputeBreakup(inr(1850000), domain.DefaultEarnings(), custom, inr(150000))
	assert.Equal(t, first, second)
}
