package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Well-known item ids used by the default template and baseline deductions.
const (
	BasicID           = "basic"
	HRAID             = "hra"
	SpecialID         = "special"
	PFID              = "pf"
	ProfessionalTaxID = "pt"
	GratuityID        = "gratuity"
	IncomeTaxID       = "tax"
)

// LineState tells whether a line contributes to totals.
type LineState uint8

const (
	// LineActive lines contribute their amount.
	LineActive LineState = iota
	// LineSuspended lines contribute zero but remember their last amount.
	LineSuspended
)

func (s LineState) String() string {
	if s == LineSuspended {
		return "suspended"
	}
	return "active"
}

// Line is an amount that is either Active(amount) or Suspended(lastAmount).
// A suspended line stays in its list so it can be resumed with the amount it
// had when it was switched off.
type Line struct {
	State  LineState
	Amount decimal.Decimal
}

// Active returns a contributing line.
func Active(amount decimal.Decimal) Line {
	return Line{State: LineActive, Amount: amount}
}

// Suspended returns a non-contributing line remembering lastAmount.
func Suspended(lastAmount decimal.Decimal) Line {
	return Line{State: LineSuspended, Amount: lastAmount}
}

// IsSuspended reports whether the line is switched off.
func (l Line) IsSuspended() bool { return l.State == LineSuspended }

// Effective is the amount that flows into sums: zero while suspended.
func (l Line) Effective() decimal.Decimal {
	if l.IsSuspended() {
		return decimal.Zero
	}
	return l.Amount
}

// Suspend switches the line off, remembering the current amount.
func (l Line) Suspend() Line { return Suspended(l.Amount) }

// Resume switches the line back on with the remembered amount.
func (l Line) Resume() Line { return Active(l.Amount) }

// WithAmount replaces the amount. Suspended lines only update what they
// remember.
func (l Line) WithAmount(amount decimal.Decimal) Line {
	return Line{State: l.State, Amount: amount}
}

type lineJSON struct {
	Amount   decimal.Decimal `json:"amount"`
	Disabled bool            `json:"disabled"`
}

// MarshalJSON writes the remembered amount with a disabled flag, the same
// shape offer files use.
func (l Line) MarshalJSON() ([]byte, error) {
	return json.Marshal(lineJSON{Amount: l.Amount, Disabled: l.IsSuspended()})
}

// UnmarshalJSON reads {"amount", "disabled"}; a disabled line keeps its
// amount for when it is re-enabled.
func (l *Line) UnmarshalJSON(data []byte) error {
	var aux lineJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Disabled {
		*l = Suspended(aux.Amount)
	} else {
		*l = Active(aux.Amount)
	}
	return nil
}

// EarningKind selects how an earning amount is derived.
type EarningKind string

const (
	// KindPercentage is a percentage of CTC.
	KindPercentage EarningKind = "percentage"
	// KindFormula is a multiple of basic salary.
	KindFormula EarningKind = "formula"
	// KindBalancing absorbs the residual so earnings add up to gross.
	KindBalancing EarningKind = "balancing"
	// KindFixed is an amount entered once and kept.
	KindFixed EarningKind = "fixed"
	// KindManual is an amount the user typed over a derived one.
	KindManual EarningKind = "manual"
)

// Valid reports whether k is a known kind.
func (k EarningKind) Valid() bool {
	switch k {
	case KindPercentage, KindFormula, KindBalancing, KindFixed, KindManual:
		return true
	}
	return false
}

// Taxability of an earning.
type Taxability string

const (
	TaxableFull    Taxability = "full"
	TaxablePartial Taxability = "partial"
	TaxableExempt  Taxability = "exempt"
)

// EarningItem is one annual earnings component.
type EarningItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Kind        EarningKind     `json:"kind"`
	Percentage  decimal.Decimal `json:"percentage,omitempty"` // of CTC, for KindPercentage
	Factor      decimal.Decimal `json:"factor,omitempty"`     // of basic, for KindFormula
	Taxable     Taxability      `json:"taxable"`
	Line        Line            `json:"line"`
	Description string          `json:"description,omitempty"`
}

// Amount is the effective annual amount.
func (e EarningItem) Amount() decimal.Decimal { return e.Line.Effective() }

// Disabled reports whether the earning is suspended.
func (e EarningItem) Disabled() bool { return e.Line.IsSuspended() }

// DeductionItem is one annual deduction.
type DeductionItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Line        Line   `json:"line"`
	IsFixed     bool   `json:"is_fixed"` // name not editable
	IsTax       bool   `json:"is_tax"`
	Description string `json:"description,omitempty"`
}

// Amount is the effective annual amount.
func (d DeductionItem) Amount() decimal.Decimal { return d.Line.Effective() }

// Disabled reports whether the deduction is suspended.
func (d DeductionItem) Disabled() bool { return d.Line.IsSuspended() }

// DefaultEarnings returns a fresh copy of the standard earnings template:
// basic at 50% of CTC, HRA at half of basic and a balancing special allowance.
func DefaultEarnings() []EarningItem {
	return []EarningItem{
		{
			ID:          BasicID,
			Name:        "Basic Salary",
			Kind:        KindPercentage,
			Percentage:  decimal.NewFromInt(50),
			Taxable:     TaxableFull,
			Line:        Active(decimal.Zero),
			Description: "Typically 40-50% of CTC. Fully taxable.",
		},
		{
			ID:          HRAID,
			Name:        "HRA",
			Kind:        KindFormula,
			Factor:      decimal.NewFromFloat(0.5),
			Taxable:     TaxablePartial,
			Line:        Active(decimal.Zero),
			Description: "House Rent Allowance, half of basic. Exempt u/s 10(13A) subject to rent paid.",
		},
		{
			ID:          SpecialID,
			Name:        "Special Allowance",
			Kind:        KindBalancing,
			Taxable:     TaxableFull,
			Line:        Active(decimal.Zero),
			Description: "Balancing component to match gross salary. Fully taxable.",
		},
	}
}

// SumEarnings adds the effective amounts.
func SumEarnings(items []EarningItem) decimal.Decimal {
	total := decimal.Zero
	for _, e := range items {
		total = total.Add(e.Amount())
	}
	return total
}

// SumDeductions adds the effective amounts.
func SumDeductions(items []DeductionItem) decimal.Decimal {
	total := decimal.Zero
	for _, d := range items {
		total = total.Add(d.Amount())
	}
	return total
}

// FindEarning returns the earning with id, if present.
func FindEarning(items []EarningItem, id string) (EarningItem, bool) {
	for _, e := range items {
		if e.ID == id {
			return e, true
		}
	}
	return EarningItem{}, false
}

// FindDeduction returns the deduction with id, if present.
func FindDeduction(items []DeductionItem, id string) (DeductionItem, bool) {
	for _, d := range items {
		if d.ID == id {
			return d, true
		}
	}
	return DeductionItem{}, false
}
