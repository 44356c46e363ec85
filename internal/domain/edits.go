package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// The helpers below back the editable rows of a presentation layer. Each one
// returns a new slice; the input is never modified.

// AddCustomDeduction appends a user-defined deduction with a generated id.
func AddCustomDeduction(items []DeductionItem, name string, amount decimal.Decimal) ([]DeductionItem, DeductionItem) {
	item := DeductionItem{
		ID:   "custom_deduction_" + uuid.NewString(),
		Name: name,
		Line: Active(amount),
	}
	out := append(append([]DeductionItem(nil), items...), item)
	return out, item
}

// AddCustomEarning appends a user-defined manual earning with a generated id.
func AddCustomEarning(items []EarningItem, name string, amount decimal.Decimal) ([]EarningItem, EarningItem) {
	item := EarningItem{
		ID:      "custom_earning_" + uuid.NewString(),
		Name:    name,
		Kind:    KindManual,
		Taxable: TaxableFull,
		Line:    Active(amount),
	}
	out := append(append([]EarningItem(nil), items...), item)
	return out, item
}

// SetDeductionEnabled suspends or resumes the deduction with id. Resuming
// restores the amount remembered at suspension.
func SetDeductionEnabled(items []DeductionItem, id string, enabled bool) []DeductionItem {
	out := append([]DeductionItem(nil), items...)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		if enabled {
			out[i].Line = out[i].Line.Resume()
		} else {
			out[i].Line = out[i].Line.Suspend()
		}
	}
	return out
}

// SetEarningEnabled suspends or resumes the earning with id.
func SetEarningEnabled(items []EarningItem, id string, enabled bool) []EarningItem {
	out := append([]EarningItem(nil), items...)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		if enabled {
			out[i].Line = out[i].Line.Resume()
		} else {
			out[i].Line = out[i].Line.Suspend()
		}
	}
	return out
}

// OverrideEarningAmount sets an amount typed by the user. The earning becomes
// manual so later recomputes keep the typed value.
func OverrideEarningAmount(items []EarningItem, id string, amount decimal.Decimal) []EarningItem {
	out := append([]EarningItem(nil), items...)
	for i := range out {
		if out[i].ID == id {
			out[i].Kind = KindManual
			out[i].Line = out[i].Line.WithAmount(amount)
		}
	}
	return out
}

// OverrideDeduction records a user edit to a deduction. Editing a baseline
// deduction produces a custom entry with the same id, which replaces the
// baseline on the next recompute.
func OverrideDeduction(custom []DeductionItem, resolved DeductionItem, amount decimal.Decimal) []DeductionItem {
	edited := resolved
	edited.Line = resolved.Line.WithAmount(amount)
	out := make([]DeductionItem, 0, len(custom)+1)
	replaced := false
	for _, d := range custom {
		if d.ID == resolved.ID {
			out = append(out, edited)
			replaced = true
			continue
		}
		out = append(out, d)
	}
	if !replaced {
		out = append(out, edited)
	}
	return out
}
