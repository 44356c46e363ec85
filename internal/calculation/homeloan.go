package calculation

import (
	"github.com/paycalc/ctc-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// ComputeHomeLoanDeduction nets rent off home-loan interest on a let-out
// property and caps the loss that may be set off against salary.
func ComputeHomeLoanDeduction(interest, rent, limit decimal.Decimal) domain.HomeLoanDeduction {
	interest = decimal.Max(interest, decimal.Zero)
	rent = decimal.Max(rent, decimal.Zero)
	uncapped := decimal.Max(interest.Sub(rent), decimal.Zero)
	return domain.HomeLoanDeduction{
		InterestPaid: interest,
		RentReceived: rent,
		Uncapped:     uncapped,
		Deduction:    decimal.Min(uncapped, limit),
		CapExceeded:  uncapped.GreaterThan(limit),
	}
}
