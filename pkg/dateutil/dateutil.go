package dateutil

import (
	"fmt"
	"time"
)

// FinancialYearStartMonth is the first month of the Indian financial year.
const FinancialYearStartMonth = time.April

// FinancialYear returns the calendar year in which the financial year
// containing t began (April to March).
func FinancialYear(t time.Time) int {
	if t.Month() < FinancialYearStartMonth {
		return t.Year() - 1
	}
	return t.Year()
}

// FinancialYearLabel renders a financial year such as "FY 2025-26".
func FinancialYearLabel(startYear int) string {
	return fmt.Sprintf("FY %d-%02d", startYear, (startYear+1)%100)
}

// AssessmentYearLabel renders the assessment year that follows a financial
// year, e.g. "AY 2026-27" for FY 2025-26.
func AssessmentYearLabel(startYear int) string {
	return fmt.Sprintf("AY %d-%02d", startYear+1, (startYear+2)%100)
}

// FinancialYearBounds returns the first and last day of the financial year.
func FinancialYearBounds(startYear int) (time.Time, time.Time) {
	start := time.Date(startYear, FinancialYearStartMonth, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, -1)
	return start, end
}

// MonthsRemaining counts payroll months left in the financial year including
// the month of t.
func MonthsRemaining(t time.Time) int {
	fy := FinancialYear(t)
	months := (fy+1-t.Year())*12 + int(FinancialYearStartMonth) - int(t.Month())
	return months
}
