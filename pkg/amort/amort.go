// Package amort provides fixed-rate amortization math and payment
// frequency conversions.
package amort

import (
	"math"

	"github.com/dealforge/dealdesk/pkg/constants"
)

// MonthlyPayment calculates the monthly payment for a loan using the
// standard fixed-rate amortization formula. A non-positive principal or
// term yields 0 (a deal fully covered by rebates and trade-in has no
// payment); a zero rate amortizes straight-line.
func MonthlyPayment(principal, annualRatePct float64, termMonths int) float64 {
	if principal <= 0 || termMonths <= 0 {
		return 0
	}
	if annualRatePct == 0 {
		return principal / float64(termMonths)
	}

	periodicRate := annualRatePct / (constants.PercentageMultiplier * constants.MonthsPerYear)
	power := math.Pow(1.0+periodicRate, float64(termMonths))
	return principal * periodicRate * power / (power - 1.0)
}

// ToBiweekly converts a monthly payment to its biweekly equivalent. This
// assumes 12 months map to exactly 26 biweekly periods; it is a calendar
// approximation, not an actuarial day-count conversion.
func ToBiweekly(monthly float64) float64 {
	return monthly * constants.MonthsPerYear / constants.BiweeklyPeriodsPerYear
}

// ToWeekly converts a monthly payment to its weekly equivalent, assuming
// 12 months map to exactly 52 weeks.
func ToWeekly(monthly float64) float64 {
	return monthly * constants.MonthsPerYear / constants.WeeklyPeriodsPerYear
}
