// Package interest - Rate normalization
package interest

import "gold-calc/core/types"

// DaysPerYear is the fixed year length used for daily proration.
// Leap years are not adjusted for.
const DaysPerYear = 365

// YearlyRate returns rate expressed on a yearly basis
func YearlyRate(rate float64, period types.RatePeriod) float64 {
	if period == types.RateMonthly {
		return rate * 12
	}
	return rate
}

// DailyRate returns the percentage rate applied per accrual day
func DailyRate(rate float64, period types.RatePeriod) float64 {
	return YearlyRate(rate, period) / DaysPerYear
}

// ConvertRate re-quotes rate from one period to another with a flat x12 or /12.
// No compounding is applied.
func ConvertRate(rate float64, from, to types.RatePeriod) float64 {
	switch {
	case from == to:
		return rate
	case from == types.RateMonthly && to == types.RateYearly:
		return rate * 12
	case from == types.RateYearly && to == types.RateMonthly:
		return rate / 12
	default:
		return rate
	}
}
