// Package interest - Elapsed period decomposition
package interest

import (
	"time"

	"gold-calc/core/types"
)

// Elapsed splits the inclusive range [start, end] into whole years, whole
// months and leftover days. Both endpoints count, so the span is measured
// against end + 1 day. Years are taken greedily first, then months from the
// year anchor, and the remainder is counted in days.
//
// Calendar additions follow time.AddDate normalization, so Jan 31 + 1 month
// lands in early March.
func Elapsed(start, end time.Time) types.TimePeriod {
	start = types.Truncate(start)
	limit := types.Truncate(end).AddDate(0, 0, 1)
	if !limit.After(start) {
		return types.TimePeriod{}
	}

	years := 0
	for !start.AddDate(years+1, 0, 0).After(limit) {
		years++
	}
	anchor := start.AddDate(years, 0, 0)

	months := 0
	for !anchor.AddDate(0, months+1, 0).After(limit) {
		months++
	}
	anchor = anchor.AddDate(0, months, 0)

	return types.TimePeriod{
		Years:  years,
		Months: months,
		Days:   daysBetween(anchor, limit),
	}
}

// daysBetween counts whole days from a to b; both are UTC midnights
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}

// daysIn returns the number of days in the given month
func daysIn(year int, month time.Month) int {
	return types.Date(year, month+1, 0).Day()
}
