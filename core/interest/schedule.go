// Package interest - Monthly accrual walk
package interest

import (
	"fmt"
	"time"

	"gold-calc/core/types"
)

// walker is the state carried from one calendar month to the next
type walker struct {
	cursor     time.Time // first day of the month being visited
	principal  float64   // running principal; grows only for compound interest
	cumulative float64
}

// buildSchedule walks every calendar month touched by [start, end] and
// accrues day-prorated interest for the days of the range inside each month.
// Simple interest always accrues on the original principal. Compound interest
// capitalizes the accrued interest at the end of each month.
func buildSchedule(terms types.InterestTerms, start, end time.Time, dailyRate float64) []types.MonthlyAccrualRecord {
	w := walker{
		cursor:    types.Date(start.Year(), start.Month(), 1),
		principal: terms.Principal,
	}
	last := types.Date(end.Year(), end.Month(), 1)

	var rows []types.MonthlyAccrualRecord
	for !w.cursor.After(last) {
		year, month := w.cursor.Year(), w.cursor.Month()
		monthEnd := types.Date(year, month, daysIn(year, month))

		from := maxTime(w.cursor, start)
		to := minTime(monthEnd, end)
		if to.Before(from) {
			w.cursor = w.cursor.AddDate(0, 1, 0)
			continue
		}

		days := daysBetween(from, to) + 1
		if n := daysIn(year, month); days > n {
			days = n
		}

		base := terms.Principal
		if terms.Type == types.InterestCompound {
			base = w.principal
		}
		monthly := base * dailyRate * float64(days) / 100

		if terms.Type == types.InterestCompound {
			w.principal += monthly
		}
		w.cumulative += monthly

		rows = append(rows, types.MonthlyAccrualRecord{
			MonthLabel:         fmt.Sprintf("%s %d", month.String()[:3], year),
			MonthNumber:        int(month),
			Year:               year,
			DaysCounted:        days,
			PrincipalBase:      base,
			MonthlyInterest:    monthly,
			CumulativeInterest: w.cumulative,
			RunningTotal:       terms.Principal + w.cumulative,
		})

		w.cursor = w.cursor.AddDate(0, 1, 0)
	}
	return rows
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
