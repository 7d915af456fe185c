// Package interest computes day-prorated simple and compound interest over an
// inclusive date range, with a month-by-month breakdown.
//
// Rates are normalized to a yearly basis and then to a daily rate over a
// fixed 365-day year. Every calendar month touched by the range gets one
// breakdown row. The headline totals are summed from those rows, so the
// breakdown and the totals cannot disagree.
//
// Compound interest capitalizes monthly, not daily.
package interest

import (
	"math"
	"time"

	"gold-calc/core/types"
	"gold-calc/internal/errors"
)

const (
	// MinYear is the earliest accepted calendar year
	MinYear = 1901

	// MaxYear is the latest accepted calendar year
	MaxYear = 2099

	// MaxRate is the highest accepted quoted rate, in percent
	MaxRate = 100
)

// ComputeSchedule returns the interest schedule for terms over rng.
// Invalid terms or ranges return an empty schedule and an INCOMPLETE_INPUT
// or INVALID_RANGE error; no partial schedule is ever produced.
func ComputeSchedule(terms types.InterestTerms, rng types.DateRange) (types.InterestSchedule, error) {
	if err := validate(terms, rng); err != nil {
		return types.InterestSchedule{}, err
	}

	start, end := types.Truncate(rng.Start), types.Truncate(rng.End)
	dailyRate := DailyRate(terms.Rate, terms.RatePeriod)
	rows := buildSchedule(terms, start, end, dailyRate)

	var total float64
	for _, r := range rows {
		total += r.MonthlyInterest
	}

	return types.InterestSchedule{
		Terms:           terms,
		Range:           types.DateRange{Start: start, End: end},
		TimePeriod:      Elapsed(start, end),
		DailyRate:       dailyRate,
		MonthlySchedule: rows,
		TotalInterest:   total,
		TotalAmount:     terms.Principal + total,
	}, nil
}

// Compute is ComputeSchedule with the range given as separate dates
func Compute(principal, rate float64, period types.RatePeriod, start, end time.Time, kind types.InterestType) (types.InterestSchedule, error) {
	return ComputeSchedule(types.InterestTerms{
		Principal:  principal,
		Rate:       rate,
		RatePeriod: period,
		Type:       kind,
	}, types.DateRange{Start: start, End: end})
}

func validate(terms types.InterestTerms, rng types.DateRange) error {
	if math.IsNaN(terms.Principal) || math.IsInf(terms.Principal, 0) || terms.Principal <= 0 {
		return errors.Incomplete("principal")
	}
	if math.IsNaN(terms.Rate) || math.IsInf(terms.Rate, 0) || terms.Rate < 0 {
		return errors.Incomplete("rate")
	}
	if terms.Rate > MaxRate {
		return errors.InvalidRange("rate %.3f is above %d", terms.Rate, MaxRate)
	}
	switch terms.RatePeriod {
	case types.RateMonthly, types.RateYearly:
	default:
		return errors.Newf(errors.TypeIncompleteInput, "rate period %q is not monthly or yearly", terms.RatePeriod)
	}
	switch terms.Type {
	case types.InterestSimple, types.InterestCompound:
	default:
		return errors.Newf(errors.TypeIncompleteInput, "interest type %q is not simple or compound", terms.Type)
	}
	if rng.Start.IsZero() {
		return errors.Incomplete("start date")
	}
	if rng.End.IsZero() {
		return errors.Incomplete("end date")
	}
	for _, d := range []time.Time{rng.Start, rng.End} {
		if d.Year() < MinYear || d.Year() > MaxYear {
			return errors.InvalidRange("year %d is outside %d-%d", d.Year(), MinYear, MaxYear)
		}
	}
	if types.Truncate(rng.End).Before(types.Truncate(rng.Start)) {
		return errors.InvalidRange("end date %s is before start date %s",
			rng.End.Format(types.DateLayout), rng.Start.Format(types.DateLayout))
	}
	return nil
}
