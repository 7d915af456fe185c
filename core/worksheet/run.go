// Package worksheet - Evaluation
package worksheet

import (
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"gold-calc/core/alloy"
	"gold-calc/core/amount"
	"gold-calc/core/interest"
	"gold-calc/core/numfmt"
	"gold-calc/core/output"
	"gold-calc/core/types"
	"gold-calc/internal/errors"
	"gold-calc/internal/logging"
)

// Defaults fill inputs a block leaves out
type Defaults struct {
	// Rate24k is used when an amount block gives no rate
	Rate24k float64

	// AddedMetalPurity is used when an alloy block gives none
	AddedMetalPurity float64
}

// Run evaluates every item in file order. A rejected item becomes an entry
// carrying its error; the other items are still evaluated.
func (ws *Worksheet) Run(defaults Defaults) *output.Report {
	report := &output.Report{Title: filepath.Base(ws.Path)}
	for _, item := range ws.Items {
		entry := ws.evaluate(item, defaults)
		if entry.Error != "" {
			logging.Calculator(item.Kind).Debug("worksheet item rejected",
				zap.String("name", item.Name),
				zap.Int("line", item.Line),
				zap.String("error", entry.Error),
			)
		}
		report.Entries = append(report.Entries, entry)
	}
	return report
}

func (ws *Worksheet) evaluate(item Item, defaults Defaults) output.Entry {
	entry := output.Entry{Name: item.Name, Kind: output.Kind(item.Kind)}

	var err error
	switch {
	case item.Amount != nil:
		var in types.AmountInput
		in, err = item.Amount.input(defaults)
		if err == nil {
			entry.AmountInput = &in
			var res types.AmountBreakdown
			if res, err = amount.Compute(in); err == nil {
				entry.Amount = &res
			}
		}
	case item.Alloy != nil:
		in := item.Alloy.input(defaults)
		entry.AlloyInput = &in
		var res types.AlloyAdjustment
		res, err = alloy.Compute(in)
		if err == nil || res.Kind == types.AdjustInfeasible {
			entry.Alloy = &res
		}
	case item.Interest != nil:
		var terms types.InterestTerms
		var rng types.DateRange
		terms, rng, err = item.Interest.input(ws.Today)
		if err == nil {
			var res types.InterestSchedule
			if res, err = interest.ComputeSchedule(terms, rng); err == nil {
				entry.Interest = &res
			}
		}
	case item.Words != nil:
		entry.Value = item.Words.Value
		err = numfmt.CheckWordsAmount(item.Words.Value)
	}

	if err != nil {
		entry.Error = err.Error()
		entry.ErrorType = string(errors.TypeOf(err))
	}
	return entry
}

func (b *AmountBlock) input(defaults Defaults) (types.AmountInput, error) {
	mode, err := types.ParseMiscMode(b.MiscMode)
	if err != nil {
		return types.AmountInput{}, errors.Wrap(errors.TypeInvalidRange, "invalid misc_mode", err)
	}

	in := types.AmountInput{
		Weight:     b.Weight,
		RatePer24k: defaults.Rate24k,
		MiscMode:   mode,
		MiscValue:  b.MiscValue,
	}
	switch {
	case b.Purity != nil:
		in.Purity = *b.Purity
	case b.Karat != nil:
		in.Purity = amount.PurityFromKarat(*b.Karat)
	}
	switch {
	case b.Rate24k != nil:
		in.RatePer24k = *b.Rate24k
	case b.Rate22k != nil:
		in.RatePer24k = amount.Rate24kFrom22k(*b.Rate22k)
	}
	return in, nil
}

func (b *AlloyBlock) input(defaults Defaults) types.AlloyInput {
	in := types.AlloyInput{
		Weight:           b.Weight,
		CurrentPurity:    b.CurrentPurity,
		TargetPurity:     b.TargetPurity,
		AddedMetalPurity: defaults.AddedMetalPurity,
	}
	if b.AddedMetalPurity != nil {
		in.AddedMetalPurity = *b.AddedMetalPurity
	}
	return in
}

func (b *InterestBlock) input(today time.Time) (types.InterestTerms, types.DateRange, error) {
	period, err := types.ParseRatePeriod(b.RatePeriod)
	if err != nil {
		return types.InterestTerms{}, types.DateRange{}, errors.Wrap(errors.TypeInvalidRange, "invalid rate_period", err)
	}
	kind, err := types.ParseInterestType(b.Type)
	if err != nil {
		return types.InterestTerms{}, types.DateRange{}, errors.Wrap(errors.TypeInvalidRange, "invalid type", err)
	}
	start, err := types.ParseDate(b.Start)
	if err != nil {
		return types.InterestTerms{}, types.DateRange{}, errors.Wrap(errors.TypeInvalidRange, "invalid start date", err)
	}
	end := today
	if b.End != "" {
		if end, err = types.ParseDate(b.End); err != nil {
			return types.InterestTerms{}, types.DateRange{}, errors.Wrap(errors.TypeInvalidRange, "invalid end date", err)
		}
	}

	terms := types.InterestTerms{
		Principal:  b.Principal,
		Rate:       b.Rate,
		RatePeriod: period,
		Type:       kind,
	}
	return terms, types.DateRange{Start: start, End: end}, nil
}
