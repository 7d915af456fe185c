// Package amount values a gold item from its weight, purity and the 24k rate.
//
// The item is always valued at the 24-karat rate scaled by its fine-metal
// fraction. The 22k rate is a derived display value.
package amount

import (
	"math"

	"github.com/shopspring/decimal"

	"gold-calc/core/types"
	"gold-calc/internal/errors"
)

var (
	twentyTwo  = decimal.NewFromInt(22)
	twentyFour = decimal.NewFromInt(24)
	hundred    = decimal.NewFromInt(100)
)

// Compute returns the valuation for in. Negative, NaN or infinite fields
// yield the zero AmountBreakdown and an INCOMPLETE_INPUT error; a purity
// above 100 yields INVALID_RANGE.
func Compute(in types.AmountInput) (types.AmountBreakdown, error) {
	if err := validate(in); err != nil {
		return types.AmountBreakdown{}, err
	}

	pureWeight := in.Weight * in.Purity / 100
	goldValue := pureWeight * in.RatePer24k

	misc := in.MiscValue
	if in.MiscMode == types.MiscPercent {
		misc = goldValue * in.MiscValue / 100
	}

	return types.AmountBreakdown{
		PureWeight: pureWeight,
		GoldValue:  goldValue,
		MiscCharge: misc,
		Total:      goldValue + misc,
	}, nil
}

func validate(in types.AmountInput) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"weight", in.Weight},
		{"purity", in.Purity},
		{"rate", in.RatePer24k},
		{"misc value", in.MiscValue},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 {
			return errors.Incomplete(f.name)
		}
	}
	if in.Purity > 100 {
		return errors.InvalidRange("purity %.3f is outside 0-100", in.Purity)
	}
	switch in.MiscMode {
	case types.MiscFixed, types.MiscPercent:
	default:
		return errors.Newf(errors.TypeIncompleteInput, "misc mode %q is not fixed or percent", in.MiscMode)
	}
	return nil
}

// Rate22kFrom24k derives the 22k-equivalent rate, rounded to a whole unit
func Rate22kFrom24k(rate24k float64) float64 {
	return decimal.NewFromFloat(rate24k).Mul(twentyTwo).Div(twentyFour).Round(0).InexactFloat64()
}

// Rate24kFrom22k derives the 24k rate from a 22k-equivalent rate, rounded to a whole unit
func Rate24kFrom22k(rate22k float64) float64 {
	return decimal.NewFromFloat(rate22k).Mul(twentyFour).Div(twentyTwo).Round(0).InexactFloat64()
}

// PurityFromKarat converts karats (24k = 100%) to a purity percentage
func PurityFromKarat(karat float64) types.Purity {
	return decimal.NewFromFloat(karat).Mul(hundred).Div(twentyFour).InexactFloat64()
}

// KaratFromPurity converts a purity percentage to karats
func KaratFromPurity(purity types.Purity) float64 {
	return decimal.NewFromFloat(purity).Mul(twentyFour).Div(hundred).InexactFloat64()
}
