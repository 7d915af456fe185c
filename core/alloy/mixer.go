// Package alloy computes how much base metal or higher-purity metal has to be
// added to a gold sample to bring it to a target purity.
//
// Lowering purity dilutes the fine content with 0% base metal (copper), so the
// fine weight stays fixed and only the total weight grows. Raising purity adds
// metal that carries its own fine content; the added weight follows from the
// mass balance
//
//	(weight*current + x*added) / (weight + x) = target
//
// which has a non-negative solution only while the added metal is purer than
// the target.
package alloy

import (
	"math"

	"gold-calc/core/types"
	"gold-calc/internal/errors"
)

// epsilon is the relative tolerance under which a delta counts as no change
const epsilon = 1e-9

// ComputeAdjustment returns the mixing instruction for a sample of weight grams
// at currentPurity to reach targetPurity. addedMetalPurity is only consulted
// when the target is above the current purity.
//
// Invalid input yields the zero AlloyAdjustment and an INCOMPLETE_INPUT or
// INVALID_RANGE error. An unreachable target yields an adjustment of kind
// AdjustInfeasible together with an INFEASIBLE_TARGET error.
func ComputeAdjustment(weight types.Weight, currentPurity, targetPurity, addedMetalPurity types.Purity) (types.AlloyAdjustment, error) {
	if err := validate(weight, currentPurity, targetPurity); err != nil {
		return types.AlloyAdjustment{}, err
	}

	pureContent := weight * currentPurity / 100

	switch {
	case targetPurity == currentPurity:
		return noChange(weight, pureContent), nil

	case targetPurity < currentPurity:
		total := pureContent / (targetPurity / 100)
		return settle(types.AdjustAddDiluent, weight, total-weight, pureContent), nil

	default:
		if !finite(addedMetalPurity) || addedMetalPurity < 0 {
			return types.AlloyAdjustment{}, errors.Incomplete("added metal purity")
		}
		if addedMetalPurity > 100 {
			return types.AlloyAdjustment{}, errors.InvalidRange("added metal purity %.3f is outside 0-100", addedMetalPurity)
		}
		if addedMetalPurity <= targetPurity {
			adj := types.AlloyAdjustment{
				Kind:                 types.AdjustInfeasible,
				ResultingTotalWeight: weight,
				PureContent:          pureContent,
			}
			return adj, errors.Infeasible("metal of purity %.3f cannot raise the alloy to %.3f", addedMetalPurity, targetPurity).
				WithContext("added_metal_purity", addedMetalPurity).
				WithContext("target_purity", targetPurity)
		}
		add := weight * (targetPurity - currentPurity) / (addedMetalPurity - targetPurity)
		return settle(types.AdjustAddMetal, weight, add, pureContent), nil
	}
}

// Compute is ComputeAdjustment over an AlloyInput
func Compute(in types.AlloyInput) (types.AlloyAdjustment, error) {
	return ComputeAdjustment(in.Weight, in.CurrentPurity, in.TargetPurity, in.AddedMetalPurity)
}

func validate(weight, current, target float64) error {
	if !finite(weight) || weight <= 0 {
		return errors.Incomplete("weight")
	}
	if !finite(current) {
		return errors.Incomplete("current purity")
	}
	if !finite(target) {
		return errors.Incomplete("target purity")
	}
	if current < 0 || current > 100 {
		return errors.InvalidRange("current purity %.3f is outside 0-100", current)
	}
	if target <= 0 || target > 100 {
		// A 0% target would need infinite dilution.
		return errors.InvalidRange("target purity %.3f is outside (0,100]", target)
	}
	return nil
}

// settle clamps round-off: a delta within epsilon of the sample weight is
// reported as no change, and nothing is ever negative.
func settle(kind types.AdjustmentKind, weight, add, pureContent float64) types.AlloyAdjustment {
	if add <= epsilon*weight {
		return noChange(weight, pureContent)
	}
	return types.AlloyAdjustment{
		Kind:                 kind,
		WeightToAdd:          add,
		ResultingTotalWeight: weight + add,
		PureContent:          pureContent,
	}
}

func noChange(weight, pureContent float64) types.AlloyAdjustment {
	return types.AlloyAdjustment{
		Kind:                 types.AdjustNoChange,
		ResultingTotalWeight: weight,
		PureContent:          pureContent,
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
