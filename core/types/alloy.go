// Package types - Alloy mixer types
package types

// AdjustmentKind is the outcome of an alloy adjustment
type AdjustmentKind string

const (
	// AdjustNoChange means the target purity is already met
	AdjustNoChange AdjustmentKind = "no_change"

	// AdjustAddDiluent means base metal (copper) must be added to lower purity
	AdjustAddDiluent AdjustmentKind = "add_diluent"

	// AdjustAddMetal means higher-purity metal must be added to raise purity
	AdjustAddMetal AdjustmentKind = "add_metal"

	// AdjustInfeasible means the target cannot be reached with the chosen metal
	AdjustInfeasible AdjustmentKind = "infeasible"
)

// String returns the string representation
func (k AdjustmentKind) String() string {
	return string(k)
}

// AlloyInput is the raw input to the alloy mixer
type AlloyInput struct {
	// Weight is the current weight in grams
	Weight Weight `json:"weight" yaml:"weight"`

	// CurrentPurity is the purity of the metal on hand
	CurrentPurity Purity `json:"current_purity" yaml:"current_purity"`

	// TargetPurity is the desired purity
	TargetPurity Purity `json:"target_purity" yaml:"target_purity"`

	// AddedMetalPurity is the purity of the metal added when enriching
	AddedMetalPurity Purity `json:"added_metal_purity" yaml:"added_metal_purity"`
}

// AlloyAdjustment is the computed mixing instruction
type AlloyAdjustment struct {
	// Kind is the adjustment outcome
	Kind AdjustmentKind `json:"kind"`

	// WeightToAdd is the weight of diluent or metal to add, in grams
	WeightToAdd Weight `json:"weight_to_add"`

	// ResultingTotalWeight is the weight after the addition
	ResultingTotalWeight Weight `json:"resulting_total_weight"`

	// PureContent is the fine-metal weight of the starting sample
	PureContent Weight `json:"pure_content"`
}

// Feasible reports whether the adjustment carries a usable weight
func (a AlloyAdjustment) Feasible() bool {
	return a.Kind != AdjustInfeasible && a.Kind != ""
}
