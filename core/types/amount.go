// Package types - Amount calculator types
package types

import (
	"fmt"
	"strings"
)

// MiscMode selects how the miscellaneous charge is applied
type MiscMode string

const (
	// MiscFixed adds the misc value as a flat amount
	MiscFixed MiscMode = "fixed"

	// MiscPercent adds the misc value as a percentage of the gold value
	MiscPercent MiscMode = "percent"
)

// String returns the string representation
func (m MiscMode) String() string {
	return string(m)
}

// ParseMiscMode accepts "fixed" or "percent" ("%" is an alias)
func ParseMiscMode(s string) (MiscMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed", "":
		return MiscFixed, nil
	case "percent", "%", "percentage":
		return MiscPercent, nil
	default:
		return "", fmt.Errorf("unknown misc mode %q", s)
	}
}

// AmountInput is the raw input to the amount calculator
type AmountInput struct {
	// Weight is the gross weight in grams
	Weight Weight `json:"weight" yaml:"weight"`

	// Purity is the fine-metal percentage
	Purity Purity `json:"purity" yaml:"purity"`

	// RatePer24k is the price of one gram of 24k (100%) gold
	RatePer24k MonetaryAmount `json:"rate_24k" yaml:"rate_24k"`

	// MiscMode selects fixed or percentage misc charge
	MiscMode MiscMode `json:"misc_mode" yaml:"misc_mode"`

	// MiscValue is the misc charge amount or percentage
	MiscValue float64 `json:"misc_value" yaml:"misc_value"`
}

// AmountBreakdown is the computed valuation
type AmountBreakdown struct {
	// PureWeight is the fine gold content in grams
	PureWeight Weight `json:"pure_weight"`

	// GoldValue is PureWeight valued at the 24k rate
	GoldValue MonetaryAmount `json:"gold_value"`

	// MiscCharge is the resolved misc charge
	MiscCharge MonetaryAmount `json:"misc_charge"`

	// Total is GoldValue + MiscCharge
	Total MonetaryAmount `json:"total"`
}
