// Package numfmt renders amounts the way they are written in India: digits
// grouped as 12,34,56,789 and amounts spelled out with lakh and crore scale
// words, in English or Tamil.
package numfmt

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// AmountPlaces is the number of decimals shown for money
	AmountPlaces = 2

	// WeightPlaces is the number of decimals shown for grams
	WeightPlaces = 3
)

// GroupIndian inserts Indian digit-group separators into a plain numeric
// string. The last three integer digits form one group and the remaining
// digits are grouped in pairs. A fractional part and a leading sign are
// carried through unmodified.
func GroupIndian(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, s = s[:1], s[1:]
	}

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	if len(intPart) <= 3 {
		return sign + intPart + frac
	}

	head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
	var chunks []string
	for len(head) > 2 {
		chunks = append([]string{head[len(head)-2:]}, chunks...)
		head = head[:len(head)-2]
	}
	if head != "" {
		chunks = append([]string{head}, chunks...)
	}
	chunks = append(chunks, tail)

	return sign + strings.Join(chunks, ",") + frac
}

// FormatIndian rounds d to places decimals and groups the integer part
func FormatIndian(d decimal.Decimal, places int32) string {
	return GroupIndian(d.StringFixed(places))
}

// FormatIndianInt groups an integer with no decimals
func FormatIndianInt(n int64) string {
	return GroupIndian(decimal.NewFromInt(n).String())
}

// FormatAmount renders a money value with two decimals, e.g. 1,01,019.18
func FormatAmount(v float64) string {
	return FormatIndian(decimal.NewFromFloat(v), AmountPlaces)
}

// FormatWeight renders grams with three decimals, e.g. 2.213
func FormatWeight(v float64) string {
	return FormatIndian(decimal.NewFromFloat(v), WeightPlaces)
}

// FormatPercent renders a rate or purity with up to three decimals and no
// trailing zeros, e.g. 91.6
func FormatPercent(v float64) string {
	return decimal.NewFromFloat(v).Round(3).String()
}
