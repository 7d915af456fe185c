// Package types defines the value objects shared by the calculators,
// the output renderers and the outer surfaces.
// This package contains NO business logic - only type definitions.
package types

import (
	"fmt"
	"strings"
)

// Language selects the number-to-words vocabulary
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageTamil   Language = "ta"
)

// String returns the string representation of the language
func (l Language) String() string {
	return string(l)
}

// IsValid checks if the language has a vocabulary
func (l Language) IsValid() bool {
	switch l {
	case LanguageEnglish, LanguageTamil:
		return true
	default:
		return false
	}
}

// ParseLanguage accepts "en", "english", "ta" or "tamil" in any case
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "en", "english", "":
		return LanguageEnglish, nil
	case "ta", "tamil":
		return LanguageTamil, nil
	default:
		return "", fmt.Errorf("unknown language %q", s)
	}
}

// Weight is a mass in grams
type Weight = float64

// Purity is the percentage of fine metal by weight, in [0,100]
type Purity = float64

// MonetaryAmount is a non-negative currency amount kept at full precision
type MonetaryAmount = float64
