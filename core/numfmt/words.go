// Package numfmt - Amount to words
package numfmt

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"gold-calc/core/types"
	"gold-calc/internal/errors"
)

const (
	crore    = 10000000
	lakh     = 100000
	thousand = 1000
)

// vocabulary holds the words for one language
type vocabulary struct {
	ones     [20]string // 0-19; index 0 unused
	tens     [10]string // 20, 30, ... 90 at index 2-9
	hundred  string
	thousand string
	lakh     string
	crore    string
	zero     string
	currency string
	subunit  string
	and      string
}

var english = vocabulary{
	ones: [20]string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
		"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"},
	tens:     [10]string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"},
	hundred:  "Hundred",
	thousand: "Thousand",
	lakh:     "Lakh",
	crore:    "Crore",
	zero:     "Zero",
	currency: "Rupees",
	subunit:  "Paise",
	and:      "and",
}

var tamil = vocabulary{
	ones: [20]string{"", "ஒன்று", "இரண்டு", "மூன்று", "நான்கு", "ஐந்து", "ஆறு", "ஏழு", "எட்டு", "ஒன்பது",
		"பத்து", "பதினொன்று", "பன்னிரண்டு", "பதின்மூன்று", "பதினான்கு", "பதினைந்து", "பதினாறு", "பதினேழு", "பதினெட்டு", "பத்தொன்பது"},
	tens:     [10]string{"", "", "இருபது", "முப்பது", "நாற்பது", "ஐம்பது", "அறுபது", "எழுபது", "எண்பது", "தொண்ணூறு"},
	hundred:  "நூறு",
	thousand: "ஆயிரம்",
	lakh:     "லட்சம்",
	crore:    "கோடி",
	zero:     "பூஜ்யம்",
	currency: "ரூபாய்",
	subunit:  "பைசா",
	and:      "மற்றும்",
}

func vocabularyFor(lang types.Language) vocabulary {
	if lang == types.LanguageTamil {
		return tamil
	}
	return english
}

// MaxWordsAmount bounds the amounts ToWords spells out; the rupee part
// must stay within int64.
const MaxWordsAmount = 1e18

// CheckWordsAmount rejects amounts ToWords cannot spell out
func CheckWordsAmount(amount float64) error {
	switch {
	case math.IsNaN(amount) || math.IsInf(amount, 0):
		return errors.InvalidRange("amount %g is not a finite number", amount)
	case amount < 0:
		return errors.InvalidRange("amount %g must not be negative", amount)
	case amount >= MaxWordsAmount:
		return errors.InvalidRange("amount %g is too large to spell out", amount)
	}
	return nil
}

// ToWords spells out a non-negative amount in rupees and paise. Paise are
// rounded to two decimals and appended only when non-zero. Amounts rejected
// by CheckWordsAmount have no rendering and return "".
func ToWords(amount float64, lang types.Language) string {
	if CheckWordsAmount(amount) != nil {
		return ""
	}
	v := vocabularyFor(lang)

	d := decimal.NewFromFloat(amount).Round(2)
	whole := d.Truncate(0)
	rupees := whole.IntPart()
	paise := d.Sub(whole).Shift(2).IntPart()

	var b strings.Builder
	if rupees == 0 {
		b.WriteString(v.zero)
	} else {
		b.WriteString(v.integer(rupees))
	}
	b.WriteString(" ")
	b.WriteString(v.currency)

	if paise > 0 {
		b.WriteString(" ")
		b.WriteString(v.and)
		b.WriteString(" ")
		b.WriteString(v.belowThousand(paise))
		b.WriteString(" ")
		b.WriteString(v.subunit)
	}
	return b.String()
}

// NumberToWords spells out amount in English, e.g. "Zero Rupees"
func NumberToWords(amount float64) string {
	return ToWords(amount, types.LanguageEnglish)
}

// NumberToWordsTamil spells out amount in Tamil, e.g. "பூஜ்யம் ரூபாய்"
func NumberToWordsTamil(amount float64) string {
	return ToWords(amount, types.LanguageTamil)
}

// IntegerWords spells out a non-negative integer with the Indian scale words
func IntegerWords(n int64, lang types.Language) string {
	v := vocabularyFor(lang)
	if n <= 0 {
		return v.zero
	}
	return v.integer(n)
}

// integer spells n > 0. Counts of crores above 99 recurse through the full
// routine, so 1,00,00,00,000 is "One Hundred Crore".
func (v vocabulary) integer(n int64) string {
	var parts []string
	if c := n / crore; c > 0 {
		parts = append(parts, v.integer(c), v.crore)
		n %= crore
	}
	if l := n / lakh; l > 0 {
		parts = append(parts, v.belowHundred(l), v.lakh)
		n %= lakh
	}
	if t := n / thousand; t > 0 {
		parts = append(parts, v.belowHundred(t), v.thousand)
		n %= thousand
	}
	if n > 0 {
		parts = append(parts, v.belowThousand(n))
	}
	return strings.Join(parts, " ")
}

func (v vocabulary) belowThousand(n int64) string {
	var parts []string
	if h := n / 100; h > 0 {
		parts = append(parts, v.ones[h], v.hundred)
		n %= 100
	}
	if n > 0 {
		parts = append(parts, v.belowHundred(n))
	}
	return strings.Join(parts, " ")
}

func (v vocabulary) belowHundred(n int64) string {
	if n < 20 {
		return v.ones[n]
	}
	if n%10 == 0 {
		return v.tens[n/10]
	}
	return v.tens[n/10] + " " + v.ones[n%10]
}
