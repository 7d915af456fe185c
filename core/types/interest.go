// Package types - Interest calculator types
package types

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date layout accepted on every surface
const DateLayout = "2006-01-02"

// RatePeriod is the period a quoted interest rate refers to
type RatePeriod string

const (
	RateMonthly RatePeriod = "monthly"
	RateYearly  RatePeriod = "yearly"
)

// String returns the string representation
func (p RatePeriod) String() string {
	return string(p)
}

// ParseRatePeriod accepts monthly/month/m or yearly/year/annual/y
func ParseRatePeriod(s string) (RatePeriod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monthly", "month", "m":
		return RateMonthly, nil
	case "yearly", "year", "annual", "y", "":
		return RateYearly, nil
	default:
		return "", fmt.Errorf("unknown rate period %q", s)
	}
}

// InterestType selects simple or compound accrual
type InterestType string

const (
	InterestSimple   InterestType = "simple"
	InterestCompound InterestType = "compound"
)

// String returns the string representation
func (t InterestType) String() string {
	return string(t)
}

// ParseInterestType accepts simple or compound
func ParseInterestType(s string) (InterestType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple", "":
		return InterestSimple, nil
	case "compound":
		return InterestCompound, nil
	default:
		return "", fmt.Errorf("unknown interest type %q", s)
	}
}

// Date returns the calendar date y-m-d at UTC midnight
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
// Overflowing days such as 2023-02-30 are rejected.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}

// Truncate drops the time-of-day and location, keeping the calendar date
func Truncate(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// DateRange is an inclusive range of calendar dates
type DateRange struct {
	// Start is the first accrual day
	Start time.Time `json:"start"`

	// End is the last accrual day (inclusive)
	End time.Time `json:"end"`
}

// InterestTerms are the loan terms
type InterestTerms struct {
	// Principal is the amount lent
	Principal MonetaryAmount `json:"principal" yaml:"principal"`

	// Rate is the quoted percentage rate
	Rate float64 `json:"rate" yaml:"rate"`

	// RatePeriod is the period Rate is quoted for
	RatePeriod RatePeriod `json:"rate_period" yaml:"rate_period"`

	// Type selects simple or compound accrual
	Type InterestType `json:"type" yaml:"type"`
}

// TimePeriod is an elapsed span split into years, months and days
type TimePeriod struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}

// String renders the period as "1y 2m 3d"
func (p TimePeriod) String() string {
	return fmt.Sprintf("%dy %dm %dd", p.Years, p.Months, p.Days)
}

// MonthlyAccrualRecord is one row of the monthly breakdown
type MonthlyAccrualRecord struct {
	// MonthLabel is a short label such as "Jan 2024"
	MonthLabel string `json:"month_label"`

	// MonthNumber is the calendar month, 1-12
	MonthNumber int `json:"month_number"`

	// Year is the calendar year
	Year int `json:"year"`

	// DaysCounted is the number of accrual days in this month
	DaysCounted int `json:"days_counted"`

	// PrincipalBase is the principal interest was computed on
	PrincipalBase MonetaryAmount `json:"principal_base"`

	// MonthlyInterest is the interest accrued this month
	MonthlyInterest MonetaryAmount `json:"monthly_interest"`

	// CumulativeInterest is the interest accrued up to and including this month
	CumulativeInterest MonetaryAmount `json:"cumulative_interest"`

	// RunningTotal is the original principal plus CumulativeInterest
	RunningTotal MonetaryAmount `json:"running_total"`
}

// InterestSchedule is the complete interest computation result
type InterestSchedule struct {
	// Terms echoes the terms the schedule was computed for
	Terms InterestTerms `json:"terms"`

	// Range echoes the accrual range
	Range DateRange `json:"range"`

	// TimePeriod is the elapsed span for display
	TimePeriod TimePeriod `json:"time_period"`

	// DailyRate is the percentage rate applied per day
	DailyRate float64 `json:"daily_rate"`

	// MonthlySchedule is the chronological month-by-month breakdown
	MonthlySchedule []MonthlyAccrualRecord `json:"monthly_schedule"`

	// TotalInterest is the sum of MonthlyInterest over the schedule
	TotalInterest MonetaryAmount `json:"total_interest"`

	// TotalAmount is the principal plus TotalInterest
	TotalAmount MonetaryAmount `json:"total_amount"`
}

// IsEmpty reports whether the schedule carries no result
func (s InterestSchedule) IsEmpty() bool {
	return len(s.MonthlySchedule) == 0
}
