// Package api - Request and response types
// Optional numbers are pointers so a missing field can be told apart from 0.
package api

import (
	"time"

	"gold-calc/core/amount"
	"gold-calc/core/types"
	"gold-calc/internal/errors"
	"gold-calc/internal/session"
)

// AmountRequest is the input to POST /amount
type AmountRequest struct {
	// Weight is the gross weight in grams
	Weight *float64 `json:"weight" validate:"required"`

	// Purity in percent; Karat is used when it is absent
	Purity *float64 `json:"purity,omitempty" validate:"required_without=Karat"`
	Karat  *float64 `json:"karat,omitempty" validate:"omitempty,gte=0,lte=24"`

	// Rate24k per gram; Rate22k is converted when it is absent
	Rate24k *float64 `json:"rate_24k,omitempty" validate:"required_without=Rate22k"`
	Rate22k *float64 `json:"rate_22k,omitempty"`

	// MiscMode is fixed (default) or percent
	MiscMode  string  `json:"misc_mode,omitempty" validate:"omitempty,oneof=fixed percent"`
	MiscValue float64 `json:"misc_value,omitempty"`

	// Language selects the words vocabulary (en, ta)
	Language string `json:"language,omitempty" validate:"omitempty,oneof=en ta"`
}

// input converts the request into calculator input
func (req *AmountRequest) input() (types.AmountInput, error) {
	if req.Weight == nil {
		return types.AmountInput{}, errors.Incomplete("weight")
	}
	mode, err := types.ParseMiscMode(req.MiscMode)
	if err != nil {
		return types.AmountInput{}, errors.Wrap(errors.TypeInvalidRange, "invalid misc_mode", err)
	}

	in := types.AmountInput{
		Weight:    *req.Weight,
		MiscMode:  mode,
		MiscValue: req.MiscValue,
	}
	switch {
	case req.Purity != nil:
		in.Purity = *req.Purity
	case req.Karat != nil:
		in.Purity = amount.PurityFromKarat(*req.Karat)
	default:
		return types.AmountInput{}, errors.Incomplete("purity")
	}
	switch {
	case req.Rate24k != nil:
		in.RatePer24k = *req.Rate24k
	case req.Rate22k != nil:
		in.RatePer24k = amount.Rate24kFrom22k(*req.Rate22k)
	default:
		return types.AmountInput{}, errors.Incomplete("rate")
	}
	return in, nil
}

// AmountResponse is the output of POST /amount
type AmountResponse struct {
	Input  types.AmountInput     `json:"input"`
	Result types.AmountBreakdown `json:"result"`

	// Total is the grouped, two-decimal total
	Total string `json:"total"`

	// Words is the total in words
	Words string `json:"words"`
}

// AlloyRequest is the input to POST /alloy
type AlloyRequest struct {
	Weight        *float64 `json:"weight" validate:"required"`
	CurrentPurity *float64 `json:"current_purity" validate:"required"`
	TargetPurity  *float64 `json:"target_purity" validate:"required"`

	// AddedMetalPurity defaults to the server setting
	AddedMetalPurity *float64 `json:"added_metal_purity,omitempty"`
}

// AlloyResponse is the output of POST /alloy
type AlloyResponse struct {
	Input  types.AlloyInput      `json:"input"`
	Result types.AlloyAdjustment `json:"result"`
}

// InterestRequest is the input to POST /interest
type InterestRequest struct {
	Principal  *float64 `json:"principal" validate:"required"`
	Rate       *float64 `json:"rate" validate:"required"`
	RatePeriod string   `json:"rate_period,omitempty" validate:"omitempty,oneof=monthly yearly"`
	Type       string   `json:"type,omitempty" validate:"omitempty,oneof=simple compound"`

	// Start and End are YYYY-MM-DD; End defaults to today
	Start string `json:"start" validate:"required,datetime=2006-01-02"`
	End   string `json:"end,omitempty" validate:"omitempty,datetime=2006-01-02"`

	Language string `json:"language,omitempty" validate:"omitempty,oneof=en ta"`
}

// input converts the request into loan terms and an accrual range.
// A missing end date is today.
func (req *InterestRequest) input(today time.Time) (types.InterestTerms, types.DateRange, error) {
	if req.Principal == nil {
		return types.InterestTerms{}, types.DateRange{}, errors.Incomplete("principal")
	}
	if req.Rate == nil {
		return types.InterestTerms{}, types.DateRange{}, errors.Incomplete("rate")
	}
	period, err := types.ParseRatePeriod(req.RatePeriod)
	if err != nil {
		return types.InterestTerms{}, types.DateRange{}, errors.Wrap(errors.TypeInvalidRange, "invalid rate_period", err)
	}
	kind, err := types.ParseInterestType(req.Type)
	if err != nil {
		return types.InterestTerms{}, types.DateRange{}, errors.Wrap(errors.TypeInvalidRange, "invalid type", err)
	}
	start, err := types.ParseDate(req.Start)
	if err != nil {
		return types.InterestTerms{}, types.DateRange{}, errors.Wrap(errors.TypeInvalidRange, "invalid start date", err)
	}
	end := today
	if req.End != "" {
		if end, err = types.ParseDate(req.End); err != nil {
			return types.InterestTerms{}, types.DateRange{}, errors.Wrap(errors.TypeInvalidRange, "invalid end date", err)
		}
	}

	terms := types.InterestTerms{
		Principal:  *req.Principal,
		Rate:       *req.Rate,
		RatePeriod: period,
		Type:       kind,
	}
	return terms, types.DateRange{Start: start, End: end}, nil
}

// InterestResponse is the output of POST /interest
type InterestResponse struct {
	Schedule types.InterestSchedule `json:"schedule"`

	// Total is the grouped, two-decimal total amount
	Total string `json:"total"`

	// Words is the total amount in words
	Words string `json:"words"`
}

// WordsRequest is the input to POST /words
type WordsRequest struct {
	Amount   *float64 `json:"amount" validate:"required"`
	Language string   `json:"language,omitempty" validate:"omitempty,oneof=en ta"`
}

// WordsResponse is the output of POST /words
type WordsResponse struct {
	Amount    float64        `json:"amount"`
	Language  types.Language `json:"language"`
	Formatted string         `json:"formatted"`
	Words     string         `json:"words"`
}

// SessionResponse is the output of GET /session
type SessionResponse struct {
	// Snapshot is nil when nothing has been saved
	Snapshot *session.Snapshot `json:"snapshot"`
}

// ErrorBody is the error envelope
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failed request
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`

	// Fields lists the request fields that failed validation
	Fields []string `json:"fields,omitempty"`
}
