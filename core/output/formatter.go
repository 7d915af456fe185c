// Package output renders calculator results for people and machines.
// Renderers only read result values; they never compute.
package output

import (
	"fmt"
	"io"
	"sort"

	"gold-calc/core/types"
	"gold-calc/internal/session"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable terminal table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"
)

// Kind identifies which calculator produced an entry
type Kind string

const (
	KindAmount   Kind = "amount"
	KindAlloy    Kind = "alloy"
	KindInterest Kind = "interest"
	KindWords    Kind = "words"
)

// Options controls presentation
type Options struct {
	// Language selects the words vocabulary
	Language types.Language

	// ShowWords appends totals in words
	ShowWords bool
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes every entry of the report
	Render(w io.Writer, report *Report) error
}

// Report is an ordered set of calculator results
type Report struct {
	// Title is an optional heading, e.g. the worksheet file name
	Title string `json:"title,omitempty"`

	// Entries are rendered in order
	Entries []Entry `json:"entries"`
}

// Entry is the result of one calculation. Exactly one of the result
// pointers is set unless Error is non-empty; an unreachable alloy target
// keeps its AdjustInfeasible result alongside the error.
type Entry struct {
	// Name labels the entry, e.g. the worksheet block label
	Name string `json:"name,omitempty"`

	// Kind identifies the calculator
	Kind Kind `json:"kind"`

	AmountInput *types.AmountInput     `json:"amount_input,omitempty"`
	Amount      *types.AmountBreakdown `json:"amount,omitempty"`

	AlloyInput *types.AlloyInput       `json:"alloy_input,omitempty"`
	Alloy      *types.AlloyAdjustment  `json:"alloy,omitempty"`
	Interest   *types.InterestSchedule `json:"interest,omitempty"`

	// Value is the number spelled out by a words entry
	Value float64 `json:"value,omitempty"`

	// Words is the total in words, filled by the renderer when enabled
	Words string `json:"words,omitempty"`

	// Error is the rejection message
	Error string `json:"error,omitempty"`

	// ErrorType is the error taxonomy code for Error
	ErrorType string `json:"error_type,omitempty"`
}

// NewFormatter returns the formatter for format
func NewFormatter(format Format, opts Options) (Formatter, error) {
	if opts.Language == "" {
		opts.Language = types.LanguageEnglish
	}
	switch format {
	case FormatCLI, "":
		return &cliFormatter{opts: opts}, nil
	case FormatJSON:
		return &jsonFormatter{opts: opts}, nil
	case FormatMarkdown:
		return &markdownFormatter{opts: opts}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want %s)", format, formatList())
	}
}

func formatList() string {
	names := []string{string(FormatCLI), string(FormatJSON), string(FormatMarkdown)}
	sort.Strings(names)
	return fmt.Sprint(names)
}

// RenderSnapshot writes the session snapshot as a report of its inputs
func RenderSnapshot(w io.Writer, snap *session.Snapshot) error {
	if snap.IsEmpty() {
		_, err := fmt.Fprintln(w, "No saved session.")
		return err
	}
	rows := [][]string{
		{"Snapshot", snap.ID.String()},
		{"Saved at", snap.SavedAt.Format("2006-01-02 15:04:05 MST")},
	}
	if snap.Language != "" {
		rows = append(rows, []string{"Language", snap.Language.String()})
	}
	if a := snap.Amount; a != nil {
		rows = append(rows, []string{"Amount", fmt.Sprintf("%sg @ %s%% x %s/g, misc %s %s",
			fmtWeight(a.Weight), fmtPercent(a.Purity), fmtAmount(a.RatePer24k), a.MiscMode, fmtPercent(a.MiscValue))})
	}
	if a := snap.Alloy; a != nil {
		rows = append(rows, []string{"Alloy", fmt.Sprintf("%sg %s%% -> %s%% (added %s%%)",
			fmtWeight(a.Weight), fmtPercent(a.CurrentPurity), fmtPercent(a.TargetPurity), fmtPercent(a.AddedMetalPurity))})
	}
	if i := snap.Interest; i != nil {
		rows = append(rows, []string{"Interest", fmt.Sprintf("%s @ %s%% %s %s, %s to %s",
			fmtAmount(i.Terms.Principal), fmtPercent(i.Terms.Rate), i.Terms.RatePeriod, i.Terms.Type, i.Start, i.End)})
	}
	_, err := fmt.Fprintln(w, kvTable(rows))
	return err
}
