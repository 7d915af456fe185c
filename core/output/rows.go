// Package output - Shared row builders for the table formats
package output

import (
	"fmt"
	"strconv"

	"gold-calc/core/numfmt"
	"gold-calc/core/types"
)

func fmtAmount(v float64) string  { return numfmt.FormatAmount(v) }
func fmtWeight(v float64) string  { return numfmt.FormatWeight(v) }
func fmtPercent(v float64) string { return numfmt.FormatPercent(v) }

// headline returns the value spelled out in words for an entry
func headline(e *Entry) (float64, bool) {
	switch {
	case e.Amount != nil:
		return e.Amount.Total, true
	case e.Interest != nil:
		return e.Interest.TotalAmount, true
	case e.Kind == KindWords:
		return e.Value, true
	}
	return 0, false
}

// fillWords sets Words on every entry that has a headline value
func fillWords(report *Report, opts Options) {
	if !opts.ShowWords {
		return
	}
	for i := range report.Entries {
		e := &report.Entries[i]
		if e.Error != "" {
			continue
		}
		if v, ok := headline(e); ok {
			e.Words = numfmt.ToWords(v, opts.Language)
		}
	}
}

// hasResult reports whether an entry has a result to show. A rejected
// entry keeps one only when its alloy target is unreachable.
func hasResult(e *Entry) bool {
	return e.Error == "" || e.Alloy != nil
}

// summaryRows returns label/value pairs describing an entry
func summaryRows(e *Entry) [][]string {
	if !hasResult(e) {
		return [][]string{{"Result", "not available"}, {"Reason", e.Error}}
	}

	var rows [][]string
	switch {
	case e.Amount != nil:
		if in := e.AmountInput; in != nil {
			rows = append(rows,
				[]string{"Weight (g)", fmtWeight(in.Weight)},
				[]string{"Purity (%)", fmtPercent(in.Purity)},
				[]string{"Rate 24k", fmtAmount(in.RatePer24k)},
			)
		}
		rows = append(rows,
			[]string{"Pure weight (g)", fmtWeight(e.Amount.PureWeight)},
			[]string{"Gold value", fmtAmount(e.Amount.GoldValue)},
			[]string{"Misc charge", fmtAmount(e.Amount.MiscCharge)},
			[]string{"Total", fmtAmount(e.Amount.Total)},
		)

	case e.Alloy != nil:
		if in := e.AlloyInput; in != nil {
			rows = append(rows,
				[]string{"Weight (g)", fmtWeight(in.Weight)},
				[]string{"Current purity (%)", fmtPercent(in.CurrentPurity)},
				[]string{"Target purity (%)", fmtPercent(in.TargetPurity)},
			)
		}
		rows = append(rows,
			[]string{"Pure content (g)", fmtWeight(e.Alloy.PureContent)},
			[]string{"Action", alloyAction(e)},
		)
		if e.Alloy.Feasible() {
			rows = append(rows,
				[]string{"Weight to add (g)", fmtWeight(e.Alloy.WeightToAdd)},
				[]string{"Resulting weight (g)", fmtWeight(e.Alloy.ResultingTotalWeight)},
			)
		}

	case e.Interest != nil:
		s := e.Interest
		rows = append(rows,
			[]string{"Principal", fmtAmount(s.Terms.Principal)},
			[]string{"Rate", fmt.Sprintf("%s%% %s", fmtPercent(s.Terms.Rate), s.Terms.RatePeriod)},
			[]string{"Type", s.Terms.Type.String()},
			[]string{"Period", fmt.Sprintf("%s to %s (%s)",
				s.Range.Start.Format(types.DateLayout), s.Range.End.Format(types.DateLayout), s.TimePeriod)},
			[]string{"Total interest", fmtAmount(s.TotalInterest)},
			[]string{"Total amount", fmtAmount(s.TotalAmount)},
		)

	case e.Kind == KindWords:
		rows = append(rows, []string{"Amount", fmtAmount(e.Value)})
	}

	if e.Words != "" {
		rows = append(rows, []string{"In words", e.Words})
	}
	return rows
}

func alloyAction(e *Entry) string {
	switch e.Alloy.Kind {
	case types.AdjustAddDiluent:
		return "add copper"
	case types.AdjustAddMetal:
		if e.AlloyInput != nil {
			return fmt.Sprintf("add %s%% metal", fmtPercent(e.AlloyInput.AddedMetalPurity))
		}
		return "add metal"
	case types.AdjustInfeasible:
		return "not possible with this metal"
	default:
		return "no change"
	}
}

var scheduleHeaders = []string{"Month", "Days", "Principal", "Interest", "Cumulative", "Total"}

func scheduleRows(s *types.InterestSchedule) [][]string {
	rows := make([][]string, 0, len(s.MonthlySchedule))
	for _, r := range s.MonthlySchedule {
		rows = append(rows, []string{
			r.MonthLabel,
			strconv.Itoa(r.DaysCounted),
			fmtAmount(r.PrincipalBase),
			fmtAmount(r.MonthlyInterest),
			fmtAmount(r.CumulativeInterest),
			fmtAmount(r.RunningTotal),
		})
	}
	return rows
}

func entryTitle(e *Entry) string {
	if e.Name != "" {
		return fmt.Sprintf("%s %q", e.Kind, e.Name)
	}
	return string(e.Kind)
}
