package worksheet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gold-calc/core/output"
	"gold-calc/core/types"
	"gold-calc/internal/errors"
)

var today = time.Date(2024, time.February, 15, 18, 30, 0, 0, time.UTC)

const sample = `
locals {
  rate = 7000
}

amount "ring" {
  weight     = 10
  purity     = 91.6
  rate_24k   = local.rate
  misc_mode  = "fixed"
  misc_value = 500
}

alloy "bar" {
  weight         = 10
  current_purity = 91.6
  target_purity  = 75
}

interest "loan" {
  principal = 100000
  rate      = 12
  start     = "2024-01-01"
  end       = today
}

words "gift" {
  value = 1500.5
}
`

func TestParseKeepsFileOrder(t *testing.T) {
	ws, err := Parse([]byte(sample), "book.hcl", today)
	require.NoError(t, err)

	require.Len(t, ws.Items, 4)
	kinds := []string{ws.Items[0].Kind, ws.Items[1].Kind, ws.Items[2].Kind, ws.Items[3].Kind}
	assert.Equal(t, []string{"amount", "alloy", "interest", "words"}, kinds)
	assert.Equal(t, "ring", ws.Items[0].Name)
	assert.Equal(t, 6, ws.Items[0].Line)

	require.NotNil(t, ws.Items[0].Amount.Rate24k)
	assert.Equal(t, 7000.0, *ws.Items[0].Amount.Rate24k)
	assert.Equal(t, "2024-02-15", ws.Items[2].Interest.End)
	assert.Nil(t, ws.Items[1].Alloy.AddedMetalPurity)
}

func TestRun(t *testing.T) {
	ws, err := Parse([]byte(sample), "dir/book.hcl", today)
	require.NoError(t, err)

	report := ws.Run(Defaults{Rate24k: 6500, AddedMetalPurity: 100})
	assert.Equal(t, "book.hcl", report.Title)
	require.Len(t, report.Entries, 4)

	ring := report.Entries[0]
	assert.Equal(t, output.KindAmount, ring.Kind)
	require.NotNil(t, ring.Amount)
	assert.InDelta(t, 64620.0, ring.Amount.Total, 1e-6)

	bar := report.Entries[1]
	require.NotNil(t, bar.Alloy)
	assert.Equal(t, types.AdjustAddDiluent, bar.Alloy.Kind)
	assert.Equal(t, 100.0, bar.AlloyInput.AddedMetalPurity)

	loan := report.Entries[2]
	require.NotNil(t, loan.Interest)
	require.Len(t, loan.Interest.MonthlySchedule, 2)
	assert.Equal(t, 15, loan.Interest.MonthlySchedule[1].DaysCounted)

	gift := report.Entries[3]
	assert.Equal(t, output.KindWords, gift.Kind)
	assert.Equal(t, 1500.5, gift.Value)
}

func TestRunUsesDefaultsAndKarat(t *testing.T) {
	src := `
amount "chain" {
  weight = 8
  karat  = 22
}

amount "coin" {
  weight   = 1
  purity   = karat(24)
  rate_22k = 6600
}
`
	ws, err := Parse([]byte(src), "k.hcl", today)
	require.NoError(t, err)

	report := ws.Run(Defaults{Rate24k: 7000})
	require.Len(t, report.Entries, 2)

	chain := report.Entries[0]
	require.Empty(t, chain.Error)
	assert.InDelta(t, 91.6667, chain.AmountInput.Purity, 1e-3)
	assert.Equal(t, 7000.0, chain.AmountInput.RatePer24k)

	coin := report.Entries[1]
	require.Empty(t, coin.Error)
	assert.Equal(t, 100.0, coin.AmountInput.Purity)
	assert.Equal(t, 7200.0, coin.AmountInput.RatePer24k)
}

func TestRunReportsRejectedItems(t *testing.T) {
	src := `
alloy "bad" {
  weight         = 10
  current_purity = 91.6
  target_purity  = 0
}

interest "backwards" {
  principal = 1000
  rate      = 2
  rate_period = "monthly"
  start     = "2024-03-01"
  end       = "2024-01-01"
}

amount "ok" {
  weight   = 1
  purity   = 100
  rate_24k = 100
}
`
	ws, err := Parse([]byte(src), "bad.hcl", today)
	require.NoError(t, err)

	report := ws.Run(Defaults{AddedMetalPurity: 100})
	require.Len(t, report.Entries, 3)

	assert.Equal(t, string(errors.TypeInvalidRange), report.Entries[0].ErrorType)
	assert.Nil(t, report.Entries[0].Alloy)
	assert.Equal(t, string(errors.TypeInvalidRange), report.Entries[1].ErrorType)
	assert.Nil(t, report.Entries[1].Interest)
	assert.Empty(t, report.Entries[2].Error)
	assert.Equal(t, 100.0, report.Entries[2].Amount.Total)
}

func TestRunKeepsUnreachableAlloyTarget(t *testing.T) {
	src := `
alloy "upgrade" {
  weight             = 10
  current_purity     = 75
  target_purity      = 91.6
  added_metal_purity = 90
}

words "huge" {
  value = 1e20
}
`
	ws, err := Parse([]byte(src), "up.hcl", today)
	require.NoError(t, err)

	report := ws.Run(Defaults{AddedMetalPurity: 100})
	require.Len(t, report.Entries, 2)

	up := report.Entries[0]
	assert.Equal(t, string(errors.TypeInfeasibleTarget), up.ErrorType)
	require.NotNil(t, up.Alloy)
	assert.Equal(t, types.AdjustInfeasible, up.Alloy.Kind)
	assert.False(t, up.Alloy.Feasible())
	assert.InDelta(t, 7.5, up.Alloy.PureContent, 1e-9)

	assert.Equal(t, string(errors.TypeInvalidRange), report.Entries[1].ErrorType)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `amount "x" {`},
		{"unknown block", `loan "x" {}`},
		{"missing label", `amount { weight = 1 }`},
		{"missing attribute", `alloy "x" { weight = 1 }`},
		{"unknown attribute", "words \"x\" {\n  value  = 1\n  colour = \"red\"\n}"},
		{"wrong type", `words "x" { value = "lots" }`},
		{"undefined local", `words "x" { value = local.nope }`},
		{"karat out of range", "amount \"x\" {\n  weight = 1\n  purity = karat(30)\n}"},
		{"duplicate", "words \"x\" { value = 1 }\nwords \"x\" { value = 2 }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "bad.hcl", today)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.TypeParsing), "got %v", err)
		})
	}
}

func TestParseErrorNamesPosition(t *testing.T) {
	src := "words \"a\" {\n  value = 1\n}\n\nalloy \"b\" {\n  weight = \"heavy\"\n  current_purity = 90\n  target_purity = 75\n}\n"
	_, err := Parse([]byte(src), "pos.hcl", today)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pos.hcl:6")
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.hcl")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	ws, err := ParseFile(path, today)
	require.NoError(t, err)
	assert.Equal(t, path, ws.Path)
	assert.Len(t, ws.Items, 4)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.hcl"), today)
	assert.True(t, errors.IsType(err, errors.TypeParsing))
}
