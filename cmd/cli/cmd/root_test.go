package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gold-calc/core/output"
	"gold-calc/core/types"
	"gold-calc/internal/config"
	"gold-calc/internal/errors"
	"gold-calc/internal/session"
)

var fixedNow = time.Date(2024, time.February, 15, 21, 45, 0, 0, time.UTC)

// execute runs the CLI with args against a fresh command tree
func execute(t *testing.T, store session.Store, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd(Env{
		Now:   func() time.Time { return fixedNow },
		Store: store,
		Out:   &out,
		Err:   &errOut,
	})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func decodeReport(t *testing.T, s string) output.Report {
	t.Helper()
	var r output.Report
	require.NoError(t, json.Unmarshal([]byte(s), &r), s)
	return r
}

func TestVersion(t *testing.T) {
	out, err := execute(t, session.NewMemoryStore(), "version")
	require.NoError(t, err)
	assert.Equal(t, "gold-calc version "+version+"\n", out)
}

func TestAmountCommand(t *testing.T) {
	store := session.NewMemoryStore()
	out, err := execute(t, store, "amount", "-f", "json",
		"--weight", "10", "--purity", "91.6", "--rate", "7000", "--misc", "500")
	require.NoError(t, err)

	r := decodeReport(t, out)
	require.Len(t, r.Entries, 1)
	require.NotNil(t, r.Entries[0].Amount)
	assert.InDelta(t, 64620.0, r.Entries[0].Amount.Total, 1e-6)
	assert.Equal(t, "Sixty Four Thousand Six Hundred Twenty Rupees", r.Entries[0].Words)

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap.Amount)
	assert.Equal(t, 7000.0, snap.Amount.RatePer24k)
	assert.Equal(t, types.LanguageEnglish, snap.Language)
}

func TestAmountCommandKaratAnd22kRate(t *testing.T) {
	out, err := execute(t, session.NewMemoryStore(), "amount", "--format", "json",
		"--weight", "10", "--karat", "22", "--rate-22k", "6600", "--misc", "10", "--misc-mode", "percent")
	require.NoError(t, err)

	r := decodeReport(t, out)
	in := r.Entries[0].AmountInput
	require.NotNil(t, in)
	assert.InDelta(t, 91.6667, in.Purity, 1e-3)
	assert.Equal(t, 7200.0, in.RatePer24k)
	assert.Equal(t, types.MiscPercent, in.MiscMode)
}

func TestAmountCommandNeedsRate(t *testing.T) {
	_, err := execute(t, session.NewMemoryStore(), "amount", "--weight", "10", "--purity", "91.6")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeIncompleteInput))
}

func TestAmountCommandRateFromConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("rates:\n  default_24k: 7000\n  added_metal_purity: 100\n"), 0o644))

	out, err := execute(t, session.NewMemoryStore(), "amount", "--config", cfgPath, "-f", "json",
		"--weight", "1", "--purity", "100")
	require.NoError(t, err)
	assert.Equal(t, 7000.0, decodeReport(t, out).Entries[0].Amount.Total)
}

func TestAmountCommandRejectsPurity(t *testing.T) {
	store := session.NewMemoryStore()
	_, err := execute(t, store, "amount", "--weight", "10", "--purity", "120", "--rate", "7000")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInvalidRange))

	snap, _ := store.Load(context.Background())
	assert.True(t, snap.IsEmpty())
}

func TestAlloyCommand(t *testing.T) {
	store := session.NewMemoryStore()
	out, err := execute(t, store, "alloy", "-f", "json", "--weight", "10", "--current", "91.6", "--target", "75")
	require.NoError(t, err)

	r := decodeReport(t, out)
	require.NotNil(t, r.Entries[0].Alloy)
	assert.Equal(t, types.AdjustAddDiluent, r.Entries[0].Alloy.Kind)
	assert.InDelta(t, 2.21333, r.Entries[0].Alloy.WeightToAdd, 1e-5)

	snap, _ := store.Load(context.Background())
	require.NotNil(t, snap.Alloy)
	assert.Equal(t, 100.0, snap.Alloy.AddedMetalPurity)
}

func TestAlloyCommandInfeasible(t *testing.T) {
	store := session.NewMemoryStore()
	out, err := execute(t, store, "alloy", "-f", "markdown",
		"--weight", "10", "--current", "75", "--target", "91.6", "--added", "90")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInfeasibleTarget))
	assert.Contains(t, out, "| Action | not possible with this metal |")

	snap, _ := store.Load(context.Background())
	assert.True(t, snap.IsEmpty())
}

func TestInterestCommandDefaultsEndToToday(t *testing.T) {
	store := session.NewMemoryStore()
	out, err := execute(t, store, "interest", "-f", "json",
		"--principal", "100000", "--rate", "12", "--start", "2024-01-01")
	require.NoError(t, err)

	r := decodeReport(t, out)
	sched := r.Entries[0].Interest
	require.NotNil(t, sched)
	require.Len(t, sched.MonthlySchedule, 2)
	assert.Equal(t, 15, sched.MonthlySchedule[1].DaysCounted)
	assert.Equal(t, "2024-02-15", sched.Range.End.Format(types.DateLayout))

	snap, _ := store.Load(context.Background())
	require.NotNil(t, snap.Interest)
	assert.Equal(t, "2024-02-15", snap.Interest.End)
}

func TestInterestCommandMarkdown(t *testing.T) {
	out, err := execute(t, session.NewMemoryStore(), "interest", "--format", "markdown",
		"--principal", "100000", "--rate", "1", "--period", "monthly",
		"--start", "2024-01-01", "--end", "2024-01-31")
	require.NoError(t, err)
	assert.Contains(t, out, "| Jan 2024 | 31 | 1,00,000.00 | 1,019.18 | 1,019.18 | 1,01,019.18 |")
}

func TestInterestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		typ  errors.Type
	}{
		{"bad start", []string{"--start", "2024-13-01"}, errors.TypeInvalidRange},
		{"end before start", []string{"--start", "2024-03-01", "--end", "2024-01-01"}, errors.TypeInvalidRange},
		{"year out of range", []string{"--start", "1800-01-01", "--end", "1800-02-01"}, errors.TypeInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"interest", "--principal", "1000", "--rate", "12"}, tt.args...)
			_, err := execute(t, session.NewMemoryStore(), args...)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, tt.typ), "got %v", err)
		})
	}
}

func TestWordsCommand(t *testing.T) {
	out, err := execute(t, session.NewMemoryStore(), "words", "-f", "json", "1500.50")
	require.NoError(t, err)
	assert.Equal(t, "One Thousand Five Hundred Rupees and Fifty Paise", decodeReport(t, out).Entries[0].Words)

	out, err = execute(t, session.NewMemoryStore(), "words", "-f", "json", "--lang", "ta", "0")
	require.NoError(t, err)
	assert.Equal(t, "பூஜ்யம் ரூபாய்", decodeReport(t, out).Entries[0].Words)

	_, err = execute(t, session.NewMemoryStore(), "words", "lots")
	assert.Error(t, err)

	_, err = execute(t, session.NewMemoryStore(), "words", "--lang", "fr", "1")
	assert.Error(t, err)

	_, err = execute(t, session.NewMemoryStore(), "words", "1e20")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInvalidRange))
}

func TestRateCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--24k", "7200"}, "24k 7,200.00 = 22k 6,600.00\n"},
		{[]string{"--22k", "6600"}, "22k 6,600.00 = 24k 7,200.00\n"},
		{[]string{"--monthly", "1.5"}, "1.5% monthly = 18% yearly\n"},
		{[]string{"--yearly", "18"}, "18% yearly = 1.5% monthly\n"},
	}

	for _, tt := range tests {
		out, err := execute(t, session.NewMemoryStore(), append([]string{"rate"}, tt.args...)...)
		require.NoError(t, err)
		assert.Equal(t, tt.want, out)
	}

	_, err := execute(t, session.NewMemoryStore(), "rate")
	assert.Error(t, err)

	_, err = execute(t, session.NewMemoryStore(), "rate", "--24k", "1", "--22k", "1")
	assert.Error(t, err)
}

func TestRunCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.hcl")
	src := `
amount "ring" {
  weight   = 10
  purity   = 91.6
  rate_24k = 7000
}

alloy "bad" {
  weight         = 10
  current_purity = 91.6
  target_purity  = 120
}

interest "loan" {
  principal = 100000
  rate      = 12
  start     = "2024-01-01"
  end       = today
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	out, err := execute(t, session.NewMemoryStore(), "run", "-f", "json", path)
	require.NoError(t, err)

	r := decodeReport(t, out)
	assert.Equal(t, "ledger.hcl", r.Title)
	require.Len(t, r.Entries, 3)
	assert.Equal(t, "ring", r.Entries[0].Name)
	assert.Equal(t, "INVALID_RANGE", r.Entries[1].ErrorType)
	assert.Equal(t, "2024-02-15", r.Entries[2].Interest.Range.End.Format(types.DateLayout))
}

func TestRunCommandParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.hcl")
	require.NoError(t, os.WriteFile(path, []byte("amount \"x\" {\n"), 0o644))

	_, err := execute(t, session.NewMemoryStore(), "run", path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeParsing))
}

func TestSessionCommands(t *testing.T) {
	store := session.NewMemoryStore()

	out, err := execute(t, store, "session", "show")
	require.NoError(t, err)
	assert.Equal(t, "No saved session.\n", out)

	_, err = execute(t, store, "alloy", "--weight", "10", "--current", "91.6", "--target", "75")
	require.NoError(t, err)

	out, err = execute(t, store, "session", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "10.000g 91.6% -> 75% (added 100%)")

	out, err = execute(t, store, "session", "clear")
	require.NoError(t, err)
	assert.Equal(t, "Session cleared.\n", out)

	snap, _ := store.Load(context.Background())
	assert.True(t, snap.IsEmpty())
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gold.yaml")

	out, err := execute(t, session.NewMemoryStore(), "config", "init", "--lang", "ta", "-f", "markdown", path)
	require.NoError(t, err)
	assert.Equal(t, "Wrote "+path+"\n", out)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, types.LanguageTamil, cfg.Output.Language)
	assert.Equal(t, "markdown", cfg.Output.DefaultFormat)
	assert.Equal(t, 100.0, cfg.Rates.AddedMetalPurity)

	_, err = execute(t, session.NewMemoryStore(), "config", "init", path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))

	_, err = execute(t, session.NewMemoryStore(), "config", "init", "--force", path)
	assert.NoError(t, err)
}

func TestUnknownFormat(t *testing.T) {
	_, err := execute(t, session.NewMemoryStore(), "words", "--format", "pdf", "1")
	assert.Error(t, err)
}
