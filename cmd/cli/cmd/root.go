// Package cmd provides the CLI commands for gold-calc.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gold-calc/core/output"
	"gold-calc/core/types"
	"gold-calc/internal/config"
	"gold-calc/internal/logging"
	"gold-calc/internal/session"
)

const version = "0.1.0"

// Env holds what the commands take from the outside world
type Env struct {
	// Now is the clock used for "today"; time.Now when nil
	Now func() time.Time

	// Store overrides the configured session store
	Store session.Store

	// Out and Err default to stdout and stderr
	Out io.Writer
	Err io.Writer
}

// app is the state shared by one command tree
type app struct {
	env Env

	cfgFile string
	verbose bool
	format  string
	lang    string

	cfg   *config.Config
	store session.Store
}

// Execute runs the CLI
func Execute() error {
	return NewRootCmd(Env{}).Execute()
}

// NewRootCmd builds the command tree
func NewRootCmd(env Env) *cobra.Command {
	if env.Now == nil {
		env.Now = time.Now
	}
	if env.Out == nil {
		env.Out = os.Stdout
	}
	if env.Err == nil {
		env.Err = os.Stderr
	}
	a := &app{env: env}

	rootCmd := &cobra.Command{
		Use:   "gold-calc",
		Short: "Gold jewellery and pawn-loan calculators",
		Long: `gold-calc prices gold by weight and purity, works out how much metal
to add to reach a target purity, and computes pawn-loan interest with a
month-by-month breakdown.

Examples:
  gold-calc amount --weight 10 --purity 91.6 --rate 7000 --misc 12 --misc-mode percent
  gold-calc alloy --weight 10 --current 91.6 --target 75
  gold-calc interest --principal 100000 --rate 12 --start 2024-01-01 --end 2024-02-15
  gold-calc words 1500.50 --lang ta
  gold-calc run ledger.hcl --format markdown`,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.initConfig() },
	}
	rootCmd.SetOut(env.Out)
	rootCmd.SetErr(env.Err)

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file, JSON or YAML (default: built-in defaults)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&a.format, "format", "f", "", "output format (cli, json, markdown)")
	rootCmd.PersistentFlags().StringVar(&a.lang, "lang", "", "words language (en, ta)")

	rootCmd.AddCommand(
		a.amountCmd(),
		a.alloyCmd(),
		a.interestCmd(),
		a.wordsCmd(),
		a.rateCmd(),
		a.runCmd(),
		a.sessionCmd(),
		a.configCmd(),
		a.serveCmd(),
		a.versionCmd(),
	)
	return rootCmd
}

func (a *app) initConfig() error {
	cfg := config.Default()
	if a.cfgFile != "" {
		loaded, err := config.Load(a.cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if a.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(a.env.Err, "Error initializing logging: %v\n", err)
	}

	if a.format == "" {
		a.format = cfg.Output.DefaultFormat
	}
	if a.lang != "" {
		lang, err := types.ParseLanguage(a.lang)
		if err != nil {
			return err
		}
		cfg.Output.Language = lang
	}

	a.cfg = cfg
	switch {
	case a.env.Store != nil:
		a.store = a.env.Store
	case cfg.Session.Enabled:
		a.store = session.NewFileStore(cfg.Session.Path)
	default:
		a.store = session.NewMemoryStore()
	}
	return nil
}

func (a *app) today() time.Time {
	return types.Truncate(a.env.Now())
}

// render writes report in the selected format
func (a *app) render(report *output.Report) error {
	f, err := output.NewFormatter(output.Format(a.format), output.Options{
		Language:  a.cfg.Output.Language,
		ShowWords: a.cfg.Output.ShowWords,
	})
	if err != nil {
		return err
	}
	return f.Render(a.env.Out, report)
}

// remember records the inputs of a calculation when sessions are enabled.
// A failed save is logged and does not fail the command.
func (a *app) remember(ctx context.Context, fn func(*session.Snapshot)) {
	if !a.cfg.Session.Enabled {
		return
	}
	err := session.Update(ctx, a.store, a.env.Now(), func(s *session.Snapshot) {
		s.Language = a.cfg.Output.Language
		fn(s)
	})
	if err != nil {
		logging.Warn("failed to save session", zap.Error(err))
	}
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gold-calc version %s\n", version)
		},
	}
}
