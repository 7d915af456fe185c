// Package cmd - rate, worksheet, session, config and server commands
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gold-calc/api"
	"gold-calc/core/amount"
	"gold-calc/core/interest"
	"gold-calc/core/numfmt"
	"gold-calc/core/output"
	"gold-calc/core/types"
	"gold-calc/core/worksheet"
	"gold-calc/internal/errors"
	"gold-calc/internal/logging"
)

func (a *app) rateCmd() *cobra.Command {
	var r24, r22, monthly, yearly float64

	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Convert between 24k and 22k rates or monthly and yearly interest",
		Example: `  gold-calc rate --24k 7200
  gold-calc rate --22k 6600
  gold-calc rate --monthly 1.5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			flags := cmd.Flags()
			switch {
			case flags.Changed("24k"):
				fmt.Fprintf(out, "24k %s = 22k %s\n", numfmt.FormatAmount(r24), numfmt.FormatAmount(amount.Rate22kFrom24k(r24)))
			case flags.Changed("22k"):
				fmt.Fprintf(out, "22k %s = 24k %s\n", numfmt.FormatAmount(r22), numfmt.FormatAmount(amount.Rate24kFrom22k(r22)))
			case flags.Changed("monthly"):
				y := interest.ConvertRate(monthly, types.RateMonthly, types.RateYearly)
				fmt.Fprintf(out, "%s%% monthly = %s%% yearly\n", numfmt.FormatPercent(monthly), numfmt.FormatPercent(y))
			case flags.Changed("yearly"):
				m := interest.ConvertRate(yearly, types.RateYearly, types.RateMonthly)
				fmt.Fprintf(out, "%s%% yearly = %s%% monthly\n", numfmt.FormatPercent(yearly), numfmt.FormatPercent(m))
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&r24, "24k", 0, "24k rate per gram")
	cmd.Flags().Float64Var(&r22, "22k", 0, "22k rate per gram")
	cmd.Flags().Float64Var(&monthly, "monthly", 0, "monthly interest rate in percent")
	cmd.Flags().Float64Var(&yearly, "yearly", 0, "yearly interest rate in percent")
	cmd.MarkFlagsOneRequired("24k", "22k", "monthly", "yearly")
	cmd.MarkFlagsMutuallyExclusive("24k", "22k", "monthly", "yearly")
	return cmd
}

func (a *app) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <worksheet.hcl>",
		Short: "Evaluate every calculation in a worksheet file",
		Long: `A worksheet is an HCL file of labelled amount, alloy, interest and
words blocks. Blocks are evaluated in file order; a rejected block is
reported alongside the others. The variable today holds the current date.

Example worksheet:

  amount "ring" {
    weight   = 10
    purity   = karat(22)
    rate_24k = 7200
  }

  interest "loan" {
    principal = 100000
    rate      = 12
    start     = "2024-01-01"
    end       = today
  }`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			ws, err := worksheet.ParseFile(args[0], a.today())
			if err != nil {
				return err
			}

			report := ws.Run(worksheet.Defaults{
				Rate24k:          a.cfg.Rates.Default24k,
				AddedMetalPurity: a.cfg.Rates.AddedMetalPurity,
			})

			rejectedCount := 0
			for _, e := range report.Entries {
				if e.Error != "" {
					rejectedCount++
				}
			}
			logging.Info("worksheet evaluated",
				zap.String("path", args[0]),
				zap.Int("items", len(report.Entries)),
				zap.Int("rejected", rejectedCount),
				zap.Duration("duration", time.Since(start)),
			)
			return a.render(report)
		},
	}
}

func (a *app) sessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Show or clear the saved calculator inputs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the last inputs of each calculator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.store.Load(cmd.Context())
			if err != nil {
				return err
			}
			return output.RenderSnapshot(cmd.OutOrStdout(), snap)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget the saved inputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Session cleared.")
			return nil
		},
	})
	return cmd
}

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init <path>",
		Short: "Write the effective configuration to a JSON or YAML file",
		Example: `  gold-calc config init ~/.gold-calc/config.yaml
  gold-calc config init gold.json --lang ta --format markdown`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return errors.Newf(errors.TypeConfig, "%s already exists; use --force to overwrite", path)
			}

			cfg := *a.cfg
			cfg.Output.DefaultFormat = a.format
			if err := cfg.Save(path); err != nil {
				return err
			}
			logging.Debug("config written", zap.String("path", path))
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}

func (a *app) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			srv := api.NewServer(version, api.Options{
				Store:            a.store,
				Now:              a.env.Now,
				Language:         a.cfg.Output.Language,
				AddedMetalPurity: a.cfg.Rates.AddedMetalPurity,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "gold-calc API v%s listening on %s\n", version, addr)
			return serve(ctx, &http.Server{Addr: addr, Handler: srv})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

// serve runs httpServer until ctx is done, then shuts it down
func serve(ctx context.Context, httpServer *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
