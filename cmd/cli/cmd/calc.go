// Package cmd - calculator commands
package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gold-calc/core/alloy"
	"gold-calc/core/amount"
	"gold-calc/core/interest"
	"gold-calc/core/numfmt"
	"gold-calc/core/output"
	"gold-calc/core/types"
	"gold-calc/internal/errors"
	"gold-calc/internal/logging"
	"gold-calc/internal/session"
)

// rejected logs a calculator rejection and passes the error through
func rejected(calculator string, err error) error {
	logging.Calculator(calculator).Warn("calculation rejected",
		zap.String("error_type", string(errors.TypeOf(err))),
		zap.Error(err),
	)
	return err
}

func (a *app) amountCmd() *cobra.Command {
	var (
		weight, purity, karat float64
		rate24k, rate22k      float64
		misc                  float64
		miscMode              string
	)

	cmd := &cobra.Command{
		Use:   "amount",
		Short: "Price gold by weight, purity and the 24k rate",
		Long: `Compute the fine gold content, its value at the 24k rate and the
making charge, either a fixed amount or a percentage of the gold value.

Examples:
  gold-calc amount --weight 10 --purity 91.6 --rate 7000 --misc 500
  gold-calc amount --weight 10 --karat 22 --rate-22k 6600 --misc 12 --misc-mode percent`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := types.ParseMiscMode(miscMode)
			if err != nil {
				return err
			}
			in := types.AmountInput{
				Weight:     weight,
				Purity:     purity,
				RatePer24k: a.cfg.Rates.Default24k,
				MiscMode:   mode,
				MiscValue:  misc,
			}

			flags := cmd.Flags()
			if !flags.Changed("purity") && flags.Changed("karat") {
				in.Purity = amount.PurityFromKarat(karat)
			}
			switch {
			case flags.Changed("rate"):
				in.RatePer24k = rate24k
			case flags.Changed("rate-22k"):
				in.RatePer24k = amount.Rate24kFrom22k(rate22k)
			case in.RatePer24k == 0:
				return rejected("amount", errors.Incomplete("rate"))
			}

			res, err := amount.Compute(in)
			if err != nil {
				return rejected("amount", err)
			}
			logging.Calculator("amount").Debug("computed",
				zap.Float64("weight", in.Weight),
				zap.Float64("purity", in.Purity),
				zap.Float64("total", res.Total),
			)
			a.remember(cmd.Context(), func(s *session.Snapshot) { s.Amount = &in })

			return a.render(&output.Report{Entries: []output.Entry{
				{Kind: output.KindAmount, AmountInput: &in, Amount: &res},
			}})
		},
	}

	cmd.Flags().Float64VarP(&weight, "weight", "w", 0, "gross weight in grams")
	cmd.Flags().Float64VarP(&purity, "purity", "p", 0, "purity in percent")
	cmd.Flags().Float64VarP(&karat, "karat", "k", 0, "purity in karats, used when --purity is not given")
	cmd.Flags().Float64VarP(&rate24k, "rate", "r", 0, "24k rate per gram (default from config)")
	cmd.Flags().Float64Var(&rate22k, "rate-22k", 0, "22k rate per gram, converted to the 24k rate")
	cmd.Flags().Float64VarP(&misc, "misc", "m", 0, "making charge, an amount or a percentage")
	cmd.Flags().StringVar(&miscMode, "misc-mode", "fixed", "making charge mode (fixed, percent)")
	cmd.MarkFlagRequired("weight")
	cmd.MarkFlagsOneRequired("purity", "karat")
	cmd.MarkFlagsMutuallyExclusive("rate", "rate-22k")
	return cmd
}

func (a *app) alloyCmd() *cobra.Command {
	var weight, current, target, added float64

	cmd := &cobra.Command{
		Use:   "alloy",
		Short: "Work out how much metal brings gold to a target purity",
		Long: `Lowering purity adds copper (0% gold). Raising purity adds the
enrichment metal, pure gold unless --added or the config says otherwise.

Examples:
  gold-calc alloy --weight 10 --current 91.6 --target 75
  gold-calc alloy --weight 10 --current 75 --target 91.6 --added 99.5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := types.AlloyInput{
				Weight:           weight,
				CurrentPurity:    current,
				TargetPurity:     target,
				AddedMetalPurity: a.cfg.Rates.AddedMetalPurity,
			}
			if cmd.Flags().Changed("added") {
				in.AddedMetalPurity = added
			}

			res, err := alloy.Compute(in)
			if err != nil {
				if res.Kind == types.AdjustInfeasible {
					entry := output.Entry{
						Kind:       output.KindAlloy,
						AlloyInput: &in,
						Alloy:      &res,
						Error:      err.Error(),
						ErrorType:  string(errors.TypeOf(err)),
					}
					if rerr := a.render(&output.Report{Entries: []output.Entry{entry}}); rerr != nil {
						return rerr
					}
				}
				return rejected("alloy", err)
			}
			logging.Calculator("alloy").Debug("computed",
				zap.String("kind", res.Kind.String()),
				zap.Float64("weight_to_add", res.WeightToAdd),
			)
			a.remember(cmd.Context(), func(s *session.Snapshot) { s.Alloy = &in })

			return a.render(&output.Report{Entries: []output.Entry{
				{Kind: output.KindAlloy, AlloyInput: &in, Alloy: &res},
			}})
		},
	}

	cmd.Flags().Float64VarP(&weight, "weight", "w", 0, "sample weight in grams")
	cmd.Flags().Float64VarP(&current, "current", "c", 0, "current purity in percent")
	cmd.Flags().Float64VarP(&target, "target", "t", 0, "target purity in percent")
	cmd.Flags().Float64Var(&added, "added", 0, "purity of the enrichment metal (default from config)")
	cmd.MarkFlagRequired("weight")
	cmd.MarkFlagRequired("current")
	cmd.MarkFlagRequired("target")
	return cmd
}

func (a *app) interestCmd() *cobra.Command {
	var (
		principal, rate  float64
		period, kind     string
		startStr, endStr string
	)

	cmd := &cobra.Command{
		Use:   "interest",
		Short: "Compute loan interest with a monthly breakdown",
		Long: `Interest accrues per day on a 365-day year over the inclusive range
--start to --end. --end defaults to today.

Examples:
  gold-calc interest --principal 100000 --rate 12 --start 2024-01-01 --end 2024-02-15
  gold-calc interest --principal 50000 --rate 1.5 --period monthly --type compound --start 2024-01-10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ratePeriod, err := types.ParseRatePeriod(period)
			if err != nil {
				return err
			}
			interestType, err := types.ParseInterestType(kind)
			if err != nil {
				return err
			}
			start, err := types.ParseDate(startStr)
			if err != nil {
				return rejected("interest", errors.Wrap(errors.TypeInvalidRange, "invalid --start date", err))
			}
			end := a.today()
			if endStr != "" {
				if end, err = types.ParseDate(endStr); err != nil {
					return rejected("interest", errors.Wrap(errors.TypeInvalidRange, "invalid --end date", err))
				}
			}

			terms := types.InterestTerms{
				Principal:  principal,
				Rate:       rate,
				RatePeriod: ratePeriod,
				Type:       interestType,
			}
			sched, err := interest.ComputeSchedule(terms, types.DateRange{Start: start, End: end})
			if err != nil {
				return rejected("interest", err)
			}
			logging.Calculator("interest").Debug("computed",
				zap.Int("months", len(sched.MonthlySchedule)),
				zap.Float64("total_interest", sched.TotalInterest),
			)
			a.remember(cmd.Context(), func(s *session.Snapshot) {
				s.Interest = &session.InterestInput{
					Terms: terms,
					Start: start.Format(types.DateLayout),
					End:   end.Format(types.DateLayout),
				}
			})

			return a.render(&output.Report{Entries: []output.Entry{
				{Kind: output.KindInterest, Interest: &sched},
			}})
		},
	}

	cmd.Flags().Float64VarP(&principal, "principal", "p", 0, "loan principal")
	cmd.Flags().Float64VarP(&rate, "rate", "r", 0, "interest rate in percent")
	cmd.Flags().StringVar(&period, "period", "yearly", "rate period (monthly, yearly)")
	cmd.Flags().StringVar(&kind, "type", "simple", "interest type (simple, compound)")
	cmd.Flags().StringVar(&startStr, "start", "", "start date, YYYY-MM-DD")
	cmd.Flags().StringVar(&endStr, "end", "", "end date, YYYY-MM-DD (default today)")
	cmd.MarkFlagRequired("principal")
	cmd.MarkFlagRequired("rate")
	cmd.MarkFlagRequired("start")
	return cmd
}

func (a *app) wordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "words <amount>",
		Short: "Spell out an amount in rupees and paise",
		Example: `  gold-calc words 1500.50
  gold-calc words 250000 --lang ta`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return errors.Wrapf(errors.TypeIncompleteInput, err, "%q is not a number", args[0])
			}
			if err := numfmt.CheckWordsAmount(value); err != nil {
				return rejected("words", err)
			}

			// Words are the whole point of this command.
			a.cfg.Output.ShowWords = true
			return a.render(&output.Report{Entries: []output.Entry{
				{Kind: output.KindWords, Value: value},
			}})
		},
	}
}
