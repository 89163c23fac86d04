package main

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/kpgo/internal/breakeven"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var breakEvenCmd = &cobra.Command{
	Use:     "break-even [input-file]",
	Aliases: []string{"optimize"},
	Short:   "Search for the retirement age, income or claim age that meets a goal",
	Long: `Search one input at a time for the value that best meets a goal.

Targets: retire_age, income, claim_timing, all
Goals:   match_benefit, maximize_monthly, maximize_lifetime

Examples:
  kpgo break-even request.yaml --target claim_timing --goal maximize_lifetime
  kpgo break-even request.yaml --target income --goal match_benefit --target-benefit 800000
  kpgo break-even request.yaml --target all --goal maximize_monthly`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newAppEnv(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = env.logger.Sync() }()

		req, err := loadRequest(args[0])
		if err != nil {
			return err
		}
		if req.National == nil {
			return fmt.Errorf("%s has no national section", args[0])
		}

		targetStr, _ := cmd.Flags().GetString("target")
		goalStr, _ := cmd.Flags().GetString("goal")
		target := breakeven.OptimizationTarget(targetStr)
		goal := breakeven.OptimizationGoal(goalStr)

		constraints := breakeven.DefaultConstraints(env.engine.Policy)
		if benefit, _ := cmd.Flags().GetInt64("target-benefit"); benefit > 0 {
			d := decimal.NewFromInt(benefit)
			constraints.TargetMonthlyBenefit = &d
		}
		if cmd.Flags().Changed("min-retire-age") {
			v, _ := cmd.Flags().GetInt("min-retire-age")
			constraints.MinRetireAge = &v
		}
		if cmd.Flags().Changed("max-retire-age") {
			v, _ := cmd.Flags().GetInt("max-retire-age")
			constraints.MaxRetireAge = &v
		}
		constraints.LifeExpectancyAge, _ = cmd.Flags().GetInt("life-expectancy")

		solver := breakeven.NewDefaultSolver(env.engine)
		ctx := context.Background()
		format := env.outputFormat()

		if target == breakeven.OptimizeAll {
			result, err := solver.OptimizeAllTargets(ctx, req.National, constraints, goal)
			if err != nil {
				return err
			}
			if format == "json" {
				out, err := (&breakeven.JSONFormatter{Pretty: true}).FormatMultiDimensional(result)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).FormatMultiDimensional(result))
			return nil
		}

		result, err := solver.Optimize(ctx, breakeven.OptimizationRequest{
			Base:        req.National,
			Target:      target,
			Goal:        goal,
			Constraints: constraints,
		})
		if err != nil {
			return err
		}
		if format == "json" {
			out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).Format(result))
		return nil
	},
}

func init() {
	breakEvenCmd.Flags().String("target", string(breakeven.OptimizeClaimTiming), "Input to search: retire_age, income, claim_timing, all")
	breakEvenCmd.Flags().String("goal", string(breakeven.GoalMaximizeLifetime), "Goal: match_benefit, maximize_monthly, maximize_lifetime")
	breakEvenCmd.Flags().Int64("target-benefit", 0, "Monthly benefit in won for the match_benefit goal")
	breakEvenCmd.Flags().Int("min-retire-age", 0, "Lowest contribution end age to consider")
	breakEvenCmd.Flags().Int("max-retire-age", 0, "Highest contribution end age to consider")
	breakEvenCmd.Flags().Int("life-expectancy", 0, "Horizon age for lifetime totals (default: request or policy)")

	rootCmd.AddCommand(breakEvenCmd)
}
