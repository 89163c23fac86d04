package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rgehrsitz/kpgo/internal/calculation"
	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/rgehrsitz/kpgo/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity [input-file]",
	Short: "Test how the national pension estimate reacts to assumption changes",
	Long: `Sweep national pension assumptions and report how far each moves the
monthly benefit. Shift and scale parameters are relative to the request.

Parameters: wage_growth_rate, inflation_rate, income_scale,
retire_age_shift, claim_offset

Examples:
  # Every common parameter over its default range
  kpgo sensitivity request.yaml

  # One parameter over a custom range (min..max:steps)
  kpgo sensitivity request.yaml --parameter claim_offset:-5..5:11

  # Two parameters
  kpgo sensitivity request.yaml --parameter inflation_rate:0.01..0.04:4 --parameter income_scale:0.8..1.2:5`,
	Args: cobra.ExactArgs(1),
	RunE: runSensitivityAnalysis,
}

var (
	sensitivityParameters   []string
	sensitivityOutputFormat string
)

func init() {
	sensitivityCmd.Flags().StringArrayVar(&sensitivityParameters, "parameter", nil, "Parameter to sweep (format: name or name:min..max:steps)")
	sensitivityCmd.Flags().StringVar(&sensitivityOutputFormat, "output", "", "Output format (table, csv, json); defaults to --format")

	rootCmd.AddCommand(sensitivityCmd)
}

func runSensitivityAnalysis(cmd *cobra.Command, args []string) error {
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

	parameters := domain.GetCommonParameters()
	if len(sensitivityParameters) > 0 {
		parameters, err = parseParameters(sensitivityParameters)
		if err != nil {
			return err
		}
	}

	analyzer := calculation.NewSensitivityAnalyzer(env.engine)
	ctx := context.Background()

	var analysis *domain.ParameterSensitivityAnalysis
	if len(parameters) == 1 {
		analysis, err = analyzer.AnalyzeSingleParameter(ctx, *req.National, parameters[0])
	} else {
		analysis, err = analyzer.AnalyzeMultipleParameters(ctx, *req.National, parameters)
	}
	if err != nil {
		return fmt.Errorf("sensitivity analysis failed: %w", err)
	}
	env.logger.Debug("sensitivity analysis complete",
		zap.Int("parameters", len(parameters)),
		zap.Int("results", len(analysis.Results)),
		zap.String("most_sensitive", analysis.Summary.MostSensitiveParameter))

	format := sensitivityOutputFormat
	if format == "" {
		format = env.outputFormat()
	}
	out, err := output.NewSensitivityFormatter(format).FormatSensitivityAnalysis(analysis)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func parseParameters(specs []string) ([]domain.SensitivityParameter, error) {
	parameters := make([]domain.SensitivityParameter, 0, len(specs))
	for _, spec := range specs {
		param, err := parseParameterString(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid parameter %q: %w", spec, err)
		}
		parameters = append(parameters, param)
	}
	return parameters, nil
}

// parseParameterString accepts "name" for the default sweep or
// "name:min..max:steps" to override the range. The ".." separator keeps
// negative bounds unambiguous.
func parseParameterString(spec string) (domain.SensitivityParameter, error) {
	parts := strings.Split(spec, ":")
	param, ok := knownParameter(parts[0])
	if !ok {
		return domain.SensitivityParameter{}, fmt.Errorf("unknown parameter %s", parts[0])
	}
	if len(parts) == 1 {
		return param, nil
	}
	if len(parts) != 3 {
		return domain.SensitivityParameter{}, fmt.Errorf("expected name:min..max:steps")
	}

	minStr, maxStr, found := strings.Cut(parts[1], "..")
	if !found {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid range %s (expected min..max)", parts[1])
	}
	minValue, err := decimal.NewFromString(strings.TrimSpace(minStr))
	if err != nil {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid min value: %w", err)
	}
	maxValue, err := decimal.NewFromString(strings.TrimSpace(maxStr))
	if err != nil {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid max value: %w", err)
	}
	if minValue.GreaterThan(maxValue) {
		return domain.SensitivityParameter{}, fmt.Errorf("min %s is greater than max %s", minValue, maxValue)
	}
	steps, err := strconv.Atoi(parts[2])
	if err != nil || steps < 1 {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid steps value %q", parts[2])
	}

	param.MinValue = minValue
	param.MaxValue = maxValue
	param.Steps = steps
	return param, nil
}

func knownParameter(name string) (domain.SensitivityParameter, bool) {
	for _, p := range domain.GetCommonParameters() {
		if p.Name == name {
			return p, true
		}
	}
	return domain.SensitivityParameter{}, false
}
