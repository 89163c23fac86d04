package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/kpgo/internal/compare"
	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/rgehrsitz/kpgo/internal/transform"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Compare claiming ages or what-if scenarios",
	Long: `Compare the national pension estimate against alternatives.

Without --with or --transform, every early and deferred claiming age the
policy allows is compared against claiming at the normal age. With them,
each built-in template or custom transform chain becomes one scenario.

Examples:
  kpgo compare request.yaml
  kpgo compare request.yaml --with work_3yr,claim_defer_5
  kpgo compare request.yaml --transform "set_income:monthly=4000000;claim_defer:years=2"
  kpgo compare --list-templates
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if listTemplates, _ := cmd.Flags().GetBool("list-templates"); listTemplates {
			fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
			fmt.Fprintf(cmd.OutOrStdout(), "\nCustom transforms: %s\n", strings.Join(transform.NewTransformRegistry().List(), ", "))
			return nil
		}
		if len(args) == 0 {
			return fmt.Errorf("input file required for comparison (use --list-templates to see available templates)")
		}

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

		templatesStr, _ := cmd.Flags().GetString("with")
		transforms, _ := cmd.Flags().GetStringArray("transform")
		baseName, _ := cmd.Flags().GetString("base")

		ctx := context.Background()
		cmp := compare.NewCompareEngine(env.engine)
		format := env.outputFormat()

		if templatesStr == "" && len(transforms) == 0 {
			claims, err := cmp.CompareClaimTiming(ctx, *req.National)
			if err != nil {
				return fmt.Errorf("claim timing comparison failed: %w", err)
			}
			return writeClaimComparison(cmd, format, claims)
		}

		templateNames := transform.ParseTemplateList(templatesStr)
		if templatesStr != "" && len(templateNames) == 0 {
			return fmt.Errorf("no valid templates specified in --with flag")
		}

		set, err := cmp.Compare(ctx, req.National, compare.CompareOptions{
			BaseScenarioName: baseName,
			Templates:        templateNames,
			Transforms:       transforms,
			ConfigPath:       args[0],
		})
		if err != nil {
			return fmt.Errorf("comparison failed: %w", err)
		}
		return writeComparisonSet(cmd, format, set)
	},
}

func writeClaimComparison(cmd *cobra.Command, format string, claims *domain.ClaimComparison) error {
	var (
		out string
		err error
	)
	switch format {
	case "csv":
		out, err = (&compare.CSVFormatter{}).FormatClaimTiming(claims)
	case "json":
		out, err = (&compare.JSONFormatter{Pretty: true}).FormatClaimTiming(claims)
	case "table", "console", "text":
		out = (&compare.TableFormatter{}).FormatClaimTiming(claims)
	default:
		return fmt.Errorf("unknown output format: %s (valid: table, csv, json)", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func writeComparisonSet(cmd *cobra.Command, format string, set *compare.ComparisonSet) error {
	var (
		out string
		err error
	)
	switch format {
	case "csv":
		out, err = (&compare.CSVFormatter{}).Format(set)
	case "json":
		out, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
	case "compact":
		out = (&compare.TableFormatter{}).FormatCompact(set)
	case "table", "console", "text":
		out = (&compare.TableFormatter{}).Format(set)
	default:
		return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func init() {
	compareCmd.Flags().String("base", "base", "Display name of the unmodified inputs")
	compareCmd.Flags().String("with", "", "Comma-separated built-in templates to compare")
	compareCmd.Flags().StringArray("transform", nil, "Custom scenario as a ';'-separated transform chain (repeatable)")
	compareCmd.Flags().Bool("list-templates", false, "List the built-in templates and transforms")

	rootCmd.AddCommand(compareCmd)
}
