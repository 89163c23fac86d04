package main

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns what it printed.
// Flags are reset afterwards because cobra commands are package globals.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if !f.Changed {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

const asOf = "--as-of=2026-01-15"

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "kpgo", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.NotNil(t, rootCmd.Flag("help"))
}

func TestRootCommand_Help(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "kpgo")
	assert.Contains(t, out, "national")
}

func TestCommandSubcommands(t *testing.T) {
	expected := []string{
		"national", "basic", "shortfall", "calculate", "compare",
		"sensitivity", "break-even", "validate", "policy", "serve", "version",
	}
	registered := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range expected {
		assert.True(t, registered[name], "command %s should be registered", name)
	}
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	_, err := execute(t, "invalid-command")
	assert.Error(t, err)
}

func TestRootCommand_InvalidFlag(t *testing.T) {
	_, err := execute(t, "--invalid-flag")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "kpgo dev")
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", "testdata/request.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid (national, basic_pension, shortfall)")

	_, err = execute(t, "validate", "testdata/invalid.yaml")
	assert.Error(t, err)

	_, err = execute(t, "validate", "testdata/missing.yaml")
	assert.Error(t, err)
}

func TestNationalCommand_JSON(t *testing.T) {
	out, err := execute(t, "national", "testdata/request.yaml", "--format", "json", asOf)
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Contains(t, report, "national")
	assert.NotContains(t, report, "basic_pension")
	assert.NotContains(t, report, "shortfall")
	assert.Equal(t, float64(2026), report["policy_year"])
}

func TestBasicCommand_Console(t *testing.T) {
	out, err := execute(t, "basic", "testdata/request.yaml", "--format", "console", asOf)
	require.NoError(t, err)
	assert.Contains(t, out, "Basic Pension")
	assert.Contains(t, out, "349,700")
}

func TestShortfallCommand_CSV(t *testing.T) {
	out, err := execute(t, "shortfall", "testdata/request.yaml", "-f", "csv", asOf)
	require.NoError(t, err)
	assert.Contains(t, out, "314000000")
}

func TestSectionCommand_MissingSection(t *testing.T) {
	_, err := execute(t, "national", "testdata/basic_only.yaml", "--format", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no national section")
}

func TestSectionCommand_UnknownFormat(t *testing.T) {
	_, err := execute(t, "basic", "testdata/basic_only.yaml", "--format", "html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestCalculateCommand_AttachesClaimTiming(t *testing.T) {
	out, err := execute(t, "calculate", "testdata/request.yaml", "--format", "json", asOf)
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	for _, key := range []string{"national", "basic_pension", "shortfall", "claim_timing"} {
		assert.Contains(t, report, key)
	}

	out, err = execute(t, "calculate", "testdata/request.yaml", "--format", "json", "--no-claim-timing", asOf)
	require.NoError(t, err)
	report = map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.NotContains(t, report, "claim_timing")
}

func TestCompareCommand_ClaimTiming(t *testing.T) {
	out, err := execute(t, "compare", "testdata/request.yaml", "--format", "table", asOf)
	require.NoError(t, err)
	assert.Contains(t, out, "defer_5yr (age 70)")
	assert.Contains(t, out, "early_5yr")
}

func TestCompareCommand_Templates(t *testing.T) {
	out, err := execute(t, "compare", "testdata/request.yaml", "--with", "claim_defer_5,work_3yr", "--format", "csv", asOf)
	require.NoError(t, err)
	assert.Contains(t, out, "base_claim_defer_5")
	assert.Contains(t, out, "base_work_3yr")
}

func TestCompareCommand_Transforms(t *testing.T) {
	out, err := execute(t, "compare", "testdata/request.yaml", "--transform", "claim_defer:years=2", "--format", "json", asOf)
	require.NoError(t, err)
	assert.Contains(t, out, "base_custom1")
}

func TestCompareCommand_Errors(t *testing.T) {
	_, err := execute(t, "compare")
	assert.Error(t, err, "input file required")

	_, err = execute(t, "compare", "testdata/basic_only.yaml")
	assert.Error(t, err)

	_, err = execute(t, "compare", "testdata/request.yaml", "--with", "no_such_template", asOf)
	assert.Error(t, err)
}

func TestCompareCommand_ListTemplates(t *testing.T) {
	out, err := execute(t, "compare", "--list-templates")
	require.NoError(t, err)
	assert.Contains(t, out, "Available Templates")
	assert.Contains(t, out, "claim_defer_5")
	assert.Contains(t, out, "add_gap")
}

func TestSensitivityCommand(t *testing.T) {
	out, err := execute(t, "sensitivity", "testdata/request.yaml", "--parameter", "claim_offset:-2..2:5", "--output", "csv", asOf)
	require.NoError(t, err)
	assert.Contains(t, out, "claim_offset")

	_, err = execute(t, "sensitivity", "testdata/request.yaml", "--parameter", "tsp_return", asOf)
	assert.Error(t, err)
}

func TestParseParameterString(t *testing.T) {
	p, err := parseParameterString("claim_offset:-3..3:7")
	require.NoError(t, err)
	assert.Equal(t, "claim_offset", p.Name)
	assert.Equal(t, "-3", p.MinValue.String())
	assert.Equal(t, "3", p.MaxValue.String())
	assert.Equal(t, 7, p.Steps)

	p, err = parseParameterString("inflation_rate")
	require.NoError(t, err)
	assert.Equal(t, "inflation_rate", p.Name)

	for _, bad := range []string{"unknown", "claim_offset:1..2", "claim_offset:1-2:3", "claim_offset:3..1:3", "claim_offset:1..2:x"} {
		_, err := parseParameterString(bad)
		assert.Error(t, err, bad)
	}
}

func TestBreakEvenCommand(t *testing.T) {
	out, err := execute(t, "break-even", "testdata/request.yaml", "--target", "claim_timing", "--goal", "maximize_monthly", "--format", "json", asOf)
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "claim_timing", result["target"])
	assert.Equal(t, true, result["success"])
	assert.Equal(t, float64(5), result["optimal_claim_offset"])

	_, err = execute(t, "break-even", "testdata/request.yaml", "--goal", "match_benefit", asOf)
	assert.Error(t, err, "match_benefit needs a target benefit")
}

func TestPolicyCommand(t *testing.T) {
	out, err := execute(t, "policy", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "national_pension:")

	out, err = execute(t, "policy", "--format", "json")
	require.NoError(t, err)
	var policy map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &policy))
	assert.Contains(t, policy, "basic_pension")
}

func TestNewAppEnv_BadAsOf(t *testing.T) {
	_, err := execute(t, "national", "testdata/request.yaml", "--as-of", "15/01/2026")
	assert.Error(t, err)
}
