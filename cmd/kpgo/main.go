package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/kpgo/internal/calculation"
	"github.com/rgehrsitz/kpgo/internal/compare"
	"github.com/rgehrsitz/kpgo/internal/config"
	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/rgehrsitz/kpgo/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "kpgo %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// settingsFile is the optional YAML settings file named by --config
var settingsFile string

var rootCmd = &cobra.Command{
	Use:   "kpgo",
	Short: "Korean pension estimator CLI",
	Long: `Estimate the Korean national pension, evaluate basic pension eligibility
and size the savings needed to close a retirement income shortfall.

Settings come from flags, KPGO_* environment variables, or a YAML file
passed with --config, in that order of precedence.`,
	SilenceUsage: true,
}

// appEnv is the per-invocation state shared by the subcommands
type appEnv struct {
	settings *config.Settings
	logger   *zap.Logger
	engine   *calculation.CalculationEngine
}

// newAppEnv resolves settings, builds the logger and binds an engine to the
// selected policy table
func newAppEnv(cmd *cobra.Command) (*appEnv, error) {
	v := config.NewViper()
	if err := bindFlags(v, cmd); err != nil {
		return nil, err
	}
	settings, err := config.LoadSettings(v, settingsFile)
	if err != nil {
		return nil, err
	}

	logger, err := initializeLogger(settings.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	policy, err := config.NewPolicyLoader().Load(settings.Policy)
	if err != nil {
		return nil, err
	}

	engine := calculation.NewCalculationEngine(policy)
	engine.Now = settings.Clock()
	engine.Debug = settings.Debug
	engine.SetLogger(logger.Sugar())

	logger.Debug("environment ready",
		zap.String("policy", policySource(settings.Policy)),
		zap.Int("policy_year", policy.Metadata.PolicyYear),
		zap.String("as_of", settings.AsOf))

	return &appEnv{settings: settings, logger: logger, engine: engine}, nil
}

func policySource(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}

// bindFlags maps persistent flags onto viper keys so flag values win over
// environment and file settings
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	keys := map[string]string{
		"policy": "policy",
		"format": "format",
		"debug":  "debug",
		"addr":   "addr",
		"as_of":  "as-of",
	}
	for key, flag := range keys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", flag, err)
		}
	}
	return nil
}

// initializeLogger writes to stderr so formatted reports on stdout stay clean
func initializeLogger(debugMode bool) (*zap.Logger, error) {
	var cfg zap.Config
	if debugMode {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// outputFormat returns the configured format, defaulting to console on a
// terminal and json when stdout is piped
func (env *appEnv) outputFormat() string {
	if env.settings.Format != "" {
		return strings.ToLower(env.settings.Format)
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return "console"
	}
	return "json"
}

func loadRequest(path string) (*domain.Request, error) {
	req, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	return req, nil
}

// writeReport renders a report with the registered formatter for the
// configured output format
func (env *appEnv) writeReport(cmd *cobra.Command, report *domain.Report) error {
	name := env.outputFormat()
	f := output.GetFormatterByName(name)
	if f == nil {
		return fmt.Errorf("unknown output format %q (valid: %s)", name, strings.Join(output.AvailableFormatterNames(), ", "))
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// runSection evaluates a single section of the request file
func runSection(cmd *cobra.Command, path string, pick func(req *domain.Request) (*domain.Request, string)) error {
	env, err := newAppEnv(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = env.logger.Sync() }()

	req, err := loadRequest(path)
	if err != nil {
		return err
	}
	section, name := pick(req)
	if section == nil {
		return fmt.Errorf("%s has no %s section", path, name)
	}

	report, err := env.engine.Run(context.Background(), section)
	if err != nil {
		return err
	}
	return env.writeReport(cmd, report)
}

var nationalCmd = &cobra.Command{
	Use:   "national [input-file]",
	Short: "Estimate the national pension",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSection(cmd, args[0], func(req *domain.Request) (*domain.Request, string) {
			if req.National == nil {
				return nil, "national"
			}
			return &domain.Request{National: req.National}, "national"
		})
	},
}

var basicCmd = &cobra.Command{
	Use:   "basic [input-file]",
	Short: "Evaluate basic pension eligibility and benefit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSection(cmd, args[0], func(req *domain.Request) (*domain.Request, string) {
			if req.BasicPension == nil {
				return nil, "basic_pension"
			}
			return &domain.Request{BasicPension: req.BasicPension}, "basic_pension"
		})
	},
}

var shortfallCmd = &cobra.Command{
	Use:   "shortfall [input-file]",
	Short: "Compute the retirement funding shortfall",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSection(cmd, args[0], func(req *domain.Request) (*domain.Request, string) {
			if req.Shortfall == nil {
				return nil, "shortfall"
			}
			return &domain.Request{Shortfall: req.Shortfall}, "shortfall"
		})
	},
}

var calculateCmd = &cobra.Command{
	Use:     "calculate [input-file]",
	Aliases: []string{"all"},
	Short:   "Evaluate every section of a request file",
	Long: `Evaluate every section present in the request file. When a national
section is present and eligible, the report also compares claiming ages.`,
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

		ctx := context.Background()
		report, err := env.engine.Run(ctx, req)
		if err != nil {
			return err
		}

		skipClaims, _ := cmd.Flags().GetBool("no-claim-timing")
		if !skipClaims {
			cmp := compare.NewCompareEngine(env.engine)
			if err := cmp.AttachClaimTiming(ctx, report, req.National); err != nil {
				env.logger.Warn("claim timing skipped", zap.Error(err))
			}
		}
		return env.writeReport(cmd, report)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a request file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := loadRequest(args[0])
		if err != nil {
			return err
		}
		var sections []string
		if req.National != nil {
			sections = append(sections, "national")
		}
		if req.BasicPension != nil {
			sections = append(sections, "basic_pension")
		}
		if req.Shortfall != nil {
			sections = append(sections, "shortfall")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Request file %s is valid (%s)\n", args[0], strings.Join(sections, ", "))
		return nil
	},
}

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Print the effective policy table",
	Long: `Print the policy table the calculators use: the built-in table, or the
file named by --policy after validation.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newAppEnv(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = env.logger.Sync() }()

		var data []byte
		switch env.outputFormat() {
		case "json":
			data, err = json.MarshalIndent(env.engine.Policy, "", "  ")
			if err == nil {
				data = append(data, '\n')
			}
		default:
			data, err = yaml.Marshal(env.engine.Policy)
		}
		if err != nil {
			return fmt.Errorf("failed to encode policy: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&settingsFile, "config", "", "YAML settings file")
	pf.String("policy", "", "Policy table YAML (default: built-in table)")
	pf.StringP("format", "f", "", "Output format: "+strings.Join(output.AvailableFormatterNames(), ", ")+" (default: console on a terminal, json otherwise)")
	pf.Bool("debug", false, "Enable debug logging of calculation steps")
	pf.String("as-of", "", "Evaluate as of this date (YYYY-MM-DD) instead of today")

	calculateCmd.Flags().Bool("no-claim-timing", false, "Skip the claiming-age comparison")

	rootCmd.AddCommand(nationalCmd)
	rootCmd.AddCommand(basicCmd)
	rootCmd.AddCommand(shortfallCmd)
	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(policyCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
