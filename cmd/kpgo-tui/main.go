package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rgehrsitz/kpgo/internal/calculation"
	"github.com/rgehrsitz/kpgo/internal/config"
	"github.com/rgehrsitz/kpgo/internal/tui"
)

func main() {
	policyPath := flag.String("policy", "", "policy table YAML (default: built-in table)")
	logPath := flag.String("log", "", "write debug logs to this file")
	asOf := flag.String("as-of", "", "evaluate as of this date (YYYY-MM-DD)")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: kpgo-tui [flags] <request-file>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	requestPath := flag.Arg(0)

	if _, err := os.Stat(requestPath); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: request file not found: %s\n", requestPath)
		os.Exit(1)
	}

	settings := &config.Settings{Policy: *policyPath, AsOf: *asOf}
	if _, err := settings.AsOfTime(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	policy, err := config.NewPolicyLoader().Load(settings.Policy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	engine := calculation.NewCalculationEngine(policy)
	engine.Now = settings.Clock()
	engine.SetLogger(logger.Sugar())

	p := tea.NewProgram(
		tui.NewModel(requestPath, engine),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// newLogger logs to a file when asked; the terminal belongs to the UI
func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}
