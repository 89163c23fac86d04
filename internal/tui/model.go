package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/kpgo/internal/calculation"
	"github.com/rgehrsitz/kpgo/internal/compare"
	"github.com/rgehrsitz/kpgo/internal/config"
	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/rgehrsitz/kpgo/internal/tui/components"
	"github.com/rgehrsitz/kpgo/internal/tui/scenes"
)

// Model is the results browser state
type Model struct {
	currentScene Scene

	width  int
	height int

	requestPath string
	request     *domain.Request
	report      *domain.Report

	calcEngine    *calculation.CalculationEngine
	compareEngine *compare.CompareEngine

	nationalModel  *scenes.NationalModel
	basicModel     *scenes.BasicPensionModel
	shortfallModel *scenes.ShortfallModel
	claimModel     *scenes.ClaimModel

	keys    keyMap
	help    help.Model
	spinner *components.Spinner

	loading        bool
	loadingMessage string
	status         string
	err            error
}

// NewModel creates a browser for the request file at requestPath
func NewModel(requestPath string, engine *calculation.CalculationEngine) Model {
	return Model{
		currentScene:   SceneNational,
		requestPath:    requestPath,
		calcEngine:     engine,
		compareEngine:  compare.NewCompareEngine(engine),
		nationalModel:  scenes.NewNationalModel(),
		basicModel:     scenes.NewBasicPensionModel(),
		shortfallModel: scenes.NewShortfallModel(),
		claimModel:     scenes.NewClaimModel(),
		keys:           defaultKeyMap(),
		help:           help.New(),
		spinner:        components.NewSpinner(),
		loading:        true,
		loadingMessage: "Loading " + requestPath,
		width:          80,
		height:         24,
	}
}

// Init starts loading the request file
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadRequestCmd(m.requestPath), tickCmd())
}

// loadRequestCmd parses and validates the request file
func loadRequestCmd(path string) tea.Cmd {
	return func() tea.Msg {
		req, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return RequestLoadedMsg{Path: path, Request: req}
	}
}

// runReportCmd evaluates every section of req and, when the national
// section is eligible, the claim timing comparison
func runReportCmd(engine *calculation.CalculationEngine, cmp *compare.CompareEngine, req *domain.Request) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		report, err := engine.Run(ctx, req)
		if err != nil {
			return ReportReadyMsg{Err: err}
		}
		if err := cmp.AttachClaimTiming(ctx, report, req.National); err != nil {
			engine.Logger.Warnf("claim timing skipped: %v", err)
		}
		return ReportReadyMsg{Report: report}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg { return TickMsg{} })
}

// hasContent reports whether the report carries a section for s
func (m Model) hasContent(s Scene) bool {
	if m.report == nil {
		return false
	}
	switch s {
	case SceneNational:
		return m.report.National != nil
	case SceneBasicPension:
		return m.report.BasicPension != nil
	case SceneShortfall:
		return m.report.Shortfall != nil
	case SceneClaimTiming:
		return m.report.ClaimTiming != nil
	}
	return false
}
