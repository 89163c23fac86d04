package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/kpgo/internal/domain"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.nationalModel.SetSize(msg.Width, msg.Height)
		m.basicModel.SetSize(msg.Width, msg.Height)
		m.shortfallModel.SetSize(msg.Width, msg.Height)
		m.claimModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		m.currentScene = msg.Scene
		return m, nil

	case RequestLoadedMsg:
		m.request = msg.Request
		m.loading = true
		m.loadingMessage = "Calculating..."
		return m, runReportCmd(m.calcEngine, m.compareEngine, msg.Request)

	case ReportReadyMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.setReport(msg.Report)
		return m, nil

	case ClaimSelectedMsg:
		m.status = fmt.Sprintf("Picked %s: %s won a month", msg.Option.Label, domain.FormatWon(msg.Option.MonthlyBenefit))
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case TickMsg:
		if !m.loading {
			return m, nil
		}
		m.spinner.Next()
		return m, tickCmd()
	}

	return m, nil
}

func (m *Model) setReport(report *domain.Report) {
	m.report = report
	m.err = nil
	m.status = fmt.Sprintf("Calculation %s", report.CalculationID)
	m.nationalModel.SetReport(report)
	m.basicModel.SetReport(report)
	m.shortfallModel.SetReport(report)
	m.claimModel.SetReport(report)

	if !m.hasContent(m.currentScene) {
		for s := Scene(0); s < sceneCount; s++ {
			if m.hasContent(s) {
				m.currentScene = s
				break
			}
		}
	}
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.currentScene = (m.currentScene + 1) % sceneCount
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.currentScene = (m.currentScene + sceneCount - 1) % sceneCount
		return m, nil
	case key.Matches(msg, m.keys.National):
		return m, navigate(SceneNational)
	case key.Matches(msg, m.keys.Basic):
		return m, navigate(SceneBasicPension)
	case key.Matches(msg, m.keys.Shortfall):
		return m, navigate(SceneShortfall)
	case key.Matches(msg, m.keys.Claim):
		return m, navigate(SceneClaimTiming)
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		m.loadingMessage = "Reloading " + m.requestPath
		return m, tea.Batch(loadRequestCmd(m.requestPath), tickCmd())
	}

	return m.updateCurrentScene(msg)
}

func navigate(s Scene) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Scene: s} }
}

// updateCurrentScene delegates to the scene that takes input
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.currentScene == SceneClaimTiming {
		var cmd tea.Cmd
		m.claimModel, cmd = m.claimModel.Update(msg)
		return m, cmd
	}
	return m, nil
}
