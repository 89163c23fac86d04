package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch {
	case m.err != nil:
		content = ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n" +
			SubtitleStyle.Render("Press any key to continue, q to quit")
	case m.loading:
		content = BorderStyle.Render(m.spinner.WithMessage(m.loadingMessage).Render())
	default:
		content = m.renderScene()
	}
	return m.renderApp(content)
}

func (m Model) renderScene() string {
	switch m.currentScene {
	case SceneNational:
		return m.nationalModel.View()
	case SceneBasicPension:
		return m.basicModel.View()
	case SceneShortfall:
		return m.shortfallModel.View()
	case SceneClaimTiming:
		return m.claimModel.View()
	default:
		return "Unknown scene"
	}
}

// renderApp wraps content with the title bar, tabs and status bar
func (m Model) renderApp(content string) string {
	return AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitleBar(),
		m.renderTabs(),
		content,
		m.renderStatusBar(),
	))
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("KPGO - Korean Pension Estimator")
	sub := SubtitleStyle.Render(m.requestPath)
	if m.report != nil {
		sub = SubtitleStyle.Render(fmt.Sprintf("%s • policy %d", m.requestPath, m.report.PolicyYear))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, title, " ", sub)
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, sceneCount)
	for s := Scene(0); s < sceneCount; s++ {
		label := fmt.Sprintf("%d %s", int(s)+1, s)
		if m.report != nil && !m.hasContent(s) {
			label += " ·"
		}
		if s == m.currentScene {
			tabs = append(tabs, ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, InactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n"
}

func (m Model) renderStatusBar() string {
	lines := []string{}
	if m.status != "" {
		lines = append(lines, InfoStyle.Render(m.status))
	}
	lines = append(lines, m.help.View(m.keys))
	return StatusBarStyle.Width(max(m.width-2, 20)).Render(strings.Join(lines, "\n"))
}
