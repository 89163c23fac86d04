package tui

import (
	"github.com/rgehrsitz/kpgo/internal/tui/tuimsg"
)

// Scene is one tab of the results browser
type Scene int

const (
	SceneNational Scene = iota
	SceneBasicPension
	SceneShortfall
	SceneClaimTiming
	sceneCount
)

func (s Scene) String() string {
	switch s {
	case SceneNational:
		return "National"
	case SceneBasicPension:
		return "Basic Pension"
	case SceneShortfall:
		return "Shortfall"
	case SceneClaimTiming:
		return "Claim Timing"
	default:
		return "Unknown"
	}
}

// Messages shared with the scenes
type (
	RequestLoadedMsg = tuimsg.RequestLoadedMsg
	ReportReadyMsg   = tuimsg.ReportReadyMsg
	ClaimSelectedMsg = tuimsg.ClaimSelectedMsg
	ErrorMsg         = tuimsg.ErrorMsg
)

// NavigateMsg switches to a different tab
type NavigateMsg struct {
	Scene Scene
}

// TickMsg advances the loading spinner
type TickMsg struct{}
