// Package tuimsg holds the messages exchanged between the TUI model and its
// scenes.
package tuimsg

import (
	"github.com/rgehrsitz/kpgo/internal/domain"
)

// RequestLoadedMsg signals the request file has been parsed
type RequestLoadedMsg struct {
	Path    string
	Request *domain.Request
}

// ReportReadyMsg carries the outcome of a calculation run
type ReportReadyMsg struct {
	Report *domain.Report
	Err    error
}

// ClaimSelectedMsg signals a claiming option was picked on the claim timing tab
type ClaimSelectedMsg struct {
	Option domain.ClaimOption
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
