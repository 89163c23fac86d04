package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/rgehrsitz/kpgo/internal/tui/scenes"
)

type keyMap struct {
	Next      key.Binding
	Prev      key.Binding
	National  key.Binding
	Basic     key.Binding
	Shortfall key.Binding
	Claim     key.Binding
	Reload    key.Binding
	Help      key.Binding
	Quit      key.Binding

	claim scenes.ClaimKeys
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:      key.NewBinding(key.WithKeys("tab", "l"), key.WithHelp("tab", "next tab")),
		Prev:      key.NewBinding(key.WithKeys("shift+tab", "h"), key.WithHelp("shift+tab", "prev tab")),
		National:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "national")),
		Basic:     key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "basic pension")),
		Shortfall: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "shortfall")),
		Claim:     key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "claim timing")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload file")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		claim:     scenes.DefaultClaimKeys(),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Reload, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Reload},
		{k.National, k.Basic, k.Shortfall, k.Claim},
		{k.claim.Earlier, k.claim.Later, k.claim.Select},
		{k.Help, k.Quit},
	}
}
