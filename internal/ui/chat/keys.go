// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the terminal UI.
package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the keyboard bindings for the chat interface.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Submit     key.Binding
	Complete   key.Binding
	CyclePanel key.Binding
	ToggleTool key.Binding
	SwitchUser key.Binding
	NewUser    key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings for the chat interface.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "page down"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send message"),
		),
		Complete: key.NewBinding(
			key.WithKeys("ctrl+space"),
			key.WithHelp("C-space", "complete command"),
		),
		CyclePanel: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "cycle sidebar panel"),
		),
		ToggleTool: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "expand/collapse last tool call"),
		),
		SwitchUser: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("C-u", "switch user"),
		),
		NewUser: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "create user"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("Esc/C-c", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.CyclePanel, k.ToggleTool, k.Quit}
}

// FullHelp returns all bindings grouped for the help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Submit, k.Complete, k.CyclePanel, k.ToggleTool},
		{k.SwitchUser, k.NewUser, k.Quit},
	}
}
