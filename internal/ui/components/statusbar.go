// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/omniemployee/omnichat/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Shortcut is a key hint displayed in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// defaultShortcuts are shown when the bar has room for them.
var defaultShortcuts = []Shortcut{
	{Key: "enter", Desc: "send"},
	{Key: "tab", Desc: "panel"},
	{Key: "ctrl+t", Desc: "tools"},
	{Key: "esc", Desc: "quit"},
}

// RenderStatusBar renders the bottom bar: session id, loading indicator,
// and keyboard shortcuts. Shortcuts drop out first when width is tight.
func RenderStatusBar(theme *styles.Theme, width int, sessionID string, loading bool, spinnerView string) string {
	left := theme.ShortcutDesc.Render("session " + TruncateToWidth(sessionID, 16))
	if loading {
		left = lipgloss.JoinHorizontal(lipgloss.Center, left, "  ", spinnerView, theme.ShortcutDesc.Render(" thinking"))
	}

	right := ""
	if theme.GetLayoutMode() != styles.LayoutNarrow {
		parts := make([]string, 0, len(defaultShortcuts))
		for _, s := range defaultShortcuts {
			parts = append(parts, theme.ShortcutKey.Render(s.Key)+theme.ShortcutDesc.Render(" "+s.Desc))
		}
		right = lipgloss.JoinHorizontal(lipgloss.Center, joinWithSep(parts, theme.ShortcutDesc.Render("  "))...)
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
		right = ""
	}
	line := lipgloss.JoinHorizontal(lipgloss.Center, left, lipgloss.NewStyle().Width(gap).Render(""), right)

	return theme.StatusBar.Width(width).Render(line)
}

func joinWithSep(parts []string, sep string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, p)
	}
	return out
}
