// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the chat interface.
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/omniemployee/omnichat/internal/api"
	"github.com/omniemployee/omnichat/internal/ui/styles"
)

// =============================================================================
// CONNECTION STATUS
// =============================================================================

// ConnectionStatus tracks the handshake with the backend.
type ConnectionStatus int

const (
	Connecting ConnectionStatus = iota
	Online
	Offline
)

// String returns the display label for the status.
func (s ConnectionStatus) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Online:
		return "online"
	case Offline:
		return "offline"
	default:
		return "unknown"
	}
}

// Icon returns a shape for the status. Shapes stay distinguishable
// without color.
func (s ConnectionStatus) Icon() string {
	switch s {
	case Connecting:
		return "o"
	case Online:
		return "*"
	case Offline:
		return "x"
	default:
		return "?"
	}
}

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// RenderHeader renders the top bar: app title, agent model, connection
// status, and the active user.
func RenderHeader(theme *styles.Theme, width int, info *api.AgentInfo, status ConnectionStatus, userID string) string {
	title := theme.HeaderTitle.Render("OmniEmployee")

	subtitle := ""
	if info != nil && info.Model != "" {
		subtitle = theme.HeaderSubtitle.Render(info.Provider + "/" + info.Model)
	}

	var connStyle lipgloss.Style
	switch status {
	case Online:
		connStyle = theme.ConnOnline
	case Connecting:
		connStyle = theme.ConnConnecting
	default:
		connStyle = theme.ConnOffline
	}
	conn := connStyle.Render(status.Icon() + " " + status.String())

	user := theme.HeaderSubtitle.Render("user: " + userID)

	left := title
	if subtitle != "" {
		left = lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", subtitle)
	}
	right := lipgloss.JoinHorizontal(lipgloss.Center, conn, "  ", user)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	line := lipgloss.JoinHorizontal(lipgloss.Center, left, lipgloss.NewStyle().Width(gap).Render(""), right)

	return theme.Header.Width(width).Render(line)
}
