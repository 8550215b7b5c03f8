// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// =============================================================================
// THEME
// =============================================================================

// Theme holds every configured style the chat interface renders with.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// Application container
	App       lipgloss.Style
	Container lipgloss.Style

	// Header
	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// Message bubbles
	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	SystemBubble    lipgloss.Style
	RoleLabel       lipgloss.Style
	Timestamp       lipgloss.Style

	// Inline tool calls
	ToolRunning   lipgloss.Style
	ToolCompleted lipgloss.Style
	ToolFailed    lipgloss.Style
	ToolDetail    lipgloss.Style

	// Sidebar panels
	Sidebar       lipgloss.Style
	SidebarTitle  lipgloss.Style
	SidebarItem   lipgloss.Style
	SidebarEmpty  lipgloss.Style
	SidebarMetric lipgloss.Style

	// Input area
	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style

	// Status bar
	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// Connection status
	ConnOnline     lipgloss.Style
	ConnConnecting lipgloss.Style
	ConnOffline    lipgloss.Style

	// Spinner
	Spinner lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 2).
		MarginLeft(4)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(AssistantBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(AssistantBubbleBorder).
		Padding(0, 2).
		MarginRight(4)

	t.SystemBubble = lipgloss.NewStyle().
		Foreground(SystemBubbleFg).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(SystemBubbleBorder).
		Padding(0, 2)

	t.RoleLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ToolRunning = lipgloss.NewStyle().
		Foreground(ToolRunningFg).
		Bold(true)

	t.ToolCompleted = lipgloss.NewStyle().
		Foreground(ToolSuccessFg)

	t.ToolFailed = lipgloss.NewStyle().
		Foreground(ToolErrorFg).
		Bold(true)

	t.ToolDetail = lipgloss.NewStyle().
		Foreground(TextMuted).
		MarginLeft(2)

	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.SidebarTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.SidebarItem = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.SidebarEmpty = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.SidebarMetric = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ConnOnline = lipgloss.NewStyle().
		Foreground(StatusOnline).
		Bold(true)

	t.ConnConnecting = lipgloss.NewStyle().
		Foreground(StatusConnecting)

	t.ConnOffline = lipgloss.NewStyle().
		Foreground(StatusOffline).
		Bold(true)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode. The
// sidebar is rendered only in LayoutWide.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
