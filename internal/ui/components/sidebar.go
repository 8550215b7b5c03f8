// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/omniemployee/omnichat/internal/api"
	"github.com/omniemployee/omnichat/internal/model"
	"github.com/omniemployee/omnichat/internal/ui/styles"
)

// =============================================================================
// PANEL SELECTION
// =============================================================================

// Panel identifies which sidebar panel is visible. The set is fixed.
type Panel int

const (
	PanelMemory Panel = iota
	PanelKnowledge
	PanelTools
)

// String returns the panel title.
func (p Panel) String() string {
	switch p {
	case PanelMemory:
		return "Memory"
	case PanelKnowledge:
		return "Knowledge"
	case PanelTools:
		return "Tools"
	default:
		return "Unknown"
	}
}

// Next cycles to the following panel, wrapping around.
func (p Panel) Next() Panel {
	switch p {
	case PanelMemory:
		return PanelKnowledge
	case PanelKnowledge:
		return PanelTools
	default:
		return PanelMemory
	}
}

// =============================================================================
// TEXT TRUNCATION
// =============================================================================

// TruncateToWidth shortens s to fit maxWidth terminal cells, appending an
// ellipsis when truncation happens. Rune-width aware for CJK content.
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 1 {
		return "…"
	}

	width := 0
	var b strings.Builder
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if width+rw > maxWidth-1 {
			break
		}
		b.WriteRune(r)
		width += rw
	}
	return b.String() + "…"
}

// =============================================================================
// SIDEBAR COMPONENT
// =============================================================================

// SidebarData carries the context snapshot and live tool registry the
// sidebar renders from.
type SidebarData struct {
	Memories  []api.MemoryItem
	Knowledge []api.KnowledgeTriple
	Tools     []*model.InlineToolCall

	MemoryStats *api.MemoryStats
}

// RenderSidebar renders the active panel at the given width and height.
func RenderSidebar(theme *styles.Theme, width, height int, active Panel, data SidebarData) string {
	if width < 10 {
		return ""
	}
	inner := width - 4

	var b strings.Builder
	b.WriteString(theme.SidebarTitle.Render(active.String()))
	b.WriteString("\n\n")

	switch active {
	case PanelMemory:
		renderMemoryPanel(&b, theme, inner, data)
	case PanelKnowledge:
		renderKnowledgePanel(&b, theme, inner, data.Knowledge)
	case PanelTools:
		renderToolsPanel(&b, theme, inner, data.Tools)
	}

	return theme.Sidebar.Width(width).Height(height).Render(b.String())
}

func renderMemoryPanel(b *strings.Builder, theme *styles.Theme, width int, data SidebarData) {
	if data.MemoryStats != nil {
		s := data.MemoryStats
		b.WriteString(theme.SidebarMetric.Render(fmt.Sprintf("L1 %d · L2 %d · L3 %d", s.L1Count, s.L2VectorCount, s.L3Facts)))
		b.WriteString("\n\n")
	}
	if len(data.Memories) == 0 {
		b.WriteString(theme.SidebarEmpty.Render("no memories recalled"))
		return
	}
	for _, m := range data.Memories {
		b.WriteString(theme.SidebarItem.Render("• " + TruncateToWidth(m.Content, width-2)))
		b.WriteString("\n")
	}
}

func renderKnowledgePanel(b *strings.Builder, theme *styles.Theme, width int, triples []api.KnowledgeTriple) {
	if len(triples) == 0 {
		b.WriteString(theme.SidebarEmpty.Render("no knowledge retrieved"))
		return
	}
	for _, t := range triples {
		line := t.Subject + " —" + t.Predicate + "→ " + t.Object
		b.WriteString(theme.SidebarItem.Render(TruncateToWidth(line, width)))
		b.WriteString("\n")
	}
}

func renderToolsPanel(b *strings.Builder, theme *styles.Theme, width int, tools []*model.InlineToolCall) {
	if len(tools) == 0 {
		b.WriteString(theme.SidebarEmpty.Render("no tool calls yet"))
		return
	}
	for _, tc := range tools {
		var style lipgloss.Style
		var icon string
		switch tc.Status {
		case model.ToolRunning:
			style, icon = theme.ToolRunning, "◌"
		case model.ToolCompleted:
			style, icon = theme.ToolCompleted, "✓"
		default:
			style, icon = theme.ToolFailed, "✗"
		}
		b.WriteString(style.Render(icon + " " + TruncateToWidth(tc.Name, width-2)))
		b.WriteString("\n")
		if tc.HasResult && tc.Expanded {
			for _, line := range strings.Split(tc.Result, "\n") {
				b.WriteString(theme.ToolDetail.Render("  " + TruncateToWidth(line, width-2)))
				b.WriteString("\n")
			}
		}
	}
}
