// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/omniemployee/omnichat/internal/model"
	"github.com/omniemployee/omnichat/internal/ui/components"
)

// sidebarWidth is the fixed column width of the context sidebar.
const sidebarWidth = 34

// =============================================================================
// VIEW
// =============================================================================

// View renders the whole screen from the current state snapshot.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "loading..."
	}

	chatWidth := m.width
	sidebar := ""
	if m.sidebarVisible() {
		chatWidth = m.width - sidebarWidth
		sidebar = components.RenderSidebar(m.theme, sidebarWidth, m.viewport.Height+2, m.visiblePanel(), components.SidebarData{
			Memories:  m.state.ContextMemories,
			Knowledge: m.state.ContextKnowledge,
			Tools:     m.state.LiveToolCalls,
		})
	}

	header := components.RenderHeader(m.theme, chatWidth, m.agentInfo, m.connStatus, m.session.UserID())
	input := m.theme.InputContainer.Width(chatWidth - 2).Render(m.input.View())
	status := components.RenderStatusBar(m.theme, chatWidth, m.session.SessionID(), m.state.IsLoading(), m.spinner.View())

	column := lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View(), input, status)
	if sidebar == "" {
		return column
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, column, sidebar)
}

// refreshViewport re-renders the transcript and keeps the view pinned
// to the newest message.
func (m *Model) refreshViewport() {
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderMessages())
	if atBottom || m.state.IsLoading() {
		m.viewport.GotoBottom()
	}
}

// =============================================================================
// TRANSCRIPT RENDERING
// =============================================================================

// renderMessages renders the full message log for the viewport.
func (m *Model) renderMessages() string {
	var b strings.Builder
	for i, msg := range m.state.Messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderMessage(msg *model.ChatMessage) string {
	label := m.theme.RoleLabel.Render(msg.Role.DisplayName())
	stamp := m.theme.Timestamp.Render(msg.Timestamp.Format("15:04"))
	head := lipgloss.JoinHorizontal(lipgloss.Center, label, " ", stamp)

	var body string
	switch msg.Role {
	case model.RoleUser:
		body = m.theme.UserBubble.Render(msg.Content)
	case model.RoleAssistant:
		body = m.theme.AssistantBubble.Render(m.renderSegments(msg))
	default:
		body = m.theme.SystemBubble.Render(msg.Content)
	}

	return head + "\n" + body
}

// renderSegments renders an assistant message: markdown text segments
// interleaved with inline tool call lines in stream order.
func (m *Model) renderSegments(msg *model.ChatMessage) string {
	if len(msg.Segments) == 0 {
		return m.renderMarkdown(msg.Content)
	}

	parts := make([]string, 0, len(msg.Segments))
	for _, seg := range msg.Segments {
		switch seg.Kind {
		case model.SegmentText:
			if seg.Text != "" {
				parts = append(parts, m.renderMarkdown(seg.Text))
			}
		case model.SegmentToolCall:
			if seg.Tool != nil && m.cfg.UI.ShowTools {
				parts = append(parts, m.renderToolCall(seg.Tool))
			}
		}
	}
	return strings.Join(parts, "\n")
}

func (m *Model) renderToolCall(tc *model.InlineToolCall) string {
	var style lipgloss.Style
	var icon string
	switch tc.Status {
	case model.ToolRunning:
		style, icon = m.theme.ToolRunning, m.spinner.View()
	case model.ToolCompleted:
		style, icon = m.theme.ToolCompleted, "✓"
	default:
		style, icon = m.theme.ToolFailed, "✗"
	}

	line := style.Render(icon + " " + tc.Name)
	if !tc.Expanded {
		return line
	}

	var b strings.Builder
	b.WriteString(line)
	if preview := tc.ArgumentsPreview(); preview != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.ToolDetail.Render(preview))
	}
	if tc.HasResult {
		b.WriteString("\n")
		b.WriteString(m.theme.ToolDetail.Render(tc.Result))
	}
	return b.String()
}

// renderMarkdown renders assistant text through glamour, falling back
// to the raw text when the renderer is unavailable or errors out.
func (m *Model) renderMarkdown(text string) string {
	if m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}
