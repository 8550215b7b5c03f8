// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/omniemployee/omnichat/internal/api"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	case RoleSystem:
		return "System"
	default:
		return string(r)
	}
}

// =============================================================================
// TOOL CALL TYPES
// =============================================================================

// ToolStatus tracks the lifecycle of an inline tool call.
type ToolStatus int

const (
	ToolRunning ToolStatus = iota
	ToolCompleted
	ToolFailed
)

// String returns the status label shown next to a tool call.
func (s ToolStatus) String() string {
	switch s {
	case ToolRunning:
		return "running"
	case ToolCompleted:
		return "completed"
	case ToolFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// InlineToolCall is a tool invocation rendered inline within a message,
// at the position in the text where the agent started it.
type InlineToolCall struct {
	ID        string
	Name      string
	Arguments json.RawMessage
	Result    string
	HasResult bool
	Status    ToolStatus
	Expanded  bool
}

// ArgumentsPreview returns the argument JSON for display, indented when
// it parses and raw otherwise.
func (t *InlineToolCall) ArgumentsPreview() string {
	if len(t.Arguments) == 0 {
		return ""
	}
	var buf interface{}
	if err := json.Unmarshal(t.Arguments, &buf); err != nil {
		return string(t.Arguments)
	}
	pretty, err := json.MarshalIndent(buf, "", "  ")
	if err != nil {
		return string(t.Arguments)
	}
	return string(pretty)
}

// =============================================================================
// MESSAGE SEGMENTS
// =============================================================================

// SegmentKind discriminates the segment variants.
type SegmentKind int

const (
	SegmentText SegmentKind = iota
	SegmentToolCall
)

// MessageSegment is one piece of a message body: either a run of text
// or a tool call. Tool is non-nil only when Kind is SegmentToolCall.
type MessageSegment struct {
	Kind SegmentKind
	Text string
	Tool *InlineToolCall
}

// TextSegment creates a text segment.
func TextSegment(text string) MessageSegment {
	return MessageSegment{Kind: SegmentText, Text: text}
}

// ToolSegment creates a tool call segment.
func ToolSegment(tool *InlineToolCall) MessageSegment {
	return MessageSegment{Kind: SegmentToolCall, Tool: tool}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// ChatMessage represents a single message in a conversation. Assistant
// messages built up during streaming hold their body in Segments, with
// Content kept as the concatenation of the text segments.
type ChatMessage struct {
	ID        string
	Role      Role
	Timestamp time.Time

	// Content is the plain-text body, excluding tool call segments.
	Content string

	// Segments interleave text runs with tool calls in arrival order.
	Segments []MessageSegment

	// ToolCalls summarizes the turn's tool usage as reported by the
	// backend when the message completed.
	ToolCalls []api.ToolCallSummary
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) *ChatMessage {
	return newMessage(RoleUser, content)
}

// NewSystemMessage creates a new system message.
func NewSystemMessage(content string) *ChatMessage {
	return newMessage(RoleSystem, content)
}

// NewAssistantMessage creates a complete assistant message.
func NewAssistantMessage(content string, toolCalls []api.ToolCallSummary) *ChatMessage {
	msg := newMessage(RoleAssistant, content)
	msg.ToolCalls = toolCalls
	return msg
}

// NewStreamingMessage creates an empty assistant message that will be
// filled in segment by segment as stream events arrive.
func NewStreamingMessage() *ChatMessage {
	return &ChatMessage{
		ID:        generateID(),
		Role:      RoleAssistant,
		Timestamp: time.Now(),
	}
}

func newMessage(role Role, content string) *ChatMessage {
	msg := &ChatMessage{
		ID:        generateID(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
	if content != "" {
		msg.Segments = []MessageSegment{TextSegment(content)}
	}
	return msg
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// AppendText extends the last text segment, or starts a new one when
// the message is empty or ends in a tool call.
func (m *ChatMessage) AppendText(text string) {
	if text == "" {
		return
	}
	m.Content += text

	if n := len(m.Segments); n > 0 && m.Segments[n-1].Kind == SegmentText {
		m.Segments[n-1].Text += text
		return
	}
	m.Segments = append(m.Segments, TextSegment(text))
}

// AddToolCall appends a tool call segment.
func (m *ChatMessage) AddToolCall(tool *InlineToolCall) {
	m.Segments = append(m.Segments, ToolSegment(tool))
}

// FindToolCall returns the inline tool call with the given id, or nil.
func (m *ChatMessage) FindToolCall(toolID string) *InlineToolCall {
	for i := range m.Segments {
		if m.Segments[i].Kind == SegmentToolCall && m.Segments[i].Tool.ID == toolID {
			return m.Segments[i].Tool
		}
	}
	return nil
}

// UpdateToolResult records a tool's result and final status. Unknown
// ids are ignored: a result for a call this message never started is
// dropped rather than invented.
func (m *ChatMessage) UpdateToolResult(toolID, result string, status ToolStatus) bool {
	tool := m.FindToolCall(toolID)
	if tool == nil {
		return false
	}
	tool.Result = result
	tool.HasResult = true
	tool.Status = status
	return true
}

// ToggleToolExpanded flips the expansion state of a tool call.
func (m *ChatMessage) ToggleToolExpanded(toolID string) {
	if tool := m.FindToolCall(toolID); tool != nil {
		tool.Expanded = !tool.Expanded
	}
}

// FinishToolCalls marks every still-running tool call with the given
// terminal status. Used when the stream ends before all results arrive.
func (m *ChatMessage) FinishToolCalls(status ToolStatus) {
	for i := range m.Segments {
		if m.Segments[i].Kind != SegmentToolCall {
			continue
		}
		if m.Segments[i].Tool.Status == ToolRunning {
			m.Segments[i].Tool.Status = status
		}
	}
}

// RebuildContent recomputes Content from the text segments.
func (m *ChatMessage) RebuildContent() {
	content := ""
	for i := range m.Segments {
		if m.Segments[i].Kind == SegmentText {
			content += m.Segments[i].Text
		}
	}
	m.Content = content
}

// HasToolCalls reports whether any segment is a tool call.
func (m *ChatMessage) HasToolCalls() bool {
	for i := range m.Segments {
		if m.Segments[i].Kind == SegmentToolCall {
			return true
		}
	}
	return false
}

// IsEmpty returns true if the message has no segments.
func (m *ChatMessage) IsEmpty() bool {
	return len(m.Segments) == 0
}

// Preview returns a truncated preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m *ChatMessage) Preview(maxLen int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxLen {
		return m.Content
	}
	return string(runes[:maxLen-3]) + "..."
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateID creates a unique message ID.
func generateID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "msg_" + hex.EncodeToString(bytes)
}
