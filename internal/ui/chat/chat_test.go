// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"testing"

	"github.com/omniemployee/omnichat/internal/api"
	"github.com/omniemployee/omnichat/internal/commands"
	"github.com/omniemployee/omnichat/internal/config"
	"github.com/omniemployee/omnichat/internal/model"
	"github.com/omniemployee/omnichat/internal/session"
	"github.com/omniemployee/omnichat/internal/ui/components"
	"github.com/omniemployee/omnichat/internal/ui/styles"
)

func newTestModel() Model {
	m := New(styles.NewTheme(), api.NewClient(), session.NewManager(), config.Default())
	m.resize(100, 40)
	return m
}

func lastMessage(m *Model) *model.ChatMessage {
	msgs := m.state.Messages
	if len(msgs) == 0 {
		return nil
	}
	return msgs[len(msgs)-1]
}

// =============================================================================
// COMMAND DISPATCH TESTS
// =============================================================================

func TestHandleCommandHelp(t *testing.T) {
	m := newTestModel()
	cmd, _ := commands.Parse("/help")
	if c := m.handleCommand(cmd); c != nil {
		t.Error("help should not produce an async command")
	}

	last := lastMessage(&m)
	if last == nil || !strings.Contains(last.Content, "Available Commands") {
		t.Errorf("help output = %v, want command listing", last)
	}
}

func TestHandleCommandUnknown(t *testing.T) {
	m := newTestModel()
	cmd, _ := commands.Parse("/frobnicate")
	m.handleCommand(cmd)

	last := lastMessage(&m)
	want := "Unknown command: /frobnicate. Type /help for help."
	if last == nil || last.Content != want {
		t.Errorf("unknown command output = %v, want %q", last, want)
	}
}

func TestHandleCommandFetchPlaceholders(t *testing.T) {
	tests := []struct {
		input       string
		placeholder string
	}{
		{"/stats", "Fetching stats..."},
		{"/memory", "Fetching memory stats..."},
		{"/knowledge", "Fetching knowledge stats..."},
	}

	for _, tt := range tests {
		m := newTestModel()
		cmd, _ := commands.Parse(tt.input)
		if c := m.handleCommand(cmd); c == nil {
			t.Errorf("%s should produce an async fetch command", tt.input)
		}
		last := lastMessage(&m)
		if last == nil || last.Content != tt.placeholder {
			t.Errorf("%s placeholder = %v, want %q", tt.input, last, tt.placeholder)
		}
	}
}

func TestConfigCommandIdempotent(t *testing.T) {
	m := newTestModel()
	m.cfg.UI.ShowMemory = false

	cmd, _ := commands.Parse("/config show_memory true")
	m.handleCommand(cmd)
	m.handleCommand(cmd)

	if !m.cfg.UI.ShowMemory {
		t.Error("show_memory = false after two identical set-true commands")
	}

	// Two confirmations, not a toggle.
	confirmations := 0
	for _, msg := range m.state.Messages {
		if strings.Contains(msg.Content, "show_memory set to true") {
			confirmations++
		}
	}
	if confirmations != 2 {
		t.Errorf("confirmations = %d, want 2", confirmations)
	}
}

func TestConfigCommandUnknownKey(t *testing.T) {
	m := newTestModel()
	cmd, _ := commands.Parse("/config show_everything true")
	m.handleCommand(cmd)

	last := lastMessage(&m)
	if last == nil || !strings.Contains(last.Content, "Unknown config key: show_everything") {
		t.Errorf("unknown key output = %v", last)
	}
}

func TestConfigCommandFalseValue(t *testing.T) {
	m := newTestModel()
	m.cfg.UI.ShowTools = true

	cmd, _ := commands.Parse("/config show_tools false")
	m.handleCommand(cmd)

	if m.cfg.UI.ShowTools {
		t.Error("show_tools still true after set-false command")
	}
}

// =============================================================================
// SUBMIT TESTS
// =============================================================================

func TestSubmitStartsTurn(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("hello")

	if cmd := m.submit(); cmd == nil {
		t.Fatal("submit should return the stream command")
	}
	if !m.state.IsLoading() {
		t.Error("state not loading after submit")
	}
	if m.input.Value() != "" {
		t.Error("input not cleared after submit")
	}

	msgs := m.state.Messages
	if len(msgs) != 2 || msgs[0].Role != model.RoleUser || msgs[1].Role != model.RoleAssistant {
		t.Fatalf("message log after submit = %d messages, want user + assistant placeholder", len(msgs))
	}
	if msgs[0].Content != "hello" {
		t.Errorf("user message content = %q, want %q", msgs[0].Content, "hello")
	}
}

func TestSubmitRejectedWhileLoading(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("first")
	m.submit()

	before := len(m.state.Messages)
	m.input.SetValue("second")
	if cmd := m.submit(); cmd != nil {
		t.Error("second submit while loading should be rejected")
	}
	if len(m.state.Messages) != before {
		t.Error("rejected submit mutated the message log")
	}
}

func TestSubmitCommandRejectedWhileLoading(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("hello")
	m.submit()

	// A command result landing mid-turn would append a system message
	// into the streaming transcript, so commands wait like plain text.
	before := len(m.state.Messages)
	m.input.SetValue("/help")
	if cmd := m.submit(); cmd != nil {
		t.Error("command submit while loading should be rejected")
	}
	if len(m.state.Messages) != before {
		t.Error("rejected command mutated the message log")
	}
	if m.input.Value() != "/help" {
		t.Error("rejected input should stay in the box")
	}
}

func TestSubmitEmptyInput(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("   ")
	if cmd := m.submit(); cmd != nil {
		t.Error("blank input should not submit")
	}
	if len(m.state.Messages) != 0 {
		t.Error("blank input mutated the message log")
	}
}

func TestSubmitCommandDoesNotStartTurn(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("/help")
	m.submit()

	if m.state.IsLoading() {
		t.Error("slash command must not start a streaming turn")
	}
}

// =============================================================================
// DRAIN AND FENCING TESTS
// =============================================================================

func TestDrainAppliesQueuedEvents(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("hello")
	m.submit()
	turn := m.activeTurn

	m.queue.Push(turn, api.StreamEvent{Type: api.EventChunk, Content: "hi"})
	m.queue.Push(turn, api.StreamEvent{Type: api.EventChunk, Content: " there"})
	m.queue.Push(turn, api.StreamEvent{Type: api.EventDone})
	m.drainEvents()

	if m.state.IsLoading() {
		t.Error("still loading after done event drained")
	}
	last := lastMessage(&m)
	if last.Content != "hi there" {
		t.Errorf("assistant content = %q, want %q", last.Content, "hi there")
	}
}

func TestDrainFencesStaleEventsAfterUserSwitch(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("hello")
	m.submit()
	staleTurn := m.activeTurn

	// User switches account mid-stream: log resets to the notice.
	m.applyUserSwitch(userSwitchedMsg{UserID: "alice", Success: true})

	m.queue.Push(staleTurn, api.StreamEvent{Type: api.EventChunk, Content: "late"})
	m.queue.Push(staleTurn, api.StreamEvent{Type: api.EventDone})
	m.drainEvents()

	if len(m.state.Messages) != 1 {
		t.Fatalf("message count = %d, want the switch notice alone", len(m.state.Messages))
	}
	if !strings.Contains(m.state.Messages[0].Content, "Switched to user: alice") {
		t.Errorf("notice = %q", m.state.Messages[0].Content)
	}
}

func TestDrainForcesToolsPanel(t *testing.T) {
	m := newTestModel()
	m.activePanel = components.PanelMemory
	m.input.SetValue("do work")
	m.submit()

	m.queue.Push(m.activeTurn, api.StreamEvent{Type: api.EventToolStart, ID: "t1", Name: "grep"})
	m.drainEvents()

	if m.activePanel != components.PanelTools {
		t.Errorf("active panel = %v, want PanelTools after tool start", m.activePanel)
	}
}

// =============================================================================
// TOOL CALL TOGGLE TESTS
// =============================================================================

func TestToggleToolCallScopedToNewestMessage(t *testing.T) {
	m := newTestModel()

	// Two turns whose tool calls reuse the same id. Ids are unique only
	// within one turn, so the toggle must leave the older message alone.
	runTurn := func(prompt string) {
		m.input.SetValue(prompt)
		m.submit()
		m.queue.Push(m.activeTurn, api.StreamEvent{Type: api.EventToolStart, ID: "t1", Name: "grep"})
		m.queue.Push(m.activeTurn, api.StreamEvent{Type: api.EventDone})
		m.drainEvents()
	}
	runTurn("first")
	runTurn("second")

	older := m.state.Messages[1].FindToolCall("t1")
	newer := m.state.Messages[3].FindToolCall("t1")
	if older == nil || newer == nil {
		t.Fatal("both turns should carry an inline t1 tool call")
	}
	olderBefore, newerBefore := older.Expanded, newer.Expanded

	m.toggleLastToolCall()

	if newer.Expanded == newerBefore {
		t.Error("newest inline tool call not toggled")
	}
	if older.Expanded != olderBefore {
		t.Error("older message with colliding tool call id was touched")
	}
}

// =============================================================================
// HANDSHAKE TESTS
// =============================================================================

func TestApplyAgentInfoSuccess(t *testing.T) {
	m := newTestModel()
	m.applyAgentInfo(agentInfoMsg{Info: &api.AgentInfo{
		Provider:         "anthropic",
		Model:            "claude-sonnet",
		MemoryEnabled:    true,
		KnowledgeEnabled: false,
	}})

	if m.connStatus != components.Online {
		t.Errorf("connStatus = %v, want Online", m.connStatus)
	}
	if !m.cfg.UI.ShowMemory || m.cfg.UI.ShowKnowledge {
		t.Error("config toggles not adopted from agent info")
	}
	last := lastMessage(&m)
	if last == nil || !strings.Contains(last.Content, "Connected to OmniEmployee!") {
		t.Errorf("banner = %v", last)
	}
}

func TestApplyAgentInfoFailure(t *testing.T) {
	m := newTestModel()
	m.applyAgentInfo(agentInfoMsg{Err: api.ErrUnreachable})

	if m.connStatus != components.Offline {
		t.Errorf("connStatus = %v, want Offline", m.connStatus)
	}
	last := lastMessage(&m)
	if last == nil || !strings.Contains(last.Content, "/reconnect") {
		t.Errorf("failure notice = %v, want reconnect hint", last)
	}
}

// =============================================================================
// USER MANAGEMENT TESTS
// =============================================================================

func TestApplyUserSwitchRegeneratesSession(t *testing.T) {
	m := newTestModel()
	before := m.session.SessionID()

	m.applyUserSwitch(userSwitchedMsg{UserID: "bob", Success: true})

	if m.session.UserID() != "bob" {
		t.Errorf("user = %q, want bob", m.session.UserID())
	}
	if m.session.SessionID() == before {
		t.Error("session id not regenerated on switch")
	}
}

func TestApplyUserSwitchFailureKeepsState(t *testing.T) {
	m := newTestModel()
	m.state.AppendSystem("existing")

	m.applyUserSwitch(userSwitchedMsg{UserID: "bob", Err: api.ErrUnreachable})

	if m.session.UserID() != session.DefaultUserID {
		t.Errorf("user = %q, want default unchanged", m.session.UserID())
	}
	if len(m.state.Messages) != 2 {
		t.Errorf("message count = %d, want existing + failure notice", len(m.state.Messages))
	}
}

func TestNextUserCycles(t *testing.T) {
	m := newTestModel()
	m.session.SetUsers([]string{"default", "alice", "bob"}, "default")

	if got := m.nextUser(); got != "alice" {
		t.Errorf("nextUser() = %q, want alice", got)
	}

	m.session.SwitchedTo("bob")
	if got := m.nextUser(); got != "default" {
		t.Errorf("nextUser() after bob = %q, want wrap to default", got)
	}
}

func TestNextUserSingleUser(t *testing.T) {
	m := newTestModel()
	m.session.SetUsers([]string{"default"}, "default")
	if got := m.nextUser(); got != "" {
		t.Errorf("nextUser() = %q, want empty with one user", got)
	}
}

// =============================================================================
// FORMATTER TESTS
// =============================================================================

func TestFormatStats(t *testing.T) {
	info := &api.AgentInfo{
		Provider:      "anthropic",
		Model:         "claude-sonnet",
		Skills:        []string{"research", "coding"},
		MemoryEnabled: true,
	}
	got := formatStats(info, nil)

	for _, want := range []string{"Model: claude-sonnet", "Provider: anthropic", "research, coding", "Tools: none", "Memory: enabled", "Knowledge: disabled"} {
		if !strings.Contains(got, want) {
			t.Errorf("formatStats missing %q in %q", want, got)
		}
	}
}

func TestFormatStatsError(t *testing.T) {
	got := formatStats(nil, api.ErrUnreachable)
	if !strings.Contains(got, "Failed to fetch agent info") {
		t.Errorf("formatStats error = %q", got)
	}
}

func TestFormatMemoryStats(t *testing.T) {
	stats := &api.MemoryStats{L1Count: 3, L2VectorCount: 10, L2GraphNodes: 5, L2GraphEdges: 7, L3Facts: 2, L3Links: 1}
	got := formatMemoryStats(stats, nil)

	for _, want := range []string{"L1 Working: 3 nodes", "L2 Vector: 10 nodes", "L2 Graph: 5 nodes, 7 edges", "L3 Facts: 2", "L3 Links: 1"} {
		if !strings.Contains(got, want) {
			t.Errorf("formatMemoryStats missing %q", want)
		}
	}
}

func TestFormatKnowledgeStatsUnavailable(t *testing.T) {
	tests := []struct {
		name  string
		stats *api.KnowledgeStats
		err   error
	}{
		{"nil stats", nil, api.ErrUnreachable},
		{"unavailable status", &api.KnowledgeStats{Status: "unavailable"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatKnowledgeStats(tt.stats, tt.err)
			if !strings.Contains(got, "Knowledge system not available") {
				t.Errorf("formatKnowledgeStats = %q", got)
			}
		})
	}
}

func TestFormatKnowledgeStats(t *testing.T) {
	stats := &api.KnowledgeStats{TotalTriples: 42, UniqueSubjects: 10, UniquePredicates: 6, TotalUpdates: 50, PendingConfirmations: 2}
	got := formatKnowledgeStats(stats, nil)

	for _, want := range []string{"Total triples: 42", "Unique subjects: 10", "Pending confirmations: 2"} {
		if !strings.Contains(got, want) {
			t.Errorf("formatKnowledgeStats missing %q", want)
		}
	}
}
