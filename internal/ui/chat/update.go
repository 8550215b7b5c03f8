// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/omniemployee/omnichat/internal/commands"
	"github.com/omniemployee/omnichat/internal/ui/components"
)

// =============================================================================
// LIFECYCLE
// =============================================================================

// Init starts the handshake and the input cursor.
func (m Model) Init() tea.Cmd {
	m.state.AppendSystem("Connecting to OmniEmployee backend...")
	return tea.Batch(
		fetchAgentInfoCmd(m.client),
		fetchUsersCmd(m.client),
		m.spinner.Tick,
		textinput.Blink,
	)
}

// Update is the single mutation point for the whole application state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.refreshViewport()

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		if m.quitting {
			return m, tea.Quit
		}
		cmds = append(cmds, cmd)

	case drainTickMsg:
		m.drainEvents()
		m.refreshViewport()
		if m.state.IsLoading() || m.queue.Len() > 0 {
			cmds = append(cmds, drainTickCmd())
		}

	case streamDoneMsg:
		// Apply anything still queued before judging the error, so a
		// done event that raced the return resolves the turn first.
		m.drainEvents()
		if msg.Err != nil {
			m.state.FailStream(msg.Turn, msg.Err)
		}
		m.refreshViewport()

	case agentInfoMsg:
		m.applyAgentInfo(msg)
		m.refreshViewport()

	case usersLoadedMsg:
		if msg.Err == nil {
			m.session.SetUsers(msg.Users, msg.Current)
		}

	case statsMsg:
		m.state.PopLast()
		m.state.AppendSystem(formatStats(msg.Info, msg.Err))
		m.refreshViewport()

	case memoryStatsMsg:
		m.state.PopLast()
		m.state.AppendSystem(formatMemoryStats(msg.Stats, msg.Err))
		m.refreshViewport()

	case knowledgeStatsMsg:
		m.state.PopLast()
		m.state.AppendSystem(formatKnowledgeStats(msg.Stats, msg.Err))
		m.refreshViewport()

	case chatClearedMsg:
		// Local reset happens regardless of the server call outcome.
		m.state.ClearWithNotice("Conversation cleared.")
		m.refreshViewport()

	case userSwitchedMsg:
		m.applyUserSwitch(msg)
		m.refreshViewport()

	case userCreatedMsg:
		m.applyUserCreate(msg)
		m.refreshViewport()

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		m.quitting = true
		return nil

	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()

	case key.Matches(msg, m.keyMap.Complete):
		if matches := commands.Complete(m.input.Value()); len(matches) == 1 {
			m.input.SetValue(matches[0] + " ")
			m.input.CursorEnd()
		}
		return nil

	case key.Matches(msg, m.keyMap.CyclePanel):
		m.activePanel = m.visiblePanel().Next()
		return nil

	case key.Matches(msg, m.keyMap.ToggleTool):
		m.toggleLastToolCall()
		m.refreshViewport()
		return nil

	case key.Matches(msg, m.keyMap.SwitchUser):
		if next := m.nextUser(); next != "" {
			return switchUserCmd(m.client, next)
		}
		return nil

	case key.Matches(msg, m.keyMap.NewUser):
		return createUserCmd(m.client)
	}
	return nil
}

// submit sends the input line: slash commands dispatch locally, plain
// text starts a streaming turn. All input is rejected while a stream
// is live, commands included: a command result landing mid-turn would
// interleave with the streaming transcript.
func (m *Model) submit() tea.Cmd {
	if m.state.IsLoading() {
		return nil
	}

	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return nil
	}

	if cmd, ok := commands.Parse(text); ok {
		m.input.Reset()
		c := m.handleCommand(cmd)
		m.refreshViewport()
		return c
	}

	turn, ok := m.state.BeginTurn(text)
	if !ok {
		return nil
	}
	m.activeTurn = turn
	m.input.Reset()
	m.refreshViewport()

	return tea.Batch(
		startStreamCmd(m.client, m.queue, turn, text, m.session.SessionID()),
		drainTickCmd(),
	)
}

// toggleLastToolCall expands or collapses the most recent live tool call.
func (m *Model) toggleLastToolCall() {
	calls := m.state.LiveToolCalls
	if len(calls) == 0 {
		return
	}
	last := calls[len(calls)-1]
	last.Expanded = !last.Expanded

	// Sync the inline copy in the newest message that carries this call.
	// Ids are unique only within one turn, so older messages that happen
	// to reuse the id must stay untouched.
	for i := len(m.state.Messages) - 1; i >= 0; i-- {
		if m.state.Messages[i].FindToolCall(last.ID) != nil {
			m.state.Messages[i].ToggleToolExpanded(last.ID)
			return
		}
	}
}

// nextUser returns the user after the current one in the backend list.
func (m *Model) nextUser() string {
	users := m.session.Users()
	if len(users) < 2 {
		return ""
	}
	current := m.session.UserID()
	for i, u := range users {
		if u == current {
			return users[(i+1)%len(users)]
		}
	}
	return users[0]
}

// =============================================================================
// EVENT DRAIN
// =============================================================================

// drainEvents applies every queued stream event in FIFO order. Events
// tagged with a superseded turn are dropped by the state itself.
func (m *Model) drainEvents() {
	for {
		qe, ok := m.queue.TryPop()
		if !ok {
			break
		}
		m.state.Apply(qe.Turn, qe.Event)
	}

	// A tool start forces the Tools panel to the front.
	if m.state.ToolPanelOpen {
		m.activePanel = components.PanelTools
		m.state.ToolPanelOpen = false
	}
}

// =============================================================================
// HANDSHAKE AND USER RESULTS
// =============================================================================

func (m *Model) applyAgentInfo(msg agentInfoMsg) {
	if msg.Err != nil || msg.Info == nil {
		m.connStatus = components.Offline
		m.state.ClearWithNotice(fmt.Sprintf(
			"⚠️ Could not connect to backend at %s.\n\nMake sure the server is running, then use /reconnect to try again.",
			m.client.BaseURL(),
		))
		return
	}

	m.connStatus = components.Online
	m.agentInfo = msg.Info
	m.cfg.UI.ShowMemory = msg.Info.MemoryEnabled
	m.cfg.UI.ShowKnowledge = msg.Info.KnowledgeEnabled

	m.state.ClearWithNotice(fmt.Sprintf(
		"Connected to OmniEmployee!\nModel: %s (%s)\nSkills: %s\nTools: %s\n\nType a message or use /help for commands.",
		msg.Info.Model,
		msg.Info.Provider,
		joinOrNone(msg.Info.Skills),
		joinOrNone(msg.Info.Tools),
	))
}

func (m *Model) applyUserSwitch(msg userSwitchedMsg) {
	if msg.Err != nil || !msg.Success {
		m.state.AppendSystem("Failed to switch user")
		return
	}
	m.session.SwitchedTo(msg.UserID)
	m.state.ClearWithNotice(fmt.Sprintf("Switched to user: %s\nNew session started.", msg.UserID))
}

func (m *Model) applyUserCreate(msg userCreatedMsg) {
	if msg.Err != nil || !msg.Success {
		m.state.AppendSystem("Failed to create user")
		return
	}
	m.session.Created(msg.UserID)
	m.state.ClearWithNotice(fmt.Sprintf("Created and switched to new user: %s\nNew session started.", msg.UserID))
}
