// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/omniemployee/omnichat/internal/api"
	"github.com/omniemployee/omnichat/internal/commands"
	"github.com/omniemployee/omnichat/internal/conversation"
	"github.com/omniemployee/omnichat/internal/session"
	"github.com/omniemployee/omnichat/internal/ui/components"
)

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// startStreamCmd opens the chat stream in the background. Every decoded
// event is pushed onto the queue tagged with the turn token; the UI
// drains and applies them on its tick. The returned message signals
// stream completion (clean or failed).
func startStreamCmd(client *api.Client, queue *conversation.Queue, turn conversation.Turn, text, sessionID string) tea.Cmd {
	return func() tea.Msg {
		_, err := client.ChatStream(context.Background(), text, sessionID, func(event api.StreamEvent) {
			queue.Push(turn, event)
		})
		return streamDoneMsg{Turn: turn, Err: err}
	}
}

// drainTickCmd schedules the next event-drain tick.
func drainTickCmd() tea.Cmd {
	return tea.Tick(drainInterval, func(t time.Time) tea.Msg {
		return drainTickMsg{Time: t}
	})
}

// fetchAgentInfoCmd performs the startup handshake.
func fetchAgentInfoCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		info, err := client.GetAgentInfo(ctx)
		return agentInfoMsg{Info: info, Err: err}
	}
}

// fetchUsersCmd loads the backend user list.
func fetchUsersCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		list, err := client.GetUsers(ctx)
		if err != nil {
			return usersLoadedMsg{Err: err}
		}
		return usersLoadedMsg{Users: list.Users, Current: list.Current}
	}
}

func fetchStatsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		info, err := client.GetAgentInfo(ctx)
		return statsMsg{Info: info, Err: err}
	}
}

func fetchMemoryStatsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		stats, err := client.GetMemoryStats(ctx)
		return memoryStatsMsg{Stats: stats, Err: err}
	}
}

func fetchKnowledgeStatsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		stats, err := client.GetKnowledgeStats(ctx)
		return knowledgeStatsMsg{Stats: stats, Err: err}
	}
}

func clearChatCmd(client *api.Client, sessionID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return chatClearedMsg{Err: client.ClearChat(ctx, sessionID)}
	}
}

func switchUserCmd(client *api.Client, userID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		resp, err := client.SwitchUser(ctx, userID)
		if err != nil {
			return userSwitchedMsg{UserID: userID, Err: err}
		}
		return userSwitchedMsg{UserID: resp.UserID, Success: resp.Success}
	}
}

func createUserCmd(client *api.Client) tea.Cmd {
	userID := session.NewUserID()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		resp, err := client.CreateUser(ctx, userID)
		if err != nil {
			return userCreatedMsg{UserID: userID, Err: err}
		}
		return userCreatedMsg{UserID: resp.UserID, Success: resp.Success}
	}
}

// =============================================================================
// COMMAND DISPATCH
// =============================================================================

// handleCommand dispatches one parsed slash command. Remote commands
// push a "Fetching..." placeholder that the result message replaces.
func (m *Model) handleCommand(cmd commands.Command) tea.Cmd {
	switch cmd.Kind {
	case commands.KindHelp:
		m.state.AppendSystem(commands.HelpText())
		return nil

	case commands.KindStats:
		m.state.AppendSystem("Fetching stats...")
		return fetchStatsCmd(m.client)

	case commands.KindMemory:
		m.state.AppendSystem("Fetching memory stats...")
		return fetchMemoryStatsCmd(m.client)

	case commands.KindKnowledge:
		m.state.AppendSystem("Fetching knowledge stats...")
		return fetchKnowledgeStatsCmd(m.client)

	case commands.KindClear:
		return clearChatCmd(m.client, m.session.SessionID())

	case commands.KindReconnect:
		m.state.ClearWithNotice("Reconnecting...")
		m.connStatus = components.Connecting
		return tea.Batch(fetchAgentInfoCmd(m.client), fetchUsersCmd(m.client))

	case commands.KindConfig:
		m.state.AppendSystem(m.applyConfig(cmd.Key, cmd.Value))
		return nil

	default:
		m.state.AppendSystem(fmt.Sprintf("Unknown command: /%s. Type /help for help.", cmd.Name))
		return nil
	}
}

// applyConfig sets one sidebar visibility toggle. Setting, not
// toggling: repeating the same command is idempotent.
func (m *Model) applyConfig(key, value string) string {
	enabled := strings.EqualFold(value, "true")
	if !m.cfg.UI.Set(key, enabled) {
		return fmt.Sprintf("Unknown config key: %s", key)
	}
	return fmt.Sprintf("✓ %s set to %t", key, enabled)
}

// =============================================================================
// RESULT FORMATTING
// =============================================================================

func formatStats(info *api.AgentInfo, err error) string {
	var b strings.Builder
	b.WriteString("📊 **Agent Statistics**\n\n")
	if err != nil || info == nil {
		b.WriteString("Failed to fetch agent info")
		return b.String()
	}
	fmt.Fprintf(&b, "Model: %s\n", info.Model)
	fmt.Fprintf(&b, "Provider: %s\n", info.Provider)
	fmt.Fprintf(&b, "Skills: %s\n", joinOrNone(info.Skills))
	fmt.Fprintf(&b, "Tools: %s\n", joinOrNone(info.Tools))
	fmt.Fprintf(&b, "Memory: %s\n", enabledWord(info.MemoryEnabled))
	fmt.Fprintf(&b, "Knowledge: %s", enabledWord(info.KnowledgeEnabled))
	return b.String()
}

func formatMemoryStats(stats *api.MemoryStats, err error) string {
	var b strings.Builder
	b.WriteString("🧠 **Memory Statistics** (per-user)\n\n")
	if err != nil || stats == nil {
		b.WriteString("Memory system not available")
		return b.String()
	}
	fmt.Fprintf(&b, "L1 Working: %d nodes\n", stats.L1Count)
	fmt.Fprintf(&b, "L2 Vector: %d nodes\n", stats.L2VectorCount)
	fmt.Fprintf(&b, "L2 Graph: %d nodes, %d edges\n", stats.L2GraphNodes, stats.L2GraphEdges)
	fmt.Fprintf(&b, "L3 Facts: %d\n", stats.L3Facts)
	fmt.Fprintf(&b, "L3 Links: %d", stats.L3Links)
	return b.String()
}

func formatKnowledgeStats(stats *api.KnowledgeStats, err error) string {
	var b strings.Builder
	b.WriteString("📚 **Knowledge Statistics** (global, shared)\n\n")
	if err != nil || stats == nil || stats.Status == "unavailable" {
		b.WriteString("Knowledge system not available")
		return b.String()
	}
	fmt.Fprintf(&b, "Total triples: %d\n", stats.TotalTriples)
	fmt.Fprintf(&b, "Unique subjects: %d\n", stats.UniqueSubjects)
	fmt.Fprintf(&b, "Unique predicates: %d\n", stats.UniquePredicates)
	fmt.Fprintf(&b, "Total updates: %d\n", stats.TotalUpdates)
	fmt.Fprintf(&b, "Pending confirmations: %d", stats.PendingConfirmations)
	return b.String()
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func enabledWord(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}
