// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/omniemployee/omnichat/internal/api"
	"github.com/omniemployee/omnichat/internal/conversation"
)

// =============================================================================
// STREAMING MESSAGES
// =============================================================================

// drainTickMsg fires on the event-drain cadence while a stream is live.
type drainTickMsg struct {
	Time time.Time
}

// streamDoneMsg is sent when the background stream goroutine returns.
// Err is nil on a clean close; all decoded events have already been
// pushed onto the queue by then.
type streamDoneMsg struct {
	Turn conversation.Turn
	Err  error
}

// =============================================================================
// HANDSHAKE MESSAGES
// =============================================================================

// agentInfoMsg carries the result of the startup GET /api/agent/info.
type agentInfoMsg struct {
	Info *api.AgentInfo
	Err  error
}

// usersLoadedMsg carries the backend user list.
type usersLoadedMsg struct {
	Users   []string
	Current string
	Err     error
}

// =============================================================================
// COMMAND RESULT MESSAGES
// =============================================================================

// statsMsg carries the /stats result (agent info reused as statistics).
type statsMsg struct {
	Info *api.AgentInfo
	Err  error
}

// memoryStatsMsg carries the /memory result.
type memoryStatsMsg struct {
	Stats *api.MemoryStats
	Err   error
}

// knowledgeStatsMsg carries the /knowledge result.
type knowledgeStatsMsg struct {
	Stats *api.KnowledgeStats
	Err   error
}

// chatClearedMsg is sent after POST /api/chat/clear returns. The server
// call is best-effort: the local log resets either way.
type chatClearedMsg struct {
	Err error
}

// =============================================================================
// USER MANAGEMENT MESSAGES
// =============================================================================

// userSwitchedMsg carries the result of POST /api/user/switch.
type userSwitchedMsg struct {
	UserID  string
	Success bool
	Err     error
}

// userCreatedMsg carries the result of POST /api/user/create.
type userCreatedMsg struct {
	UserID  string
	Success bool
	Err     error
}
