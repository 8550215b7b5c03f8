// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation owns the chat state machine and applies stream
// events to it.
package conversation

import (
	"strings"

	"github.com/omniemployee/omnichat/internal/api"
	"github.com/omniemployee/omnichat/internal/model"
)

// =============================================================================
// TURN TOKEN
// =============================================================================

// Turn identifies one streaming turn. Events carry the turn they belong
// to; before applying an event the state compares the token against its
// current turn. A mismatch means the event belongs to an abandoned
// stream and must be dropped. The sequence number guards the message id
// against the (unlikely) case of an id collision after a clear.
type Turn struct {
	MessageID string
	Seq       uint64
}

// =============================================================================
// STATE
// =============================================================================

// State holds everything the chat view renders: the message log, the
// flat live tool-call registry for the sidebar, the finalized tool
// calls of the last turn, and the context snapshot retrieved for the
// current query.
//
// State is not safe for concurrent use. All mutation happens on the
// owning update loop; network workers hand their events over through a
// Queue and never touch State directly.
type State struct {
	Messages []*model.ChatMessage

	// LiveToolCalls is the flat registry of this turn's tool calls,
	// shown in the sidebar. Reset at the start of every turn.
	LiveToolCalls []*model.InlineToolCall

	// CurrentToolCalls is the finalized summary from the last done
	// event.
	CurrentToolCalls []api.ToolCallSummary

	// Context snapshot for the current query. Replaced wholesale on
	// every context event, never merged.
	ContextMemories  []api.MemoryItem
	ContextKnowledge []api.KnowledgeTriple

	// ToolPanelOpen is flipped on when a tool call starts, so the
	// sidebar unfolds to show progress.
	ToolPanelOpen bool

	isLoading          bool
	streamingMessageID string
	streamingContent   strings.Builder
	seq                uint64
}

// NewState creates an empty conversation state.
func NewState() *State {
	return &State{}
}

// IsLoading reports whether a stream is active. While true, new sends
// are rejected.
func (s *State) IsLoading() bool {
	return s.isLoading
}

// StreamingContent returns the raw text accumulated so far in the
// active turn. Used for plain fallback rendering.
func (s *State) StreamingContent() string {
	return s.streamingContent.String()
}

// LastMessage returns the most recent message, or nil if the log is
// empty.
func (s *State) LastMessage() *model.ChatMessage {
	if len(s.Messages) == 0 {
		return nil
	}
	return s.Messages[len(s.Messages)-1]
}

// streamingMessage returns the active turn's placeholder message, or
// nil when no stream is active or the log was cleared underneath it.
// The placeholder is located by id, not by position: a system message
// appended mid-turn must not displace the streaming target.
func (s *State) streamingMessage() *model.ChatMessage {
	if s.streamingMessageID == "" {
		return nil
	}
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].ID == s.streamingMessageID {
			return s.Messages[i]
		}
	}
	return nil
}

// =============================================================================
// MESSAGE LOG
// =============================================================================

// AppendSystem appends a system message and returns it.
func (s *State) AppendSystem(content string) *model.ChatMessage {
	msg := model.NewSystemMessage(content)
	s.Messages = append(s.Messages, msg)
	return msg
}

// PopLast removes and returns the most recent message, or nil if the
// log is empty. Used by command handlers to replace their "Fetching"
// placeholder with the real result.
func (s *State) PopLast() *model.ChatMessage {
	if len(s.Messages) == 0 {
		return nil
	}
	last := s.Messages[len(s.Messages)-1]
	s.Messages = s.Messages[:len(s.Messages)-1]
	return last
}

// =============================================================================
// TURN LIFECYCLE
// =============================================================================

// BeginTurn starts a streaming turn for the given user text. Appends
// the user message and an empty assistant placeholder, resets the
// per-turn tool state, and marks the state loading. Returns false
// without mutating anything when a stream is already active: at most
// one turn may be in flight.
func (s *State) BeginTurn(text string) (Turn, bool) {
	if s.isLoading {
		return Turn{}, false
	}

	s.Messages = append(s.Messages, model.NewUserMessage(text))
	s.CurrentToolCalls = nil
	s.LiveToolCalls = nil
	s.streamingContent.Reset()

	placeholder := model.NewStreamingMessage()
	s.Messages = append(s.Messages, placeholder)
	s.streamingMessageID = placeholder.ID
	s.isLoading = true
	s.seq++

	return Turn{MessageID: placeholder.ID, Seq: s.seq}, true
}

// current reports whether the token still names the active turn.
func (s *State) current(turn Turn) bool {
	return s.isLoading && turn.Seq == s.seq && turn.MessageID == s.streamingMessageID
}

// Apply applies one stream event to the state. Events from a turn that
// is no longer active are dropped: after a clear, a user switch, or a
// reconnect the old stream keeps running in the background, and its
// late events must not touch the newer state. Returns true when the
// event was applied.
func (s *State) Apply(turn Turn, event api.StreamEvent) bool {
	if !s.current(turn) {
		return false
	}

	switch event.Type {
	case api.EventContext:
		s.ContextMemories = event.Memories
		s.ContextKnowledge = event.Knowledge

	case api.EventChunk:
		s.streamingContent.WriteString(event.Content)
		if msg := s.streamingMessage(); msg != nil {
			msg.AppendText(event.Content)
		}

	case api.EventToolStart:
		s.applyToolStart(event)

	case api.EventToolResult:
		s.applyToolResult(event)

	case api.EventDone:
		s.applyDone(event)

	case api.EventError:
		s.applyError(event)

	default:
		return false
	}
	return true
}

func (s *State) applyToolStart(event api.StreamEvent) {
	if s.findLiveToolCall(event.ID) != nil {
		return
	}

	s.LiveToolCalls = append(s.LiveToolCalls, &model.InlineToolCall{
		ID:        event.ID,
		Name:      event.Name,
		Arguments: event.Arguments,
		Status:    model.ToolRunning,
		Expanded:  true,
	})
	s.ToolPanelOpen = true

	if msg := s.streamingMessage(); msg != nil {
		msg.AddToolCall(&model.InlineToolCall{
			ID:        event.ID,
			Name:      event.Name,
			Arguments: event.Arguments,
			Status:    model.ToolRunning,
			Expanded:  true,
		})
	}
}

func (s *State) applyToolResult(event api.StreamEvent) {
	// A result for an id that was never started is dropped. The server
	// is contracted to emit tool_start first, so this only happens on
	// misbehavior, and inventing an entry would show a call the agent
	// never announced.
	if tc := s.findLiveToolCall(event.ID); tc != nil {
		tc.Result = event.Result
		tc.HasResult = true
		tc.Status = model.ToolCompleted
	}
	if msg := s.streamingMessage(); msg != nil {
		msg.UpdateToolResult(event.ID, event.Result, model.ToolCompleted)
	}
}

func (s *State) applyDone(event api.StreamEvent) {
	s.CurrentToolCalls = event.ToolCalls

	// No tool call may stay running once its stream has terminated.
	for _, tc := range s.LiveToolCalls {
		if tc.Status == model.ToolRunning {
			tc.Status = model.ToolCompleted
		}
	}

	if msg := s.streamingMessage(); msg != nil {
		msg.ToolCalls = event.ToolCalls
		msg.FinishToolCalls(model.ToolCompleted)
		msg.RebuildContent()
	}

	s.isLoading = false
	s.streamingMessageID = ""
}

func (s *State) applyError(event api.StreamEvent) {
	if msg := s.streamingMessage(); msg != nil {
		// The partial assistant output is discarded: an errored turn
		// reads as a system notice, not a half answer.
		msg.Content = "Error: " + event.Content
		msg.Role = model.RoleSystem
		msg.Segments = nil
	}

	for _, tc := range s.LiveToolCalls {
		if tc.Status == model.ToolRunning {
			tc.Status = model.ToolFailed
		}
	}

	s.isLoading = false
	s.streamingMessageID = ""
}

// FailStream resolves a turn whose transport failed before any
// terminal event arrived. Appends a system error message only while
// the turn is still loading, so a failure observed after a done or
// error event does not report twice.
func (s *State) FailStream(turn Turn, err error) bool {
	if !s.current(turn) {
		return false
	}

	s.AppendSystem("Error: " + err.Error())
	for _, tc := range s.LiveToolCalls {
		if tc.Status == model.ToolRunning {
			tc.Status = model.ToolFailed
		}
	}
	s.isLoading = false
	s.streamingMessageID = ""
	return true
}

// findLiveToolCall returns the registry entry with the given id, or nil.
func (s *State) findLiveToolCall(id string) *model.InlineToolCall {
	for _, tc := range s.LiveToolCalls {
		if tc.ID == id {
			return tc
		}
	}
	return nil
}

// =============================================================================
// RESETS
// =============================================================================

// Clear wipes the message log and all per-turn state. An in-flight
// stream is not cancelled; bumping the sequence fences its remaining
// events out.
func (s *State) Clear() {
	s.Messages = nil
	s.LiveToolCalls = nil
	s.CurrentToolCalls = nil
	s.ContextMemories = nil
	s.ContextKnowledge = nil
	s.streamingContent.Reset()
	s.isLoading = false
	s.streamingMessageID = ""
	s.seq++
}

// ClearWithNotice clears the state and leaves a single system message
// explaining why. Used on user switch, user creation, and reconnect.
func (s *State) ClearWithNotice(notice string) {
	s.Clear()
	s.AppendSystem(notice)
}
