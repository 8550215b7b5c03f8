// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for communicating with the OmniEmployee backend.
package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
)

// =============================================================================
// STREAM EVENTS
// =============================================================================

// EventType discriminates the stream event variants.
type EventType string

const (
	EventChunk      EventType = "chunk"
	EventToolStart  EventType = "tool_start"
	EventToolResult EventType = "tool_result"
	EventContext    EventType = "context"
	EventDone       EventType = "done"
	EventError      EventType = "error"
)

// StreamEvent is one decoded event from the chat stream. The Type field
// determines which other fields are meaningful:
//
//	chunk       Content
//	tool_start  ID, Name, Arguments
//	tool_result ID, Result
//	context     Memories, Knowledge
//	done        ToolCalls
//	error       Content
type StreamEvent struct {
	Type      EventType         `json:"type"`
	Content   string            `json:"content,omitempty"`
	Name      string            `json:"name,omitempty"`
	Arguments json.RawMessage   `json:"arguments,omitempty"`
	ID        string            `json:"id,omitempty"`
	Result    string            `json:"result,omitempty"`
	Memories  []MemoryItem      `json:"memories,omitempty"`
	Knowledge []KnowledgeTriple `json:"knowledge,omitempty"`
	ToolCalls []ToolCallSummary `json:"tool_calls,omitempty"`
}

// IsTerminal returns true if the event ends the stream.
func (e *StreamEvent) IsTerminal() bool {
	return e.Type == EventDone || e.Type == EventError
}

// EventCallback is called for each event received during streaming.
// Events are delivered synchronously in arrival order.
type EventCallback func(event StreamEvent)

// =============================================================================
// EVENT READER
// =============================================================================

// dataPrefix is the SSE data field marker. Other SSE fields (id:,
// retry:, comments) and keepalive lines are ignored.
var dataPrefix = []byte("data:")

// EventReader parses Server-Sent Events from the chat stream body.
// A reader is tied to one connection and cannot be restarted.
type EventReader struct {
	reader *bufio.Reader
}

// NewEventReader creates a new event reader from an io.Reader.
func NewEventReader(r io.Reader) *EventReader {
	return &EventReader{
		reader: bufio.NewReader(r),
	}
}

// Next reads lines until the next decodable event or end of stream.
// Malformed payloads and unknown event types are silently skipped:
// keepalive and comment lines are expected on the wire, and a bad line
// must not abort an otherwise healthy stream. Returns io.EOF when the
// connection closes.
func (r *EventReader) Next() (*StreamEvent, error) {
	for {
		line, err := r.reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF && len(bytes.TrimSpace(line)) == 0 {
				return nil, io.EOF
			}
			if err != io.EOF {
				return nil, err
			}
			// Fall through: try to decode the final unterminated line.
		}

		line = bytes.TrimRight(line, "\r\n")
		if !bytes.HasPrefix(line, dataPrefix) {
			if err == io.EOF {
				return nil, io.EOF
			}
			continue
		}

		payload := bytes.TrimSpace(line[len(dataPrefix):])
		if len(payload) == 0 {
			continue
		}

		var event StreamEvent
		if jsonErr := json.Unmarshal(payload, &event); jsonErr != nil {
			// Skip malformed lines
			if err == io.EOF {
				return nil, io.EOF
			}
			continue
		}

		if !knownEventType(event.Type) {
			// Unknown type values are discarded like parse failures
			if err == io.EOF {
				return nil, io.EOF
			}
			continue
		}

		return &event, nil
	}
}

// Process reads the stream and calls the callback for each event.
// Blocks until a terminal event arrives, the connection closes, or the
// context is cancelled. Returns the tool-call summaries from the done
// event (empty on error event). A connection that closes before any
// terminal event is an error: the caller needs a failure signal to
// resolve the turn, or the loading state would stay stuck.
func (r *EventReader) Process(ctx context.Context, callback EventCallback) ([]ToolCallSummary, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		event, err := r.Next()
		if err != nil {
			if err == io.EOF {
				return nil, &ClientError{
					Type:    ErrTypeConnection,
					Message: "stream closed before completion",
					Cause:   io.ErrUnexpectedEOF,
				}
			}
			return nil, &ClientError{Type: ErrTypeConnection, Message: "stream read failed", Cause: err}
		}

		if callback != nil {
			callback(*event)
		}

		if event.IsTerminal() {
			if event.Type == EventDone {
				return event.ToolCalls, nil
			}
			return nil, nil
		}
	}
}

// knownEventType reports whether t is one of the recognized variants.
func knownEventType(t EventType) bool {
	switch t {
	case EventChunk, EventToolStart, EventToolResult, EventContext, EventDone, EventError:
		return true
	}
	return false
}
