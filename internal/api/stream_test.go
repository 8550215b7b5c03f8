// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

// =============================================================================
// EVENT READER TESTS
// =============================================================================

func TestEventReader_Next(t *testing.T) {
	stream := `data: {"type": "chunk", "content": "Hello"}

data: {"type": "chunk", "content": " world"}

data: {"type": "done", "tool_calls": []}

`
	reader := NewEventReader(strings.NewReader(stream))

	event, err := reader.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if event.Type != EventChunk {
		t.Errorf("Type = %q, want 'chunk'", event.Type)
	}
	if event.Content != "Hello" {
		t.Errorf("Content = %q, want 'Hello'", event.Content)
	}

	event, err = reader.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if event.Content != " world" {
		t.Errorf("Content = %q, want ' world'", event.Content)
	}

	event, err = reader.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if event.Type != EventDone {
		t.Errorf("Type = %q, want 'done'", event.Type)
	}
	if !event.IsTerminal() {
		t.Error("done event should be terminal")
	}

	_, err = reader.Next()
	if err != io.EOF {
		t.Errorf("Next() after stream end = %v, want io.EOF", err)
	}
}

func TestEventReader_SkipsMalformedLines(t *testing.T) {
	stream := `data: {not valid json
data: {"type": "chunk", "content": "ok"}
`
	reader := NewEventReader(strings.NewReader(stream))

	event, err := reader.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if event.Content != "ok" {
		t.Errorf("Content = %q, want 'ok'", event.Content)
	}
}

func TestEventReader_SkipsUnknownTypes(t *testing.T) {
	stream := `data: {"type": "heartbeat"}
data: {"type": "chunk", "content": "after"}
`
	reader := NewEventReader(strings.NewReader(stream))

	event, err := reader.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if event.Type != EventChunk {
		t.Errorf("Type = %q, want 'chunk'", event.Type)
	}
	if event.Content != "after" {
		t.Errorf("Content = %q, want 'after'", event.Content)
	}
}

func TestEventReader_SkipsCommentsAndKeepalives(t *testing.T) {
	stream := `: keepalive

id: 42
retry: 1000
data: {"type": "chunk", "content": "real"}
`
	reader := NewEventReader(strings.NewReader(stream))

	event, err := reader.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if event.Content != "real" {
		t.Errorf("Content = %q, want 'real'", event.Content)
	}
}

func TestEventReader_ToolStartEvent(t *testing.T) {
	stream := `data: {"type": "tool_start", "name": "web_search", "arguments": {"query": "golang"}, "id": "call_1"}
`
	reader := NewEventReader(strings.NewReader(stream))

	event, err := reader.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if event.Type != EventToolStart {
		t.Errorf("Type = %q, want 'tool_start'", event.Type)
	}
	if event.Name != "web_search" {
		t.Errorf("Name = %q, want 'web_search'", event.Name)
	}
	if event.ID != "call_1" {
		t.Errorf("ID = %q, want 'call_1'", event.ID)
	}
	if len(event.Arguments) == 0 {
		t.Error("Arguments should carry the raw JSON payload")
	}
}

func TestEventReader_ToolResultEvent(t *testing.T) {
	stream := `data: {"type": "tool_result", "id": "call_1", "result": "3 results found"}
`
	reader := NewEventReader(strings.NewReader(stream))

	event, err := reader.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if event.Type != EventToolResult {
		t.Errorf("Type = %q, want 'tool_result'", event.Type)
	}
	if event.Result != "3 results found" {
		t.Errorf("Result = %q, want '3 results found'", event.Result)
	}
}

func TestEventReader_ContextEvent(t *testing.T) {
	stream := `data: {"type": "context", "memories": [{"id": "m1", "content": "likes Go", "energy": 0.9, "tier": "L1"}], "knowledge": [{"subject": "user", "predicate": "prefers", "object": "dark mode"}]}
`
	reader := NewEventReader(strings.NewReader(stream))

	event, err := reader.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if event.Type != EventContext {
		t.Errorf("Type = %q, want 'context'", event.Type)
	}
	if len(event.Memories) != 1 {
		t.Fatalf("Memories length = %d, want 1", len(event.Memories))
	}
	if event.Memories[0].Content != "likes Go" {
		t.Errorf("Memories[0].Content = %q", event.Memories[0].Content)
	}
	if len(event.Knowledge) != 1 {
		t.Fatalf("Knowledge length = %d, want 1", len(event.Knowledge))
	}
	if event.Knowledge[0].Predicate != "prefers" {
		t.Errorf("Knowledge[0].Predicate = %q", event.Knowledge[0].Predicate)
	}
}

func TestEventReader_FinalUnterminatedLine(t *testing.T) {
	// Some servers close the connection without a trailing newline.
	stream := `data: {"type": "chunk", "content": "tail"}`
	reader := NewEventReader(strings.NewReader(stream))

	event, err := reader.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if event.Content != "tail" {
		t.Errorf("Content = %q, want 'tail'", event.Content)
	}

	_, err = reader.Next()
	if err != io.EOF {
		t.Errorf("Next() after final line = %v, want io.EOF", err)
	}
}

func TestEventReader_EmptyStream(t *testing.T) {
	reader := NewEventReader(strings.NewReader(""))

	_, err := reader.Next()
	if err != io.EOF {
		t.Errorf("Next() on empty stream = %v, want io.EOF", err)
	}
}

// =============================================================================
// PROCESS TESTS
// =============================================================================

func TestEventReader_Process(t *testing.T) {
	stream := `data: {"type": "chunk", "content": "a"}
data: {"type": "tool_start", "name": "calc", "id": "c1"}
data: {"type": "tool_result", "id": "c1", "result": "42"}
data: {"type": "chunk", "content": "b"}
data: {"type": "done", "tool_calls": [{"name": "calc", "arguments": {"expr": "6*7"}}]}
data: {"type": "chunk", "content": "after done, never delivered"}
`
	reader := NewEventReader(strings.NewReader(stream))

	var types []EventType
	toolCalls, err := reader.Process(context.Background(), func(event StreamEvent) {
		types = append(types, event.Type)
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	want := []EventType{EventChunk, EventToolStart, EventToolResult, EventChunk, EventDone}
	if len(types) != len(want) {
		t.Fatalf("delivered %d events, want %d: %v", len(types), len(want), types)
	}
	for i, typ := range want {
		if types[i] != typ {
			t.Errorf("event[%d] = %q, want %q", i, types[i], typ)
		}
	}

	if len(toolCalls) != 1 {
		t.Fatalf("tool calls length = %d, want 1", len(toolCalls))
	}
	if toolCalls[0].Name != "calc" {
		t.Errorf("tool call name = %q, want 'calc'", toolCalls[0].Name)
	}
}

func TestEventReader_ProcessStopsOnError(t *testing.T) {
	stream := `data: {"type": "chunk", "content": "partial"}
data: {"type": "error", "content": "model overloaded"}
data: {"type": "chunk", "content": "unreachable"}
`
	reader := NewEventReader(strings.NewReader(stream))

	var last StreamEvent
	count := 0
	toolCalls, err := reader.Process(context.Background(), func(event StreamEvent) {
		last = event
		count++
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if count != 2 {
		t.Errorf("delivered %d events, want 2", count)
	}
	if last.Type != EventError {
		t.Errorf("last event type = %q, want 'error'", last.Type)
	}
	if last.Content != "model overloaded" {
		t.Errorf("error content = %q", last.Content)
	}
	if toolCalls != nil {
		t.Errorf("tool calls = %v, want nil after error event", toolCalls)
	}
}

func TestEventReader_ProcessEarlyClose(t *testing.T) {
	// Stream cut off before any terminal event. The caller needs a failure
	// signal or the loading state would never resolve.
	stream := `data: {"type": "chunk", "content": "cut"}
`
	reader := NewEventReader(strings.NewReader(stream))

	count := 0
	toolCalls, err := reader.Process(context.Background(), func(event StreamEvent) {
		count++
	})
	if err == nil {
		t.Fatal("Process() error = nil, want connection error on close before terminal event")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Process() error = %v, want io.ErrUnexpectedEOF cause", err)
	}
	var clientErr *ClientError
	if !errors.As(err, &clientErr) || clientErr.Type != ErrTypeConnection {
		t.Errorf("Process() error = %v, want ClientError with connection type", err)
	}
	if count != 1 {
		t.Errorf("delivered %d events, want 1", count)
	}
	if toolCalls != nil {
		t.Errorf("tool calls = %v, want nil on early close", toolCalls)
	}
}

func TestEventReader_ProcessCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader := NewEventReader(strings.NewReader(`data: {"type": "chunk", "content": "x"}` + "\n"))

	_, err := reader.Process(ctx, nil)
	if err != context.Canceled {
		t.Errorf("Process() with cancelled context = %v, want context.Canceled", err)
	}
}
