// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// This package defines the core domain types used throughout the application
// for representing chat messages, their segments, and inline tool calls.
//
// # Key Types
//
//   - ChatMessage: Single message with role, content, timestamp, and segments
//   - MessageSegment: One piece of a message body (text run or tool call)
//   - InlineToolCall: A tool invocation displayed inline where it started
//   - Role: Message role enumeration (user, assistant, system)
//   - ToolStatus: Tool call lifecycle (running, completed, failed)
//
// # Usage
//
// Build an assistant message during streaming:
//
//	msg := model.NewStreamingMessage()
//	msg.AppendText("Let me check.")
//	msg.AddToolCall(&model.InlineToolCall{ID: "c1", Name: "web_search"})
//	msg.UpdateToolResult("c1", "3 results", model.ToolCompleted)
//	msg.AppendText(" Found it.")
//
// Text appended after a tool call starts a new segment, so the tool call
// stays anchored at the position where the agent invoked it.
package model
