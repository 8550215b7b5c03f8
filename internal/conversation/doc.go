// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation owns the chat state machine and applies stream
// events to it.
//
// A turn moves through Idle -> Streaming -> Idle. BeginTurn appends the
// user message and an empty assistant placeholder and hands back a Turn
// token; the network worker pushes decoded events tagged with that
// token onto a Queue; the update loop drains the queue and calls Apply
// for each event. A done or error event, or a transport failure via
// FailStream, resolves the turn back to Idle.
//
// # Fencing
//
// Clear, user switch, and reconnect do not cancel the in-flight HTTP
// stream. They bump the state's turn sequence instead, so every event
// the abandoned stream later delivers fails the token comparison in
// Apply and is dropped. Stale events can never mutate a newer or
// cleared conversation.
//
// # Concurrency
//
// State itself is single-owner and not safe for concurrent use; only
// the update loop mutates it. The Queue is the sole hand-off point
// between the network goroutine and the loop, and it preserves FIFO
// order, so a tool_result is always applied after its tool_start.
package conversation
