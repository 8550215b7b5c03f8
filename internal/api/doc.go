// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for communicating with the
// OmniEmployee backend.
//
// This package implements a blocking client for the backend's REST
// surface (agent info, memory, knowledge, users, session management)
// and its Server-Sent-Events chat stream. The client holds no mutable
// shared state beyond a fixed base URL and is safe for concurrent use.
//
// # Key Types
//
//   - Client: HTTP client for backend API communication
//   - StreamEvent: one decoded event from the chat stream
//   - EventReader: SSE reader tied to one stream connection
//   - ClientError: typed transport error with cause
//
// # Usage
//
// Simple request/response call:
//
//	client := api.NewClient()
//	info, err := client.GetAgentInfo(ctx)
//
// Streaming chat:
//
//	tools, err := client.ChatStream(ctx, "hello", sessionID, func(ev api.StreamEvent) {
//	    switch ev.Type {
//	    case api.EventChunk:
//	        fmt.Print(ev.Content)
//	    }
//	})
//
// # Leniency
//
// The stream decoder silently skips SSE lines that are not data fields,
// fail to parse, or carry an unknown type discriminator. Keepalive and
// comment lines are expected on the wire and must not abort a stream.
package api
