// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat is the Bubble Tea application for the OmniEmployee chat
// client. The Model owns the conversation state and is the only place
// it is mutated; the stream goroutine pushes decoded events onto the
// conversation queue, and the update loop drains the queue on a fixed
// tick while a stream is live.
//
// Slash commands that fetch remote data follow a push-placeholder,
// replace-on-completion pattern: a "Fetching..." system message goes in
// immediately and the result message pops it before pushing the
// formatted output.
package chat
