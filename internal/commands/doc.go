// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the chat UI.
//
// The command set is closed: parsing yields a tagged Command value and
// callers dispatch with a switch on its Kind. Input without a leading
// slash is not a command and goes to the agent as a chat message.
//
// # Built-in Commands
//
//   - /help (/h, /?): Show available commands
//   - /stats: Show agent statistics
//   - /memory: Show memory statistics
//   - /knowledge: Show learned knowledge
//   - /clear: Clear conversation
//   - /reconnect: Reconnect to backend
//   - /config <key> <value>: Update display config
//
// # Usage
//
//	cmd, ok := commands.Parse(input)
//	if !ok {
//	    // plain chat message
//	}
//	switch cmd.Kind {
//	case commands.KindHelp:
//	    ...
//	}
package commands
