// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the chat UI.
package commands

import "strings"

// =============================================================================
// COMMAND SET
// =============================================================================

// Kind enumerates the closed command set. Dispatch is a plain switch
// on this tag.
type Kind int

const (
	KindUnknown Kind = iota
	KindHelp
	KindStats
	KindMemory
	KindKnowledge
	KindClear
	KindReconnect
	KindConfig
)

// Command is one parsed slash command. Key and Value are set only for
// KindConfig; Name holds the raw command word for KindUnknown.
type Command struct {
	Kind  Kind
	Name  string
	Key   string
	Value string
}

// Config keys accepted by /config.
const (
	ConfigShowMemory    = "show_memory"
	ConfigShowKnowledge = "show_knowledge"
	ConfigShowTools     = "show_tools"
)

// =============================================================================
// PARSER
// =============================================================================

// Parse parses user input as a slash command. Returns false when the
// input is not a command at all (no leading slash, or a bare "/"),
// in which case it should be sent as a chat message instead.
func Parse(input string) (Command, bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return Command{}, false
	}

	parts := strings.Fields(input[1:])
	if len(parts) == 0 {
		return Command{}, false
	}

	switch strings.ToLower(parts[0]) {
	case "help", "h", "?":
		return Command{Kind: KindHelp}, true
	case "stats":
		return Command{Kind: KindStats}, true
	case "memory":
		return Command{Kind: KindMemory}, true
	case "knowledge":
		return Command{Kind: KindKnowledge}, true
	case "clear":
		return Command{Kind: KindClear}, true
	case "reconnect":
		return Command{Kind: KindReconnect}, true
	case "config":
		// /config needs exactly a key and a value; anything else is
		// reported as unknown rather than half-parsed.
		if len(parts) >= 3 {
			return Command{Kind: KindConfig, Key: parts[1], Value: parts[2]}, true
		}
		return Command{Kind: KindUnknown, Name: "config"}, true
	default:
		return Command{Kind: KindUnknown, Name: strings.ToLower(parts[0])}, true
	}
}

// =============================================================================
// COMPLETION
// =============================================================================

// commandNames lists the completable commands in display order.
var commandNames = []string{
	"/help",
	"/stats",
	"/memory",
	"/knowledge",
	"/clear",
	"/reconnect",
	"/config",
}

// Complete returns the command names matching a partial input.
// Returns nothing for input that is not a command prefix.
func Complete(input string) []string {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") || strings.ContainsAny(input, " \t") {
		return nil
	}

	var matches []string
	for _, name := range commandNames {
		if strings.HasPrefix(name, strings.ToLower(input)) {
			matches = append(matches, name)
		}
	}
	return matches
}

// =============================================================================
// HELP TEXT
// =============================================================================

// HelpText returns the markdown body shown for /help.
func HelpText() string {
	return "**Available Commands:**\n\n" +
		"/stats - Show agent statistics\n" +
		"/memory - Show memory statistics\n" +
		"/knowledge - Show learned knowledge\n" +
		"/clear - Clear conversation\n" +
		"/reconnect - Reconnect to backend\n" +
		"/config <key> <value> - Update config\n\n" +
		"Config keys: " + ConfigShowMemory + ", " + ConfigShowKnowledge + ", " + ConfigShowTools
}
