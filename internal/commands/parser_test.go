// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
	"testing"
)

// =============================================================================
// PARSE TESTS
// =============================================================================

func TestParse_Commands(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"/help", KindHelp},
		{"/h", KindHelp},
		{"/?", KindHelp},
		{"/HELP", KindHelp},
		{"/stats", KindStats},
		{"/memory", KindMemory},
		{"/knowledge", KindKnowledge},
		{"/clear", KindClear},
		{"/reconnect", KindReconnect},
		{"  /clear  ", KindClear},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			cmd, ok := Parse(tc.input)
			if !ok {
				t.Fatalf("Parse(%q) = not a command", tc.input)
			}
			if cmd.Kind != tc.want {
				t.Errorf("Parse(%q).Kind = %d, want %d", tc.input, cmd.Kind, tc.want)
			}
		})
	}
}

func TestParse_NotACommand(t *testing.T) {
	tests := []string{
		"hello",
		"what is /help?",
		"",
		"   ",
		"/",
	}

	for _, input := range tests {
		if _, ok := Parse(input); ok {
			t.Errorf("Parse(%q) = command, want not-a-command", input)
		}
	}
}

func TestParse_Config(t *testing.T) {
	cmd, ok := Parse("/config show_memory true")
	if !ok {
		t.Fatal("Parse() = not a command")
	}
	if cmd.Kind != KindConfig {
		t.Fatalf("Kind = %d, want config", cmd.Kind)
	}
	if cmd.Key != "show_memory" || cmd.Value != "true" {
		t.Errorf("Key/Value = %q/%q, want show_memory/true", cmd.Key, cmd.Value)
	}
}

func TestParse_ConfigMissingArgs(t *testing.T) {
	for _, input := range []string{"/config", "/config show_memory"} {
		cmd, ok := Parse(input)
		if !ok {
			t.Fatalf("Parse(%q) = not a command", input)
		}
		if cmd.Kind != KindUnknown {
			t.Errorf("Parse(%q).Kind = %d, want unknown", input, cmd.Kind)
		}
		if cmd.Name != "config" {
			t.Errorf("Parse(%q).Name = %q, want 'config'", input, cmd.Name)
		}
	}
}

func TestParse_ConfigExtraArgsIgnored(t *testing.T) {
	cmd, _ := Parse("/config show_tools false extra tokens")
	if cmd.Kind != KindConfig || cmd.Key != "show_tools" || cmd.Value != "false" {
		t.Errorf("Parse() = %+v, want config show_tools/false", cmd)
	}
}

func TestParse_Unknown(t *testing.T) {
	cmd, ok := Parse("/frobnicate now")
	if !ok {
		t.Fatal("Parse() = not a command")
	}
	if cmd.Kind != KindUnknown {
		t.Errorf("Kind = %d, want unknown", cmd.Kind)
	}
	if cmd.Name != "frobnicate" {
		t.Errorf("Name = %q, want 'frobnicate'", cmd.Name)
	}
}

// =============================================================================
// COMPLETION TESTS
// =============================================================================

func TestComplete(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"/c", []string{"/clear", "/config"}},
		{"/re", []string{"/reconnect"}},
		{"/", commandNames},
		{"/zz", nil},
		{"hello", nil},
		{"/config show", nil},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := Complete(tc.input)
			if len(got) != len(tc.want) {
				t.Fatalf("Complete(%q) = %v, want %v", tc.input, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("Complete(%q)[%d] = %q, want %q", tc.input, i, got[i], tc.want[i])
				}
			}
		})
	}
}

// =============================================================================
// HELP TEXT TESTS
// =============================================================================

func TestHelpText_ListsAllCommands(t *testing.T) {
	help := HelpText()
	for _, name := range []string{"/stats", "/memory", "/knowledge", "/clear", "/reconnect", "/config"} {
		if !strings.Contains(help, name) {
			t.Errorf("HelpText() missing %q", name)
		}
	}
	for _, key := range []string{ConfigShowMemory, ConfigShowKnowledge, ConfigShowTools} {
		if !strings.Contains(help, key) {
			t.Errorf("HelpText() missing config key %q", key)
		}
	}
}
