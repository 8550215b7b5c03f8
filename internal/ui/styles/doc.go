// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual theme for the chat interface.
//
// All colors are lipgloss adaptive pairs so the interface stays
// readable on both light and dark terminals. Theme bundles the
// configured styles; views take a *Theme and never construct styles
// inline.
package styles
