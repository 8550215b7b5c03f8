// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components contains the stateless render helpers for the chat
// interface chrome: the header bar, the status bar, and the context
// sidebar with its Memory, Knowledge, and Tools panels.
//
// Components take a *styles.Theme and the data they render, and return
// styled strings. They hold no state of their own; the chat model owns
// all state and passes snapshots in on every frame.
package components
